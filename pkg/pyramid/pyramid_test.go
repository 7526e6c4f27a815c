package pyramid

import (
	"math"
	"testing"

	"github.com/ironsheep/keypoint-detect/pkg/plane"
)

// createNoisePlane fills a plane with a deterministic pseudo-random texture.
func createNoisePlane(width, height int) *plane.Plane {
	p := plane.New(width, height)
	seed := uint32(12345)
	for i := range p.Pix {
		seed = seed*1664525 + 1013904223
		p.Pix[i] = float64(seed%1000) / 1000.0
	}
	return p
}

func TestNew_Validation(t *testing.T) {
	if _, err := New(nil, 3); err == nil {
		t.Error("expected error for nil source")
	}
	if _, err := New(plane.New(8, 8), 0); err == nil {
		t.Error("expected error for zero scales per octave")
	}
}

func TestNew_SigmaSchedule(t *testing.T) {
	oct, err := New(createNoisePlane(32, 32), 3)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if oct.NumPlanes != 5 {
		t.Fatalf("NumPlanes = %d, want 5", oct.NumPlanes)
	}
	if len(oct.Planes) != 5 || len(oct.Sigmas) != 5 {
		t.Fatalf("plane/sigma counts = %d/%d, want 5/5", len(oct.Planes), len(oct.Sigmas))
	}
	if oct.BaseScale != 1 {
		t.Errorf("BaseScale = %v, want 1", oct.BaseScale)
	}
	if math.Abs(oct.Sigmas[0]-BaseSigma) > 1e-9 {
		t.Errorf("Sigmas[0] = %v, want %v", oct.Sigmas[0], BaseSigma)
	}
	// One full doubling happens after scalesPerOctave planes.
	if math.Abs(oct.Sigmas[3]-2*BaseSigma) > 1e-9 {
		t.Errorf("Sigmas[3] = %v, want %v", oct.Sigmas[3], 2*BaseSigma)
	}
	for k := 1; k < oct.NumPlanes; k++ {
		if oct.Sigmas[k] <= oct.Sigmas[k-1] {
			t.Errorf("sigmas not increasing at %d: %v <= %v", k, oct.Sigmas[k], oct.Sigmas[k-1])
		}
	}
}

func TestScaleIndexRoundTrip(t *testing.T) {
	oct, err := New(createNoisePlane(32, 32), 3)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	for k := 0; k < oct.NumPlanes; k++ {
		scale := oct.PlaneIndexToScale(k)
		if got := oct.ScaleToPlaneIndex(scale); got != k {
			t.Errorf("round trip plane %d -> scale %v -> plane %d", k, scale, got)
		}
	}
}

func TestScaleToPlaneIndex_Clamps(t *testing.T) {
	oct, err := New(createNoisePlane(32, 32), 3)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if got := oct.ScaleToPlaneIndex(0.01); got != 0 {
		t.Errorf("tiny scale mapped to plane %d, want 0", got)
	}
	if got := oct.ScaleToPlaneIndex(1e6); got != oct.NumPlanes-1 {
		t.Errorf("huge scale mapped to plane %d, want %d", got, oct.NumPlanes-1)
	}
}

func TestBuildNext(t *testing.T) {
	oct, err := New(createNoisePlane(33, 32), 3)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	oct.BuildNext()
	if oct.BaseScale != 2 {
		t.Errorf("BaseScale after BuildNext = %v, want 2", oct.BaseScale)
	}
	if w := oct.Planes[0].Width; w != 17 {
		t.Errorf("width after BuildNext = %d, want 17", w)
	}
	if h := oct.Planes[0].Height; h != 16 {
		t.Errorf("height after BuildNext = %d, want 16", h)
	}

	// Absolute scales double with the octave while in-octave sigmas repeat.
	if math.Abs(oct.PlaneIndexToScale(0)-2*BaseSigma) > 1e-9 {
		t.Errorf("PlaneIndexToScale(0) = %v, want %v", oct.PlaneIndexToScale(0), 2*BaseSigma)
	}
	for k := 0; k < oct.NumPlanes; k++ {
		scale := oct.PlaneIndexToScale(k)
		if got := oct.ScaleToPlaneIndex(scale); got != k {
			t.Errorf("second octave round trip plane %d -> %d", k, got)
		}
	}
}

func TestInterpolatedScale(t *testing.T) {
	oct, err := New(createNoisePlane(32, 32), 3)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	for k := 0; k < oct.NumPlanes; k++ {
		if got, want := oct.InterpolatedScale(float64(k)), oct.PlaneIndexToScale(k); math.Abs(got-want) > 1e-9 {
			t.Errorf("InterpolatedScale(%d) = %v, want %v", k, got, want)
		}
	}
	mid := oct.InterpolatedScale(0.5)
	if mid <= oct.PlaneIndexToScale(0) || mid >= oct.PlaneIndexToScale(1) {
		t.Errorf("InterpolatedScale(0.5) = %v, want between planes 0 and 1", mid)
	}
}
