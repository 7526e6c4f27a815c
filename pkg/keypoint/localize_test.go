package keypoint

import (
	"math"
	"testing"

	"github.com/ironsheep/keypoint-detect/pkg/plane"
	"github.com/ironsheep/keypoint-detect/pkg/pyramid"
)

// quadraticBump fills an interest map with a paraboloid peaking at (px, py).
func quadraticBump(width, height int, px, py float64) *plane.Plane {
	p := plane.New(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			dx := float64(x) - px
			dy := float64(y) - py
			p.Set(x, y, 10-dx*dx-dy*dy)
		}
	}
	return p
}

func TestFitPeak_RecoversSubpixelPeak(t *testing.T) {
	data := interestData(quadraticBump(20, 20, 10.3, 7.6))
	pt := InterestPoint{X: 10, Y: 8, IX: 10, IY: 8}

	FitPeak(data, &pt)
	if math.Abs(pt.X-10.3) > 1e-6 || math.Abs(pt.Y-7.6) > 1e-6 {
		t.Errorf("fitted peak = (%v,%v), want (10.3,7.6)", pt.X, pt.Y)
	}
}

func TestFitPeak_BorderPointUnchanged(t *testing.T) {
	data := interestData(quadraticBump(20, 20, 10, 10))
	pt := InterestPoint{X: 0, Y: 5, IX: 0, IY: 5}

	FitPeak(data, &pt)
	if pt.X != 0 || pt.Y != 5 {
		t.Errorf("border point moved to (%v,%v)", pt.X, pt.Y)
	}
}

func TestFitPeak_DegenerateFitUnchanged(t *testing.T) {
	data := interestData(plane.New(20, 20))
	pt := InterestPoint{X: 10, Y: 10, IX: 10, IY: 10}

	FitPeak(data, &pt)
	if pt.X != 10 || pt.Y != 10 {
		t.Errorf("degenerate fit moved point to (%v,%v)", pt.X, pt.Y)
	}
}

func TestFitPeak_OffsetClamped(t *testing.T) {
	// A saddle-free but sharply skewed neighborhood can fit an extremum far
	// outside the pixel; the offset must clamp to one pixel.
	interest := plane.New(20, 20)
	interest.Set(10, 10, 1.0)
	interest.Set(11, 10, 0.999)
	data := interestData(interest)
	pt := InterestPoint{X: 10, Y: 10, IX: 10, IY: 10}

	FitPeak(data, &pt)
	if math.Abs(pt.X-10) > 1 || math.Abs(pt.Y-10) > 1 {
		t.Errorf("offset not clamped: (%v,%v)", pt.X, pt.Y)
	}
}

func TestFitPeakOctave_RefinesScale(t *testing.T) {
	oct, err := pyramid.New(plane.New(32, 32), 3)
	if err != nil {
		t.Fatalf("pyramid.New failed: %v", err)
	}

	datas := make([]*ImageData, oct.NumPlanes)
	for k := range datas {
		datas[k] = interestData(quadraticBump(32, 32, 10, 10))
		// Response strongest on plane 2, tapering symmetrically.
		for i := range datas[k].Interest().Pix {
			datas[k].Interest().Pix[i] *= 1 - 0.1*math.Abs(float64(k)-2)
		}
	}

	pt := InterestPoint{X: 10, Y: 10, IX: 10, IY: 10, Scale: oct.PlaneIndexToScale(2)}
	FitPeakOctave(datas, oct, &pt)

	// Symmetric taper: the scale fit should stay on plane 2's scale.
	if math.Abs(pt.Scale-oct.PlaneIndexToScale(2)) > 1e-6 {
		t.Errorf("scale = %v, want %v", pt.Scale, oct.PlaneIndexToScale(2))
	}
	if math.Abs(pt.X-10) > 1e-6 || math.Abs(pt.Y-10) > 1e-6 {
		t.Errorf("location = (%v,%v), want (10,10)", pt.X, pt.Y)
	}
}

func TestFitPeakOctave_ScaleShiftsTowardStrongerPlane(t *testing.T) {
	oct, err := pyramid.New(plane.New(32, 32), 3)
	if err != nil {
		t.Fatalf("pyramid.New failed: %v", err)
	}

	weights := []float64{0.2, 0.6, 1.0, 1.1, 0.2}
	datas := make([]*ImageData, oct.NumPlanes)
	for k := range datas {
		datas[k] = interestData(quadraticBump(32, 32, 10, 10))
		for i := range datas[k].Interest().Pix {
			datas[k].Interest().Pix[i] *= weights[k]
		}
	}

	pt := InterestPoint{X: 10, Y: 10, IX: 10, IY: 10, Scale: oct.PlaneIndexToScale(2)}
	FitPeakOctave(datas, oct, &pt)

	if pt.Scale <= oct.PlaneIndexToScale(2) {
		t.Errorf("scale = %v, want above plane 2 scale %v", pt.Scale, oct.PlaneIndexToScale(2))
	}
	if pt.Scale > oct.PlaneIndexToScale(3) {
		t.Errorf("scale = %v, want at most plane 3 scale %v", pt.Scale, oct.PlaneIndexToScale(3))
	}
}
