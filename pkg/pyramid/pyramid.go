package pyramid

import (
	"math"

	"github.com/pkg/errors"

	"github.com/ironsheep/keypoint-detect/pkg/plane"
)

// BaseSigma is the smoothing applied to the first plane of every octave,
// in that octave's pixel units.
const BaseSigma = 1.0

// Octave is one level of a scale-space pyramid: a stack of planes smoothed
// to geometrically spaced sigmas, plus the factor mapping in-octave pixel
// coordinates back to the original image.
type Octave struct {
	// NumPlanes is the number of smoothed planes, scalesPerOctave + 2.
	NumPlanes int

	// Planes holds the smoothed planes, finest first.
	Planes []*plane.Plane

	// Sigmas holds the per-plane smoothing in octave pixel units:
	// Sigmas[k] = BaseSigma * 2^(k/scalesPerOctave).
	Sigmas []float64

	// BaseScale maps in-octave coordinates to original-image coordinates.
	// It is 1 for the first octave and doubles on every BuildNext.
	BaseScale float64

	scalesPerOctave int
}

// New builds the first octave from a source plane. scalesPerOctave is the
// number of planes per scale doubling; it must be at least 1.
func New(src *plane.Plane, scalesPerOctave int) (*Octave, error) {
	if src == nil {
		return nil, errors.New("pyramid: source plane is nil")
	}
	if scalesPerOctave < 1 {
		return nil, errors.Errorf("pyramid: scales per octave must be >= 1, got %d", scalesPerOctave)
	}

	o := &Octave{
		NumPlanes:       scalesPerOctave + 2,
		BaseScale:       1.0,
		scalesPerOctave: scalesPerOctave,
	}
	o.Sigmas = make([]float64, o.NumPlanes)
	for k := range o.Sigmas {
		o.Sigmas[k] = BaseSigma * math.Pow(2, float64(k)/float64(scalesPerOctave))
	}
	o.fillPlanes(src.GaussianSmooth(o.Sigmas[0]))
	return o, nil
}

// fillPlanes populates the stack from an already base-smoothed first plane,
// smoothing incrementally so each step only applies the sigma difference.
func (o *Octave) fillPlanes(first *plane.Plane) {
	o.Planes = make([]*plane.Plane, o.NumPlanes)
	o.Planes[0] = first
	for k := 1; k < o.NumPlanes; k++ {
		delta := math.Sqrt(o.Sigmas[k]*o.Sigmas[k] - o.Sigmas[k-1]*o.Sigmas[k-1])
		o.Planes[k] = o.Planes[k-1].GaussianSmooth(delta)
	}
}

// BuildNext advances the octave in place to the next pyramid level. The
// plane smoothed to twice the base sigma is downsampled by two, becoming the
// new first plane, and BaseScale doubles.
func (o *Octave) BuildNext() {
	o.fillPlanes(o.Planes[o.scalesPerOctave].Downsample())
	o.BaseScale *= 2
}

// PlaneIndexToScale returns the absolute scale (in original-image units) of
// plane k.
func (o *Octave) PlaneIndexToScale(k int) float64 {
	return o.Sigmas[k] * o.BaseScale
}

// ScaleToPlaneIndex returns the plane whose scale is nearest the given
// absolute scale. The result is clamped to the valid plane range, so any
// finite positive scale maps to some plane.
func (o *Octave) ScaleToPlaneIndex(scale float64) int {
	k := int(math.Round(float64(o.scalesPerOctave) * math.Log2(scale/(BaseSigma*o.BaseScale))))
	if k < 0 {
		k = 0
	}
	if k > o.NumPlanes-1 {
		k = o.NumPlanes - 1
	}
	return k
}

// InterpolatedScale converts a fractional plane index to an absolute scale.
// Used by sub-pixel localization when refining a point between planes.
func (o *Octave) InterpolatedScale(k float64) float64 {
	return BaseSigma * math.Pow(2, k/float64(o.scalesPerOctave)) * o.BaseScale
}
