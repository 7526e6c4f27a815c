package keypoint

import (
	"math"

	"github.com/pkg/errors"

	"github.com/ironsheep/keypoint-detect/pkg/plane"
	"github.com/ironsheep/keypoint-detect/pkg/pyramid"
)

// Default scale-space shape for ScaledDetector.
const (
	DefaultScalesPerOctave = 3
	DefaultOctaves         = 3
)

// ScaledDetector is the multi-octave driver: the detection pipeline run per
// octave of a scale-space pyramid, with candidates rescaled back to
// original-image coordinates before being accumulated.
//
// The culling budget applies per octave, not globally, so coarse octaves
// are never starved by a flood of fine-scale candidates. The final sequence
// is the octave-major concatenation and is not globally re-ranked.
type ScaledDetector struct {
	op        Operator
	scales    int
	octaves   int
	maxPoints int
	orient    OrientationConfig
}

// NewScaledDetector builds a multi-octave driver. scales is the number of
// planes per octave doubling and octaves the number of pyramid levels; both
// must be at least 1. maxPoints is the per-octave culling budget; 0
// disables culling and negative values are rejected.
func NewScaledDetector(op Operator, scales, octaves, maxPoints int) (*ScaledDetector, error) {
	if op == nil {
		return nil, errors.New("keypoint: operator is nil")
	}
	if scales < 1 {
		return nil, errors.Errorf("keypoint: scales per octave must be >= 1, got %d", scales)
	}
	if octaves < 1 {
		return nil, errors.Errorf("keypoint: octave count must be >= 1, got %d", octaves)
	}
	if maxPoints < 0 {
		return nil, errors.Errorf("keypoint: max points must be >= 0, got %d", maxPoints)
	}
	return &ScaledDetector{
		op:        op,
		scales:    scales,
		octaves:   octaves,
		maxPoints: maxPoints,
		orient:    DefaultOrientationConfig(),
	}, nil
}

// SetOrientationConfig overrides the orientation tuning constants.
func (d *ScaledDetector) SetOrientationConfig(cfg OrientationConfig) {
	d.orient = cfg
}

// ProcessPlane runs the per-octave pipeline over the full pyramid.
func (d *ScaledDetector) ProcessPlane(src *plane.Plane) ([]InterestPoint, error) {
	if src == nil {
		return nil, errors.New("keypoint: source plane is nil")
	}

	oct, err := pyramid.New(src, d.scales)
	if err != nil {
		return nil, errors.Wrap(err, "keypoint: building scale space")
	}

	var points []InterestPoint
	for o := 0; o < d.octaves; o++ {
		// Derived data and interest maps for every plane. The operator's
		// smoothing support follows the plane's in-octave sigma, keeping the
		// kernel matched to the plane's own sampling.
		datas := make([]*ImageData, oct.NumPlanes)
		for k := 0; k < oct.NumPlanes; k++ {
			datas[k] = NewImageData(oct.Planes[k])
			d.op.Compute(datas[k], oct.Sigmas[k])
		}

		newPoints := FindPeaksOctave(datas, oct, d.op.PeakType())
		for i := range newPoints {
			FitPeakOctave(datas, oct, &newPoints[i])
		}

		newPoints = d.threshold(newPoints, datas, oct)
		newPoints = cull(newPoints, d.maxPoints)
		newPoints = d.assignOrientations(newPoints, datas, oct)

		// Move back to original-image coordinates.
		for i := range newPoints {
			newPoints[i].X *= oct.BaseScale
			newPoints[i].Y *= oct.BaseScale
			newPoints[i].IX = int(math.Floor(newPoints[i].X + 0.5))
			newPoints[i].IY = int(math.Floor(newPoints[i].Y + 0.5))
		}
		points = append(points, newPoints...)

		if o != d.octaves-1 {
			oct.BuildNext()
		}
	}
	return points, nil
}

// threshold drops points rejected by the operator, evaluated against the
// plane each point was found on, preserving order.
func (d *ScaledDetector) threshold(points []InterestPoint, datas []*ImageData, oct *pyramid.Octave) []InterestPoint {
	kept := points[:0]
	for i := range points {
		k := oct.ScaleToPlaneIndex(points[i].Scale)
		if d.op.Threshold(&points[i], datas[k]) {
			kept = append(kept, points[i])
		}
	}
	return kept
}

// assignOrientations runs orientation assignment with the analysis window
// scaled by the ratio of the point's plane sigma to the reference plane's
// sigma.
func (d *ScaledDetector) assignOrientations(points []InterestPoint, datas []*ImageData, oct *pyramid.Octave) []InterestPoint {
	return assignOrientations(points,
		func(pt *InterestPoint) float64 {
			k := oct.ScaleToPlaneIndex(pt.Scale)
			return oct.Sigmas[k] / oct.Sigmas[1]
		},
		func(pt *InterestPoint, ratio float64) []float64 {
			k := oct.ScaleToPlaneIndex(pt.Scale)
			return Orientations(datas[k].Orientation(), datas[k].Magnitude(),
				int(pt.X+0.5), int(pt.Y+0.5), ratio, d.orient)
		})
}
