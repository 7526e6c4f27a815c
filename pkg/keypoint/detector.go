package keypoint

import (
	"github.com/pkg/errors"

	"github.com/ironsheep/keypoint-detect/pkg/plane"
)

// DefaultMaxPoints is the default culling budget: the number of strongest
// candidates kept per detector run (per octave for ScaledDetector).
const DefaultMaxPoints = 1000

// Driver runs a complete detection pipeline over one source plane. Detect
// composes any Driver with optional tiling through this interface.
type Driver interface {
	// ProcessPlane detects interest points in the plane. Coordinates in the
	// result are in the plane's own frame.
	ProcessPlane(src *plane.Plane) ([]InterestPoint, error)
}

// Detector is the single-scale driver: the full pipeline over one plane
// with no pyramid.
type Detector struct {
	op        Operator
	maxPoints int
	orient    OrientationConfig
}

// NewDetector builds a single-scale driver around an operator. maxPoints is
// the culling budget; 0 disables culling and negative values are rejected.
func NewDetector(op Operator, maxPoints int) (*Detector, error) {
	if op == nil {
		return nil, errors.New("keypoint: operator is nil")
	}
	if maxPoints < 0 {
		return nil, errors.Errorf("keypoint: max points must be >= 0, got %d", maxPoints)
	}
	return &Detector{op: op, maxPoints: maxPoints, orient: DefaultOrientationConfig()}, nil
}

// SetOrientationConfig overrides the orientation tuning constants.
func (d *Detector) SetOrientationConfig(cfg OrientationConfig) {
	d.orient = cfg
}

// ProcessPlane runs the pipeline: derived data, interest map, extremum
// search, sub-pixel localization, thresholding, culling, orientation
// assignment. The output is ranked by interest up to the orientation stage,
// whose clone insertions do not preserve a global sort.
func (d *Detector) ProcessPlane(src *plane.Plane) ([]InterestPoint, error) {
	if src == nil {
		return nil, errors.New("keypoint: source plane is nil")
	}

	data := NewImageData(src)
	d.op.Compute(data, 1)

	points := FindPeaks(data, d.op.PeakType(), 1)
	for i := range points {
		FitPeak(data, &points[i])
	}

	points = d.threshold(points, data)
	points = cull(points, d.maxPoints)

	ori := data.Orientation()
	mag := data.Magnitude()
	points = assignOrientations(points,
		func(*InterestPoint) float64 { return 1 },
		func(pt *InterestPoint, ratio float64) []float64 {
			return Orientations(ori, mag, int(pt.X+0.5), int(pt.Y+0.5), ratio, d.orient)
		})
	return points, nil
}

// threshold drops points rejected by the operator, preserving order.
func (d *Detector) threshold(points []InterestPoint, data *ImageData) []InterestPoint {
	kept := points[:0]
	for i := range points {
		if d.op.Threshold(&points[i], data) {
			kept = append(kept, points[i])
		}
	}
	return kept
}

// cull sorts by descending interest and truncates to maxPoints. A budget of
// 0 means unlimited.
func cull(points []InterestPoint, maxPoints int) []InterestPoint {
	sortByInterest(points)
	if maxPoints > 0 && len(points) > maxPoints {
		points = points[:maxPoints]
	}
	return points
}
