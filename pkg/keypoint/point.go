package keypoint

import (
	"image"
	"math"
	"sort"

	"github.com/pkg/errors"
)

// InterestPoint is one detected location in original-image coordinates.
type InterestPoint struct {
	// X, Y is the sub-pixel location of the point.
	X float64 `json:"x"`
	Y float64 `json:"y"`

	// IX, IY is the integer pixel location, mainly for internal use.
	IX int `json:"ix"`
	IY int `json:"iy"`

	// Scale is the characteristic scale of the point. It comes from the
	// pyramid plane the point was found on, refined between planes by
	// sub-pixel localization.
	Scale float64 `json:"scale"`

	// Orientation is the dominant gradient direction in radians, valid only
	// when Oriented is true. A point may appear several times with the same
	// location and different orientations when the orientation histogram has
	// several modes.
	Orientation float64 `json:"orientation"`

	// Oriented reports whether orientation assignment found at least one
	// histogram mode for this point. Points whose analysis window fell
	// outside the image keep their location but stay unoriented.
	Oriented bool `json:"oriented"`

	// Interest is the operator score that ranked this point. Larger means
	// more interesting; operators that detect both polarities of extremum
	// threshold on its magnitude.
	Interest float64 `json:"interest"`

	// Descriptor is the feature vector attached by downstream encoding.
	// Detection leaves it nil.
	Descriptor []float64 `json:"descriptor,omitempty"`
}

// Coord returns coordinate i of the point: 0 is X, 1 is Y. Any other index
// is an invalid-argument error.
func (pt *InterestPoint) Coord(i int) (float64, error) {
	switch i {
	case 0:
		return pt.X, nil
	case 1:
		return pt.Y, nil
	default:
		return 0, errors.Errorf("keypoint: invalid coordinate index %d", i)
	}
}

// sortByInterest orders points by descending interest score, the ranking
// used by culling.
func sortByInterest(points []InterestPoint) {
	sort.SliceStable(points, func(i, j int) bool {
		return points[i].Interest > points[j].Interest
	})
}

// CropPoints returns the points whose sub-pixel location falls inside rect.
func CropPoints(points []InterestPoint, rect image.Rectangle) []InterestPoint {
	kept := make([]InterestPoint, 0, len(points))
	for _, pt := range points {
		x := int(math.Floor(pt.X))
		y := int(math.Floor(pt.Y))
		if (image.Point{X: x, Y: y}).In(rect) {
			kept = append(kept, pt)
		}
	}
	return kept
}

// HomographyError measures the error between a point p2 and a point p1
// transformed by the row-major 3x3 matrix h, as the Euclidean norm of the
// homogeneous residual (p2.x, p2.y, 1) - h*(p1.x, p1.y, 1). Downstream
// matchers use it to score candidate correspondences.
func HomographyError(h [9]float64, p1, p2 *InterestPoint) float64 {
	tx := h[0]*p1.X + h[1]*p1.Y + h[2]
	ty := h[3]*p1.X + h[4]*p1.Y + h[5]
	tw := h[6]*p1.X + h[7]*p1.Y + h[8]

	dx := p2.X - tx
	dy := p2.Y - ty
	dw := 1 - tw
	return math.Sqrt(dx*dx + dy*dy + dw*dw)
}
