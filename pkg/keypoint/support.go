package keypoint

import (
	"github.com/pkg/errors"

	"github.com/ironsheep/keypoint-detect/pkg/plane"
	"github.com/ironsheep/keypoint-detect/pkg/pyramid"
)

// DefaultSupportSize is the side length of the patch extracted by
// SupportRegion when the caller passes size 0.
const DefaultSupportSize = 41

// SupportRegion extracts the size x size pixel patch around an interest
// point from the octave plane matching the point's scale, rotated to the
// point's orientation and resampled so the patch covers the point's
// characteristic scale. Descriptor encoders downstream consume these
// patches.
//
// The point must carry original-image coordinates (the form detectors
// return); the octave must be at the pyramid level the point was found on.
func SupportRegion(pt *InterestPoint, oct *pyramid.Octave, size int) (*plane.Plane, error) {
	if pt == nil || oct == nil {
		return nil, errors.New("keypoint: point and octave must be non-nil")
	}
	if size < 0 {
		return nil, errors.Errorf("keypoint: support size must be >= 0, got %d", size)
	}
	if size == 0 {
		size = DefaultSupportSize
	}

	k := oct.ScaleToPlaneIndex(pt.Scale)
	// Back into the plane's own frame: coordinates and sampling step both
	// shrink by the octave's base scale.
	cx := pt.X / oct.BaseScale
	cy := pt.Y / oct.BaseScale
	step := pt.Scale / oct.BaseScale

	angle := 0.0
	if pt.Oriented {
		angle = pt.Orientation
	}
	return oct.Planes[k].ResampleAround(cx, cy, step, angle, size), nil
}
