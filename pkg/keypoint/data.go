package keypoint

import (
	"math"

	"github.com/ironsheep/keypoint-detect/pkg/plane"
)

// gradientKernel is the centered half-difference derivative kernel.
var gradientKernel = []float64{-0.5, 0, 0.5}

// identityKernel leaves the other separable axis untouched.
var identityKernel = []float64{1}

// ImageData caches the planes derived from one source plane: the x and y
// gradients, the per-pixel gradient orientation and magnitude, and the
// interest map filled in by an Operator.
//
// Derived planes are computed on first access and cached for the life of the
// ImageData; there is no invalidation. The multi-octave driver recreates one
// ImageData per plane per octave and discards them at octave end.
type ImageData struct {
	src      *plane.Plane
	gradX    *plane.Plane
	gradY    *plane.Plane
	ori      *plane.Plane
	mag      *plane.Plane
	interest *plane.Plane
}

// NewImageData wraps a source plane. The plane is borrowed, not copied; the
// caller must not mutate it while the ImageData is in use.
func NewImageData(src *plane.Plane) *ImageData {
	return &ImageData{src: src}
}

// Source returns the source plane.
func (d *ImageData) Source() *plane.Plane {
	return d.src
}

// GradientX returns the cached x gradient, computing it on first use.
func (d *ImageData) GradientX() *plane.Plane {
	if d.gradX == nil {
		d.gradX = d.src.SeparableConvolve(gradientKernel, identityKernel)
	}
	return d.gradX
}

// GradientY returns the cached y gradient, computing it on first use.
func (d *ImageData) GradientY() *plane.Plane {
	if d.gradY == nil {
		d.gradY = d.src.SeparableConvolve(identityKernel, gradientKernel)
	}
	return d.gradY
}

// Orientation returns the cached gradient direction plane, atan2(gy, gx)
// per pixel in [-pi, pi].
func (d *ImageData) Orientation() *plane.Plane {
	if d.ori == nil {
		gx := d.GradientX()
		gy := d.GradientY()
		d.ori = plane.New(gx.Width, gx.Height)
		for i := range d.ori.Pix {
			d.ori.Pix[i] = math.Atan2(gy.Pix[i], gx.Pix[i])
		}
	}
	return d.ori
}

// Magnitude returns the cached gradient magnitude plane, sqrt(gx^2+gy^2)
// per pixel.
func (d *ImageData) Magnitude() *plane.Plane {
	if d.mag == nil {
		gx := d.GradientX()
		gy := d.GradientY()
		d.mag = plane.New(gx.Width, gx.Height)
		for i := range d.mag.Pix {
			d.mag.Pix[i] = math.Hypot(gx.Pix[i], gy.Pix[i])
		}
	}
	return d.mag
}

// Interest returns the interest map, or nil before an Operator has run.
func (d *ImageData) Interest() *plane.Plane {
	return d.interest
}

// SetInterest installs the interest map. Called by Operator implementations.
func (d *ImageData) SetInterest(p *plane.Plane) {
	d.interest = p
}
