package keypoint

import (
	"github.com/ironsheep/keypoint-detect/pkg/plane"
)

// Default Harris configuration.
const (
	// DefaultHarrisThreshold is the minimum Noble/Harris score a point must
	// exceed to survive thresholding.
	DefaultHarrisThreshold = 1e-5

	// DefaultNobleEpsilon regularizes the Noble measure's denominator so
	// flat regions score near zero instead of dividing by zero.
	DefaultNobleEpsilon = 1e-6
)

// Harris is the Harris corner interest operator.
//
// It builds the 2x2 structure matrix from Gaussian-smoothed products of the
// image gradients and scores each pixel by corner strength. With K < 0 (the
// default) it uses the Noble measure det/(trace+eps), which needs no tuning;
// with K >= 0 it uses the classic Harris measure det - K*trace^2 (typical
// K between 0.04 and 0.15). Local maxima of the score are corners.
type Harris struct {
	// MinScore is the minimum score for a point to survive thresholding.
	MinScore float64

	// K selects the corner measure; negative means Noble.
	K float64

	// Epsilon is the Noble denominator regularizer.
	Epsilon float64
}

// NewHarris returns a Harris operator with the Noble measure and the default
// threshold.
func NewHarris() *Harris {
	return &Harris{MinScore: DefaultHarrisThreshold, K: -1, Epsilon: DefaultNobleEpsilon}
}

// Compute fills the interest plane with the corner-strength score. The
// structure matrix entries Ix^2, Iy^2 and Ix*Iy are smoothed with a Gaussian
// sized from the plane's scale.
func (h *Harris) Compute(data *ImageData, scale float64) {
	gx := data.GradientX()
	gy := data.GradientY()
	kernel := plane.GaussianKernel(scale)

	ix2 := gx.Multiply(gx).SeparableConvolve(kernel, kernel)
	iy2 := gy.Multiply(gy).SeparableConvolve(kernel, kernel)
	ixy := gx.Multiply(gy).SeparableConvolve(kernel, kernel)

	interest := plane.New(gx.Width, gx.Height)
	for i := range interest.Pix {
		trace := ix2.Pix[i] + iy2.Pix[i]
		det := ix2.Pix[i]*iy2.Pix[i] - ixy.Pix[i]*ixy.Pix[i]
		if h.K < 0 {
			interest.Pix[i] = det / (trace + h.Epsilon)
		} else {
			interest.Pix[i] = det - h.K*trace*trace
		}
	}
	data.SetInterest(interest)
}

// Threshold keeps points whose score exceeds the configured minimum.
func (h *Harris) Threshold(pt *InterestPoint, _ *ImageData) bool {
	return pt.Interest > h.MinScore
}

// PeakType reports that Harris responses peak only at maxima.
func (h *Harris) PeakType() PeakType {
	return PeakMax
}
