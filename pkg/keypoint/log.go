package keypoint

import "math"

// DefaultLoGThreshold is the minimum absolute blob response a point must
// exceed to survive thresholding.
const DefaultLoGThreshold = 0.03

// LoG is the Laplacian-of-Gaussian blob interest operator.
//
// The score is scale * Laplacian(source), the scale-normalized blob
// response. Bright blobs produce minima and dark blobs produce maxima, so
// both polarities of extremum are candidates and thresholding uses the
// response magnitude.
type LoG struct {
	// MinScore is the minimum |score| for a point to survive thresholding.
	MinScore float64
}

// NewLoG returns a LoG operator with the default threshold.
func NewLoG() *LoG {
	return &LoG{MinScore: DefaultLoGThreshold}
}

// Compute fills the interest plane with the scale-normalized Laplacian of
// the source plane.
func (l *LoG) Compute(data *ImageData, scale float64) {
	interest := data.Source().Laplacian()
	for i := range interest.Pix {
		interest.Pix[i] *= scale
	}
	data.SetInterest(interest)
}

// Threshold keeps points whose response magnitude exceeds the configured
// minimum.
func (l *LoG) Threshold(pt *InterestPoint, _ *ImageData) bool {
	return math.Abs(pt.Interest) > l.MinScore
}

// PeakType reports that LoG responses peak at both maxima and minima.
func (l *LoG) PeakType() PeakType {
	return PeakMinMax
}
