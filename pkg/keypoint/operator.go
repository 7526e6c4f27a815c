package keypoint

// PeakType declares which polarities of interest-map extremum an operator
// produces.
type PeakType int

const (
	// PeakMax means only local maxima of the interest map are candidates.
	PeakMax PeakType = iota

	// PeakMinMax means both local maxima and local minima are candidates.
	PeakMinMax
)

// Operator computes a per-pixel "interestingness" score and decides which
// scored points survive thresholding.
//
// Implementations hold immutable configuration only; they are stateless
// across invocations and safe to share between detectors.
type Operator interface {
	// Compute fills data's interest plane from its source and derived
	// planes. scale parameterizes the operator's smoothing support so the
	// response is comparable across pyramid planes; single-scale detection
	// passes 1.
	Compute(data *ImageData, scale float64)

	// Threshold reports whether a localized point is strong enough to keep.
	Threshold(pt *InterestPoint, data *ImageData) bool

	// PeakType declares which extremum polarities Compute's output has.
	PeakType() PeakType
}
