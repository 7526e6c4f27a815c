package keypoint

import (
	"math"

	"github.com/ironsheep/keypoint-detect/pkg/plane"
)

// OrientationConfig collects the empirical tuning constants of orientation
// assignment. The defaults reproduce the standard behavior; they are
// exposed because they are tuning values, not structural ones.
type OrientationConfig struct {
	// Bins is the number of histogram bins spanning [-pi, pi).
	Bins int

	// HalfWidth is the base half-width of the analysis window in pixels;
	// the effective half-width is round(HalfWidth * sigmaRatio).
	HalfWidth int

	// GaussianSpread scales the weighting Gaussian's sigma: the window
	// weights use sigma = GaussianSpread * sigmaRatio.
	GaussianSpread float64

	// SmoothSigma is the circular bandwidth (in bins) used to smooth the
	// histogram before mode extraction.
	SmoothSigma float64
}

// DefaultOrientationConfig returns the standard orientation tuning.
func DefaultOrientationConfig() OrientationConfig {
	return OrientationConfig{
		Bins:           36,
		HalfWidth:      5,
		GaussianSpread: 6,
		SmoothSigma:    5.0,
	}
}

// Orientations estimates the dominant gradient directions around the pixel
// (i0, j0), in radians. sigmaRatio scales the analysis window for points
// found on coarser pyramid planes; single-scale detection passes 1.
//
// The routine accumulates a Gaussian- and magnitude-weighted circular
// histogram of gradient orientations over a window centered on the point,
// smooths it into a density estimate, and reads off every local mode. A
// window that does not fit strictly inside the planes produces no
// orientations; that is a silent no-op, not an error.
func Orientations(ori, mag *plane.Plane, i0, j0 int, sigmaRatio float64, cfg OrientationConfig) []float64 {
	halfWidth := int(float64(cfg.HalfWidth)*sigmaRatio + 0.5)
	left := i0 - halfWidth
	top := j0 - halfWidth
	width := 2*halfWidth + 1

	// The window must lie strictly inside the planes. Sampling below still
	// uses edge extension, matching the accumulation semantics elsewhere.
	if left < 0 || top < 0 || left+width >= ori.Width || top+width >= ori.Height {
		return nil
	}

	weight := plane.GaussianKernel2D(cfg.GaussianSpread*sigmaRatio, width)
	oriWin := plane.New(width, width)
	for y := 0; y < width; y++ {
		for x := 0; x < width; x++ {
			weight.Pix[y*width+x] *= mag.AtExtended(left+x, top+y)
			oriWin.Pix[y*width+x] = ori.AtExtended(left+x, top+y)
		}
	}

	histo := weightedHistogram(oriWin, weight, -math.Pi, math.Pi, cfg.Bins)
	histo = smoothCircularHistogram(histo, cfg.SmoothSigma)

	modes := histogramModes(histo)
	orientations := make([]float64, 0, len(modes))
	binWidth := 2 * math.Pi / float64(cfg.Bins)
	for _, m := range modes {
		orientations = append(orientations, float64(m)*binWidth-math.Pi)
	}
	return orientations
}

// assignOrientations runs orientation assignment over a point sequence.
// sigmaRatio gives the window scaling for each point.
//
// A point with no orientation modes is kept unchanged with Oriented false.
// Otherwise the first mode is written into the point in place and every
// further mode inserts a clone of the point directly beside it, so the
// output is no longer sorted by interest.
func assignOrientations(points []InterestPoint, sigmaRatio func(pt *InterestPoint) float64,
	orient func(pt *InterestPoint, ratio float64) []float64) []InterestPoint {

	out := make([]InterestPoint, 0, len(points))
	for _, pt := range points {
		modes := orient(&pt, sigmaRatio(&pt))
		if len(modes) == 0 {
			out = append(out, pt)
			continue
		}
		for _, angle := range modes {
			pt.Orientation = angle
			pt.Oriented = true
			out = append(out, pt)
		}
	}
	return out
}
