package keypoint

import (
	"github.com/ironsheep/keypoint-detect/pkg/plane"
)

// weightedHistogram accumulates the values plane into nbins bins spanning
// [lo, hi), each sample contributing its weight from the parallel weights
// plane. Values outside the span clamp to the end bins.
func weightedHistogram(values, weights *plane.Plane, lo, hi float64, nbins int) []float64 {
	histo := make([]float64, nbins)
	scale := float64(nbins) / (hi - lo)
	for i, v := range values.Pix {
		bin := int((v - lo) * scale)
		if bin < 0 {
			bin = 0
		} else if bin > nbins-1 {
			bin = nbins - 1
		}
		histo[bin] += weights.Pix[i]
	}
	return histo
}

// smoothCircularHistogram convolves the histogram with a circular Gaussian
// of the given bandwidth (in bins), approximating a kernel density estimate
// on the circle.
func smoothCircularHistogram(histo []float64, sigma float64) []float64 {
	n := len(histo)
	kernel := plane.GaussianKernel(sigma)
	radius := len(kernel) / 2

	out := make([]float64, n)
	for i := range histo {
		sum := 0.0
		for j, k := range kernel {
			idx := ((i+j-radius)%n + n) % n
			sum += k * histo[idx]
		}
		out[i] = sum
	}
	return out
}

// histogramModes returns the indices of the strict circular local maxima of
// the histogram, in increasing index order. Empty bins never count as modes.
func histogramModes(histo []float64) []int {
	n := len(histo)
	var modes []int
	for i := 0; i < n; i++ {
		v := histo[i]
		if v <= 0 {
			continue
		}
		prev := histo[((i-1)+n)%n]
		next := histo[(i+1)%n]
		if v > prev && v > next {
			modes = append(modes, i)
		}
	}
	return modes
}
