package keypoint

import (
	"github.com/ironsheep/keypoint-detect/pkg/pyramid"
)

// FitPeak refines a candidate's coordinates to sub-pixel precision by
// fitting a 2-D quadratic to the 3x3 interest neighborhood around its
// integer location and stepping to the fitted extremum.
//
// FitPeak never removes a point: candidates on the map border, degenerate
// fits, and fitted offsets past one pixel all fall back to leaving the
// coordinate at (or within half a pixel of) its integer location.
func FitPeak(data *ImageData, pt *InterestPoint) {
	interest := data.Interest()
	x, y := pt.IX, pt.IY
	if x < 1 || y < 1 || x > interest.Width-2 || y > interest.Height-2 {
		return
	}

	// Gradient and Hessian of the interest map by central differences.
	gx := (interest.At(x+1, y) - interest.At(x-1, y)) / 2
	gy := (interest.At(x, y+1) - interest.At(x, y-1)) / 2
	hxx := interest.At(x+1, y) - 2*interest.At(x, y) + interest.At(x-1, y)
	hyy := interest.At(x, y+1) - 2*interest.At(x, y) + interest.At(x, y-1)
	hxy := (interest.At(x+1, y+1) - interest.At(x+1, y-1) -
		interest.At(x-1, y+1) + interest.At(x-1, y-1)) / 4

	det := hxx*hyy - hxy*hxy
	if det == 0 {
		return
	}
	dx := -(hyy*gx - hxy*gy) / det
	dy := -(hxx*gy - hxy*gx) / det

	pt.X = float64(x) + clampOffset(dx)
	pt.Y = float64(y) + clampOffset(dy)
}

// FitPeakOctave refines a candidate within an octave: the spatial fit of
// FitPeak on the point's own plane, plus a 1-D parabolic fit across the
// neighboring planes that refines the point's scale between plane sigmas.
func FitPeakOctave(datas []*ImageData, oct *pyramid.Octave, pt *InterestPoint) {
	k := oct.ScaleToPlaneIndex(pt.Scale)
	FitPeak(datas[k], pt)

	if k < 1 || k > oct.NumPlanes-2 {
		return
	}
	below := datas[k-1].Interest().At(pt.IX, pt.IY)
	center := datas[k].Interest().At(pt.IX, pt.IY)
	above := datas[k+1].Interest().At(pt.IX, pt.IY)

	denom := below - 2*center + above
	if denom == 0 {
		return
	}
	dk := clampOffset(0.5 * (below - above) / denom)
	pt.Scale = oct.InterpolatedScale(float64(k) + dk)
}

// clampOffset limits a fitted sub-pixel offset to one pixel, the radius the
// quadratic model is valid over.
func clampOffset(d float64) float64 {
	if d > 1 {
		return 1
	}
	if d < -1 {
		return -1
	}
	return d
}
