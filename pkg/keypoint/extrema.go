package keypoint

import (
	"github.com/ironsheep/keypoint-detect/pkg/pyramid"
)

// FindPeaks scans the interior of the interest map for strict local extrema
// against the 8 spatial neighbors and returns them as raw candidates with
// integer coordinates and the given scale. Minima are included only when the
// operator's peak type is PeakMinMax.
//
// Candidates come out in row-major scan order, unsorted.
func FindPeaks(data *ImageData, peakType PeakType, scale float64) []InterestPoint {
	interest := data.Interest()
	var points []InterestPoint

	for y := 1; y < interest.Height-1; y++ {
		for x := 1; x < interest.Width-1; x++ {
			v := interest.At(x, y)
			isMax := true
			isMin := peakType == PeakMinMax
			for dy := -1; dy <= 1 && (isMax || isMin); dy++ {
				for dx := -1; dx <= 1; dx++ {
					if dx == 0 && dy == 0 {
						continue
					}
					n := interest.At(x+dx, y+dy)
					if v <= n {
						isMax = false
					}
					if v >= n {
						isMin = false
					}
				}
			}
			if isMax || isMin {
				points = append(points, InterestPoint{
					X: float64(x), Y: float64(y),
					IX: x, IY: y,
					Scale:    scale,
					Interest: v,
				})
			}
		}
	}
	return points
}

// FindPeaksOctave scans the interior planes of an octave for strict local
// extrema against all 26 neighbors in the 3x3x3 scale-space neighborhood.
// Planes 0 and NumPlanes-1 only serve as comparison neighbors, so every
// candidate has a full neighborhood. Scales are absolute (original-image
// units) via the octave's plane-index lookup.
func FindPeaksOctave(datas []*ImageData, oct *pyramid.Octave, peakType PeakType) []InterestPoint {
	var points []InterestPoint

	for k := 1; k < oct.NumPlanes-1; k++ {
		interest := datas[k].Interest()
		below := datas[k-1].Interest()
		above := datas[k+1].Interest()
		scale := oct.PlaneIndexToScale(k)

		for y := 1; y < interest.Height-1; y++ {
			for x := 1; x < interest.Width-1; x++ {
				v := interest.At(x, y)
				isMax := true
				isMin := peakType == PeakMinMax
				for dy := -1; dy <= 1 && (isMax || isMin); dy++ {
					for dx := -1; dx <= 1; dx++ {
						if dx != 0 || dy != 0 {
							n := interest.At(x+dx, y+dy)
							if v <= n {
								isMax = false
							}
							if v >= n {
								isMin = false
							}
						}
						nb := below.At(x+dx, y+dy)
						na := above.At(x+dx, y+dy)
						if v <= nb || v <= na {
							isMax = false
						}
						if v >= nb || v >= na {
							isMin = false
						}
					}
				}
				if isMax || isMin {
					points = append(points, InterestPoint{
						X: float64(x), Y: float64(y),
						IX: x, IY: y,
						Scale:    scale,
						Interest: v,
					})
				}
			}
		}
	}
	return points
}
