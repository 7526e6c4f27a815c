// Package render draws detection results on top of the source image for the
// CLI's overlay output.
package render

import (
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/keypoint-detect/pkg/keypoint"
)

// Overlay returns a copy of the image with every interest point marked by a
// circle whose radius follows the point's scale and, for oriented points, a
// tick from the center along the orientation. Marker color encodes scale:
// fine scales render warm and each scale doubling shifts the hue.
func Overlay(img image.Image, points []keypoint.InterestPoint) *image.NRGBA {
	out := imaging.Clone(img)
	for i := range points {
		pt := &points[i]
		c := scaleColor(pt.Scale)
		r := int(3*pt.Scale + 0.5)
		if r < 3 {
			r = 3
		}

		drawCircle(out, pt.IX, pt.IY, r, c)
		if pt.Oriented {
			ex := pt.IX + int(float64(r)*math.Cos(pt.Orientation)+0.5)
			ey := pt.IY + int(float64(r)*math.Sin(pt.Orientation)+0.5)
			drawLine(out, pt.IX, pt.IY, ex, ey, c)
		}
	}
	return out
}

// scaleColor maps a detection scale to a marker color, one hue step per
// scale doubling.
func scaleColor(scale float64) color.NRGBA {
	hue := 0.0
	if scale > 0 {
		hue = math.Mod(math.Log2(scale)*60, 360)
		if hue < 0 {
			hue += 360
		}
	}
	r, g, b := colorful.Hsv(hue, 1, 1).RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 255}
}

// drawCircle plots a circle outline with the midpoint algorithm, skipping
// pixels outside the image.
func drawCircle(img *image.NRGBA, cx, cy, radius int, c color.NRGBA) {
	x := radius
	y := 0
	err := 0
	for x >= y {
		setIfInside(img, cx+x, cy+y, c)
		setIfInside(img, cx+y, cy+x, c)
		setIfInside(img, cx-y, cy+x, c)
		setIfInside(img, cx-x, cy+y, c)
		setIfInside(img, cx-x, cy-y, c)
		setIfInside(img, cx-y, cy-x, c)
		setIfInside(img, cx+y, cy-x, c)
		setIfInside(img, cx+x, cy-y, c)

		if err <= 0 {
			y++
			err += 2*y + 1
		}
		if err > 0 {
			x--
			err -= 2*x + 1
		}
	}
}

// drawLine plots a line segment with Bresenham's algorithm.
func drawLine(img *image.NRGBA, x0, y0, x1, y1 int, c color.NRGBA) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx := 1
	if x0 > x1 {
		sx = -1
	}
	sy := 1
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for {
		setIfInside(img, x0, y0, c)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func setIfInside(img *image.NRGBA, x, y int, c color.NRGBA) {
	if (image.Point{X: x, Y: y}).In(img.Bounds()) {
		img.SetNRGBA(x, y, c)
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
