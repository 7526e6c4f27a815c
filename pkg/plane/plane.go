package plane

import (
	"image"
	"image/color"
	"math"

	"github.com/pkg/errors"
)

// Plane is a single-channel float64 raster.
//
// Pixel (x, y) lives at Pix[y*Width+x]. Values are nominally in [0, 1] when
// the plane comes from FromImage, but derived planes (gradients, interest
// maps) may hold any finite value.
type Plane struct {
	// Width is the plane width in pixels.
	Width int

	// Height is the plane height in pixels.
	Height int

	// Pix holds the pixel data in row-major order.
	Pix []float64
}

// New allocates a zero-filled plane. Width and height must be positive;
// callers converting external input should use FromImage, which validates.
func New(width, height int) *Plane {
	return &Plane{
		Width:  width,
		Height: height,
		Pix:    make([]float64, width*height),
	}
}

// FromImage converts an image to a grayscale plane with values in [0, 1].
//
// Luminance uses the ITU-R BT.601 weights (0.299*R + 0.587*G + 0.114*B),
// the same conversion the rest of the toolchain applies before analysis.
// The image's bounds offset is discarded; the plane is always origin-based.
func FromImage(img image.Image) (*Plane, error) {
	if img == nil {
		return nil, errors.New("plane: image is nil")
	}
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	if width < 1 || height < 1 {
		return nil, errors.Errorf("plane: image must be at least 1x1, got %dx%d", width, height)
	}

	p := New(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b, _ := img.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA()
			rf := float64(r>>8) / 255.0
			gf := float64(g>>8) / 255.0
			bf := float64(b>>8) / 255.0
			p.Pix[y*width+x] = 0.299*rf + 0.587*gf + 0.114*bf
		}
	}
	return p, nil
}

// Clone returns a deep copy of the plane.
func (p *Plane) Clone() *Plane {
	out := New(p.Width, p.Height)
	copy(out.Pix, p.Pix)
	return out
}

// In reports whether (x, y) is inside the plane.
func (p *Plane) In(x, y int) bool {
	return x >= 0 && x < p.Width && y >= 0 && y < p.Height
}

// At returns the pixel at (x, y). The coordinates must be in bounds.
func (p *Plane) At(x, y int) float64 {
	return p.Pix[y*p.Width+x]
}

// Set stores v at (x, y). The coordinates must be in bounds.
func (p *Plane) Set(x, y int, v float64) {
	p.Pix[y*p.Width+x] = v
}

// AtExtended returns the pixel at (x, y) with clamped edge extension:
// coordinates outside the plane read the nearest edge pixel.
func (p *Plane) AtExtended(x, y int) float64 {
	return p.Pix[clamp(y, 0, p.Height-1)*p.Width+clamp(x, 0, p.Width-1)]
}

// Bilinear samples the plane at a continuous position with edge extension.
func (p *Plane) Bilinear(x, y float64) float64 {
	x0 := int(math.Floor(x))
	y0 := int(math.Floor(y))
	fx := x - float64(x0)
	fy := y - float64(y0)

	v00 := p.AtExtended(x0, y0)
	v10 := p.AtExtended(x0+1, y0)
	v01 := p.AtExtended(x0, y0+1)
	v11 := p.AtExtended(x0+1, y0+1)

	top := v00 + fx*(v10-v00)
	bottom := v01 + fx*(v11-v01)
	return top + fy*(bottom-top)
}

// Crop extracts the rectangular region with top-left corner (x, y) and the
// given size. The region must lie fully inside the plane.
func (p *Plane) Crop(x, y, width, height int) (*Plane, error) {
	if width < 1 || height < 1 {
		return nil, errors.Errorf("plane: invalid crop size %dx%d", width, height)
	}
	if x < 0 || y < 0 || x+width > p.Width || y+height > p.Height {
		return nil, errors.Errorf("plane: crop region (%d,%d)+%dx%d outside %dx%d plane",
			x, y, width, height, p.Width, p.Height)
	}

	out := New(width, height)
	for row := 0; row < height; row++ {
		src := (y+row)*p.Width + x
		copy(out.Pix[row*width:(row+1)*width], p.Pix[src:src+width])
	}
	return out, nil
}

// Downsample returns the plane reduced by a factor of two, keeping every
// other pixel starting at (0, 0). Odd dimensions round up, so a plane never
// collapses below 1x1.
func (p *Plane) Downsample() *Plane {
	width := (p.Width + 1) / 2
	height := (p.Height + 1) / 2
	out := New(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			out.Pix[y*width+x] = p.Pix[(y*2)*p.Width+x*2]
		}
	}
	return out
}

// Normalize rescales the plane so its minimum maps to 0 and its maximum to 1.
// A constant plane normalizes to all zeros.
func (p *Plane) Normalize() *Plane {
	min := math.Inf(1)
	max := math.Inf(-1)
	for _, v := range p.Pix {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}

	out := New(p.Width, p.Height)
	if max > min {
		scale := 1.0 / (max - min)
		for i, v := range p.Pix {
			out.Pix[i] = (v - min) * scale
		}
	}
	return out
}

// ToGray renders the plane as an 8-bit grayscale image, clamping values to
// [0, 1]. Use Normalize first when dumping planes with arbitrary range.
func (p *Plane) ToGray() *image.Gray {
	img := image.NewGray(image.Rect(0, 0, p.Width, p.Height))
	for y := 0; y < p.Height; y++ {
		for x := 0; x < p.Width; x++ {
			v := p.Pix[y*p.Width+x]
			if v < 0 {
				v = 0
			} else if v > 1 {
				v = 1
			}
			img.SetGray(x, y, color.Gray{Y: uint8(v*255 + 0.5)})
		}
	}
	return img
}

// ResampleAround extracts a size x size patch centered on the continuous
// position (cx, cy), scaled by scale and rotated by angle radians. The patch
// is sampled with bilinear interpolation and edge extension, so windows that
// extend past the plane are still defined.
//
// This is the support-region transform used when extracting oriented patches
// around detected points.
func (p *Plane) ResampleAround(cx, cy, scale, angle float64, size int) *Plane {
	out := New(size, size)
	half := float64(size-1) / 2.0
	sin, cos := math.Sincos(angle)
	for v := 0; v < size; v++ {
		for u := 0; u < size; u++ {
			dx := (float64(u) - half) * scale
			dy := (float64(v) - half) * scale
			sx := cx + cos*dx - sin*dy
			sy := cy + sin*dx + cos*dy
			out.Pix[v*size+u] = p.Bilinear(sx, sy)
		}
	}
	return out
}

// clamp constrains an integer value to the range [min, max].
// Used for boundary handling in sampling and convolution.
func clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
