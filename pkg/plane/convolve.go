package plane

import "math"

// GaussianKernel builds a normalized 1-D Gaussian kernel for the given
// standard deviation. The kernel radius is ceil(3*sigma) with a minimum of 1,
// so the returned length is always odd. Non-positive sigma yields the
// identity kernel.
func GaussianKernel(sigma float64) []float64 {
	if sigma <= 0 {
		return []float64{1}
	}

	radius := int(math.Ceil(3 * sigma))
	if radius < 1 {
		radius = 1
	}

	kernel := make([]float64, 2*radius+1)
	sum := 0.0
	for i := -radius; i <= radius; i++ {
		v := math.Exp(-float64(i*i) / (2 * sigma * sigma))
		kernel[i+radius] = v
		sum += v
	}
	for i := range kernel {
		kernel[i] /= sum
	}
	return kernel
}

// GaussianKernel2D builds a size x size Gaussian weight plane with the given
// spread, centered on the middle pixel and normalized to unit sum. It is the
// weighting window used by orientation assignment.
func GaussianKernel2D(sigma float64, size int) *Plane {
	out := New(size, size)
	if sigma <= 0 {
		out.Pix[(size/2)*size+size/2] = 1
		return out
	}

	center := float64(size-1) / 2.0
	sum := 0.0
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			dx := float64(x) - center
			dy := float64(y) - center
			v := math.Exp(-(dx*dx + dy*dy) / (2 * sigma * sigma))
			out.Pix[y*size+x] = v
			sum += v
		}
	}
	for i := range out.Pix {
		out.Pix[i] /= sum
	}
	return out
}

// SeparableConvolve filters the plane with a horizontal kernel kx followed by
// a vertical kernel ky. Kernels are centered (odd lengths behave as expected)
// and edges are handled by clamped extension.
func (p *Plane) SeparableConvolve(kx, ky []float64) *Plane {
	horiz := New(p.Width, p.Height)
	cx := len(kx) / 2
	for y := 0; y < p.Height; y++ {
		for x := 0; x < p.Width; x++ {
			sum := 0.0
			for i, k := range kx {
				sum += k * p.AtExtended(x+i-cx, y)
			}
			horiz.Pix[y*p.Width+x] = sum
		}
	}

	out := New(p.Width, p.Height)
	cy := len(ky) / 2
	for y := 0; y < p.Height; y++ {
		for x := 0; x < p.Width; x++ {
			sum := 0.0
			for i, k := range ky {
				sum += k * horiz.AtExtended(x, y+i-cy)
			}
			out.Pix[y*p.Width+x] = sum
		}
	}
	return out
}

// GaussianSmooth filters the plane with a separable Gaussian of the given
// standard deviation.
func (p *Plane) GaussianSmooth(sigma float64) *Plane {
	kernel := GaussianKernel(sigma)
	return p.SeparableConvolve(kernel, kernel)
}

// Laplacian applies the 5-point Laplacian stencil
//
//	 0  1  0
//	 1 -4  1
//	 0  1  0
//
// with clamped edge extension.
func (p *Plane) Laplacian() *Plane {
	out := New(p.Width, p.Height)
	for y := 0; y < p.Height; y++ {
		for x := 0; x < p.Width; x++ {
			out.Pix[y*p.Width+x] = p.AtExtended(x-1, y) + p.AtExtended(x+1, y) +
				p.AtExtended(x, y-1) + p.AtExtended(x, y+1) - 4*p.At(x, y)
		}
	}
	return out
}

// Multiply returns the elementwise product of two planes of identical size.
func (p *Plane) Multiply(q *Plane) *Plane {
	out := New(p.Width, p.Height)
	for i := range p.Pix {
		out.Pix[i] = p.Pix[i] * q.Pix[i]
	}
	return out
}
