package plane

import (
	"image"
	"image/color"
	"math"
	"testing"
)

// createGradientImage creates an image whose gray level increases with x.
func createGradientImage(width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			v := uint8(x * 255 / (width - 1))
			img.Set(x, y, color.RGBA{R: v, G: v, B: v, A: 255})
		}
	}
	return img
}

func TestFromImage(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 3))
	img.Set(1, 2, color.RGBA{R: 255, G: 255, B: 255, A: 255})

	p, err := FromImage(img)
	if err != nil {
		t.Fatalf("FromImage failed: %v", err)
	}
	if p.Width != 4 || p.Height != 3 {
		t.Fatalf("expected 4x3 plane, got %dx%d", p.Width, p.Height)
	}
	if got := p.At(1, 2); math.Abs(got-1.0) > 1e-9 {
		t.Errorf("white pixel = %v, want 1.0", got)
	}
	if got := p.At(0, 0); got != 0 {
		t.Errorf("black pixel = %v, want 0", got)
	}
}

func TestFromImage_Luminance(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})

	p, err := FromImage(img)
	if err != nil {
		t.Fatalf("FromImage failed: %v", err)
	}
	// Pure red maps to the BT.601 red weight.
	if got := p.At(0, 0); math.Abs(got-0.299) > 1e-6 {
		t.Errorf("red luminance = %v, want 0.299", got)
	}
}

func TestFromImage_Empty(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 0, 0))
	if _, err := FromImage(img); err == nil {
		t.Error("expected error for empty image")
	}
	if _, err := FromImage(nil); err == nil {
		t.Error("expected error for nil image")
	}
}

func TestAtExtended(t *testing.T) {
	p := New(3, 3)
	p.Set(0, 0, 1)
	p.Set(2, 2, 5)

	cases := []struct {
		x, y int
		want float64
	}{
		{-2, -2, 1},
		{0, -1, 1},
		{5, 5, 5},
		{2, 9, 5},
	}
	for _, c := range cases {
		if got := p.AtExtended(c.x, c.y); got != c.want {
			t.Errorf("AtExtended(%d,%d) = %v, want %v", c.x, c.y, got, c.want)
		}
	}
}

func TestBilinear(t *testing.T) {
	p := New(2, 2)
	p.Set(0, 0, 0)
	p.Set(1, 0, 1)
	p.Set(0, 1, 2)
	p.Set(1, 1, 3)

	if got := p.Bilinear(0.5, 0.5); math.Abs(got-1.5) > 1e-9 {
		t.Errorf("Bilinear(0.5,0.5) = %v, want 1.5", got)
	}
	if got := p.Bilinear(0, 0); got != 0 {
		t.Errorf("Bilinear(0,0) = %v, want 0", got)
	}
	// Outside the plane, edge extension holds the corner value.
	if got := p.Bilinear(-3, -3); got != 0 {
		t.Errorf("Bilinear(-3,-3) = %v, want 0", got)
	}
}

func TestCrop(t *testing.T) {
	p := New(6, 4)
	for y := 0; y < 4; y++ {
		for x := 0; x < 6; x++ {
			p.Set(x, y, float64(y*6+x))
		}
	}

	sub, err := p.Crop(2, 1, 3, 2)
	if err != nil {
		t.Fatalf("Crop failed: %v", err)
	}
	if sub.Width != 3 || sub.Height != 2 {
		t.Fatalf("expected 3x2 crop, got %dx%d", sub.Width, sub.Height)
	}
	if got := sub.At(0, 0); got != 8 {
		t.Errorf("crop (0,0) = %v, want 8", got)
	}
	if got := sub.At(2, 1); got != 16 {
		t.Errorf("crop (2,1) = %v, want 16", got)
	}
}

func TestCrop_OutOfBounds(t *testing.T) {
	p := New(6, 4)
	if _, err := p.Crop(4, 0, 3, 2); err == nil {
		t.Error("expected error for crop past right edge")
	}
	if _, err := p.Crop(0, 0, 0, 2); err == nil {
		t.Error("expected error for zero-width crop")
	}
	if _, err := p.Crop(-1, 0, 2, 2); err == nil {
		t.Error("expected error for negative origin")
	}
}

func TestDownsample(t *testing.T) {
	p := New(5, 4)
	for y := 0; y < 4; y++ {
		for x := 0; x < 5; x++ {
			p.Set(x, y, float64(y*5+x))
		}
	}

	d := p.Downsample()
	if d.Width != 3 || d.Height != 2 {
		t.Fatalf("expected 3x2 after downsample, got %dx%d", d.Width, d.Height)
	}
	if got := d.At(1, 1); got != p.At(2, 2) {
		t.Errorf("downsample (1,1) = %v, want %v", got, p.At(2, 2))
	}
}

func TestNormalize(t *testing.T) {
	p := New(2, 1)
	p.Set(0, 0, -2)
	p.Set(1, 0, 6)

	n := p.Normalize()
	if n.At(0, 0) != 0 || n.At(1, 0) != 1 {
		t.Errorf("normalized = [%v %v], want [0 1]", n.At(0, 0), n.At(1, 0))
	}

	flat := New(3, 3)
	for i := range flat.Pix {
		flat.Pix[i] = 7
	}
	fn := flat.Normalize()
	for i, v := range fn.Pix {
		if v != 0 {
			t.Fatalf("flat normalize pixel %d = %v, want 0", i, v)
		}
	}
}

func TestGaussianKernel(t *testing.T) {
	k := GaussianKernel(1.5)
	if len(k)%2 != 1 {
		t.Fatalf("kernel length %d is even", len(k))
	}
	sum := 0.0
	for _, v := range k {
		sum += v
	}
	if math.Abs(sum-1) > 1e-9 {
		t.Errorf("kernel sum = %v, want 1", sum)
	}
	mid := len(k) / 2
	if k[mid] <= k[mid-1] {
		t.Errorf("kernel not peaked at center: %v <= %v", k[mid], k[mid-1])
	}
	if k[mid-1] != k[mid+1] {
		t.Errorf("kernel not symmetric: %v != %v", k[mid-1], k[mid+1])
	}
}

func TestGaussianKernel_NonPositiveSigma(t *testing.T) {
	k := GaussianKernel(0)
	if len(k) != 1 || k[0] != 1 {
		t.Errorf("identity kernel = %v, want [1]", k)
	}
}

func TestSeparableConvolve_ConstantPlane(t *testing.T) {
	p := New(8, 8)
	for i := range p.Pix {
		p.Pix[i] = 0.4
	}

	out := p.GaussianSmooth(2)
	for i, v := range out.Pix {
		if math.Abs(v-0.4) > 1e-9 {
			t.Fatalf("pixel %d = %v, want 0.4 (constant preserved)", i, v)
		}
	}
}

func TestLaplacian_LinearRamp(t *testing.T) {
	p := New(8, 8)
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			p.Set(x, y, float64(x)*0.1)
		}
	}

	lap := p.Laplacian()
	for y := 1; y < 7; y++ {
		for x := 1; x < 7; x++ {
			if math.Abs(lap.At(x, y)) > 1e-9 {
				t.Fatalf("Laplacian of ramp at (%d,%d) = %v, want 0", x, y, lap.At(x, y))
			}
		}
	}
}

func TestResampleAround_Identity(t *testing.T) {
	p, err := FromImage(createGradientImage(16, 16))
	if err != nil {
		t.Fatalf("FromImage failed: %v", err)
	}

	patch := p.ResampleAround(8, 8, 1, 0, 5)
	for v := 0; v < 5; v++ {
		for u := 0; u < 5; u++ {
			want := p.At(8-2+u, 8-2+v)
			if got := patch.At(u, v); math.Abs(got-want) > 1e-9 {
				t.Fatalf("patch (%d,%d) = %v, want %v", u, v, got, want)
			}
		}
	}
}

func TestResampleAround_Rotation(t *testing.T) {
	p := New(16, 16)
	// Value increases with x only; after a 90 degree rotation the patch
	// should increase with its own v axis instead.
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			p.Set(x, y, float64(x))
		}
	}

	patch := p.ResampleAround(8, 8, 1, math.Pi/2, 5)
	if got, want := patch.At(2, 0), 10.0; math.Abs(got-want) > 1e-6 {
		t.Errorf("rotated patch top center = %v, want %v", got, want)
	}
	if got, want := patch.At(2, 4), 6.0; math.Abs(got-want) > 1e-6 {
		t.Errorf("rotated patch bottom center = %v, want %v", got, want)
	}
}

func TestToGray_Clamps(t *testing.T) {
	p := New(2, 1)
	p.Set(0, 0, -0.5)
	p.Set(1, 0, 1.5)

	img := p.ToGray()
	if got := img.GrayAt(0, 0).Y; got != 0 {
		t.Errorf("negative value rendered as %d, want 0", got)
	}
	if got := img.GrayAt(1, 0).Y; got != 255 {
		t.Errorf("overrange value rendered as %d, want 255", got)
	}
}
