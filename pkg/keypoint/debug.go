package keypoint

import (
	"fmt"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"

	"github.com/ironsheep/keypoint-detect/pkg/plane"
)

// WriteDebugImages dumps the planes internal to a detection run as PNG
// files in dir, for visualization and debugging. The planes written are the
// source, the x and y gradients, the gradient orientation and magnitude,
// and the interest map (when an operator has run), each min-max normalized.
// tag distinguishes runs or octave planes, e.g. "02".
func WriteDebugImages(data *ImageData, dir, tag string) error {
	dumps := []struct {
		name string
		p    *plane.Plane
	}{
		{"source", data.Source()},
		{"grad_x", data.GradientX()},
		{"grad_y", data.GradientY()},
		{"ori", data.Orientation()},
		{"mag", data.Magnitude()},
		{"interest", data.Interest()},
	}

	for _, d := range dumps {
		if d.p == nil {
			continue
		}
		name := d.name + ".png"
		if tag != "" {
			name = fmt.Sprintf("%s_%s.png", d.name, tag)
		}
		path := filepath.Join(dir, name)
		if err := imaging.Save(d.p.Normalize().ToGray(), path); err != nil {
			return errors.Wrapf(err, "keypoint: writing %s", path)
		}
	}
	return nil
}
