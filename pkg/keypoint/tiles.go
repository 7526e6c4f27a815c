package keypoint

import (
	"image"

	"github.com/pkg/errors"

	"github.com/ironsheep/keypoint-detect/pkg/plane"
)

// Detect finds interest points in an image using the given driver.
//
// The image is converted to a grayscale float plane before detection. With
// maxTileDim 0 the whole image is processed in one shot. Otherwise the image
// is partitioned into a grid of non-overlapping tiles no larger than
// maxTileDim per side and the driver runs independently on each tile; each
// tile's points are translated by the tile origin and concatenated in
// row-major tile order. Interest points spanning tile borders may be lost.
// No global re-sort happens after the merge.
func Detect(d Driver, img image.Image, maxTileDim int) ([]InterestPoint, error) {
	if d == nil {
		return nil, errors.New("keypoint: driver is nil")
	}
	if maxTileDim < 0 {
		return nil, errors.Errorf("keypoint: max tile dimension must be >= 0, got %d", maxTileDim)
	}

	src, err := plane.FromImage(img)
	if err != nil {
		return nil, errors.Wrap(err, "keypoint: converting image")
	}

	if maxTileDim == 0 {
		return d.ProcessPlane(src)
	}

	var points []InterestPoint
	for ty := 0; ty < src.Height; ty += maxTileDim {
		th := maxTileDim
		if ty+th > src.Height {
			th = src.Height - ty
		}
		for tx := 0; tx < src.Width; tx += maxTileDim {
			tw := maxTileDim
			if tx+tw > src.Width {
				tw = src.Width - tx
			}

			tile, err := src.Crop(tx, ty, tw, th)
			if err != nil {
				return nil, errors.Wrapf(err, "keypoint: tile at (%d,%d)", tx, ty)
			}
			tilePoints, err := d.ProcessPlane(tile)
			if err != nil {
				return nil, errors.Wrapf(err, "keypoint: tile at (%d,%d)", tx, ty)
			}

			for i := range tilePoints {
				tilePoints[i].X += float64(tx)
				tilePoints[i].Y += float64(ty)
				tilePoints[i].IX += tx
				tilePoints[i].IY += ty
			}
			points = append(points, tilePoints...)
		}
	}
	return points, nil
}
