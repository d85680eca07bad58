package sink

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"

	"github.com/matzehuels/spritter/pkg/errors"
	"github.com/matzehuels/spritter/pkg/quantize"
)

var encoder = png.Encoder{CompressionLevel: png.BestCompression}

// EncodePNG encodes img at best compression. When pal is non-nil the image is
// remapped to pal and written as a paletted PNG.
func EncodePNG(img *image.NRGBA, pal color.Palette) ([]byte, error) {
	var src image.Image = img
	if pal != nil {
		src = quantize.Remap(img, pal)
	}

	var buf bytes.Buffer
	if err := encoder.Encode(&buf, src); err != nil {
		return nil, errors.Wrap(errors.ErrCodeEncodeFailed, err, "encode png")
	}
	return buf.Bytes(), nil
}

// WriteFile writes data to path and returns the number of bytes written.
func WriteFile(path string, data []byte) (int64, error) {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return 0, errors.Wrap(errors.ErrCodeEncodeFailed, err, "write %s", path)
	}
	return int64(len(data)), nil
}

// SavePNG encodes img losslessly and writes it to path.
func SavePNG(path string, img *image.NRGBA) (int64, error) {
	data, err := EncodePNG(img, nil)
	if err != nil {
		return 0, err
	}
	return WriteFile(path, data)
}
