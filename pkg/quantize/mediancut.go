package quantize

import (
	"image"
	"image/color"

	gq "github.com/ericpauley/go-quantize/quantize"
)

// MedianCut splits colour space along its widest axis until n boxes remain.
//
// The histogram is rendered as a one-row image with one pixel per distinct
// colour, and each pixel is weighted by its count, so large histograms cost
// memory proportional to the number of colours rather than pixels.
type MedianCut struct{}

// Quantize implements Quantizer.
func (MedianCut) Quantize(h Histogram, n int) []color.Color {
	colors := h.Colors()
	if len(colors) == 0 || n <= 0 {
		return nil
	}

	img := image.NewNRGBA(image.Rect(0, 0, len(colors), 1))
	weights := make([]uint32, len(colors))
	for i, c := range colors {
		img.SetNRGBA(i, 0, c)
		weights[i] = h[c]
	}

	q := gq.MedianCutQuantizer{
		Weighting: func(_ image.Image, x, _ int) uint32 {
			return weights[x]
		},
	}
	return q.Quantize(make(color.Palette, 0, n), img)
}
