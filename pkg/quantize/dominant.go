package quantize

import (
	"image"
	"image/color"
	"math"

	"github.com/cenkalti/dominantcolor"
)

// maxDominantSamples bounds the sample image handed to dominantcolor.
const maxDominantSamples = 65536

// Dominant picks the n most dominant colours. Alpha is ignored while
// picking; all entries are opaque.
type Dominant struct{}

// Quantize implements Quantizer.
func (Dominant) Quantize(h Histogram, n int) []color.Color {
	samples := h.Sample(maxDominantSamples)
	if len(samples) == 0 || n <= 0 {
		return nil
	}

	side := int(math.Ceil(math.Sqrt(float64(len(samples)))))
	img := image.NewNRGBA(image.Rect(0, 0, side, side))
	for i := 0; i < side*side; i++ {
		c := samples[i%len(samples)]
		c.A = 255
		img.SetNRGBA(i%side, i/side, c)
	}

	found := dominantcolor.FindWeight(img, n)
	out := make([]color.Color, 0, len(found))
	for _, c := range found {
		rgba := c.RGBA
		rgba.A = 255
		out = append(out, rgba)
	}
	return out
}
