// Package quantize reduces sheets to a small shared palette.
//
// Lossy output is a paletted image: index 0 is always fully transparent and
// the remaining entries come from a [Quantizer] run over a [Histogram].
// Histograms of several sheets can be merged before the palette is computed,
// which is how grouped sheets end up sharing one palette. [Remap] converts an
// image to a palette with Floyd-Steinberg error diffusion.
//
// Three quantizers are available:
//
//   - "median-cut" (default) uses github.com/ericpauley/go-quantize.
//   - "kmeans" clusters colours in CIE Lab space with github.com/muesli/kmeans.
//   - "dominant" picks dominant colours with github.com/cenkalti/dominantcolor.
package quantize

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/matzehuels/spritter/pkg/errors"
)

// MaxColors is the largest palette a paletted PNG can carry.
const MaxColors = 256

// Transparent is palette entry 0.
var Transparent = color.NRGBA{}

// Quantizer derives up to n opaque or translucent colours from a histogram.
// The transparent entry is added by [Palette] and must not be counted in n.
type Quantizer interface {
	Quantize(h Histogram, n int) []color.Color
}

// Quantizer names.
const (
	MethodMedianCut = "median-cut"
	MethodKMeans    = "kmeans"
	MethodDominant  = "dominant"
)

// Methods lists the accepted quantizer names.
var Methods = []string{MethodMedianCut, MethodKMeans, MethodDominant}

// Parse returns the quantizer registered under name. An empty name selects
// median cut.
func Parse(name string) (Quantizer, error) {
	switch name {
	case "", MethodMedianCut:
		return MedianCut{}, nil
	case MethodKMeans:
		return KMeans{}, nil
	case MethodDominant:
		return Dominant{}, nil
	}
	return nil, errors.ValidateChoice("quantizer", name, Methods)
}

// Palette runs q over h and returns a palette of at most colors entries with
// the transparent colour at index 0. Duplicate entries are dropped.
func Palette(q Quantizer, h Histogram, colors int) color.Palette {
	colors = min(max(colors, 1), MaxColors)
	pal := color.Palette{Transparent}
	if colors == 1 || len(h) == 0 {
		return pal
	}

	seen := map[color.NRGBA]bool{Transparent: true}
	for _, c := range q.Quantize(h, colors-1) {
		n := color.NRGBAModel.Convert(c).(color.NRGBA)
		if n.A == 0 || seen[n] {
			continue
		}
		seen[n] = true
		pal = append(pal, n)
		if len(pal) == colors {
			break
		}
	}
	return pal
}

// Remap converts img to pal with Floyd-Steinberg dithering. Fully
// transparent source pixels always map to index 0.
func Remap(img *image.NRGBA, pal color.Palette) *image.Paletted {
	b := img.Bounds()
	dst := image.NewPaletted(b, pal)
	draw.FloydSteinberg.Draw(dst, b, img, b.Min)

	for y := b.Min.Y; y < b.Max.Y; y++ {
		src := img.Pix[img.PixOffset(b.Min.X, y):]
		out := dst.Pix[dst.PixOffset(b.Min.X, y):]
		for x := 0; x < b.Dx(); x++ {
			if src[4*x+3] == 0 {
				out[x] = 0
			}
		}
	}
	return dst
}
