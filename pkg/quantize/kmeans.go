package quantize

import (
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/clusters"
	"github.com/muesli/kmeans"
)

// maxKMeansSamples keeps clustering tractable on large sheets.
const maxKMeansSamples = 12000

// KMeans clusters colours in CIE Lab space plus alpha. Cluster centres
// become palette entries. Seeding is random, so palettes differ slightly
// between runs.
type KMeans struct{}

// Quantize implements Quantizer.
func (KMeans) Quantize(h Histogram, n int) []color.Color {
	samples := h.Sample(maxKMeansSamples)
	if len(samples) == 0 || n <= 0 {
		return nil
	}

	// Few distinct colours need no clustering.
	if distinct := h.Colors(); len(distinct) <= n {
		out := make([]color.Color, len(distinct))
		for i, c := range distinct {
			out[i] = c
		}
		return out
	}

	dataset := make(clusters.Observations, 0, len(samples))
	for _, c := range samples {
		l, a, b := toColorful(c).Lab()
		dataset = append(dataset, clusters.Coordinates{l, a, b, float64(c.A) / 255})
	}

	k := min(n, len(dataset))
	km := kmeans.New()
	cc, err := km.Partition(dataset, k)
	if err != nil {
		return nil
	}

	out := make([]color.Color, 0, len(cc))
	for _, c := range cc {
		if len(c.Observations) == 0 || len(c.Center) < 4 {
			continue
		}
		col := colorful.Lab(c.Center[0], c.Center[1], c.Center[2]).Clamped()
		r, g, b := col.RGB255()
		alpha := uint8(math.Round(min(max(c.Center[3], 0), 1) * 255))
		out = append(out, color.NRGBA{R: r, G: g, B: b, A: alpha})
	}
	return out
}

func toColorful(c color.NRGBA) colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}
}
