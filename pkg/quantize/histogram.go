package quantize

import (
	"image"
	"image/color"
	"math"
	"sort"
)

// Histogram counts pixels per colour. Fully transparent pixels are not
// counted: they always map to palette index 0.
type Histogram map[color.NRGBA]uint32

// NewHistogram returns an empty histogram.
func NewHistogram() Histogram {
	return make(Histogram)
}

// HistogramOf builds the histogram of img.
func HistogramOf(img *image.NRGBA) Histogram {
	h := NewHistogram()
	h.Add(img)
	return h
}

// Add counts the visible pixels of img.
func (h Histogram) Add(img *image.NRGBA) {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		off := img.PixOffset(b.Min.X, y)
		row := img.Pix[off : off+4*b.Dx()]
		for i := 0; i < len(row); i += 4 {
			if row[i+3] == 0 {
				continue
			}
			h[color.NRGBA{R: row[i], G: row[i+1], B: row[i+2], A: row[i+3]}]++
		}
	}
}

// Merge adds the counts of o to h.
func (h Histogram) Merge(o Histogram) {
	for c, n := range o {
		h[c] += n
	}
}

// Total returns the number of counted pixels.
func (h Histogram) Total() uint64 {
	var t uint64
	for _, n := range h {
		t += uint64(n)
	}
	return t
}

// Colors returns the distinct colours in a stable order.
func (h Histogram) Colors() []color.NRGBA {
	out := make([]color.NRGBA, 0, len(h))
	for c := range h {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return pack(out[i]) < pack(out[j]) })
	return out
}

// Sample expands h into roughly limit colours, each repeated in proportion
// to its count and at least once.
func (h Histogram) Sample(limit int) []color.NRGBA {
	colors := h.Colors()
	total := h.Total()
	if total == 0 {
		return nil
	}

	scale := 1.0
	if limit > 0 && total > uint64(limit) {
		scale = float64(limit) / float64(total)
	}

	out := make([]color.NRGBA, 0, min(int(total), max(limit, len(colors))))
	for _, c := range colors {
		n := max(1, int(math.Round(float64(h[c])*scale)))
		for range n {
			out = append(out, c)
		}
	}
	return out
}

func pack(c color.NRGBA) uint32 {
	return uint32(c.R)<<24 | uint32(c.G)<<16 | uint32(c.B)<<8 | uint32(c.A)
}
