package frames

import (
	"image"

	"github.com/disintegration/imaging"
)

// FrameSet is an ordered sequence of frames. Index equals render order.
type FrameSet []*image.NRGBA

// Size returns the dimensions of the first frame, or zero for an empty set.
func (fs FrameSet) Size() (width, height int) {
	if len(fs) == 0 {
		return 0, 0
	}
	b := fs[0].Bounds()
	return b.Dx(), b.Dy()
}

// Uniform reports whether every frame has the dimensions of the first one.
func (fs FrameSet) Uniform() bool {
	w, h := fs.Size()
	for _, f := range fs {
		b := f.Bounds()
		if b.Dx() != w || b.Dy() != h {
			return false
		}
	}
	return true
}

// ToNRGBA converts img to a zero-origin *image.NRGBA.
// Images that already satisfy this are returned as-is.
func ToNRGBA(img image.Image) *image.NRGBA {
	if n, ok := img.(*image.NRGBA); ok && n.Rect.Min == (image.Point{}) {
		return n
	}
	return imaging.Clone(img)
}

// IsBlank reports whether every pixel of img has alpha exactly zero.
func IsBlank(img *image.NRGBA) bool {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := img.Pix[img.PixOffset(b.Min.X, y):img.PixOffset(b.Max.X, y)]
		for i := 3; i < len(row); i += 4 {
			if row[i] != 0 {
				return false
			}
		}
	}
	return true
}
