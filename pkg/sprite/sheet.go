package sprite

import (
	"image"
	"image/draw"

	"github.com/matzehuels/spritter/pkg/errors"
	"github.com/matzehuels/spritter/pkg/frames"
)

// Compose blits fs onto the sheets described by l.
// Every frame must be exactly l.SpriteWidth x l.SpriteHeight.
func Compose(fs frames.FrameSet, l Layout) ([]*image.NRGBA, error) {
	if len(fs) != l.Count {
		return nil, errors.New(errors.ErrCodeInternal, "layout planned for %d sprites, got %d", l.Count, len(fs))
	}

	sheets := make([]*image.NRGBA, l.Sheets)
	for i := range sheets {
		w, h := l.SheetSize(i)
		sheets[i] = image.NewNRGBA(image.Rect(0, 0, w, h))
	}

	for i, f := range fs {
		b := f.Bounds()
		if b.Dx() != l.SpriteWidth || b.Dy() != l.SpriteHeight {
			return nil, errors.New(errors.ErrCodeImagesNotSameSize,
				"all source images must be the same size, frame %d is %dx%d, want %dx%d",
				i, b.Dx(), b.Dy(), l.SpriteWidth, l.SpriteHeight)
		}
		p := l.Place(i)
		blit(sheets[p.Sheet], f, p.Col*l.SpriteWidth, p.Row*l.SpriteHeight)
	}
	return sheets, nil
}

// blit copies src onto dst with its top-left corner at (x, y).
func blit(dst *image.NRGBA, src *image.NRGBA, x, y int) {
	b := src.Bounds()
	r := image.Rect(x, y, x+b.Dx(), y+b.Dy())
	draw.Draw(dst, r, src, b.Min, draw.Src)
}
