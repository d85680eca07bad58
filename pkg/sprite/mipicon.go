package sprite

import (
	"image"
	"math/bits"
	"sort"

	"github.com/matzehuels/spritter/pkg/errors"
	"github.com/matzehuels/spritter/pkg/frames"
)

// Icon is an assembled mipmap strip.
type Icon struct {
	Image *image.NRGBA

	// Size is the side length of the base level.
	Size int

	// Levels is the number of mip levels in the strip.
	Levels int
}

// SortByWidthDesc returns a copy of fs ordered by decreasing width.
// Frames of equal width keep their relative order.
func SortByWidthDesc(fs frames.FrameSet) frames.FrameSet {
	out := make(frames.FrameSet, len(fs))
	copy(out, fs)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Bounds().Dx() > out[j].Bounds().Dx()
	})
	return out
}

// MaxMipLevels returns floor(log2(size)), the longest chain a base level of
// the given side length supports.
func MaxMipLevels(size int) int {
	if size <= 0 {
		return 0
	}
	return bits.Len(uint(size)) - 1
}

// AssembleIcon lays mip levels out left to right in one strip.
//
// levels must already be sorted by decreasing width. The base level must be
// square and every following level exactly half the previous one. Every
// level must have an even side, the last one included. The whole chain is
// validated before anything is drawn.
func AssembleIcon(levels frames.FrameSet) (Icon, error) {
	if len(levels) == 0 {
		return Icon{}, errors.New(errors.ErrCodeInvalidInput, "no mip levels to assemble")
	}

	base := levels[0].Bounds()
	if base.Dx() != base.Dy() {
		return Icon{}, errors.New(errors.ErrCodeImageNotSquare, "source image is not square")
	}

	maxLevels := MaxMipLevels(base.Dx())
	if len(levels) > maxLevels {
		return Icon{}, errors.New(errors.ErrCodeTooManyImages,
			"unable to generate %d mipmap levels, max possible for this icon is %d", len(levels), maxLevels)
	}

	want := base.Dx()
	total := 0
	for idx, lvl := range levels {
		if want%2 != 0 {
			return Icon{}, errors.New(errors.ErrCodeOddImageSize,
				"unable to divide image size %d by 2 for mipmap level %d", want, idx)
		}
		b := lvl.Bounds()
		if b.Dx() != b.Dy() {
			return Icon{}, errors.New(errors.ErrCodeImageNotSquare, "source image %d is not square", idx)
		}
		if b.Dx() != want {
			return Icon{}, errors.New(errors.ErrCodeWrongImageSize,
				"source image has wrong size, %d != %d", b.Dx(), want)
		}
		total += want
		want /= 2
	}

	strip := image.NewNRGBA(image.Rect(0, 0, total, base.Dy()))
	x := 0
	for _, lvl := range levels {
		blit(strip, lvl, x, 0)
		x += lvl.Bounds().Dx()
	}

	return Icon{Image: strip, Size: base.Dx(), Levels: len(levels)}, nil
}
