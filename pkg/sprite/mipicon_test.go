package sprite

import (
	"image/color"
	"testing"

	"github.com/matzehuels/spritter/pkg/errors"
	"github.com/matzehuels/spritter/pkg/frames"
)

func levels(sizes ...int) frames.FrameSet {
	fs := make(frames.FrameSet, len(sizes))
	for i, s := range sizes {
		img := newFrame(s, s)
		for y := 0; y < s; y++ {
			for x := 0; x < s; x++ {
				img.SetNRGBA(x, y, color.NRGBA{R: uint8(i + 1), A: 255})
			}
		}
		fs[i] = img
	}
	return fs
}

func TestAssembleIcon(t *testing.T) {
	icon, err := AssembleIcon(levels(64, 32, 16))
	if err != nil {
		t.Fatalf("AssembleIcon() error = %v", err)
	}

	b := icon.Image.Bounds()
	if b.Dx() != 112 || b.Dy() != 64 {
		t.Errorf("strip = %dx%d, want 112x64", b.Dx(), b.Dy())
	}
	if icon.Size != 64 || icon.Levels != 3 {
		t.Errorf("icon = size %d levels %d, want 64, 3", icon.Size, icon.Levels)
	}

	// Level i occupies x in [offset, offset+size) and rows [0, size).
	checks := []struct {
		x, y int
		want uint8
	}{
		{0, 0, 1},
		{63, 63, 1},
		{64, 0, 2},
		{95, 31, 2},
		{96, 0, 3},
		{111, 15, 3},
	}
	for _, c := range checks {
		if got := icon.Image.NRGBAAt(c.x, c.y).R; got != c.want {
			t.Errorf("pixel (%d,%d) level = %d, want %d", c.x, c.y, got, c.want)
		}
	}
	if got := icon.Image.NRGBAAt(70, 40).A; got != 0 {
		t.Errorf("pixel below level 2 alpha = %d, want 0", got)
	}
}

func TestAssembleIconErrors(t *testing.T) {
	notSquare := levels(64, 32)
	notSquare[0] = newFrame(64, 32)
	midNotSquare := levels(64, 32, 16)
	midNotSquare[1] = newFrame(32, 16)

	tests := []struct {
		name string
		fs   frames.FrameSet
		code errors.Code
	}{
		{"wrong size", levels(64, 32, 15), errors.ErrCodeWrongImageSize},
		{"skipped level", levels(64, 16), errors.ErrCodeWrongImageSize},
		{"base not square", notSquare, errors.ErrCodeImageNotSquare},
		{"level not square", midNotSquare, errors.ErrCodeImageNotSquare},
		{"too many levels", levels(4, 2, 1), errors.ErrCodeTooManyImages},
		{"odd intermediate", levels(10, 5, 2), errors.ErrCodeOddImageSize},
		{"empty", frames.FrameSet{}, errors.ErrCodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			icon, err := AssembleIcon(tt.fs)
			if !errors.Is(err, tt.code) {
				t.Errorf("AssembleIcon() error = %v, want %s", err, tt.code)
			}
			if icon.Image != nil {
				t.Error("AssembleIcon() produced an image on failure")
			}
		})
	}
}

func TestAssembleIconOddLevel(t *testing.T) {
	tests := []struct {
		name string
		fs   frames.FrameSet
	}{
		{"odd last level", levels(12, 6, 3)},
		{"two levels", levels(6, 3)},
		{"odd base", levels(3)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			icon, err := AssembleIcon(tt.fs)
			if !errors.Is(err, errors.ErrCodeOddImageSize) {
				t.Errorf("AssembleIcon() error = %v, want %s", err, errors.ErrCodeOddImageSize)
			}
			if icon.Image != nil {
				t.Error("AssembleIcon() produced an image on failure")
			}
		})
	}
}

func TestSortByWidthDesc(t *testing.T) {
	fs := levels(16, 64, 32)
	sorted := SortByWidthDesc(fs)
	for i, want := range []int{64, 32, 16} {
		if got := sorted[i].Bounds().Dx(); got != want {
			t.Errorf("sorted[%d] width = %d, want %d", i, got, want)
		}
	}
	if fs[0].Bounds().Dx() != 16 {
		t.Error("SortByWidthDesc modified its input")
	}
}

func TestMaxMipLevels(t *testing.T) {
	tests := []struct{ size, want int }{
		{1, 0}, {2, 1}, {3, 1}, {64, 6}, {100, 6}, {0, 0},
	}
	for _, tt := range tests {
		if got := MaxMipLevels(tt.size); got != tt.want {
			t.Errorf("MaxMipLevels(%d) = %d, want %d", tt.size, got, tt.want)
		}
	}
}
