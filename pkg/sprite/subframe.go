package sprite

import (
	"image"

	"github.com/disintegration/imaging"

	"github.com/matzehuels/spritter/pkg/errors"
	"github.com/matzehuels/spritter/pkg/frames"
)

// Layer is one spatial tile of every frame in a set, packed on its own.
type Layer struct {
	// Rect is the tile's position inside the original frame.
	Rect image.Rectangle

	// ShiftX and ShiftY re-centre the tile relative to the original pivot.
	ShiftX, ShiftY float64

	// Frames holds the tile cut out of each frame, in frame order.
	Frames frames.FrameSet

	// Layout packs Frames.
	Layout Layout
}

// Fragments returns the number of tiles per axis needed so that count tiles
// of the resulting size fit on one sheet of maxSize pixels.
//
// The search starts at 1x1 and splits whichever axis currently has the
// larger tile dimension. The returned counts never produce an empty tile.
func Fragments(count, w, h, maxSize int) (fragsX, fragsY int, err error) {
	if count <= 0 || w <= 0 || h <= 0 {
		return 0, 0, errors.New(errors.ErrCodeInvalidInput, "invalid split input: %d sprites of %dx%d", count, w, h)
	}
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}

	fragsX, fragsY = 1, 1
	for {
		fw := ceilDiv(w, fragsX)
		fh := ceilDiv(h, fragsY)

		if (maxSize/fw)*(maxSize/fh) >= count {
			// Drop trailing tiles that would start past the frame edge.
			return ceilDiv(w, fw), ceilDiv(h, fh), nil
		}
		if fw == 1 && fh == 1 {
			return 0, 0, errors.New(errors.ErrCodeFrameTooLarge,
				"%d sprites cannot fit on a %dpx sheet even as single pixels", count, maxSize)
		}
		if fw >= fh {
			fragsX++
		} else {
			fragsY++
		}
	}
}

// Tiles returns the fragsX x fragsY tile rectangles of a w x h frame in
// row-major order. Edge tiles are narrower when the size does not divide
// evenly.
func Tiles(w, h, fragsX, fragsY int) []image.Rectangle {
	fw := ceilDiv(w, fragsX)
	fh := ceilDiv(h, fragsY)
	out := make([]image.Rectangle, 0, fragsX*fragsY)
	for y := 0; y < fragsY; y++ {
		for x := 0; x < fragsX; x++ {
			tx, ty := x*fw, y*fh
			out = append(out, image.Rect(tx, ty, tx+min(fw, w-tx), ty+min(fh, h-ty)))
		}
	}
	return out
}

// Split cuts every frame of fs into tiles so that each tile position fits on
// one sheet, and plans each tile position as its own layer.
//
// shiftX and shiftY are the crop shift of the whole frame; each layer's shift
// adds the offset of its tile centre from the frame centre. Layers are
// returned in row-major tile order and cover the frame exactly.
func Split(fs frames.FrameSet, shiftX, shiftY float64, maxSize int) ([]Layer, error) {
	if len(fs) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "no sprites to split")
	}
	if !fs.Uniform() {
		return nil, errors.New(errors.ErrCodeImagesNotSameSize, "all source images must be the same size")
	}

	w, h := fs.Size()
	fragsX, fragsY, err := Fragments(len(fs), w, h, maxSize)
	if err != nil {
		return nil, err
	}
	layers := make([]Layer, 0, fragsX*fragsY)
	for _, rect := range Tiles(w, h, fragsX, fragsY) {
		tiles := make(frames.FrameSet, len(fs))
		for i, f := range fs {
			tiles[i] = imaging.Crop(f, rect)
		}

		tw, th := rect.Dx(), rect.Dy()
		l, err := Plan(len(tiles), tw, th, Limits{MaxSize: maxSize})
		if err != nil {
			return nil, err
		}

		layers = append(layers, Layer{
			Rect:   rect,
			ShiftX: float64(rect.Min.X) + float64(tw-w)/2 + shiftX,
			ShiftY: float64(rect.Min.Y) + float64(th-h)/2 + shiftY,
			Frames: tiles,
			Layout: l,
		})
	}
	return layers, nil
}
