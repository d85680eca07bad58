package sprite

import (
	"image"

	"github.com/disintegration/imaging"

	"github.com/matzehuels/spritter/pkg/errors"
	"github.com/matzehuels/spritter/pkg/frames"
)

// CropResult is the union of visible pixels across a frame set.
// Min and Max coordinates are inclusive.
type CropResult struct {
	MinX, MinY int
	MaxX, MaxY int

	// OrigWidth and OrigHeight are the frame dimensions before cropping.
	OrigWidth, OrigHeight int

	// ShiftX and ShiftY move the cropped frame's centre back onto the
	// original pivot. Both are exactly zero when nothing was cropped.
	ShiftX, ShiftY float64
}

// Width returns the cropped width.
func (r CropResult) Width() int { return r.MaxX - r.MinX + 1 }

// Height returns the cropped height.
func (r CropResult) Height() int { return r.MaxY - r.MinY + 1 }

// Rect returns the crop box as a half-open image.Rectangle.
func (r CropResult) Rect() image.Rectangle {
	return image.Rect(r.MinX, r.MinY, r.MaxX+1, r.MaxY+1)
}

// FullSpan reports whether the box covers the whole original frame.
func (r CropResult) FullSpan() bool {
	return r.MinX == 0 && r.MinY == 0 && r.MaxX == r.OrigWidth-1 && r.MaxY == r.OrigHeight-1
}

// Bounds computes the crop box of fs without modifying it.
//
// A pixel is visible when its alpha is strictly greater than alpha. Frames
// without any visible pixel do not contribute to the box.
func Bounds(fs frames.FrameSet, alpha uint8) (CropResult, error) {
	if len(fs) == 0 {
		return CropResult{}, errors.New(errors.ErrCodeNoImagesToCrop, "no images to crop")
	}

	w, h := fs.Size()
	res := CropResult{
		MinX:       w,
		MinY:       h,
		MaxX:       -1,
		MaxY:       -1,
		OrigWidth:  w,
		OrigHeight: h,
	}

	for i, f := range fs {
		b := f.Bounds()
		if b.Dx() != w || b.Dy() != h {
			return CropResult{}, errors.New(errors.ErrCodeNotSameSize,
				"all images must be the same size, frame %d is %dx%d, want %dx%d", i, b.Dx(), b.Dy(), w, h)
		}
		minX, minY, maxX, maxY, ok := visibleBounds(f, alpha)
		if !ok {
			continue
		}
		res.MinX = min(res.MinX, minX)
		res.MinY = min(res.MinY, minY)
		res.MaxX = max(res.MaxX, maxX)
		res.MaxY = max(res.MaxY, maxY)
	}

	if res.MaxX < 0 || res.MaxY < 0 {
		return CropResult{}, errors.New(errors.ErrCodeAllImagesEmpty, "unable to crop, all images are empty")
	}

	if !res.FullSpan() {
		res.ShiftX = centreShift(w, res.Width(), res.MinX)
		res.ShiftY = centreShift(h, res.Height(), res.MinY)
	}
	return res, nil
}

// Crop computes the crop box of fs and replaces every frame with its cropped
// version. When the box already spans the full frame nothing is resized and
// the shift is (0, 0).
func Crop(fs frames.FrameSet, alpha uint8) (CropResult, error) {
	res, err := Bounds(fs, alpha)
	if err != nil {
		return CropResult{}, err
	}
	if res.FullSpan() {
		return res, nil
	}
	rect := res.Rect()
	for i, f := range fs {
		fs[i] = imaging.Crop(f, rect)
	}
	return res, nil
}

// centreShift returns -((orig - cropped)/2 - min) with negative zero folded
// into zero.
func centreShift(orig, cropped, minCoord int) float64 {
	s := -(float64(orig-cropped)/2 - float64(minCoord))
	if s == 0 {
		return 0
	}
	return s
}

// visibleBounds scans img for pixels with alpha > limit.
func visibleBounds(img *image.NRGBA, limit uint8) (minX, minY, maxX, maxY int, ok bool) {
	b := img.Bounds()
	minX, minY = b.Dx(), b.Dy()
	maxX, maxY = -1, -1
	for y := 0; y < b.Dy(); y++ {
		off := img.PixOffset(b.Min.X, b.Min.Y+y)
		row := img.Pix[off : off+4*b.Dx()]
		first := -1
		last := -1
		for x := 0; x < b.Dx(); x++ {
			if row[4*x+3] > limit {
				if first < 0 {
					first = x
				}
				last = x
			}
		}
		if first < 0 {
			continue
		}
		minX = min(minX, first)
		maxX = max(maxX, last)
		if minY > y {
			minY = y
		}
		maxY = y
	}
	return minX, minY, maxX, maxY, maxY >= 0
}
