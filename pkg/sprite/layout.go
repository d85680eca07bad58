package sprite

import (
	"github.com/matzehuels/spritter/pkg/errors"
	"github.com/matzehuels/spritter/pkg/frames"
)

// DefaultMaxSize is the largest side length, in pixels, of a single sheet
// the target engine loads.
const DefaultMaxSize = 8192

// Limits bounds the grid of a sheet.
type Limits struct {
	// MaxSize is the hard side length ceiling in pixels. Zero means
	// DefaultMaxSize.
	MaxSize int

	// MaxSheetSize caps frames per axis. Zero means unlimited.
	MaxSheetSize int

	// MaxSheetWidth caps frames per row. Zero means unlimited.
	MaxSheetWidth int
}

func (l Limits) maxSize() int {
	if l.MaxSize <= 0 {
		return DefaultMaxSize
	}
	return l.MaxSize
}

// Grid returns the largest column and row counts allowed for frames of
// w x h pixels.
//
// Without overrides the counts are MaxSize/w and MaxSize/h. MaxSheetSize
// alone clamps both axes; MaxSheetWidth alone clamps columns only; together
// MaxSheetWidth clamps columns and MaxSheetSize clamps rows.
func (l Limits) Grid(w, h int) (cols, rows int) {
	size := l.maxSize()
	cols, rows = size/w, size/h

	s, sw := l.MaxSheetSize, l.MaxSheetWidth
	switch {
	case s <= 0 && sw <= 0:
		return cols, rows
	case sw <= 0:
		return min(s, cols), min(s, rows)
	case s <= 0:
		return min(sw, cols), rows
	default:
		return min(sw, cols), min(s, rows)
	}
}

// Layout is a sheet plan for Count frames of SpriteWidth x SpriteHeight.
type Layout struct {
	Count        int
	SpriteWidth  int
	SpriteHeight int

	// Cols and Rows are the grid of every sheet but possibly the last.
	Cols int
	Rows int

	// Capacity is the number of frames per full sheet.
	Capacity int

	// Sheets is the number of sheets.
	Sheets int

	// LastRows is the number of rows on the last sheet.
	LastRows int

	// Maximized is set when the frames needed the full MaxSize grid.
	Maximized bool
}

// Placement locates one frame on a sheet.
type Placement struct {
	Sheet int
	Col   int
	Row   int
}

// Plan computes the sheet layout for count frames of w x h pixels.
//
// It fails with FRAME_TOO_LARGE when a single frame is wider or taller than
// the sheet ceiling, since no grid can hold it.
func Plan(count, w, h int, lim Limits) (Layout, error) {
	if count <= 0 {
		return Layout{}, errors.New(errors.ErrCodeInvalidInput, "no sprites to arrange")
	}
	if w <= 0 || h <= 0 {
		return Layout{}, errors.New(errors.ErrCodeInvalidInput, "invalid sprite size %dx%d", w, h)
	}

	maxCols, maxRows := lim.Grid(w, h)
	capacity := maxCols * maxRows
	if capacity <= 0 {
		return Layout{}, errors.New(errors.ErrCodeFrameTooLarge,
			"sprite size %dx%d does not fit on a %dpx sheet", w, h, lim.maxSize())
	}

	l := Layout{Count: count, SpriteWidth: w, SpriteHeight: h}

	if capacity <= count {
		l.Cols, l.Rows = maxCols, maxRows
		l.Capacity = capacity
		l.Sheets = ceilDiv(count, capacity)
		last := count % capacity
		if last == 0 {
			last = capacity
		}
		l.LastRows = ceilDiv(last, maxCols)
		l.Maximized = true
		return l, nil
	}

	cols, rows := 1, 1
	for cols*rows < count {
		if cols < maxCols && cols*w <= rows*h {
			cols++
		} else {
			rows++
		}
	}
	rows -= (cols*rows - count) / cols

	l.Cols, l.Rows = cols, rows
	l.Capacity = cols * rows
	l.Sheets = 1
	l.LastRows = rows
	return l, nil
}

// PlanFrames plans a layout for fs, requiring every frame to share the size
// of the first one.
func PlanFrames(fs frames.FrameSet, lim Limits) (Layout, error) {
	if len(fs) == 0 {
		return Layout{}, errors.New(errors.ErrCodeInvalidInput, "no sprites to arrange")
	}
	if !fs.Uniform() {
		return Layout{}, errors.New(errors.ErrCodeImagesNotSameSize, "all source images must be the same size")
	}
	w, h := fs.Size()
	return Plan(len(fs), w, h, lim)
}

// Place returns where frame i goes. Frames fill sheets row-major, left to
// right and top to bottom.
func (l Layout) Place(i int) Placement {
	pos := i % l.Capacity
	return Placement{
		Sheet: i / l.Capacity,
		Col:   pos % l.Cols,
		Row:   pos / l.Cols,
	}
}

// SheetSize returns the pixel dimensions of sheet idx.
func (l Layout) SheetSize(idx int) (width, height int) {
	rows := l.Rows
	if idx == l.Sheets-1 {
		rows = l.LastRows
	}
	return l.Cols * l.SpriteWidth, rows * l.SpriteHeight
}

// SheetCount returns the number of frames on sheet idx.
func (l Layout) SheetCount(idx int) int {
	if idx < l.Sheets-1 {
		return l.Capacity
	}
	return l.Count - l.Capacity*(l.Sheets-1)
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}
