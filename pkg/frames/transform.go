package frames

import (
	"math"

	"github.com/disintegration/imaging"

	"github.com/matzehuels/spritter/pkg/errors"
)

// Filter names a resampling filter for Rescale.
type Filter string

// Supported resampling filters.
const (
	FilterNearest    Filter = "nearest"
	FilterTriangle   Filter = "triangle"
	FilterCatmullRom Filter = "catmull-rom"
	FilterGaussian   Filter = "gaussian"
	FilterLanczos3   Filter = "lanczos3"
)

// DefaultFilter is used when no filter is configured.
const DefaultFilter = FilterCatmullRom

// FilterNames lists the accepted filter names in display order.
var FilterNames = []string{
	string(FilterNearest),
	string(FilterTriangle),
	string(FilterCatmullRom),
	string(FilterGaussian),
	string(FilterLanczos3),
}

// ParseFilter validates a filter name.
func ParseFilter(name string) (Filter, error) {
	if name == "" {
		return DefaultFilter, nil
	}
	if err := errors.ValidateChoice("scale filter", name, FilterNames); err != nil {
		return "", err
	}
	return Filter(name), nil
}

func (f Filter) resample() imaging.ResampleFilter {
	switch f {
	case FilterNearest:
		return imaging.NearestNeighbor
	case FilterTriangle:
		return imaging.Linear
	case FilterGaussian:
		return imaging.Gaussian
	case FilterLanczos3:
		return imaging.Lanczos
	default:
		return imaging.CatmullRom
	}
}

// ScaledSize returns round(w*scale) x round(h*scale), never below 1x1.
func ScaledSize(w, h int, scale float64) (int, int) {
	sw := int(math.Round(float64(w) * scale))
	sh := int(math.Round(float64(h) * scale))
	return max(sw, 1), max(sh, 1)
}

// Rescale resizes every frame of fs in place by scale using filter f.
// A scale within machine epsilon of 1 leaves the frames untouched.
func Rescale(fs FrameSet, scale float64, f Filter) {
	if math.Abs(scale-1) <= 2.220446049250313e-16 {
		return
	}
	rf := f.resample()
	for i, img := range fs {
		b := img.Bounds()
		w, h := ScaledSize(b.Dx(), b.Dy(), scale)
		fs[i] = imaging.Resize(img, w, h, rf)
	}
}

// TransparentBlack replaces every pixel whose red, green and blue channels are
// all <= limit with fully transparent black.
func TransparentBlack(fs FrameSet, limit uint8) {
	for _, img := range fs {
		pix := img.Pix
		for i := 0; i+3 < len(pix); i += 4 {
			if pix[i] <= limit && pix[i+1] <= limit && pix[i+2] <= limit {
				pix[i], pix[i+1], pix[i+2], pix[i+3] = 0, 0, 0, 0
			}
		}
	}
}
