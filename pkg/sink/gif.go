package sink

import (
	"context"
	"image"
	"image/gif"
	"io"
	"math"

	"github.com/disintegration/imaging"

	"github.com/matzehuels/spritter/pkg/errors"
	"github.com/matzehuels/spritter/pkg/quantize"
)

// GIFOptions controls animated preview encoding.
type GIFOptions struct {
	// Delay per frame in hundredths of a second.
	Delay int
	// Pixels with alpha at or below AlphaThreshold become transparent;
	// all others are made opaque.
	AlphaThreshold uint8
	Quantizer      quantize.Quantizer
	Colors         int
	Workers        int
}

// DelayFromSpeed converts an engine animation speed (frames per tick at
// 60 ticks per second) to a GIF frame delay in centiseconds. The result is
// at least 1.
func DelayFromSpeed(speed float64) int {
	ms := 100000 / (6000 * speed)
	return max(1, int(math.Round(ms/10)))
}

// EncodeGIF writes frames as an endlessly looping GIF sharing one palette.
func EncodeGIF(ctx context.Context, w io.Writer, frames []*image.NRGBA, opts GIFOptions) error {
	if len(frames) == 0 {
		return errors.New(errors.ErrCodeInvalidInput, "no frames to encode")
	}

	flat := make([]*image.NRGBA, len(frames))
	for i, f := range frames {
		flat[i] = flattenAlpha(f, opts.AlphaThreshold)
	}

	pal, err := SharedPalette(ctx, flat, opts.Quantizer, opts.Colors, opts.Workers)
	if err != nil {
		return err
	}

	anim := &gif.GIF{LoopCount: 0}
	for _, f := range flat {
		anim.Image = append(anim.Image, quantize.Remap(f, pal))
		anim.Delay = append(anim.Delay, max(opts.Delay, 1))
		anim.Disposal = append(anim.Disposal, gif.DisposalBackground)
	}
	if err := gif.EncodeAll(w, anim); err != nil {
		return errors.Wrap(errors.ErrCodeEncodeFailed, err, "encode gif")
	}
	return nil
}

// flattenAlpha returns a copy of img with binary alpha.
func flattenAlpha(img *image.NRGBA, threshold uint8) *image.NRGBA {
	out := imaging.Clone(img)
	for i := 3; i < len(out.Pix); i += 4 {
		if out.Pix[i] <= threshold {
			copy(out.Pix[i-3:i+1], []uint8{0, 0, 0, 0})
		} else {
			out.Pix[i] = 255
		}
	}
	return out
}
