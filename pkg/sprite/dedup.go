package sprite

import "github.com/matzehuels/spritter/pkg/frames"

// Dedup collapses fully transparent frames.
//
// The first blank frame is kept and every later blank frame maps onto it.
// Non-blank frames are never merged. The returned sequence has one entry per
// input frame holding its index in the returned set.
func Dedup(fs frames.FrameSet) (frames.FrameSet, []int) {
	out := make(frames.FrameSet, 0, len(fs))
	seq := make([]int, 0, len(fs))
	firstBlank := -1

	for _, f := range fs {
		if frames.IsBlank(f) {
			if firstBlank < 0 {
				firstBlank = len(out)
				out = append(out, f)
			}
			seq = append(seq, firstBlank)
			continue
		}
		seq = append(seq, len(out))
		out = append(out, f)
	}
	return out, seq
}
