// Package sprite implements the atlas geometry of spritter.
//
// Everything here is pure, synchronous computation over a [frames.FrameSet]:
//
//   - [Crop] finds the tightest common box of visible pixels and the centre
//     shift that keeps frames aligned with their original pivot.
//   - [Dedup] collapses repeated fully transparent frames and returns the
//     sequence that replays the original order.
//   - [Plan] decides how many sheets are needed, how many columns and rows
//     each one has, and where frame i lands. [Compose] blits frames onto
//     sheets according to a plan.
//   - [Split] cuts frames that are too large for any sheet into spatial
//     tiles ("layers"), each packed as its own single-sheet plan.
//   - [AssembleIcon] lays a strictly halving chain of square mip levels out
//     side by side in one strip.
//
// All failures are *errors.Error values with one of the crop, layout or mip
// codes from pkg/errors; none of them are transient.
//
// # Sheet Plans
//
// Let maxCols = MaxSize/width and maxRows = MaxSize/height, optionally
// clamped by [Limits] overrides, and capacity = maxCols*maxRows. When the
// frames do not fit on one sheet at that density, every sheet uses the full
// maxCols x maxRows grid and only the last one is trimmed to the rows it
// needs. Otherwise a single sheet grows one column or row at a time, choosing
// columns while cols*width <= rows*height, and trailing empty rows are
// dropped.
package sprite
