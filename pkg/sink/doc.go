// Package sink encodes finished sheets to disk.
//
// Lossless output is RGBA PNG at best compression. Lossy output is remapped
// to a palette from [quantize] and written as paletted PNG. With grouping,
// all sheets of one call share a palette built by [SharedPalette]: every
// sheet's histogram is computed first, the histograms are merged at a single
// barrier, and only then are sheets encoded in parallel against the
// read-only result.
//
// [EncodeGIF] writes animated previews with the same shared-palette scheme.
package sink
