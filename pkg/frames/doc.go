// Package frames loads and prepares the raster frames spritter works on.
//
// A [FrameSet] is an ordered list of non-premultiplied RGBA8 images. Order is
// significant: index i is frame i of an animation, or mip level i of an icon,
// and every later stage preserves it.
//
// # Discovery
//
// [Load] accepts a single image file or a directory. Directory entries are
// filtered to supported image extensions and sorted in natural order, so
// "frame2.png" precedes "frame10.png". Subdirectories are never descended
// into; batch callers use [SubDirs] (one level) or [WalkDirs] (all levels) to
// enumerate units of work themselves.
//
// # Decoding
//
// PNG, JPEG and GIF use the standard library decoders; WebP and BMP are
// registered from golang.org/x/image. Every decoded image is converted to
// *image.NRGBA regardless of its source colour model.
//
// # Preparation
//
// [Rescale] resizes all frames by a common factor with one of the
// [Filter] kinds, and [TransparentBlack] turns near-black pixels fully
// transparent. Both run before cropping.
package frames
