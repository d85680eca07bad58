package pipeline

import (
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

// writeImage encodes img as a PNG at path with the given compression.
func writeImage(t *testing.T, path string, img image.Image, level png.CompressionLevel) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	enc := png.Encoder{CompressionLevel: level}
	if err := enc.Encode(f, img); err != nil {
		t.Fatal(err)
	}
}

// rect returns a w x h transparent image with the half-open box r filled.
func rect(w, h int, r image.Rectangle, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

// solid returns a fully opaque w x h image.
func solid(w, h int, c color.NRGBA) *image.NRGBA {
	return rect(w, h, image.Rect(0, 0, w, h), c)
}

// writeFrames writes imgs to dir as frame0.png, frame1.png, ...
func writeFrames(t *testing.T, dir string, imgs ...*image.NRGBA) {
	t.Helper()
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	for i, img := range imgs {
		writeImage(t, filepath.Join(dir, fmt.Sprintf("frame%d.png", i)), img, png.DefaultCompression)
	}
}

func readPNG(t *testing.T, path string) image.Image {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode %s: %v", path, err)
	}
	return img
}

func readJSON(t *testing.T, path string) map[string]any {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("parse %s: %v", path, err)
	}
	return doc
}

func testOptions(t *testing.T) Options {
	t.Helper()
	opts := DefaultOptions()
	opts.Output = t.TempDir()
	opts.Workers = 2
	return opts
}

func ptr[T any](v T) *T { return &v }
