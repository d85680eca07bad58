package frames

import (
	"image"
	"os"
	"path/filepath"
	"sort"
	"strings"

	// Decoders registered with image.Decode.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"github.com/disintegration/imaging"
	"github.com/maruel/natural"

	"github.com/matzehuels/spritter/pkg/errors"
)

// Extensions lists the file extensions Load picks up from a directory.
var Extensions = []string{".png", ".webp", ".bmp", ".jpg", ".jpeg", ".gif"}

// IsImage reports whether path has one of the supported extensions.
func IsImage(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range Extensions {
		if ext == e {
			return true
		}
	}
	return false
}

// IsPNG reports whether path has a .png extension.
func IsPNG(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".png")
}

// Load decodes the frames found at path.
//
// A path naming a supported image file yields a one-frame set. A directory
// yields its image files in natural order; subdirectories are skipped. An
// empty directory is not an error: the caller decides whether an empty set
// means "skip".
func Load(path string) (FrameSet, error) {
	set, _, err := LoadWithPaths(path)
	return set, err
}

// LoadWithPaths is like Load but also returns the file each frame came from.
func LoadWithPaths(path string) (FrameSet, []string, error) {
	fi, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "path not found: %s", path)
		}
		return nil, nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "stat %s", path)
	}

	var paths []string
	if fi.IsDir() {
		paths, err = ListImages(path)
		if err != nil {
			return nil, nil, err
		}
	} else if IsImage(path) {
		paths = []string{path}
	}

	set := make(FrameSet, 0, len(paths))
	for _, p := range paths {
		img, err := LoadFile(p)
		if err != nil {
			return nil, nil, err
		}
		set = append(set, img)
	}
	return set, paths, nil
}

// LoadFile decodes a single image file into an *image.NRGBA.
func LoadFile(path string) (*image.NRGBA, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeDecodeFailed, err, "decode %s", path)
	}
	return ToNRGBA(img), nil
}

// ListImages returns the supported image files directly inside dir, sorted in
// natural order of their full path.
func ListImages(dir string) ([]string, error) {
	return listFiles(dir, IsImage)
}

// ListPNGs returns the .png files directly inside dir in natural order.
func ListPNGs(dir string) ([]string, error) {
	return listFiles(dir, IsPNG)
}

func listFiles(dir string, keep func(string) bool) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "read directory %s", dir)
	}
	var out []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		p := filepath.Join(dir, e.Name())
		if keep(p) {
			out = append(out, p)
		}
	}
	sortNatural(out)
	return out, nil
}

// SubDirs returns the immediate subdirectories of dir in natural order.
func SubDirs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "read directory %s", dir)
	}
	var out []string
	for _, e := range entries {
		if e.IsDir() {
			out = append(out, filepath.Join(dir, e.Name()))
		}
	}
	sortNatural(out)
	return out, nil
}

// WalkDirs returns every directory nested below dir (dir itself excluded),
// parents before their children.
func WalkDirs(dir string) ([]string, error) {
	var out []string
	err := filepath.WalkDir(dir, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() && p != dir {
			out = append(out, p)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "walk %s", dir)
	}
	return out, nil
}

func sortNatural(paths []string) {
	sort.SliceStable(paths, func(i, j int) bool { return natural.Less(paths[i], paths[j]) })
}
