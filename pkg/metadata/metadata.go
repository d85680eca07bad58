// Package metadata describes generated sheets for the consuming engine.
//
// A [Table] is a flat key/value map whose values are ints, floats, strings,
// bools, [Shift] pairs, int slices, nested tables or slices of tables. It
// can be written as a Lua chunk returning a table ([WriteLua]) or as a JSON
// object ([WriteJSON]). Keys are always emitted in sorted order and every
// document carries the generator version under the "spritter" key.
package metadata

import (
	"fmt"
	"os"

	"github.com/matzehuels/spritter/pkg/buildinfo"
	"github.com/matzehuels/spritter/pkg/errors"
)

// Repository is printed in generated file headers.
const Repository = "https://github.com/matzehuels/spritter"

// VersionKey holds the generator version in every document.
const VersionKey = "spritter"

// Table is one metadata object.
type Table map[string]any

// Set stores v under key and returns t for chaining.
func (t Table) Set(key string, v any) Table {
	t[key] = v
	return t
}

// Shift is a pixel offset the engine divides by the tile resolution.
type Shift struct {
	X, Y float64
	Res  int
}

// Scaled returns the shift in tiles.
func (s Shift) Scaled() (float64, float64) {
	if s.Res == 0 {
		return s.X, s.Y
	}
	return s.X / float64(s.Res), s.Y / float64(s.Res)
}

// MarshalJSON encodes the shift as a two-element array in tiles.
func (s Shift) MarshalJSON() ([]byte, error) {
	x, y := s.Scaled()
	return fmt.Appendf(nil, "[%s,%s]", formatFloat(x), formatFloat(y)), nil
}

// Format selects the metadata file syntax.
type Format string

const (
	FormatLua  Format = "lua"
	FormatJSON Format = "json"
)

// Save writes t to path in format f.
func Save(path string, t Table, f Format) error {
	write := WriteLua
	switch f {
	case FormatLua:
	case FormatJSON:
		write = WriteJSON
	default:
		return errors.New(errors.ErrCodeInvalidOption, "unknown metadata format %q", f)
	}

	file, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeEncodeFailed, err, "create %s", path)
	}
	if err := write(file, t); err != nil {
		file.Close()
		return errors.Wrap(errors.ErrCodeEncodeFailed, err, "write %s", path)
	}
	if err := file.Close(); err != nil {
		return errors.Wrap(errors.ErrCodeEncodeFailed, err, "close %s", path)
	}
	return nil
}

func version() []int {
	v := buildinfo.Semver()
	return v[:]
}
