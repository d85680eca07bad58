package pipeline

import (
	"fmt"
	"path/filepath"

	"github.com/matzehuels/spritter/pkg/errors"
)

// NoIndex omits the numeric suffix in OutputName.
const NoIndex = -1

// SourceName returns the last path element of the resolved source path.
// Relative paths like "." resolve to the directory's real name.
func SourceName(source string) (string, error) {
	abs, err := filepath.Abs(source)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidPath, err, "resolve %s", source)
	}
	if real, err := filepath.EvalSymlinks(abs); err == nil {
		abs = real
	}
	name := filepath.Base(abs)
	if name == string(filepath.Separator) || name == "." {
		return "", errors.New(errors.ErrCodeInvalidPath, "cannot derive a name from %s", source)
	}
	return name, nil
}

// OutputName builds <dir>/<prefix><name>[-<idx>].<ext>. Pass NoIndex to omit
// the index.
func OutputName(dir, name string, idx int, prefix, ext string) string {
	base := prefix + name
	if idx >= 0 {
		base = fmt.Sprintf("%s-%d", base, idx)
	}
	return filepath.Join(dir, base+"."+ext)
}

var byteUnits = []string{"B", "kB", "MB", "GB", "TB", "PB"}

// HumanBytes formats n in decimal units: "999B", "1.50kB", "2.00MB".
func HumanBytes(n uint64) string {
	if n < 1000 {
		return fmt.Sprintf("%d%s", n, byteUnits[0])
	}
	size := float64(n)
	unit := 0
	for size >= 1000 && unit < len(byteUnits)-1 {
		size /= 1000
		unit++
	}
	return fmt.Sprintf("%.2f%s", size, byteUnits[unit])
}

// formatPercent renders a relative change with two decimals: "-12.50%".
func formatPercent(p float64) string {
	return fmt.Sprintf("%.2f%%", p)
}
