package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/spritter/pkg/errors"
	"github.com/matzehuels/spritter/pkg/pipeline"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorRed    = lipgloss.Color("167") // Soft red - errors
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Public Styles
// =============================================================================

var (
	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleNumber for numeric values.
	StyleNumber = lipgloss.NewStyle().Foreground(colorCyan)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)
)

// =============================================================================
// Internal Styles
// =============================================================================

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
)

// =============================================================================
// Icons
// =============================================================================

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
)

// =============================================================================
// Status Output
// =============================================================================

// printSuccess prints a success message.
func printSuccess(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconSuccess.Render(iconSuccess) + " " + msg)
}

// printError prints an error message.
func printError(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconError.Render(iconError) + " " + msg)
}

// printWarning prints a warning message.
func printWarning(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconWarning.Render(iconWarning) + " " + StyleWarning.Render(msg))
}

// printInfo prints an info/status message.
func printInfo(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconInfo.Render(iconInfo) + " " + msg)
}

// =============================================================================
// File Output
// =============================================================================

// printFile prints a file output line.
func printFile(path string) {
	fmt.Println("  " + StyleDim.Render(iconArrow) + " " + StyleValue.Render(path))
}

// printOutcome lists the files one unit wrote followed by a stats line.
func printOutcome(out pipeline.Outcome) {
	for _, f := range out.Files {
		printFile(f)
	}
	for _, f := range out.Metadata {
		printFile(f)
	}
	printStats(outcomeStats(out))
}

// =============================================================================
// Stats Display
// =============================================================================

// outcomeStats describes an outcome as short dim fragments.
func outcomeStats(out pipeline.Outcome) []string {
	var parts []string
	if out.SpriteWidth > 0 {
		parts = append(parts, fmt.Sprintf("%dx%dpx", out.SpriteWidth, out.SpriteHeight))
	}
	if out.Layers > 0 {
		parts = append(parts, fmt.Sprintf("%d layers", out.Layers))
	} else if n := len(out.Files); n > 0 {
		parts = append(parts, plural(n, "file"))
	}
	if out.Bytes > 0 {
		parts = append(parts, pipeline.HumanBytes(uint64(out.Bytes)))
	}
	return parts
}

// printStats prints stats fragments on a single line.
func printStats(parts []string) {
	if len(parts) == 0 {
		return
	}
	fmt.Println("  " + StyleDim.Render(strings.Join(parts, " · ")))
}

// =============================================================================
// Batch Summary
// =============================================================================

// printSummary reports the result of a batch: one line per failed unit and a
// closing count.
func printSummary(results []pipeline.UnitResult) {
	failed := pipeline.Failed(results)
	succeeded := pipeline.Succeeded(results)
	skipped := len(results) - len(failed) - len(succeeded)

	for _, r := range failed {
		printError("%s: %s", r.Source, errors.UserMessage(r.Err))
	}

	msg := fmt.Sprintf("%s generated", plural(len(succeeded), "spritesheet"))
	if skipped > 0 {
		msg += fmt.Sprintf(", %d skipped", skipped)
	}
	if len(failed) > 0 {
		printWarning("%s, %d failed", msg, len(failed))
		return
	}
	printSuccess("%s", msg)
}

// =============================================================================
// Utilities
// =============================================================================

// plural formats n with a naively pluralized noun.
func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("%s %s", StyleNumber.Render("1"), noun)
	}
	return fmt.Sprintf("%s %ss", StyleNumber.Render(fmt.Sprint(n)), noun)
}

// printNewline prints an empty line.
func printNewline() {
	fmt.Println()
}
