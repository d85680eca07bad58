package cli

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/spritter/pkg/errors"
)

// writeFrameDir writes n opaque w x h frames into dir.
func writeFrameDir(t *testing.T, dir string, n, w, h int) {
	t.Helper()
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	for i := range n {
		img := image.NewNRGBA(image.Rect(0, 0, w, h))
		for p := 0; p < len(img.Pix); p += 4 {
			img.Pix[p], img.Pix[p+3] = uint8(40*i), 255
		}
		f, err := os.Create(filepath.Join(dir, strconv.Itoa(i)+".png"))
		if err != nil {
			t.Fatal(err)
		}
		if err := png.Encode(f, img); err != nil {
			t.Fatal(err)
		}
		f.Close()
	}
}

func execute(t *testing.T, args ...string) error {
	t.Helper()
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	return root.Execute()
}

func assertExists(t *testing.T, paths ...string) {
	t.Helper()
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			t.Errorf("expected %s: %v", p, err)
		}
	}
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	root := New(io.Discard, LogInfo).RootCommand()

	want := []string{"spritesheet", "icon", "gif", "optimize", "split", "completion"}
	for _, name := range want {
		cmd, _, err := root.Find([]string{name})
		if err != nil || cmd.Name() != name {
			t.Errorf("subcommand %q not registered", name)
		}
	}
	if root.PersistentFlags().Lookup("config") == nil {
		t.Error("--config flag not registered")
	}
}

func TestSetLogLevel(t *testing.T) {
	c := New(io.Discard, LogInfo)
	c.SetLogLevel(LogDebug)
	if got := c.Logger.GetLevel(); got != log.DebugLevel {
		t.Errorf("GetLevel() = %v, want %v", got, log.DebugLevel)
	}
}

func TestVerboseFlag(t *testing.T) {
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	root.SetOut(io.Discard)
	root.SetArgs([]string{"-v", "split", "missing.png", "1", "1"})
	_ = root.Execute()
	if got := c.Logger.GetLevel(); got != log.DebugLevel {
		t.Errorf("GetLevel() after -v = %v, want %v", got, log.DebugLevel)
	}
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"success", nil, 0},
		{"interrupted", fmt.Errorf("spritesheet walk: %w", context.Canceled), 130},
		{"bad option", errors.New(errors.ErrCodeInvalidOption, "colors out of range"), 2},
		{"missing source", errors.New(errors.ErrCodeFileNotFound, "no such folder"), 2},
		{"geometry", fmt.Errorf("icon: %w", errors.New(errors.ErrCodeOddImageSize, "odd")), 1},
		{"plain", io.ErrUnexpectedEOF, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExitCode(tt.err); got != tt.want {
				t.Errorf("ExitCode(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestCompletionCommand(t *testing.T) {
	for _, shell := range []string{"bash", "zsh", "fish", "powershell"} {
		t.Run(shell, func(t *testing.T) {
			var buf bytes.Buffer
			root := New(io.Discard, LogInfo).RootCommand()
			root.SetOut(&buf)
			root.SetErr(io.Discard)
			root.SetArgs([]string{"completion", shell})
			if err := root.Execute(); err != nil {
				t.Fatalf("completion %s error = %v", shell, err)
			}
			if !strings.Contains(buf.String(), "spritter") {
				t.Errorf("completion %s output does not mention spritter", shell)
			}
		})
	}
}

func TestSpritesheetCommand(t *testing.T) {
	src := filepath.Join(t.TempDir(), "walk")
	writeFrameDir(t, src, 3, 8, 8)
	out := t.TempDir()

	if err := execute(t, "spritesheet", src, "-o", out, "--json", "--lua"); err != nil {
		t.Fatalf("spritesheet error = %v", err)
	}
	assertExists(t,
		filepath.Join(out, "walk.png"),
		filepath.Join(out, "walk.json"),
		filepath.Join(out, "walk.lua"),
	)
}

func TestSpritesheetCommandConfigOverlay(t *testing.T) {
	src := filepath.Join(t.TempDir(), "walk")
	writeFrameDir(t, src, 2, 8, 8)
	out := t.TempDir()
	cfg := writeConfig(t, "spritter.toml", "prefix = \"cfg-\"\njson = true\n")

	if err := execute(t, "spritesheet", src, "-o", out, "--config", cfg, "--prefix", "cli-"); err != nil {
		t.Fatalf("spritesheet error = %v", err)
	}
	assertExists(t, filepath.Join(out, "cli-walk.png"), filepath.Join(out, "cli-walk.json"))
	if _, err := os.Stat(filepath.Join(out, "cfg-walk.png")); !os.IsNotExist(err) {
		t.Error("config prefix used although --prefix was given")
	}
}

func TestSpritesheetCommandSingleSourceFailure(t *testing.T) {
	src := filepath.Join(t.TempDir(), "broken")
	writeFrameDir(t, src, 1, 8, 8)
	// A second frame of a different size.
	big := filepath.Join(t.TempDir(), "big")
	writeFrameDir(t, big, 1, 16, 16)
	if err := os.Rename(filepath.Join(big, "0.png"), filepath.Join(src, "1.png")); err != nil {
		t.Fatal(err)
	}

	err := execute(t, "spritesheet", src, "-o", t.TempDir())
	if !errors.Is(err, errors.ErrCodeNotSameSize) {
		t.Errorf("spritesheet error = %v, want %s", err, errors.ErrCodeNotSameSize)
	}
}

func TestSpritesheetCommandRecursiveContinues(t *testing.T) {
	root := t.TempDir()
	writeFrameDir(t, filepath.Join(root, "good"), 2, 8, 8)
	// Nested folders inside a unit are ignored.
	writeFrameDir(t, filepath.Join(root, "nested"), 1, 8, 8)
	writeFrameDir(t, filepath.Join(root, "nested", "deeper"), 1, 16, 16)
	// An all-transparent folder fails to crop.
	empty := filepath.Join(root, "ghost")
	if err := os.MkdirAll(empty, 0755); err != nil {
		t.Fatal(err)
	}
	f, err := os.Create(filepath.Join(empty, "0.png"))
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, image.NewNRGBA(image.Rect(0, 0, 4, 4))); err != nil {
		t.Fatal(err)
	}
	f.Close()

	out := t.TempDir()
	if err := execute(t, "spritesheet", root, "-r", "-o", out); err != nil {
		t.Fatalf("recursive spritesheet error = %v, want nil", err)
	}
	assertExists(t, filepath.Join(out, "good.png"), filepath.Join(out, "nested.png"))
	if _, err := os.Stat(filepath.Join(out, "ghost.png")); !os.IsNotExist(err) {
		t.Error("ghost.png written for an all-transparent folder")
	}
}

func TestIconCommand(t *testing.T) {
	src := filepath.Join(t.TempDir(), "gear")
	if err := os.MkdirAll(src, 0755); err != nil {
		t.Fatal(err)
	}
	for _, size := range []int{32, 16, 8} {
		img := image.NewNRGBA(image.Rect(0, 0, size, size))
		f, err := os.Create(filepath.Join(src, strconv.Itoa(size)+".png"))
		if err != nil {
			t.Fatal(err)
		}
		if err := png.Encode(f, img); err != nil {
			t.Fatal(err)
		}
		f.Close()
	}
	out := t.TempDir()

	if err := execute(t, "icon", src, "-o", out, "--json"); err != nil {
		t.Fatalf("icon error = %v", err)
	}
	assertExists(t, filepath.Join(out, "gear.png"), filepath.Join(out, "gear.json"))
}

func TestGIFCommand(t *testing.T) {
	src := filepath.Join(t.TempDir(), "spin")
	writeFrameDir(t, src, 3, 4, 4)
	out := t.TempDir()

	if err := execute(t, "gif", src, "-o", out, "--animation-speed", "0.25"); err != nil {
		t.Fatalf("gif error = %v", err)
	}
	assertExists(t, filepath.Join(out, "spin.gif"))
}

func TestOptimizeCommand(t *testing.T) {
	dir := t.TempDir()
	writeFrameDir(t, dir, 2, 16, 16)

	if err := execute(t, "optimize", dir, "--lossy", "-g", "--colors", "16"); err != nil {
		t.Fatalf("optimize error = %v", err)
	}
	assertExists(t, filepath.Join(dir, "0.png"), filepath.Join(dir, "1.png"))
}

func TestSplitCommand(t *testing.T) {
	sheet := filepath.Join(t.TempDir(), "sheet.png")
	f, err := os.Create(sheet)
	if err != nil {
		t.Fatal(err)
	}
	img := image.NewNRGBA(image.Rect(0, 0, 12, 8))
	img.SetNRGBA(0, 0, color.NRGBA{R: 255, A: 255})
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	f.Close()
	out := t.TempDir()

	if err := execute(t, "split", sheet, "3", "2", "-o", out); err != nil {
		t.Fatalf("split error = %v", err)
	}
	for i := range 6 {
		assertExists(t, filepath.Join(out, strconv.Itoa(i)+".png"))
	}
}

func TestParseCount(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"4", 4, false},
		{"1", 1, false},
		{"0", 0, true},
		{"-2", 0, true},
		{"two", 0, true},
	}

	for _, tt := range tests {
		got, err := parseCount("columns", tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseCount(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("parseCount(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
