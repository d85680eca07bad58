package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"

	"github.com/matzehuels/spritter/pkg/errors"
	"github.com/matzehuels/spritter/pkg/pipeline"
)

func newConfigTestCommand(opts *pipeline.Options) *cobra.Command {
	cmd := &cobra.Command{Use: "test"}
	addOutputFlags(cmd, opts)
	addEncodingFlags(cmd, opts)
	cmd.Flags().Float64VarP(&opts.Scale, "scale", "s", opts.Scale, "")
	return cmd
}

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{
			name: "toml",
			file: "spritter.toml",
			content: `prefix = "hr-"
colors = 64
lossy = true
scale = 0.5
`,
		},
		{
			name: "yaml",
			file: "spritter.yaml",
			content: `prefix: hr-
colors: 64
lossy: true
scale: 0.5
`,
		},
		{
			name: "yml",
			file: "spritter.yml",
			content: `prefix: hr-
colors: 64
lossy: true
scale: 0.5
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := cliDefaults()
			cmd := newConfigTestCommand(&opts)
			if err := cmd.ParseFlags([]string{"--colors", "32"}); err != nil {
				t.Fatal(err)
			}

			path := writeConfig(t, tt.file, tt.content)
			if err := loadConfig(cmd, path, &opts); err != nil {
				t.Fatalf("loadConfig() error = %v", err)
			}

			if opts.Prefix != "hr-" {
				t.Errorf("Prefix = %q, want hr-", opts.Prefix)
			}
			if !opts.Lossy {
				t.Error("Lossy = false, want true")
			}
			if opts.Scale != 0.5 {
				t.Errorf("Scale = %v, want 0.5", opts.Scale)
			}
			// Explicit flags win over the file.
			if opts.Colors != 32 {
				t.Errorf("Colors = %d, want 32", opts.Colors)
			}
			// Keys missing from the file keep their defaults.
			if opts.Output != defaultOutput {
				t.Errorf("Output = %q, want %q", opts.Output, defaultOutput)
			}
			if opts.TileResolution != pipeline.DefaultTileResolution {
				t.Errorf("TileResolution = %d, want %d", opts.TileResolution, pipeline.DefaultTileResolution)
			}
		})
	}
}

func TestLoadConfigEmptyPath(t *testing.T) {
	opts := cliDefaults()
	want := opts
	if err := loadConfig(newConfigTestCommand(&opts), "", &opts); err != nil {
		t.Fatalf("loadConfig() error = %v", err)
	}
	if opts.Prefix != want.Prefix || opts.Colors != want.Colors || opts.Output != want.Output {
		t.Errorf("loadConfig(\"\") changed options: %+v", opts)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		want    errors.Code
	}{
		{"unknown extension", "spritter.ini", "prefix=x", errors.ErrCodeInvalidOption},
		{"broken toml", "spritter.toml", "prefix = ", errors.ErrCodeInvalidOption},
		{"broken yaml", "spritter.yaml", "prefix: [", errors.ErrCodeInvalidOption},
		{"wrong type", "spritter.toml", `colors = "many"`, errors.ErrCodeInvalidOption},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := cliDefaults()
			path := writeConfig(t, tt.file, tt.content)
			err := loadConfig(newConfigTestCommand(&opts), path, &opts)
			if !errors.Is(err, tt.want) {
				t.Errorf("loadConfig() error = %v, want %s", err, tt.want)
			}
		})
	}

	t.Run("missing file", func(t *testing.T) {
		opts := cliDefaults()
		err := loadConfig(newConfigTestCommand(&opts), filepath.Join(t.TempDir(), "nope.toml"), &opts)
		if !errors.Is(err, errors.ErrCodeFileNotFound) {
			t.Errorf("loadConfig() error = %v, want %s", err, errors.ErrCodeFileNotFound)
		}
	})
}

func TestTransparentBlackFlag(t *testing.T) {
	tests := []struct {
		name   string
		args   []string
		config string
		want   *int
	}{
		{"unset", nil, "", nil},
		{"flag", []string{"--transparent-black", "12"}, "", intPtr(12)},
		{"config", nil, "transparent_black = 5\n", intPtr(5)},
		{"flag wins", []string{"--transparent-black", "12"}, "transparent_black = 5\n", intPtr(12)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := cliDefaults()
			cmd := &cobra.Command{Use: "test"}
			cmd.Flags().Var(optionalInt{&opts.TransparentBlack}, "transparent-black", "")
			if err := cmd.ParseFlags(tt.args); err != nil {
				t.Fatal(err)
			}
			if tt.config != "" {
				if err := loadConfig(cmd, writeConfig(t, "spritter.toml", tt.config), &opts); err != nil {
					t.Fatalf("loadConfig() error = %v", err)
				}
			}

			got := opts.TransparentBlack
			switch {
			case tt.want == nil && got != nil:
				t.Errorf("TransparentBlack = %d, want nil", *got)
			case tt.want != nil && (got == nil || *got != *tt.want):
				t.Errorf("TransparentBlack = %v, want %d", got, *tt.want)
			}
		})
	}
}

func intPtr(n int) *int { return &n }
