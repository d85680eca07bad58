package metadata

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/spritter/pkg/buildinfo"
	"github.com/matzehuels/spritter/pkg/errors"
)

func withVersion(t *testing.T, v string) {
	t.Helper()
	old := buildinfo.Version
	buildinfo.Version = v
	t.Cleanup(func() { buildinfo.Version = old })
}

func TestWriteLua(t *testing.T) {
	withVersion(t, "v1.2.3")

	tbl := Table{}.
		Set("width", 256).
		Set("scale", 0.5).
		Set("shift", Shift{X: 1.5, Y: -3, Res: 64}).
		Set("frame_sequence", []int{0, 1, 1}).
		Set("name", `a"b`)

	var buf bytes.Buffer
	if err := WriteLua(&buf, tbl); err != nil {
		t.Fatalf("WriteLua() error = %v", err)
	}

	want := strings.Join([]string{
		"-- Generated by spritter v1.2.3 - " + Repository,
		"return {",
		`  ["spritter"] = { 1, 2, 3 },`,
		`  ["frame_sequence"] = {0,1,1,},`,
		`  ["name"] = "a\"b",`,
		`  ["scale"] = 0.5,`,
		`  ["shift"] = {1.5 / 64, -3 / 64},`,
		`  ["width"] = 256,`,
		"}",
		"",
	}, "\n")
	if got := buf.String(); got != want {
		t.Errorf("WriteLua() =\n%s\nwant\n%s", got, want)
	}
}

func TestWriteLuaNested(t *testing.T) {
	tbl := Table{
		"single_sheet_split_layers": []Table{
			{"width": 8, "sprite_count": 2},
			{"width": 4, "visible": true},
		},
	}

	var buf bytes.Buffer
	if err := WriteLua(&buf, tbl); err != nil {
		t.Fatalf("WriteLua() error = %v", err)
	}
	want := `  ["single_sheet_split_layers"] = {{["sprite_count"] = 2,["width"] = 8,},{["visible"] = true,["width"] = 4,},},`
	if !strings.Contains(buf.String(), want) {
		t.Errorf("WriteLua() missing nested line\n got: %s\nwant: %s", buf.String(), want)
	}
}

func TestWriteLuaUnsupported(t *testing.T) {
	if err := WriteLua(&bytes.Buffer{}, Table{"bad": struct{}{}}); err == nil {
		t.Error("WriteLua() error = nil, want error for unsupported value")
	}
}

func TestWriteJSON(t *testing.T) {
	withVersion(t, "v0.4.1")

	tbl := Table{
		"height": 64,
		"shift":  Shift{X: 32, Y: -16, Res: 64},
		"layers": []Table{{"width": 8}},
	}

	var buf bytes.Buffer
	if err := WriteJSON(&buf, tbl); err != nil {
		t.Fatalf("WriteJSON() error = %v", err)
	}

	var got struct {
		Spritter []int            `json:"spritter"`
		Height   int              `json:"height"`
		Shift    []float64        `json:"shift"`
		Layers   []map[string]int `json:"layers"`
	}
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, buf.String())
	}
	if len(got.Spritter) != 3 || got.Spritter[1] != 4 || got.Spritter[2] != 1 {
		t.Errorf("spritter = %v, want [0 4 1]", got.Spritter)
	}
	if got.Height != 64 {
		t.Errorf("height = %d, want 64", got.Height)
	}
	if len(got.Shift) != 2 || got.Shift[0] != 0.5 || got.Shift[1] != -0.25 {
		t.Errorf("shift = %v, want [0.5 -0.25]", got.Shift)
	}
	if len(got.Layers) != 1 || got.Layers[0]["width"] != 8 {
		t.Errorf("layers = %v, want [{width:8}]", got.Layers)
	}
}

func TestSave(t *testing.T) {
	dir := t.TempDir()
	tbl := Table{"icon_size": 64, "icon_mipmaps": 3}

	tests := []struct {
		format Format
		file   string
		marker string
	}{
		{FormatLua, "icon.lua", `["icon_mipmaps"] = 3,`},
		{FormatJSON, "icon.json", `"icon_size": 64`},
	}
	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			path := filepath.Join(dir, tt.file)
			if err := Save(path, tbl, tt.format); err != nil {
				t.Fatalf("Save() error = %v", err)
			}
			data, err := os.ReadFile(path)
			if err != nil {
				t.Fatalf("read: %v", err)
			}
			if !strings.Contains(string(data), tt.marker) {
				t.Errorf("Save() output missing %q:\n%s", tt.marker, data)
			}
		})
	}

	err := Save(filepath.Join(dir, "x.xml"), tbl, "xml")
	if !errors.Is(err, errors.ErrCodeInvalidOption) {
		t.Errorf("Save(xml) error = %v, want %v", err, errors.ErrCodeInvalidOption)
	}
	if _, statErr := os.Stat(filepath.Join(dir, "x.xml")); statErr == nil {
		t.Error("Save(xml) should not create a file")
	}
}
