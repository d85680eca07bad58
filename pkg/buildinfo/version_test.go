package buildinfo

import "testing"

func TestSemver(t *testing.T) {
	tests := []struct {
		version string
		want    [3]int
	}{
		{"dev", [3]int{}},
		{"v1.2.3", [3]int{1, 2, 3}},
		{"0.10.0", [3]int{0, 10, 0}},
		{"v2.0.1-rc1", [3]int{2, 0, 1}},
		{"v2.0.1+meta", [3]int{2, 0, 1}},
		{"v1.2", [3]int{}},
		{"v1.x.3", [3]int{}},
	}

	orig := Version
	defer func() { Version = orig }()

	for _, tt := range tests {
		t.Run(tt.version, func(t *testing.T) {
			Version = tt.version
			if got := Semver(); got != tt.want {
				t.Errorf("Semver() = %v, want %v", got, tt.want)
			}
		})
	}
}
