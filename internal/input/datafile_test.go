package input

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/bft-labs/midpoint/pkg/integrate"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func TestLoadFile(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		wantX   []float64
		wantY   []float64
	}{
		{
			name:    "toml arrays",
			file:    "data.toml",
			content: "x = [1, 1.5, 2]\ny = [2.0, 3, 4.5]\n",
			wantX:   []float64{1, 1.5, 2},
			wantY:   []float64{2, 3, 4.5},
		},
		{
			name:    "toml comma strings",
			file:    "data.toml",
			content: "x = \"0, 1\"\ny = \"5, 7\"\n",
			wantX:   []float64{0, 1},
			wantY:   []float64{5, 7},
		},
		{
			name:    "yaml arrays",
			file:    "data.yaml",
			content: "x: [0, 0.5, 1]\ny:\n  - 1\n  - 2.5\n  - 3\n",
			wantX:   []float64{0, 0.5, 1},
			wantY:   []float64{1, 2.5, 3},
		},
		{
			name:    "yml comma strings",
			file:    "data.yml",
			content: "x: \"1, 2\"\ny: \"3, 4\"\n",
			wantX:   []float64{1, 2},
			wantY:   []float64{3, 4},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := LoadFile(writeFile(t, tt.file, tt.content))
			if err != nil {
				t.Fatalf("LoadFile returned error: %v", err)
			}
			if len(s.X) != len(tt.wantX) || len(s.Y) != len(tt.wantY) {
				t.Fatalf("LoadFile = %+v, want x=%v y=%v", s, tt.wantX, tt.wantY)
			}
			for i := range tt.wantX {
				if s.X[i] != tt.wantX[i] || s.Y[i] != tt.wantY[i] {
					t.Errorf("point %d = (%v, %v), want (%v, %v)", i, s.X[i], s.Y[i], tt.wantX[i], tt.wantY[i])
				}
			}
		})
	}
}

func TestLoadFile_Errors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		wantErr error
	}{
		{name: "unknown extension", file: "data.csv", content: "1,2", wantErr: ErrUnsupportedFormat},
		{name: "missing y", file: "data.toml", content: "x = [1, 2]\n", wantErr: ErrParse},
		{name: "non numeric item", file: "data.yaml", content: "x: [1, two]\ny: [1, 2]\n", wantErr: ErrParse},
		{name: "mismatch", file: "data.toml", content: "x = [1, 2, 3]\ny = [1, 2]\n", wantErr: integrate.ErrLengthMismatch},
		{name: "single point", file: "data.yaml", content: "x: [1]\ny: [1]\n", wantErr: integrate.ErrInsufficientData},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFile(writeFile(t, tt.file, tt.content))
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("LoadFile error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.toml"))
	if !os.IsNotExist(err) {
		t.Errorf("expected not-exist error, got %v", err)
	}
}
