package input

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/bft-labs/midpoint/pkg/integrate"
)

// ErrUnsupportedFormat is returned for data files with an unknown extension.
var ErrUnsupportedFormat = errors.New("input: unsupported data file format")

// dataFile is the on-disk shape of a sample series. Each axis is either an
// array of numbers or a comma-separated string, so the form text can be
// pasted into a file unchanged.
type dataFile struct {
	X interface{} `toml:"x" yaml:"x"`
	Y interface{} `toml:"y" yaml:"y"`
}

// LoadFile reads a sample series from a TOML (.toml) or YAML (.yaml, .yml) file.
func LoadFile(path string) (integrate.Series, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return integrate.Series{}, err
	}
	s, err := Decode(b, filepath.Ext(path))
	if err != nil {
		return integrate.Series{}, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return s, nil
}

// Decode parses a data file body; ext selects the format.
func Decode(b []byte, ext string) (integrate.Series, error) {
	var df dataFile
	switch strings.ToLower(ext) {
	case ".toml":
		if err := toml.NewDecoder(bytes.NewReader(b)).Decode(&df); err != nil {
			return integrate.Series{}, fmt.Errorf("decode toml: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &df); err != nil {
			return integrate.Series{}, fmt.Errorf("decode yaml: %w", err)
		}
	default:
		return integrate.Series{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}

	x, err := axis(df.X)
	if err != nil {
		return integrate.Series{}, fmt.Errorf("x: %w", err)
	}
	y, err := axis(df.Y)
	if err != nil {
		return integrate.Series{}, fmt.Errorf("y: %w", err)
	}

	s := integrate.Series{X: x, Y: y}
	if err := s.Validate(); err != nil {
		return integrate.Series{}, err
	}
	return s, nil
}

func axis(v interface{}) ([]float64, error) {
	switch t := v.(type) {
	case nil:
		return nil, fmt.Errorf("%w: missing", ErrParse)
	case string:
		return ParseList(t)
	case []interface{}:
		out := make([]float64, len(t))
		for i, item := range t {
			f, ok := number(item)
			if !ok {
				return nil, &ParseError{Index: i, Value: fmt.Sprint(item)}
			}
			out[i] = f
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: expected a list, got %T", ErrParse, v)
	}
}

func number(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int64:
		return float64(n), true
	case int:
		return float64(n), true
	case uint64:
		return float64(n), true
	default:
		return 0, false
	}
}
