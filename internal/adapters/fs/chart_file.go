package fs

import (
	"bytes"
	"context"
	"os"
	"path/filepath"

	"github.com/bft-labs/midpoint/internal/plot"
	"github.com/bft-labs/midpoint/pkg/integrate"
)

// ChartFile writes rendered charts to a fixed path.
type ChartFile struct {
	path string
	opts plot.Options
}

// NewChartFile creates a ChartFile for path. The chart format follows the
// file extension when it names one (.png or .svg).
func NewChartFile(path string, opts plot.Options) *ChartFile {
	if f, err := plot.ParseFormat(trimDot(filepath.Ext(path))); err == nil {
		opts.Format = f
	}
	return &ChartFile{path: path, opts: opts}
}

// Save renders the chart and replaces the file atomically.
func (c *ChartFile) Save(ctx context.Context, s integrate.Series, est integrate.Estimate) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := plot.Render(&buf, s, est, c.opts); err != nil {
		return err
	}
	return WriteAtomic(c.path, buf.Bytes())
}

// Path returns the destination path.
func (c *ChartFile) Path() string {
	return c.path
}

// WriteAtomic writes data to a temp file next to path, then renames it over path.
func WriteAtomic(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}

func trimDot(ext string) string {
	if len(ext) > 0 && ext[0] == '.' {
		return ext[1:]
	}
	return ext
}
