package nuclide

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// Converter runs the read, group, sort and render pipeline.
type Converter struct {
	cfg      Config
	renderer *Renderer
	logger   *zap.Logger
}

// NewConverter constructs a converter. Column candidates from cfg become the
// active detection candidates. A nil logger discards output.
func NewConverter(cfg Config, logger *zap.Logger) *Converter {
	cfg = cfg.Clone()
	cfg.ApplyDefaults()
	if logger == nil {
		logger = zap.NewNop()
	}
	SetColumnCandidates(cfg.Columns)
	return &Converter{
		cfg:      cfg,
		renderer: NewRenderer(cfg.RenderOptions()),
		logger:   logger,
	}
}

// Config returns a copy of the active configuration.
func (c *Converter) Config() Config {
	return c.cfg.Clone()
}

// Read loads the flat rows of a table using the configured input options.
func (c *Converter) Read(path string) ([]FlatRecord, error) {
	opts, err := c.cfg.InputOptions()
	if err != nil {
		return nil, err
	}
	c.logger.Info("Reading nuclide table", zap.String("path", path))
	rows, err := ReadRecords(path, opts)
	if err != nil {
		return nil, err
	}
	c.logger.Info("Found rows", zap.Int("rows", len(rows)))
	return rows, nil
}

// Build groups rows into sorted output entries.
func (c *Converter) Build(rows []FlatRecord) ([]Entry, Stats) {
	groups := PartitionByIsotope(rows)
	c.logger.Info("Grouped isotopes", zap.Int("isotopes", len(groups)))
	records := make([]IsotopeRecord, len(groups))
	for i, g := range groups {
		records[i] = BuildRecord(g.Rows)
		c.logger.Debug("Combined isotope",
			zap.String("name", g.Key.Name),
			zap.Int("rows", len(g.Rows)),
			zap.Int("levels", records[i].LevelCount()))
	}
	entries := Catalog(records)
	if len(entries) < len(records) {
		c.logger.Warn("Isotope names collided; later records replaced earlier ones",
			zap.Int("records", len(records)),
			zap.Int("entries", len(entries)))
	}
	return entries, Summarize(len(rows), len(groups), entries)
}

// Render writes entries as the Maxima list literal.
func (c *Converter) Render(w io.Writer, entries []Entry) error {
	return c.renderer.Render(w, entries)
}

// Convert builds and renders rows into w.
func (c *Converter) Convert(ctx context.Context, rows []FlatRecord, w io.Writer) (Stats, error) {
	entries, stats := c.Build(rows)
	if err := ctx.Err(); err != nil {
		return stats, err
	}
	if err := c.Render(w, entries); err != nil {
		return stats, err
	}
	return stats, nil
}

// ConvertFile reads input, converts it and replaces output atomically.
func (c *Converter) ConvertFile(ctx context.Context, input, output string) (Stats, error) {
	rows, err := c.Read(input)
	if err != nil {
		return Stats{}, err
	}
	if err := ctx.Err(); err != nil {
		return Stats{}, err
	}
	var buf bytes.Buffer
	stats, err := c.Convert(ctx, rows, &buf)
	if err != nil {
		return stats, err
	}
	c.logger.Info("Writing nuclide list", zap.String("path", output))
	if dir := filepath.Dir(output); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return stats, fmt.Errorf("create output dir: %w", err)
		}
	}
	if err := writeFileAtomic(output, buf.Bytes()); err != nil {
		return stats, fmt.Errorf("write %s: %w", filepath.Base(output), err)
	}
	c.logger.Info("Converted nuclides",
		zap.Int("isotopes", stats.Isotopes),
		zap.Int("elements", stats.Elements),
		zap.Int("excitedStates", stats.ExcitedStates),
		zap.String("output", output))
	return stats, nil
}
