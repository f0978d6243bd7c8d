package launch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/klauspost/pgzip"
	"golang.org/x/sync/errgroup"

	"launchdash/internal/logging"
)

// Source formats.
const (
	FormatCSV        = "csv"
	FormatParquet    = "parquet"
	FormatClickHouse = "clickhouse"
	FormatSQLite     = "sqlite"
)

// Source describes one place to load launch records from.
// Format is inferred from the Path extension when empty.
type Source struct {
	Path       string            `json:"path,omitempty" yaml:"path,omitempty"`
	Format     string            `json:"format,omitempty" yaml:"format,omitempty"`
	Table      string            `json:"table,omitempty" yaml:"table,omitempty"` // SQLite table; default "launches"
	ClickHouse *ClickHouseSource `json:"clickhouse,omitempty" yaml:"clickhouse,omitempty"`
}

// String names the source for logs and errors.
func (s Source) String() string {
	if s.ClickHouse != nil {
		return "clickhouse://" + s.ClickHouse.Addr + "/" + s.ClickHouse.Table
	}
	return s.Path
}

// ResolveFormat returns the effective format of s.
// ".csv", ".csv.gz" and ".csv.zst" are CSV; ".parquet" is Parquet; ".db" and
// ".sqlite" are SQLite.
func (s Source) ResolveFormat() (string, error) {
	if s.Format != "" {
		f := strings.ToLower(s.Format)
		switch f {
		case FormatCSV, FormatParquet, FormatClickHouse, FormatSQLite:
			return f, nil
		}
		return "", fmt.Errorf("unknown source format %q", s.Format)
	}
	if s.ClickHouse != nil {
		return FormatClickHouse, nil
	}
	name := strings.ToLower(s.Path)
	for _, ext := range []string{".gz", ".zst", ".zstd"} {
		name = strings.TrimSuffix(name, ext)
	}
	switch filepath.Ext(name) {
	case ".csv", ".txt":
		return FormatCSV, nil
	case ".parquet", ".pq":
		return FormatParquet, nil
	case ".db", ".sqlite", ".sqlite3":
		return FormatSQLite, nil
	}
	return "", fmt.Errorf("cannot infer format of %q; set format explicitly", s.Path)
}

// Load reads every record from a single source.
func Load(ctx context.Context, src Source) ([]Record, error) {
	format, err := src.ResolveFormat()
	if err != nil {
		return nil, err
	}
	switch format {
	case FormatClickHouse:
		if src.ClickHouse == nil {
			return nil, fmt.Errorf("clickhouse source without connection settings")
		}
		return loadClickHouse(ctx, *src.ClickHouse)
	case FormatSQLite:
		return loadSQLite(ctx, src)
	case FormatParquet:
		f, err := os.Open(src.Path)
		if err != nil {
			return nil, fmt.Errorf("open dataset: %w", err)
		}
		defer f.Close()
		return ReadParquet(f)
	default:
		f, err := os.Open(src.Path)
		if err != nil {
			return nil, fmt.Errorf("open dataset: %w", err)
		}
		defer f.Close()
		r, closeFn, err := decompress(f, src.Path)
		if err != nil {
			return nil, fmt.Errorf("open dataset: %w", err)
		}
		defer closeFn()
		return ReadCSV(r)
	}
}

// decompress wraps r according to the compression suffix of name.
func decompress(r io.Reader, name string) (io.Reader, func(), error) {
	lower := strings.ToLower(name)
	switch {
	case strings.HasSuffix(lower, ".gz"):
		gz, err := pgzip.NewReader(r)
		if err != nil {
			return nil, nil, fmt.Errorf("gzip: %w", err)
		}
		return gz, func() { gz.Close() }, nil
	case strings.HasSuffix(lower, ".zst"), strings.HasSuffix(lower, ".zstd"):
		dec, err := zstd.NewReader(r)
		if err != nil {
			return nil, nil, fmt.Errorf("zstd: %w", err)
		}
		return dec, dec.Close, nil
	}
	return r, func() {}, nil
}

// LoadAll loads every source concurrently and concatenates the records in
// source order.
func LoadAll(ctx context.Context, sources []Source) (*Dataset, error) {
	if len(sources) == 0 {
		return nil, fmt.Errorf("no dataset sources configured")
	}
	log := logging.New("dataset")

	parts := make([][]Record, len(sources))
	g, gCtx := errgroup.WithContext(ctx)
	for i, src := range sources {
		g.Go(func() error {
			recs, err := Load(gCtx, src)
			if err != nil {
				return fmt.Errorf("load %s: %w", src, err)
			}
			parts[i] = recs
			log.Debug("source loaded", slog.String("source", src.String()), slog.Int("records", len(recs)))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var all []Record
	for _, p := range parts {
		all = append(all, p...)
	}
	ds := NewDataset(all)
	log.Info("dataset ready", slog.Int("records", ds.Len()), slog.Int("sites", len(ds.Sites())))
	return ds, nil
}
