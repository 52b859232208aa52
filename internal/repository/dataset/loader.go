// Package dataset reads weighted edge records from the static data file.
package dataset

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/kailas-cloud/globearc/internal/domain"
	"github.com/kailas-cloud/globearc/internal/domain/arc"
	"github.com/kailas-cloud/globearc/internal/domain/geo"
)

// Format identifies a data file encoding.
type Format string

const (
	// FormatJSON is an array of record objects.
	FormatJSON Format = "json"
	// FormatParquet is a table with one double column per record field.
	FormatParquet Format = "parquet"
)

// Loader reads edge data files from disk.
type Loader struct {
	path   string
	format Format
	logger *zap.Logger
}

// New creates a loader for path. An empty format is inferred from the file extension.
func New(path string, format Format, logger *zap.Logger) (*Loader, error) {
	if path == "" {
		return nil, fmt.Errorf("dataset path is required")
	}
	if format == "" {
		format = Format(strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), "."))
	}
	switch format {
	case FormatJSON, FormatParquet:
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedFormat, format)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{path: path, format: format, logger: logger}, nil
}

// Path returns the data file location.
func (l *Loader) Path() string { return l.path }

// Load reads the whole data file. A missing or undecodable file is an error;
// individual malformed records are skipped and reported in the dataset.
func (l *Loader) Load(ctx context.Context) (domain.Dataset, error) {
	data, err := os.ReadFile(filepath.Clean(l.path))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domain.Dataset{}, fmt.Errorf("%w: %s", domain.ErrDatasetNotFound, l.path)
		}
		return domain.Dataset{}, fmt.Errorf("read dataset %s: %w", l.path, err)
	}
	if err := ctx.Err(); err != nil {
		return domain.Dataset{}, fmt.Errorf("load dataset: %w", err)
	}

	var recs []record
	var decodeSkips []domain.SkippedRecord
	switch l.format {
	case FormatJSON:
		recs, decodeSkips, err = decodeJSON(data)
	case FormatParquet:
		recs, err = decodeParquet(data)
	}
	if err != nil {
		return domain.Dataset{}, fmt.Errorf("%w: %s: %w", domain.ErrDatasetMalformed, l.path, err)
	}

	sum := sha256.Sum256(data)
	res := l.convert(recs, decodeSkips)
	res.Hash = hex.EncodeToString(sum[:])

	l.logger.Info("Dataset loaded",
		zap.String("path", l.path),
		zap.String("format", string(l.format)),
		zap.Int("edges", len(res.Edges)),
		zap.Int("skipped", len(res.Skipped)),
	)
	return res, nil
}

// convert turns decoded records into edges. recs[i] is left zero for records the
// decoder already rejected (listed in decodeSkips).
func (l *Loader) convert(recs []record, decodeSkips []domain.SkippedRecord) domain.Dataset {
	rejected := make(map[int]string, len(decodeSkips))
	for _, s := range decodeSkips {
		rejected[s.Index] = s.Reason
	}

	res := domain.Dataset{Edges: make([]arc.Edge, 0, len(recs))}
	for i := range recs {
		if reason, ok := rejected[i]; ok {
			res.Skipped = append(res.Skipped, l.skip(i, reason))
			continue
		}
		e, err := recs[i].toEdge()
		if err != nil {
			res.Skipped = append(res.Skipped, l.skip(i, err.Error()))
			continue
		}
		if !geo.ValidateCoordinates(e.A.Lat, e.A.Lng) || !geo.ValidateCoordinates(e.B.Lat, e.B.Lng) {
			l.logger.Debug("Record coordinates outside nominal range",
				zap.Int("index", i),
				zap.Any("a", e.A),
				zap.Any("b", e.B),
			)
		}
		res.Edges = append(res.Edges, e)
	}
	return res
}

func (l *Loader) skip(index int, reason string) domain.SkippedRecord {
	l.logger.Warn("Skipping malformed record",
		zap.String("path", l.path),
		zap.Int("index", index),
		zap.String("reason", reason),
	)
	return domain.SkippedRecord{Index: index, Reason: reason}
}
