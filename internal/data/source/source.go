// Package source reads the raw mobile-money transaction export.
package source

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/momopress-backend/internal/domain/transaction"
)

// ErrSourceUnavailable wraps every failure to read or decode the export.
var ErrSourceUnavailable = errors.New("transaction source unavailable")

// Loader returns the full raw export.
type Loader interface {
	Load(ctx context.Context) ([]transaction.RawTransaction, error)
}

// FileLoader reads a JSON array of raw transactions from disk on every call,
// so edits to the export are picked up without a restart.
type FileLoader struct {
	path   string
	logger *slog.Logger
}

// NewFileLoader creates a loader for the export at path.
func NewFileLoader(logger *slog.Logger, path string) *FileLoader {
	return &FileLoader{path: path, logger: logger}
}

// Path returns the export location.
func (l *FileLoader) Path() string {
	return l.path
}

// Load reads and decodes the export.
func (l *FileLoader) Load(ctx context.Context) ([]transaction.RawTransaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(l.path)
	if err != nil {
		l.logger.Error("Failed to read transaction source", "path", l.path, "error", err)
		return nil, fmt.Errorf("%w: read %s: %v", ErrSourceUnavailable, l.path, err)
	}

	var records []transaction.RawTransaction
	if err := json.Unmarshal(data, &records); err != nil {
		l.logger.Error("Failed to decode transaction source", "path", l.path, "error", err)
		return nil, fmt.Errorf("%w: decode %s: %v", ErrSourceUnavailable, l.path, err)
	}

	l.logger.Debug("Loaded transaction source", "path", l.path, "count", len(records))
	return records, nil
}
