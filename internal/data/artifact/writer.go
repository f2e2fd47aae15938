// Package artifact writes normalized transactions as a file the UI bundle loads,
// either a script that assigns a global or plain JSON.
package artifact

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/momopress-backend/internal/config"
	"github.com/momopress-backend/internal/domain/transaction"
)

// Supported formats
const (
	FormatJS   = "js"
	FormatJSON = "json"
)

const jsHeader = "// Auto-generated database file\n\n"

// Writer renders and atomically replaces artifact files.
type Writer struct {
	dir          string
	nameTemplate string
	format       string
	variable     string
	logger       *slog.Logger
}

// NewWriter creates a writer from the artifact configuration.
func NewWriter(logger *slog.Logger, cfg *config.ArtifactConfig) (*Writer, error) {
	switch cfg.Format {
	case FormatJS, FormatJSON:
	default:
		return nil, fmt.Errorf("unsupported artifact format %q", cfg.Format)
	}
	if cfg.NameTemplate == "" {
		return nil, fmt.Errorf("artifact name template cannot be empty")
	}
	return &Writer{
		dir:          cfg.Dir,
		nameTemplate: cfg.NameTemplate,
		format:       cfg.Format,
		variable:     cfg.Variable,
		logger:       logger,
	}, nil
}

// Path returns where the artifact for period is written.
func (w *Writer) Path(period transaction.Period) string {
	name := strings.NewReplacer(
		"{year}", fmt.Sprintf("%04d", period.Year),
		"{month}", fmt.Sprintf("%02d", period.Month),
	).Replace(w.nameTemplate)
	return filepath.Join(w.dir, name)
}

// Render encodes txs in the configured format.
func (w *Writer) Render(txs []transaction.NormalizedTransaction) ([]byte, error) {
	if txs == nil {
		txs = []transaction.NormalizedTransaction{}
	}

	var body bytes.Buffer
	enc := json.NewEncoder(&body)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(txs); err != nil {
		return nil, fmt.Errorf("encode artifact: %w", err)
	}
	payload := bytes.TrimRight(body.Bytes(), "\n")

	var out bytes.Buffer
	if w.format == FormatJS {
		out.WriteString(jsHeader)
		fmt.Fprintf(&out, "window.%s = ", w.variable)
		out.Write(payload)
		out.WriteString(";\n")
	} else {
		out.Write(payload)
		out.WriteString("\n")
	}
	return out.Bytes(), nil
}

// Write renders txs and replaces the artifact for period. The file is written to a
// temporary name in the same directory and renamed, so readers see either the old
// or the new content. It returns the final path.
func (w *Writer) Write(period transaction.Period, txs []transaction.NormalizedTransaction) (string, error) {
	data, err := w.Render(txs)
	if err != nil {
		return "", err
	}

	path := w.Path(period)
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create artifact directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return "", fmt.Errorf("create temporary artifact: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		// no-op once renamed
		_ = os.Remove(tmpName)
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return "", fmt.Errorf("write artifact: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("close artifact: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return "", fmt.Errorf("chmod artifact: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return "", fmt.Errorf("replace artifact: %w", err)
	}

	w.logger.Info("Artifact written", "path", path, "period", period.String(), "count", len(txs))
	return path, nil
}
