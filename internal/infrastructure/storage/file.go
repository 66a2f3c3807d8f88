// Package storage persists generated reports.
package storage

import (
	"context"
	"os"
	"path/filepath"

	"github.com/romanresh/test-runner-nunit-reporter/internal/ports"
	reporterrors "github.com/romanresh/test-runner-nunit-reporter/pkg/errors"
)

// FileWriter writes the report to a path on the local filesystem.
type FileWriter struct {
	path string
	perm os.FileMode
}

// NewFileWriter returns a writer targeting path, which should already be absolute.
func NewFileWriter(path string) *FileWriter {
	return &FileWriter{path: path, perm: 0o644}
}

var _ ports.ReportWriter = (*FileWriter)(nil)

// Write creates missing parent directories and writes data in one call.
func (w *FileWriter) Write(ctx context.Context, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", reporterrors.NewWriteError(w.path, err)
	}
	if err := os.MkdirAll(filepath.Dir(w.path), 0o755); err != nil {
		return "", reporterrors.NewWriteError(w.path, err)
	}
	if err := os.WriteFile(w.path, data, w.perm); err != nil {
		return "", reporterrors.NewWriteError(w.path, err)
	}
	return w.path, nil
}
