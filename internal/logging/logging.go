// Package logging builds the process logger. The terminal belongs to the UI,
// so logs only go to a file.
package logging

import (
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// New returns a JSON logger writing to path, tagged with service and a
// per-process session id. An empty path disables logging. The returned
// closer must be called on exit.
func New(path, service, version string) (zerolog.Logger, io.Closer, error) {
	if path == "" {
		return zerolog.Nop(), io.NopCloser(nil), nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return zerolog.Nop(), io.NopCloser(nil), fmt.Errorf("opening log file: %w", err)
	}

	return WithWriter(f, service, version), f, nil
}

// WithWriter returns a logger writing to w
func WithWriter(w io.Writer, service, version string) zerolog.Logger {
	return zerolog.New(w).
		With().
		Timestamp().
		Str("service", service).
		Str("version", version).
		Str("session", uuid.NewString()).
		Logger()
}
