package eventlog

import (
	"os"
	"path/filepath"
)

// StoreContent saves content (downloaded pages, samples, reports) as a flat
// binary file under dirname and returns the full path. The directory is
// created if absent; creation is idempotent and an existing directory is
// never an error. When file logging is disabled the call is a no-op.
func (d *Dispatcher) StoreContent(dirname, filename string, content []byte) (string, error) {
	if !d.fileLogging {
		return "", nil
	}

	if err := os.MkdirAll(dirname, 0o755); err != nil {
		return "", err
	}

	fname := filepath.Join(dirname, filename)
	if err := os.WriteFile(fname, content, 0o644); err != nil {
		return "", err
	}
	return fname, nil
}
