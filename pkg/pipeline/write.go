package pipeline

import (
	"os"
	"path/filepath"

	"github.com/matzehuels/vizgrid/pkg/errors"
)

// WriteFile replaces path with data. The data is written to a temporary file
// in the same directory and renamed over path, so readers never observe a
// partial document. Missing parent directories are created.
func WriteFile(path string, data []byte) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.IO(err, dir)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return errors.IO(err, dir)
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return errors.IO(err, tmp.Name())
	}
	if err := tmp.Chmod(0o644); err != nil {
		_ = tmp.Close()
		return errors.IO(err, tmp.Name())
	}
	if err := tmp.Close(); err != nil {
		return errors.IO(err, tmp.Name())
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return errors.IO(err, path)
	}
	return nil
}
