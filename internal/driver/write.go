package driver

import (
	"fmt"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/afero"
)

// atomicWrite writes data to path by first writing to a uuid-named sibling
// temp file, then renaming it over path — so a crash mid-write never
// leaves a truncated class file in place, and concurrent workers writing
// into the same directory never collide on a shared temp name.
func atomicWrite(fs afero.Fs, path string, data []byte) error {
	tmp := filepath.Join(filepath.Dir(path), "."+uuid.NewString()+".tmp")

	if err := afero.WriteFile(fs, tmp, data, 0o644); err != nil {
		return fmt.Errorf("writing temp file %s: %w", tmp, err)
	}
	if err := fs.Rename(tmp, path); err != nil {
		_ = fs.Remove(tmp)
		return fmt.Errorf("renaming %s to %s: %w", tmp, path, err)
	}
	return nil
}
