package driver

import (
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// discoverInputs returns every regular file under root reachable through
// fs that looks like a .class file or a .jar archive — root may itself be
// a single file. Uses afero so tests can swap in afero.NewMemMapFs()
// instead of touching the real filesystem, letting the per-file
// continuation contract be exercised without disk fixtures.
func discoverInputs(fs afero.Fs, root string) ([]string, error) {
	info, err := fs.Stat(root)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		ext := strings.ToLower(filepath.Ext(root))
		if ext == ".class" || ext == ".jar" {
			return []string{root}, nil
		}
		return nil, nil
	}

	var found []string
	err = afero.Walk(fs, root, func(path string, info afero.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		if ext == ".class" || ext == ".jar" {
			found = append(found, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return found, nil
}

func isJar(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".jar")
}
