package classio

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"sort"
	"strings"
)

// Jar is an in-memory view of a .jar archive: every entry's raw bytes,
// keyed by its zip path, with class-file entries identified by the
// conventional ".class" suffix.
type Jar struct {
	entries map[string][]byte
	order   []string
}

// ReadJar unpacks a JAR's entries into memory.
func ReadJar(data []byte) (*Jar, error) {
	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotClassOrJar, err)
	}

	j := &Jar{entries: make(map[string][]byte, len(r.File))}
	for _, f := range r.File {
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("%w: opening %s: %v", ErrMalformedInput, f.Name, err)
		}
		body, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("%w: reading %s: %v", ErrMalformedInput, f.Name, err)
		}
		j.entries[f.Name] = body
		j.order = append(j.order, f.Name)
	}
	return j, nil
}

// ClassEntries returns every entry path ending in ".class", sorted for
// deterministic iteration.
func (j *Jar) ClassEntries() []string {
	var out []string
	for _, name := range j.order {
		if strings.HasSuffix(name, ".class") {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}

// ReadClass returns the raw bytes of a class entry.
func (j *Jar) ReadClass(name string) ([]byte, error) {
	body, ok := j.entries[name]
	if !ok {
		return nil, fmt.Errorf("%w: no such entry %s", ErrMalformedInput, name)
	}
	return body, nil
}

// WriteJar re-packs original's entries, substituting rewritten bytes for
// any entry path present in rewritten (everything else — manifests,
// resources, untouched classes — is copied through verbatim) and
// preserving original's entry order.
func WriteJar(original *Jar, rewritten map[string][]byte) ([]byte, error) {
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)

	for _, name := range original.order {
		body := original.entries[name]
		if replacement, ok := rewritten[name]; ok {
			body = replacement
		}
		entry, err := w.Create(name)
		if err != nil {
			return nil, fmt.Errorf("%w: creating %s: %v", ErrMalformedInput, name, err)
		}
		if _, err := entry.Write(body); err != nil {
			return nil, fmt.Errorf("%w: writing %s: %v", ErrMalformedInput, name, err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("%w: closing archive: %v", ErrMalformedInput, err)
	}
	return buf.Bytes(), nil
}
