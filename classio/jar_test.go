package classio_test

import (
	"archive/zip"
	"bytes"
	"testing"

	"github.com/jreduce/jreduce/classio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildZip(t *testing.T, entries map[string][]byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for name, body := range entries {
		f, err := w.Create(name)
		require.NoError(t, err)
		_, err = f.Write(body)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func TestReadJar_ListsClassEntriesSorted(t *testing.T) {
	data := buildZip(t, map[string][]byte{
		"b/Two.class":        []byte("two"),
		"a/One.class":        []byte("one"),
		"META-INF/MANIFEST.MF": []byte("manifest"),
	})

	j, err := classio.ReadJar(data)
	require.NoError(t, err)

	assert.Equal(t, []string{"a/One.class", "b/Two.class"}, j.ClassEntries())

	body, err := j.ReadClass("a/One.class")
	require.NoError(t, err)
	assert.Equal(t, []byte("one"), body)
}

func TestReadJar_RejectsNonZipInput(t *testing.T) {
	_, err := classio.ReadJar([]byte("not a zip"))
	assert.ErrorIs(t, err, classio.ErrNotClassOrJar)
}

func TestWriteJar_SubstitutesOnlyRewrittenEntries(t *testing.T) {
	data := buildZip(t, map[string][]byte{
		"a/One.class": []byte("original"),
		"res.txt":     []byte("keep me"),
	})
	j, err := classio.ReadJar(data)
	require.NoError(t, err)

	out, err := classio.WriteJar(j, map[string][]byte{
		"a/One.class": []byte("rewritten"),
	})
	require.NoError(t, err)

	roundTrip, err := classio.ReadJar(out)
	require.NoError(t, err)

	rewritten, err := roundTrip.ReadClass("a/One.class")
	require.NoError(t, err)
	assert.Equal(t, []byte("rewritten"), rewritten)

	res, err := roundTrip.ReadClass("res.txt")
	require.NoError(t, err)
	assert.Equal(t, []byte("keep me"), res)
}
