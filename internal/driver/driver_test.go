package driver_test

import (
	"archive/zip"
	"bytes"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jreduce/jreduce/classio"
	"github.com/jreduce/jreduce/internal/driver"
)

// buildMinimalClass hand-assembles the smallest valid class file this
// module's decoder needs: one public method "m()V" whose Code attribute is
// a single `return` instruction — already acyclic, so the driver should
// pass it through untouched.
func buildMinimalClass(t *testing.T) []byte {
	t.Helper()
	var b []byte
	u2 := func(v uint16) { b = append(b, byte(v>>8), byte(v)) }
	u4 := func(v uint32) { b = append(b, byte(v>>24), byte(v>>16), byte(v>>8), byte(v)) }
	utf8 := func(s string) {
		b = append(b, 1)
		u2(uint16(len(s)))
		b = append(b, s...)
	}

	u4(0xCAFEBABE)
	u2(0)
	u2(52)
	u2(6)

	utf8("Code")
	utf8("com/example/Foo")
	b = append(b, 7)
	u2(2)
	utf8("m")
	utf8("()V")

	u2(0x0001)
	u2(3)
	u2(0)
	u2(0)
	u2(0)

	u2(1)
	u2(0x0009)
	u2(4)
	u2(5)
	u2(1)

	u2(1)
	u4(13)
	u2(0)
	u2(0)
	u4(1)
	b = append(b, 0xb1)
	u2(0)
	u2(0)

	u2(0)

	return b
}

func TestRun_RewritesNothingForAlreadyReducibleClass(t *testing.T) {
	fs := afero.NewMemMapFs()
	data := buildMinimalClass(t)
	require.NoError(t, afero.WriteFile(fs, "/in/Foo.class", data, 0o644))

	err := driver.Run(fs, driver.Config{Input: "/in"}, hclog.NewNullLogger())
	require.NoError(t, err)

	after, err := afero.ReadFile(fs, "/in/Foo.class")
	require.NoError(t, err)
	assert.Equal(t, data, after, "already-acyclic method should be written back unchanged (or not rewritten at all)")
}

func TestRun_SkipsExcludedClass(t *testing.T) {
	fs := afero.NewMemMapFs()
	data := buildMinimalClass(t)
	require.NoError(t, afero.WriteFile(fs, "/in/Foo.class", data, 0o644))

	err := driver.Run(fs, driver.Config{
		Input:          "/in",
		ExcludeClasses: []string{"com/example/Foo"},
	}, hclog.NewNullLogger())
	require.NoError(t, err)

	after, err := afero.ReadFile(fs, "/in/Foo.class")
	require.NoError(t, err)
	assert.Equal(t, data, after)
}

func TestRun_ContinuesPastMalformedFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/in/Bad.class", []byte("not a class file"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/in/Good.class", buildMinimalClass(t), 0o644))

	err := driver.Run(fs, driver.Config{Input: "/in"}, hclog.NewNullLogger())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Bad.class")
}

func buildJarWithClass(t *testing.T, entryName string, classData []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	f, err := w.Create(entryName)
	require.NoError(t, err)
	_, err = f.Write(classData)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func TestRun_WalksJarEntries(t *testing.T) {
	fs := afero.NewMemMapFs()
	jarData := buildJarWithClass(t, "com/example/Foo.class", buildMinimalClass(t))
	require.NoError(t, afero.WriteFile(fs, "/in/app.jar", jarData, 0o644))

	err := driver.Run(fs, driver.Config{Input: "/in"}, hclog.NewNullLogger())
	require.NoError(t, err)

	after, err := afero.ReadFile(fs, "/in/app.jar")
	require.NoError(t, err)

	jar, err := classio.ReadJar(after)
	require.NoError(t, err)
	assert.Equal(t, []string{"com/example/Foo.class"}, jar.ClassEntries())
}
