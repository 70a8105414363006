package blake2b

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSumFile(t *testing.T) {
	dir := t.TempDir()

	for _, tc := range lengthVectors {
		path := filepath.Join(dir, "data")
		require.NoError(t, os.WriteFile(path, pattern(tc.n), 0o644))

		d, err := SumFile(path, Size)
		require.NoError(t, err)
		assert.Equal(t, tc.sum512, d.String(), "len=%d", tc.n)

		d, err = SumFile(path, Size256)
		require.NoError(t, err)
		assert.Equal(t, tc.sum256, d.String(), "len=%d", tc.n)
	}
}

func TestSumFileLarge(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "large")
	data := pattern(3*fileBufferSize + 17)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	d, err := SumFile(path, Size)
	require.NoError(t, err)
	want := Sum512(data)
	assert.Equal(t, want[:], []byte(d))
}

func TestSumFileSameContent(t *testing.T) {
	dir := t.TempDir()
	p1 := filepath.Join(dir, "a.txt")
	p2 := filepath.Join(dir, "b.txt")
	p3 := filepath.Join(dir, "c.txt")
	require.NoError(t, os.WriteFile(p1, []byte("hello world"), 0o644))
	require.NoError(t, os.WriteFile(p2, []byte("hello world"), 0o644))
	require.NoError(t, os.WriteFile(p3, []byte("different content"), 0o644))

	h1, err := SumFile(p1, Size)
	require.NoError(t, err)
	h2, err := SumFile(p2, Size)
	require.NoError(t, err)
	h3, err := SumFile(p3, Size)
	require.NoError(t, err)

	assert.Equal(t, h1, h2)
	assert.NotEqual(t, h1, h3)
	assert.Equal(t, "021ced8799296ceca557832ab941a50b4a11f83478cf141f51f933f653ab9fbc"+
		"c05a037cddbed06e309bf334942c4e58cdf1a46e237911ccd7fcf9787cbc7fd0", h1.String())
}

func TestSumFileNotExist(t *testing.T) {
	_, err := SumFile(filepath.Join(t.TempDir(), "missing"), Size)
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestSumFileDirectory(t *testing.T) {
	_, err := SumFile(t.TempDir(), Size)
	assert.Error(t, err)
}

func TestSumFileInvalidSize(t *testing.T) {
	_, err := SumFile("unused", 0)
	assert.ErrorIs(t, err, ErrSize)
}

func TestOpenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "abc")
	require.NoError(t, os.WriteFile(path, []byte("abc"), 0o644))

	f, err := OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, uint64(3), f.Len())

	d, err := SumSource(f, Size)
	require.NoError(t, err)
	assert.Equal(t, abcDigest512, d.String())
}

func TestOpenFileTruncatedAfterOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shrinking")
	require.NoError(t, os.WriteFile(path, pattern(1000), 0o644))

	f, err := OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, os.Truncate(path, 100))

	d, err := SumSource(f, Size)
	assert.ErrorIs(t, err, ErrShortSource)
	assert.Nil(t, d)
}
