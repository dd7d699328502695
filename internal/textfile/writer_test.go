package textfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeLines(t *testing.T, path, enc string, lines []string, opts ...Option) []byte {
	t.Helper()

	w, err := Create(path, enc, opts...)
	require.NoError(t, err)
	for _, l := range lines {
		require.NoError(t, w.WriteLine(l))
	}
	require.NoError(t, w.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return data
}

func TestWriteUTF8WithBOM(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	data := writeLines(t, path, "utf-8", []string{"héllo", "", "world"})

	assert.Equal(t, "\xEF\xBB\xBFhéllo\n\nworld\n", string(data))
}

func TestEmptyEncodingIsUTF8(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	data := writeLines(t, path, "", []string{"a"})

	assert.Equal(t, "\xEF\xBB\xBFa\n", string(data))
}

func TestWriteLegacyCodepage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	data := writeLines(t, path, "windows-1252", []string{"café", "日本"})

	// no BOM, é is a single byte and unsupported runes are replaced
	assert.Equal(t, []byte("caf\xE9\n"), data[:5])
	assert.NotContains(t, string(data), "日本")
}

func TestWriteUTF16LE(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	data := writeLines(t, path, "utf-16le", []string{"A"})

	assert.Equal(t, []byte{0xFF, 0xFE, 'A', 0, '\n', 0}, data)
}

func TestLineEndingNormalization(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	data := writeLines(t, path, "utf-8",
		[]string{"fontname: a_0.ttf\nAAAA\r\nBBBB", "end"},
		WithLineEnding("\r\n"),
	)

	assert.Equal(t, "\xEF\xBB\xBFfontname: a_0.ttf\r\nAAAA\r\nBBBB\r\nend\r\n", string(data))
}

func TestCreateMakesParentDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "out.txt")
	writeLines(t, path, "utf-8", []string{"x"})

	_, err := os.Stat(path)
	assert.NoError(t, err)
}

func TestUnknownEncoding(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	_, err := Create(path, "klingon-8")
	assert.ErrorIs(t, err, ErrUnknownEncoding)

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr), "file must not be created for an unknown encoding")
}

func TestCloseIsIdempotent(t *testing.T) {
	w, err := Create(filepath.Join(t.TempDir(), "out.txt"), "utf-8")
	require.NoError(t, err)

	require.NoError(t, w.Close())
	assert.NoError(t, w.Close())
	assert.ErrorIs(t, w.WriteLine("late"), os.ErrClosed)
}

func TestCreateFailsOnDirectoryPath(t *testing.T) {
	dir := t.TempDir()
	_, err := Create(dir, "utf-8")
	assert.Error(t, err)
}
