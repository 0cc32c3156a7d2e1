package pdf

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearch_SearchDirectory(t *testing.T) {
	tempDir := t.TempDir()

	for _, name := range []string{"b.pdf", "a.pdf", "C.PDF", "notes.txt", "report.pdf.bak"} {
		require.NoError(t, os.WriteFile(filepath.Join(tempDir, name), []byte("x"), 0o644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(tempDir, "nested.pdf"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(tempDir, "nested.pdf", "inner.pdf"), []byte("x"), 0o644))

	search := NewSearch()

	t.Run("case sensitive", func(t *testing.T) {
		result, err := search.SearchDirectory(PDFSearchDirectoryRequest{Directory: tempDir})
		require.NoError(t, err)

		assert.Equal(t, 2, result.TotalCount)
		assert.Equal(t, []string{"a.pdf", "b.pdf"}, names(result.Files))
		assert.Equal(t, filepath.Join(tempDir, "a.pdf"), result.Files[0].Path)
	})

	t.Run("ignore case", func(t *testing.T) {
		result, err := search.SearchDirectory(PDFSearchDirectoryRequest{Directory: tempDir, IgnoreCase: true})
		require.NoError(t, err)

		assert.Equal(t, []string{"C.PDF", "a.pdf", "b.pdf"}, names(result.Files))
	})

	t.Run("missing directory", func(t *testing.T) {
		_, err := search.SearchDirectory(PDFSearchDirectoryRequest{Directory: filepath.Join(tempDir, "missing")})
		assert.ErrorContains(t, err, "directory does not exist")
	})

	t.Run("empty directory argument", func(t *testing.T) {
		_, err := search.SearchDirectory(PDFSearchDirectoryRequest{})
		assert.EqualError(t, err, "directory cannot be empty")
	})
}

func TestIsPDFName(t *testing.T) {
	assert.True(t, IsPDFName("cv.pdf", false))
	assert.False(t, IsPDFName("cv.PDF", false))
	assert.True(t, IsPDFName("cv.PDF", true))
	assert.False(t, IsPDFName("cv.pdfx", true))
}

func names(files []FileInfo) []string {
	out := make([]string, len(files))
	for i, f := range files {
		out[i] = f.Name
	}
	return out
}
