package storage

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fileHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("picture", filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest("POST", "/", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(32<<20))
	return req.MultipartForm.File["picture"][0]
}

func TestSaveNamesAndWritesFile(t *testing.T) {
	s := New(t.TempDir())
	name, err := s.Save("users", fileHeader(t, "mon image!.png", []byte("data")), 0)
	require.NoError(t, err)
	// sanitized base + unix-time suffix + original extension
	assert.Regexp(t, regexp.MustCompile(`^mon-image-_\d+\.png$`), name)

	content, err := os.ReadFile(s.Path("users", name))
	require.NoError(t, err)
	assert.Equal(t, "data", string(content))
}

func TestSaveRejectsBadType(t *testing.T) {
	s := New(t.TempDir())
	_, err := s.Save("users", fileHeader(t, "script.exe", []byte("x")), 0)
	assert.ErrorIs(t, err, ErrBadType)
}

func TestSaveRejectsOversized(t *testing.T) {
	s := New(t.TempDir())
	_, err := s.Save("users", fileHeader(t, "big.png", make([]byte, 100)), 10)
	assert.ErrorIs(t, err, ErrTooLarge)
}

func TestDeleteIsIdempotent(t *testing.T) {
	s := New(t.TempDir())
	name, err := s.Save("users", fileHeader(t, "a.png", []byte("x")), 0)
	require.NoError(t, err)
	require.NoError(t, s.Delete("users", name))
	assert.NoError(t, s.Delete("users", name))
	assert.NoError(t, s.Delete("users", ""))
}

func TestRemoveOrphans(t *testing.T) {
	s := New(t.TempDir())
	kept, err := s.Save("users", fileHeader(t, "kept.png", []byte("k")), 0)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(s.Root(), "users", "stray_1.png"), []byte("o"), 0o644))

	removed, err := s.RemoveOrphans("users", func(name string) bool { return name == kept })
	require.NoError(t, err)
	assert.Equal(t, 1, removed)
	assert.FileExists(t, s.Path("users", kept))

	// sweeping a bucket that was never written is not an error
	removed, err = s.RemoveOrphans("products", func(string) bool { return true })
	require.NoError(t, err)
	assert.Zero(t, removed)
}
