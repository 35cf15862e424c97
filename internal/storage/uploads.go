package storage

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Store persists uploaded images under <root>/<bucket>/<name>_<unix-time>.<ext>.
// Buckets in use: users, companies, products.

var (
	ErrBadType  = errors.New("file is not an allowed image type")
	ErrTooLarge = errors.New("file exceeds the size limit")
)

var allowedExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
}

type Store struct {
	root string
}

func New(root string) *Store {
	return &Store{root: root}
}

// Save writes the uploaded file into the bucket and returns the stored
// filename. The original name is sanitized and suffixed with the current unix
// time so successive uploads never collide.
func (s *Store) Save(bucket string, fh *multipart.FileHeader, maxBytes int64) (string, error) {
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if !allowedExts[ext] {
		return "", ErrBadType
	}
	if maxBytes > 0 && fh.Size > maxBytes {
		return "", ErrTooLarge
	}
	base := sanitize(strings.TrimSuffix(filepath.Base(fh.Filename), filepath.Ext(fh.Filename)))
	name := fmt.Sprintf("%s_%d%s", base, time.Now().Unix(), ext)

	if err := os.MkdirAll(filepath.Join(s.root, bucket), 0o755); err != nil {
		return "", err
	}
	src, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()
	dst, err := os.Create(filepath.Join(s.root, bucket, name))
	if err != nil {
		return "", err
	}
	defer dst.Close()
	if _, err := io.Copy(dst, src); err != nil {
		_ = os.Remove(dst.Name())
		return "", err
	}
	return name, nil
}

// Delete removes a stored file. A missing file is not an error: replace and
// destroy paths stay idempotent.
func (s *Store) Delete(bucket, name string) error {
	if name == "" {
		return nil
	}
	err := os.Remove(filepath.Join(s.root, bucket, filepath.Base(name)))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (s *Store) Path(bucket, name string) string {
	return filepath.Join(s.root, bucket, filepath.Base(name))
}

func (s *Store) Root() string {
	return s.root
}

// RemoveOrphans deletes files in a bucket the keep predicate does not claim.
// File writes and row commits are not atomic, so a crash between the two can
// leave unreferenced files behind; callers run this sweep at startup with a
// predicate backed by the database.
func (s *Store) RemoveOrphans(bucket string, keep func(name string) bool) (int, error) {
	entries, err := os.ReadDir(filepath.Join(s.root, bucket))
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, err
	}
	removed := 0
	for _, e := range entries {
		if e.IsDir() || keep(e.Name()) {
			continue
		}
		if err := os.Remove(filepath.Join(s.root, bucket, e.Name())); err != nil {
			return removed, err
		}
		removed++
	}
	return removed, nil
}

func sanitize(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('-')
		}
	}
	if b.Len() == 0 {
		return "upload"
	}
	return b.String()
}
