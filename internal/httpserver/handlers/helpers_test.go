package handlers

import (
	"bytes"
	"context"
	"errors"
	"mime/multipart"
	"sync"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"craftmarket/internal/auth"
	"craftmarket/internal/models"
	"craftmarket/internal/storage"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	// unique in-memory database per test to avoid cross-test collisions
	dsn := "file:" + t.Name() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Role{}, &models.User{}, &models.Company{}, &models.Category{},
		&models.Tag{}, &models.Product{}, &models.Chat{}, &models.Message{},
		&models.Ticket{}, &models.Session{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	for id, name := range map[uint]string{1: "utilisateur", 2: "professionnel", 3: "administrateur"} {
		if err := db.Create(&models.Role{ID: id, Name: name}).Error; err != nil {
			t.Fatalf("seed role: %v", err)
		}
	}
	return db
}

func seedUser(t *testing.T, db *gorm.DB, email string, roleID uint) models.User {
	t.Helper()
	hash, err := auth.HashPassword("password123")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	u := models.User{Name: "Test User", Email: email, PasswordHash: hash, RoleID: roleID}
	if err := db.Create(&u).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return u
}

type sentMail struct {
	To      string
	Subject string
	Body    string
}

type fakeMailer struct {
	mu   sync.Mutex
	sent []sentMail
	fail bool
}

func (f *fakeMailer) Send(_ context.Context, to, subject, body string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return errors.New("smtp down")
	}
	f.sent = append(f.sent, sentMail{To: to, Subject: subject, Body: body})
	return nil
}

func newUploadStore(t *testing.T) *storage.Store {
	t.Helper()
	return storage.New(t.TempDir())
}

// multipartBody builds a multipart/form-data body with string fields and an
// optional single file part.
func multipartBody(t *testing.T, fields map[string]string, fileField, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatalf("write field %s: %v", k, err)
		}
	}
	if fileField != "" {
		fw, err := mw.CreateFormFile(fileField, filename)
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		if _, err := fw.Write(content); err != nil {
			t.Fatalf("write file: %v", err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return &buf, mw.FormDataContentType()
}
