package httpserver

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"craftmarket/internal/config"
	"craftmarket/internal/models"
	"craftmarket/internal/storage"
)

type nopMailer struct{}

func (nopMailer) Send(context.Context, string, string, string) error { return nil }

func newTestServer(t *testing.T) http.Handler {
	t.Helper()
	t.Setenv("JWT_SECRET", "router-test-secret")
	t.Setenv("VERIFY_SECRET", "router-test-verify")

	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Role{}, &models.User{}, &models.Company{}, &models.Product{},
		&models.Category{}, &models.Tag{}, &models.Chat{}, &models.Message{},
		&models.Ticket{}, &models.Session{},
	))
	require.NoError(t, db.Create(&models.Role{ID: 1, Name: "utilisateur"}).Error)

	return NewRouter(db, zap.NewNop().Sugar(), config.Load(), nopMailer{}, storage.New(t.TempDir()))
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	srv := newTestServer(t)
	for _, path := range []string{"/category", "/currentuser", "/product"} {
		w := httptest.NewRecorder()
		srv.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}
}

func TestHealthzAndMetricsArePublic(t *testing.T) {
	srv := newTestServer(t)
	for _, path := range []string{"/healthz", "/metrics"} {
		w := httptest.NewRecorder()
		srv.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, w.Code, path)
	}
}

func TestRegisterLoginLogoutFlow(t *testing.T) {
	srv := newTestServer(t)

	w := httptest.NewRecorder()
	srv.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/register",
		strings.NewReader(`{"name_user":"Alice","email":"alice@example.fr","password":"password123"}`)))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var reg struct {
		Data struct {
			AccessToken struct {
				Token string `json:"token"`
			} `json:"access_token"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &reg))
	require.NotEmpty(t, reg.Data.AccessToken.Token)
	bearer := "Bearer " + reg.Data.AccessToken.Token

	req := httptest.NewRequest(http.MethodGet, "/currentuser", nil)
	req.Header.Set("Authorization", bearer)
	w = httptest.NewRecorder()
	srv.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), "alice@example.fr")

	req = httptest.NewRequest(http.MethodPost, "/logout", nil)
	req.Header.Set("Authorization", bearer)
	w = httptest.NewRecorder()
	srv.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	// revoked token no longer passes the middleware
	req = httptest.NewRequest(http.MethodGet, "/currentuser", nil)
	req.Header.Set("Authorization", bearer)
	w = httptest.NewRecorder()
	srv.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
