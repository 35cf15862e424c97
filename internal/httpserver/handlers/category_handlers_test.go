package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"craftmarket/internal/models"
)

func categoryRouter(db *gorm.DB) chi.Router {
	lg := zap.NewNop().Sugar()
	r := chi.NewRouter()
	r.Get("/category", ListCategories(db, lg))
	r.Get("/category/{id}", ShowCategory(db, lg))
	r.Post("/category", CreateCategory(db, lg))
	r.Put("/category/{id}", UpdateCategory(db, lg))
	r.Delete("/category/{id}", DeleteCategory(db, lg))
	return r
}

func TestCreateCategoryAndAlphabeticalIndex(t *testing.T) {
	db := setupTestDB(t)
	r := categoryRouter(db)
	require.NoError(t, db.Create(&models.Category{Name: "Zinguerie", Description: "Toiture"}).Error)
	require.NoError(t, db.Create(&models.Category{Name: "Carrelage", Description: "Sols et murs"}).Error)

	req := httptest.NewRequest(http.MethodPost, "/category", strings.NewReader(`{"name_category":"Plomberie","description_category":"Travaux d'eau"}`))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created struct {
		Status string          `json:"status"`
		Data   models.Category `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "Success", created.Status)
	assert.NotZero(t, created.Data.ID)
	assert.Equal(t, "Plomberie", created.Data.Name)

	req = httptest.NewRequest(http.MethodGet, "/category", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	var list []models.Category
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list, 3)
	// ordered by name ascending
	assert.Equal(t, "Plomberie", list[1].Name)
}

func TestCategoryValidation(t *testing.T) {
	db := setupTestDB(t)
	r := categoryRouter(db)

	req := httptest.NewRequest(http.MethodPost, "/category", strings.NewReader(`{"name_category":""}`))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "name_category")
	assert.Contains(t, w.Body.String(), "description_category")
}

func TestCategoryUpdateThenShowReturnsUpdatedFields(t *testing.T) {
	db := setupTestDB(t)
	r := categoryRouter(db)
	c := models.Category{Name: "Plomberie", Description: "Travaux d'eau"}
	require.NoError(t, db.Create(&c).Error)

	req := httptest.NewRequest(http.MethodPut, "/category/"+itoa(c.ID), strings.NewReader(`{"name_category":"Chauffage","description_category":"Pompes à chaleur"}`))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/category/"+itoa(c.ID), nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	var got models.Category
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "Chauffage", got.Name)
	assert.Equal(t, "Pompes à chaleur", got.Description)
}

func TestCategoryDestroyThenShowNotFound(t *testing.T) {
	db := setupTestDB(t)
	r := categoryRouter(db)
	c := models.Category{Name: "Plomberie", Description: "Travaux d'eau"}
	require.NoError(t, db.Create(&c).Error)

	req := httptest.NewRequest(http.MethodDelete, "/category/"+itoa(c.ID), nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/category/"+itoa(c.ID), nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
