package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"craftmarket/internal/models"
	"craftmarket/internal/validate"
)

type tagReq struct {
	Name string `json:"name_tag" validate:"required,max=50"`
}

func ListTags(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var ts []models.Tag
		if err := db.Order("name_tag asc").Find(&ts).Error; err != nil {
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		respondJSON(w, http.StatusOK, ts)
	}
}

func ShowTag(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var t models.Tag
		if err := db.First(&t, "id = ?", chi.URLParam(r, "id")).Error; err != nil {
			notFound(w, "Tag not found.")
			return
		}
		respondJSON(w, http.StatusOK, t)
	}
}

func CreateTag(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req tagReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		if errs := validate.Fields(req); errs != nil {
			respondValidation(w, errs)
			return
		}
		t := models.Tag{Name: req.Name}
		if err := db.Create(&t).Error; err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		respondJSON(w, http.StatusCreated, map[string]any{"status": "Success", "data": t})
	}
}

func UpdateTag(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req tagReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		if errs := validate.Fields(req); errs != nil {
			respondValidation(w, errs)
			return
		}
		var t models.Tag
		if err := db.First(&t, "id = ?", chi.URLParam(r, "id")).Error; err != nil {
			notFound(w, "Tag not found.")
			return
		}
		t.Name = req.Name
		if err := db.Save(&t).Error; err != nil {
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		respondJSON(w, http.StatusOK, map[string]any{"status": "Mise à jour avec succès", "data": t})
	}
}

func DeleteTag(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var t models.Tag
		if err := db.First(&t, "id = ?", chi.URLParam(r, "id")).Error; err != nil {
			notFound(w, "Tag not found.")
			return
		}
		// drop join rows so no product keeps a dangling tag id
		if err := db.Exec("DELETE FROM products_tags WHERE tag_id = ?", t.ID).Error; err != nil {
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if err := db.Delete(&t).Error; err != nil {
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		respondJSON(w, http.StatusOK, map[string]any{"status": "Delete OK"})
	}
}
