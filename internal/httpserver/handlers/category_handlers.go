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

type categoryReq struct {
	Name        string `json:"name_category" validate:"required,max=50"`
	Description string `json:"description_category" validate:"required,max=400"`
}

func ListCategories(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var cs []models.Category
		if err := db.Order("name_category asc").Find(&cs).Error; err != nil {
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		respondJSON(w, http.StatusOK, cs)
	}
}

func ShowCategory(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var c models.Category
		if err := db.First(&c, "id = ?", chi.URLParam(r, "id")).Error; err != nil {
			notFound(w, "Category not found.")
			return
		}
		respondJSON(w, http.StatusOK, c)
	}
}

func CreateCategory(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req categoryReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		if errs := validate.Fields(req); errs != nil {
			respondValidation(w, errs)
			return
		}
		c := models.Category{Name: req.Name, Description: req.Description}
		if err := db.Create(&c).Error; err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		respondJSON(w, http.StatusCreated, map[string]any{"status": "Success", "data": c})
	}
}

func UpdateCategory(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req categoryReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		if errs := validate.Fields(req); errs != nil {
			respondValidation(w, errs)
			return
		}
		var c models.Category
		if err := db.First(&c, "id = ?", chi.URLParam(r, "id")).Error; err != nil {
			notFound(w, "Category not found.")
			return
		}
		c.Name = req.Name
		c.Description = req.Description
		if err := db.Save(&c).Error; err != nil {
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		respondJSON(w, http.StatusOK, map[string]any{"status": "Mise à jour avec succès", "data": c})
	}
}

func DeleteCategory(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var c models.Category
		if err := db.First(&c, "id = ?", chi.URLParam(r, "id")).Error; err != nil {
			notFound(w, "Category not found.")
			return
		}
		if err := db.Delete(&c).Error; err != nil {
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		respondJSON(w, http.StatusOK, map[string]any{"status": "Delete OK"})
	}
}
