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

type roleReq struct {
	Name string `json:"name_role" validate:"required,max=50"`
}

func ListRoles(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var rs []models.Role
		if err := db.Find(&rs).Error; err != nil {
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		respondJSON(w, http.StatusOK, rs)
	}
}

func ShowRole(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var role models.Role
		if err := db.First(&role, "id = ?", chi.URLParam(r, "id")).Error; err != nil {
			notFound(w, "Role not found.")
			return
		}
		respondJSON(w, http.StatusOK, role)
	}
}

func CreateRole(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req roleReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		if errs := validate.Fields(req); errs != nil {
			respondValidation(w, errs)
			return
		}
		role := models.Role{Name: req.Name}
		if err := db.Create(&role).Error; err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		respondJSON(w, http.StatusCreated, map[string]any{"status": "Success", "data": role})
	}
}

func UpdateRole(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req roleReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		if errs := validate.Fields(req); errs != nil {
			respondValidation(w, errs)
			return
		}
		var role models.Role
		if err := db.First(&role, "id = ?", chi.URLParam(r, "id")).Error; err != nil {
			notFound(w, "Role not found.")
			return
		}
		role.Name = req.Name
		if err := db.Save(&role).Error; err != nil {
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		respondJSON(w, http.StatusOK, map[string]any{"status": "Mise à jour avec succès", "data": role})
	}
}

func DeleteRole(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var role models.Role
		if err := db.First(&role, "id = ?", chi.URLParam(r, "id")).Error; err != nil {
			notFound(w, "Role not found.")
			return
		}
		if err := db.Delete(&role).Error; err != nil {
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		respondJSON(w, http.StatusOK, map[string]any{"status": "Delete OK"})
	}
}
