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

type chatReq struct {
	Name string `json:"name_chat" validate:"required,max=100"`
}

func ListChats(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var cs []models.Chat
		if err := db.Find(&cs).Error; err != nil {
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		respondJSON(w, http.StatusOK, cs)
	}
}

func ShowChat(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var c models.Chat
		if err := db.First(&c, "id = ?", chi.URLParam(r, "id")).Error; err != nil {
			notFound(w, "Chat not found.")
			return
		}
		respondJSON(w, http.StatusOK, c)
	}
}

func CreateChat(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req chatReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		if errs := validate.Fields(req); errs != nil {
			respondValidation(w, errs)
			return
		}
		c := models.Chat{Name: req.Name}
		if err := db.Create(&c).Error; err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		respondJSON(w, http.StatusCreated, map[string]any{"status": "Success", "data": c})
	}
}

func UpdateChat(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req chatReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		if errs := validate.Fields(req); errs != nil {
			respondValidation(w, errs)
			return
		}
		var c models.Chat
		if err := db.First(&c, "id = ?", chi.URLParam(r, "id")).Error; err != nil {
			notFound(w, "Chat not found.")
			return
		}
		c.Name = req.Name
		if err := db.Save(&c).Error; err != nil {
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		respondJSON(w, http.StatusOK, map[string]any{"status": "Update OK", "data": c})
	}
}

func DeleteChat(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var c models.Chat
		if err := db.First(&c, "id = ?", chi.URLParam(r, "id")).Error; err != nil {
			notFound(w, "Chat not found.")
			return
		}
		if err := db.Delete(&c).Error; err != nil {
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		respondJSON(w, http.StatusOK, map[string]any{"status": "Delete OK"})
	}
}
