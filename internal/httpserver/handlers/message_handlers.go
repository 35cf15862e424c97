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

type messageReq struct {
	Content string `json:"content" validate:"required,max=5000"`
	ChatID  uint   `json:"id_chat" validate:"required"`
	UserID  uint   `json:"id_user" validate:"required"`
}

func (req messageReq) checkRefs(db *gorm.DB) map[string][]string {
	if err := db.First(&models.Chat{}, req.ChatID).Error; err != nil {
		return map[string][]string{"id_chat": {"does not exist"}}
	}
	if err := db.First(&models.User{}, req.UserID).Error; err != nil {
		return map[string][]string{"id_user": {"does not exist"}}
	}
	return nil
}

func ListMessages(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var ms []models.Message
		if err := db.Find(&ms).Error; err != nil {
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		respondJSON(w, http.StatusOK, ms)
	}
}

func ShowMessage(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var m models.Message
		if err := db.First(&m, "id = ?", chi.URLParam(r, "id")).Error; err != nil {
			notFound(w, "Message not found.")
			return
		}
		respondJSON(w, http.StatusOK, m)
	}
}

func CreateMessage(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req messageReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		if errs := validate.Fields(req); errs != nil {
			respondValidation(w, errs)
			return
		}
		if errs := req.checkRefs(db); errs != nil {
			respondValidation(w, errs)
			return
		}
		m := models.Message{Content: req.Content, ChatID: req.ChatID, UserID: req.UserID}
		if err := db.Create(&m).Error; err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		respondJSON(w, http.StatusCreated, map[string]any{"status": "Success", "data": m})
	}
}

func UpdateMessage(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req messageReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		if errs := validate.Fields(req); errs != nil {
			respondValidation(w, errs)
			return
		}
		var m models.Message
		if err := db.First(&m, "id = ?", chi.URLParam(r, "id")).Error; err != nil {
			notFound(w, "Message not found.")
			return
		}
		if errs := req.checkRefs(db); errs != nil {
			respondValidation(w, errs)
			return
		}
		m.Content = req.Content
		m.ChatID = req.ChatID
		m.UserID = req.UserID
		if err := db.Save(&m).Error; err != nil {
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		respondJSON(w, http.StatusOK, map[string]any{"status": "Update OK", "data": m})
	}
}

func DeleteMessage(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var m models.Message
		if err := db.First(&m, "id = ?", chi.URLParam(r, "id")).Error; err != nil {
			notFound(w, "Message not found.")
			return
		}
		if err := db.Delete(&m).Error; err != nil {
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		respondJSON(w, http.StatusOK, map[string]any{"status": "Delete OK"})
	}
}
