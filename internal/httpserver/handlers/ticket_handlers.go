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

type ticketReq struct {
	Title       string `json:"title" validate:"required,max=100"`
	Description string `json:"description" validate:"required,max=5000"`
	UserID      uint   `json:"id_user" validate:"required"`
}

func ListTickets(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var ts []models.Ticket
		if err := db.Find(&ts).Error; err != nil {
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		respondJSON(w, http.StatusOK, ts)
	}
}

func ShowTicket(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var t models.Ticket
		if err := db.First(&t, "id = ?", chi.URLParam(r, "id")).Error; err != nil {
			notFound(w, "Ticket not found.")
			return
		}
		respondJSON(w, http.StatusOK, t)
	}
}

func CreateTicket(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ticketReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		if errs := validate.Fields(req); errs != nil {
			respondValidation(w, errs)
			return
		}
		if err := db.First(&models.User{}, req.UserID).Error; err != nil {
			respondValidation(w, map[string][]string{"id_user": {"does not exist"}})
			return
		}
		t := models.Ticket{Title: req.Title, Description: req.Description, UserID: req.UserID}
		if err := db.Create(&t).Error; err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		respondJSON(w, http.StatusCreated, map[string]any{"status": "Success", "data": t})
	}
}

func UpdateTicket(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ticketReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		if errs := validate.Fields(req); errs != nil {
			respondValidation(w, errs)
			return
		}
		var t models.Ticket
		if err := db.First(&t, "id = ?", chi.URLParam(r, "id")).Error; err != nil {
			notFound(w, "Ticket not found.")
			return
		}
		if err := db.First(&models.User{}, req.UserID).Error; err != nil {
			respondValidation(w, map[string][]string{"id_user": {"does not exist"}})
			return
		}
		t.Title = req.Title
		t.Description = req.Description
		t.UserID = req.UserID
		if err := db.Save(&t).Error; err != nil {
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		respondJSON(w, http.StatusOK, map[string]any{"status": "Update OK", "data": t})
	}
}

func DeleteTicket(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var t models.Ticket
		if err := db.First(&t, "id = ?", chi.URLParam(r, "id")).Error; err != nil {
			notFound(w, "Ticket not found.")
			return
		}
		if err := db.Delete(&t).Error; err != nil {
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		respondJSON(w, http.StatusOK, map[string]any{"status": "Delete OK"})
	}
}
