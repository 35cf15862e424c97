package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"craftmarket/internal/auth"
	"craftmarket/internal/models"
	"craftmarket/internal/storage"
	"craftmarket/internal/validate"
)

type userReq struct {
	Name     string `json:"name_user" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

func decodeUserReq(r *http.Request) (userReq, error) {
	var req userReq
	if isMultipart(r) {
		if err := r.ParseMultipartForm(maxMultipartMem); err != nil {
			return req, err
		}
		req.Name = r.FormValue("name_user")
		req.Email = r.FormValue("email")
		req.Password = r.FormValue("password")
	} else if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return req, err
	}
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	return req, nil
}

func ListUsers(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var users []models.User
		if err := db.Find(&users).Error; err != nil {
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		respondJSON(w, http.StatusOK, users)
	}
}

func ShowUser(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var u models.User
		if err := db.First(&u, "id = ?", chi.URLParam(r, "id")).Error; err != nil {
			notFound(w, "User not found.")
			return
		}
		respondJSON(w, http.StatusOK, u)
	}
}

func CreateUser(db *gorm.DB, lg *zap.SugaredLogger, store *storage.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, err := decodeUserReq(r)
		if err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		if errs := validate.Fields(req); errs != nil {
			respondValidation(w, errs)
			return
		}
		var count int64
		db.Model(&models.User{}).Where("email = ?", req.Email).Count(&count)
		if count > 0 {
			respondValidation(w, map[string][]string{"email": {"has already been taken"}})
			return
		}
		filename, _, uploadErrs := pictureFromRequest(r, "picture_user", "users", store, userPictureMaxBytes)
		if uploadErrs != nil {
			respondValidation(w, uploadErrs)
			return
		}
		hash, err := auth.HashPassword(req.Password)
		if err != nil {
			respondError(w, http.StatusInternalServerError, "could not hash password")
			return
		}
		u := models.User{Name: req.Name, Email: req.Email, PasswordHash: hash, Picture: filename, RoleID: 1}
		if err := db.Create(&u).Error; err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		respondJSON(w, http.StatusCreated, map[string]any{"status": "Success", "data": u})
	}
}

func UpdateUser(db *gorm.DB, lg *zap.SugaredLogger, store *storage.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, err := decodeUserReq(r)
		if err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		if errs := validate.Fields(req); errs != nil {
			respondValidation(w, errs)
			return
		}
		var u models.User
		if err := db.First(&u, "id = ?", chi.URLParam(r, "id")).Error; err != nil {
			notFound(w, "User not found.")
			return
		}
		var count int64
		db.Model(&models.User{}).Where("email = ? AND id <> ?", req.Email, u.ID).Count(&count)
		if count > 0 {
			respondValidation(w, map[string][]string{"email": {"has already been taken"}})
			return
		}
		filename, provided, uploadErrs := pictureFromRequest(r, "picture_user", "users", store, userPictureMaxBytes)
		if uploadErrs != nil {
			respondValidation(w, uploadErrs)
			return
		}
		if provided {
			if err := store.Delete("users", u.Picture); err != nil {
				lg.Warnw("delete previous user picture", "user_id", u.ID, "error", err)
			}
			u.Picture = filename
		}
		hash, err := auth.HashPassword(req.Password)
		if err != nil {
			respondError(w, http.StatusInternalServerError, "could not hash password")
			return
		}
		u.Name = req.Name
		u.Email = req.Email
		u.PasswordHash = hash
		if err := db.Save(&u).Error; err != nil {
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		respondJSON(w, http.StatusOK, map[string]any{"status": "Update OK", "data": u})
	}
}

func DeleteUser(db *gorm.DB, lg *zap.SugaredLogger, store *storage.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var u models.User
		if err := db.First(&u, "id = ?", chi.URLParam(r, "id")).Error; err != nil {
			notFound(w, "User not found.")
			return
		}
		if err := db.Delete(&u).Error; err != nil {
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if err := store.Delete("users", u.Picture); err != nil {
			lg.Warnw("delete user picture", "user_id", u.ID, "error", err)
		}
		respondJSON(w, http.StatusOK, map[string]any{"status": "Delete OK"})
	}
}
