package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"craftmarket/internal/auth"
	"craftmarket/internal/config"
	"craftmarket/internal/mail"
	"craftmarket/internal/metrics"
	"craftmarket/internal/models"
	"craftmarket/internal/storage"
	"craftmarket/internal/validate"
)

const userPictureMaxBytes = 5 << 20

type registerReq struct {
	Name     string `json:"name_user" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	RoleID   uint   `json:"id_role"`
}

type accessToken struct {
	Token     string `json:"token"`
	Type      string `json:"type"`
	ExpiresIn int    `json:"expires_in"`
}

func issueToken(db *gorm.DB, userID uint) (accessToken, error) {
	tok, jti, exp, err := auth.Sign(userID)
	if err != nil {
		return accessToken{}, err
	}
	sess := models.Session{JTI: jti, UserID: userID, ExpiresAt: exp, CreatedAt: time.Now()}
	if err := db.Create(&sess).Error; err != nil {
		return accessToken{}, err
	}
	return accessToken{Token: tok, Type: "Bearer", ExpiresIn: int(auth.TTL().Seconds())}, nil
}

func Register(db *gorm.DB, lg *zap.SugaredLogger, m mail.Mailer, store *storage.Store, cfg config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registerReq
		if isMultipart(r) {
			if err := r.ParseMultipartForm(maxMultipartMem); err != nil {
				respondError(w, http.StatusBadRequest, err.Error())
				return
			}
			req.Name = r.FormValue("name_user")
			req.Email = r.FormValue("email")
			req.Password = r.FormValue("password")
			req.RoleID = formUint(r, "id_role")
		} else if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		req.Email = strings.TrimSpace(strings.ToLower(req.Email))
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
		roleID := req.RoleID
		if roleID == 0 {
			roleID = 1
		}
		if err := db.First(&models.Role{}, roleID).Error; err != nil {
			respondValidation(w, map[string][]string{"id_role": {"does not exist"}})
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
		u := models.User{
			Name:         req.Name,
			Email:        req.Email,
			PasswordHash: hash,
			Picture:      filename,
			RoleID:       roleID,
		}
		if err := db.Create(&u).Error; err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}

		tok, err := issueToken(db, u.ID)
		if err != nil {
			respondError(w, http.StatusInternalServerError, "could not issue token")
			return
		}

		sig, err := auth.SignVerification(u.ID)
		if err != nil {
			lg.Errorw("sign verification link", "user_id", u.ID, "error", err)
		} else {
			url := cfg.AppURL + "/verify/email/" + itoa(u.ID) + "?signature=" + sig
			subject, body := mail.Verification(url)
			if err := m.Send(r.Context(), u.Email, subject, body); err != nil {
				metrics.MailSendsTotal.WithLabelValues("failure").Inc()
				lg.Errorw("send verification mail", "user_id", u.ID, "error", err)
			} else {
				metrics.MailSendsTotal.WithLabelValues("success").Inc()
			}
		}

		respondMeta(w, http.StatusOK, "success", "User created successfully!", map[string]any{
			"user":         u,
			"access_token": tok,
		})
	}
}

type loginReq struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func Login(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		if errs := validate.Fields(req); errs != nil {
			respondValidation(w, errs)
			return
		}
		var u models.User
		if err := db.First(&u, "email = ?", strings.TrimSpace(strings.ToLower(req.Email))).Error; err != nil {
			respondError(w, http.StatusUnauthorized, "Invalid email or password")
			return
		}
		if err := auth.CheckPassword(u.PasswordHash, req.Password); err != nil {
			respondError(w, http.StatusUnauthorized, "Invalid email or password")
			return
		}
		tok, err := issueToken(db, u.ID)
		if err != nil {
			respondError(w, http.StatusInternalServerError, "could not issue token")
			return
		}
		respondMeta(w, http.StatusOK, "success", "Login successful.", map[string]any{
			"user":         u,
			"access_token": tok,
		})
	}
}

func Logout(db *gorm.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := auth.FromContext(r.Context())
		now := time.Now()
		if err := db.Model(&models.Session{}).Where("jti = ?", claims.JTI).Update("revoked_at", &now).Error; err != nil {
			respondError(w, http.StatusInternalServerError, "could not revoke session")
			return
		}
		respondMeta(w, http.StatusOK, "success", "Logout successful.", nil)
	}
}

func VerifyEmail(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		var u models.User
		if err := db.First(&u, "id = ?", id).Error; err != nil {
			notFound(w, "User not found.")
			return
		}
		uid, err := auth.VerifySignature(r.URL.Query().Get("signature"))
		if err != nil || uid != u.ID {
			notFound(w, "Invalid or expired signature.")
			return
		}
		now := time.Now()
		u.EmailVerifiedAt = &now
		if err := db.Save(&u).Error; err != nil {
			respondError(w, http.StatusInternalServerError, "could not verify email")
			return
		}
		respondMeta(w, http.StatusOK, "success", "Email verified successfully.", nil)
	}
}

func CurrentUser(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var u models.User
		if err := db.First(&u, "id = ?", auth.UserID(r.Context())).Error; err != nil {
			notFound(w, "User not found.")
			return
		}
		respondMeta(w, http.StatusOK, "success", "Current user.", map[string]any{"user": u})
	}
}
