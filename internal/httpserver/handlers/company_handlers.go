package handlers

import (
	"encoding/json"
	"net/http"

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

const companyPictureMaxBytes = 10 << 20

type companyReq struct {
	Name        string `json:"name_company" validate:"required,max=50"`
	Description string `json:"description_company" validate:"required,max=400"`
	Zipcode     string `json:"zipcode" validate:"required,max=5"`
	Phone       string `json:"phone" validate:"required,max=50"`
	Address     string `json:"address" validate:"required,max=150"`
	Siret       string `json:"siret" validate:"required"`
	Town        string `json:"town" validate:"required,max=50"`
	Lat         string `json:"lat"`
	Long        string `json:"long"`
}

func decodeCompanyReq(r *http.Request) (companyReq, error) {
	var req companyReq
	if isMultipart(r) {
		if err := r.ParseMultipartForm(maxMultipartMem); err != nil {
			return req, err
		}
		req.Name = r.FormValue("name_company")
		req.Description = r.FormValue("description_company")
		req.Zipcode = r.FormValue("zipcode")
		req.Phone = r.FormValue("phone")
		req.Address = r.FormValue("address")
		req.Siret = r.FormValue("siret")
		req.Town = r.FormValue("town")
		req.Lat = r.FormValue("lat")
		req.Long = r.FormValue("long")
		return req, nil
	}
	return req, json.NewDecoder(r.Body).Decode(&req)
}

// recomputeUserRole enforces the single cross-entity rule of the domain: a
// user holds role 2 while they own at least one company and role 1 otherwise.
// Roles above 2 are never touched. Must run inside the same transaction as
// the company write.
func recomputeUserRole(tx *gorm.DB, userID uint) error {
	var u models.User
	if err := tx.First(&u, "id = ?", userID).Error; err != nil {
		return err
	}
	if u.RoleID > 2 {
		return nil
	}
	var owned int64
	if err := tx.Model(&models.Company{}).Where("id_user = ?", userID).Count(&owned).Error; err != nil {
		return err
	}
	want := uint(1)
	if owned > 0 {
		want = 2
	}
	if u.RoleID == want {
		return nil
	}
	return tx.Model(&u).Update("id_role", want).Error
}

func ListCompanies(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var cs []models.Company
		if err := db.Find(&cs).Error; err != nil {
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		respondJSON(w, http.StatusOK, cs)
	}
}

func ShowCompany(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var c models.Company
		if err := db.First(&c, "id = ?", chi.URLParam(r, "id")).Error; err != nil {
			notFound(w, "Company not found.")
			return
		}
		respondJSON(w, http.StatusOK, c)
	}
}

func CreateCompany(db *gorm.DB, lg *zap.SugaredLogger, m mail.Mailer, store *storage.Store, cfg config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, err := decodeCompanyReq(r)
		if err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		if errs := validate.Fields(req); errs != nil {
			respondValidation(w, errs)
			return
		}
		filename, provided, uploadErrs := pictureFromRequest(r, "picture_company", "companies", store, companyPictureMaxBytes)
		if uploadErrs != nil {
			respondValidation(w, uploadErrs)
			return
		}
		if !provided {
			respondValidation(w, map[string][]string{"picture_company": {"is required"}})
			return
		}

		userID := auth.UserID(r.Context())
		c := models.Company{
			Name:        req.Name,
			Description: req.Description,
			Picture:     filename,
			Zipcode:     req.Zipcode,
			Phone:       req.Phone,
			Address:     req.Address,
			Siret:       req.Siret,
			Town:        req.Town,
			Lat:         req.Lat,
			Long:        req.Long,
			UserID:      userID,
		}
		err = db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&c).Error; err != nil {
				return err
			}
			return recomputeUserRole(tx, userID)
		})
		if err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}

		var owner models.User
		if err := db.First(&owner, "id = ?", userID).Error; err == nil {
			subject, body := mail.FicheConfirmation(cfg.AppURL + "/company/" + itoa(c.ID))
			if err := m.Send(r.Context(), owner.Email, subject, body); err != nil {
				metrics.MailSendsTotal.WithLabelValues("failure").Inc()
				lg.Errorw("send fiche confirmation", "company_id", c.ID, "error", err)
				respondError(w, http.StatusInternalServerError, "Erreur lors de l'envoi de l'e-mail")
				return
			}
			metrics.MailSendsTotal.WithLabelValues("success").Inc()
		}

		respondJSON(w, http.StatusCreated, map[string]any{"status": "Success", "data": c})
	}
}

func UpdateCompany(db *gorm.DB, lg *zap.SugaredLogger, store *storage.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, err := decodeCompanyReq(r)
		if err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		if errs := validate.Fields(req); errs != nil {
			respondValidation(w, errs)
			return
		}
		var c models.Company
		if err := db.First(&c, "id = ?", chi.URLParam(r, "id")).Error; err != nil {
			notFound(w, "Company not found.")
			return
		}
		filename, provided, uploadErrs := pictureFromRequest(r, "picture_company", "companies", store, companyPictureMaxBytes)
		if uploadErrs != nil {
			respondValidation(w, uploadErrs)
			return
		}
		if provided {
			if err := store.Delete("companies", c.Picture); err != nil {
				lg.Warnw("delete previous company picture", "company_id", c.ID, "error", err)
			}
			c.Picture = filename
		}
		c.Name = req.Name
		c.Description = req.Description
		c.Zipcode = req.Zipcode
		c.Phone = req.Phone
		c.Address = req.Address
		c.Siret = req.Siret
		c.Town = req.Town
		c.Lat = req.Lat
		c.Long = req.Long
		err = db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Save(&c).Error; err != nil {
				return err
			}
			return recomputeUserRole(tx, c.UserID)
		})
		if err != nil {
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		respondJSON(w, http.StatusOK, map[string]any{"status": "Update OK", "data": c})
	}
}

func DeleteCompany(db *gorm.DB, lg *zap.SugaredLogger, store *storage.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var c models.Company
		if err := db.First(&c, "id = ?", chi.URLParam(r, "id")).Error; err != nil {
			notFound(w, "Company not found.")
			return
		}
		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Delete(&c).Error; err != nil {
				return err
			}
			return recomputeUserRole(tx, c.UserID)
		})
		if err != nil {
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if err := store.Delete("companies", c.Picture); err != nil {
			lg.Warnw("delete company picture", "company_id", c.ID, "error", err)
		}
		respondJSON(w, http.StatusOK, map[string]any{"status": "Delete OK"})
	}
}
