package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"craftmarket/internal/models"
	"craftmarket/internal/storage"
	"craftmarket/internal/validate"
)

const productPictureMaxBytes = 10 << 20

// tagList accepts either a JSON array of ids ([1,2,3]) or a comma-separated
// string ("1,2,3"), matching what clients historically sent.
type tagList []uint

func (t *tagList) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" || s == `""` {
		*t = nil
		return nil
	}
	if strings.HasPrefix(s, "\"") {
		var raw string
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		*t = parseTagIDs(raw)
		return nil
	}
	var nums []json.Number
	if err := json.Unmarshal(data, &nums); err != nil {
		return err
	}
	ids := make([]uint, 0, len(nums))
	for _, n := range nums {
		v, err := strconv.ParseUint(n.String(), 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, uint(v))
	}
	*t = dedupeIDs(ids)
	return nil
}

func parseTagIDs(raw string) tagList {
	var ids []uint
	for _, part := range strings.Split(raw, ",") {
		v, err := strconv.ParseUint(strings.TrimSpace(part), 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, uint(v))
	}
	return dedupeIDs(ids)
}

func dedupeIDs(ids []uint) []uint {
	seen := make(map[uint]bool, len(ids))
	out := ids[:0]
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

type productReq struct {
	Name        string  `json:"name_product" validate:"required,max=50"`
	Price       float64 `json:"price" validate:"required,gt=0"`
	Description string  `json:"description_product" validate:"required"`
	CompanyID   uint    `json:"id_company" validate:"required"`
	CategoryID  uint    `json:"id_category" validate:"required"`
	Tags        tagList `json:"tags"`
}

func decodeProductReq(r *http.Request) (productReq, error) {
	var req productReq
	if isMultipart(r) {
		if err := r.ParseMultipartForm(maxMultipartMem); err != nil {
			return req, err
		}
		req.Name = r.FormValue("name_product")
		req.Price = formFloat(r, "price")
		req.Description = r.FormValue("description_product")
		req.CompanyID = formUint(r, "id_company")
		req.CategoryID = formUint(r, "id_category")
		req.Tags = parseTagIDs(r.FormValue("tags"))
		return req, nil
	}
	return req, json.NewDecoder(r.Body).Decode(&req)
}

func (req productReq) checkRefs(db *gorm.DB) map[string][]string {
	if err := db.First(&models.Company{}, req.CompanyID).Error; err != nil {
		return map[string][]string{"id_company": {"does not exist"}}
	}
	if err := db.First(&models.Category{}, req.CategoryID).Error; err != nil {
		return map[string][]string{"id_category": {"does not exist"}}
	}
	return nil
}

// syncTags replaces the product's tag set. Unknown tag ids are rejected.
func syncTags(db *gorm.DB, p *models.Product, ids tagList) (map[string][]string, error) {
	var tags []models.Tag
	if len(ids) > 0 {
		if err := db.Find(&tags, "id IN ?", []uint(ids)).Error; err != nil {
			return nil, err
		}
		if len(tags) != len(ids) {
			return map[string][]string{"tags": {"contains unknown tag ids"}}, nil
		}
	}
	return nil, db.Model(p).Association("Tags").Replace(tags)
}

func ListProducts(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var ps []models.Product
		if err := db.Find(&ps).Error; err != nil {
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		respondJSON(w, http.StatusOK, ps)
	}
}

func ShowProduct(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var p models.Product
		if err := db.Preload("Tags").First(&p, "id = ?", chi.URLParam(r, "id")).Error; err != nil {
			notFound(w, "Product not found.")
			return
		}
		respondJSON(w, http.StatusOK, p)
	}
}

func CreateProduct(db *gorm.DB, lg *zap.SugaredLogger, store *storage.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, err := decodeProductReq(r)
		if err != nil {
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
		filename, provided, uploadErrs := pictureFromRequest(r, "picture_product", "products", store, productPictureMaxBytes)
		if uploadErrs != nil {
			respondValidation(w, uploadErrs)
			return
		}
		if !provided {
			respondValidation(w, map[string][]string{"picture_product": {"is required"}})
			return
		}
		p := models.Product{
			Name:        req.Name,
			Picture:     filename,
			Price:       req.Price,
			Description: req.Description,
			CompanyID:   req.CompanyID,
			CategoryID:  req.CategoryID,
		}
		if err := db.Create(&p).Error; err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		if errs, err := syncTags(db, &p, req.Tags); errs != nil {
			respondValidation(w, errs)
			return
		} else if err != nil {
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		respondJSON(w, http.StatusCreated, map[string]any{"status": "Success", "data": p})
	}
}

func UpdateProduct(db *gorm.DB, lg *zap.SugaredLogger, store *storage.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, err := decodeProductReq(r)
		if err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		if errs := validate.Fields(req); errs != nil {
			respondValidation(w, errs)
			return
		}
		var p models.Product
		if err := db.First(&p, "id = ?", chi.URLParam(r, "id")).Error; err != nil {
			notFound(w, "Product not found.")
			return
		}
		if errs := req.checkRefs(db); errs != nil {
			respondValidation(w, errs)
			return
		}
		filename, provided, uploadErrs := pictureFromRequest(r, "picture_product", "products", store, productPictureMaxBytes)
		if uploadErrs != nil {
			respondValidation(w, uploadErrs)
			return
		}
		if provided {
			if err := store.Delete("products", p.Picture); err != nil {
				lg.Warnw("delete previous product picture", "product_id", p.ID, "error", err)
			}
			p.Picture = filename
		}
		p.Name = req.Name
		p.Price = req.Price
		p.Description = req.Description
		p.CompanyID = req.CompanyID
		p.CategoryID = req.CategoryID
		if err := db.Save(&p).Error; err != nil {
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if errs, err := syncTags(db, &p, req.Tags); errs != nil {
			respondValidation(w, errs)
			return
		} else if err != nil {
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		respondJSON(w, http.StatusOK, map[string]any{"status": "Update OK", "data": p})
	}
}

func DeleteProduct(db *gorm.DB, lg *zap.SugaredLogger, store *storage.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var p models.Product
		if err := db.First(&p, "id = ?", chi.URLParam(r, "id")).Error; err != nil {
			notFound(w, "Product not found.")
			return
		}
		if err := db.Model(&p).Association("Tags").Clear(); err != nil {
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if err := db.Delete(&p).Error; err != nil {
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if err := store.Delete("products", p.Picture); err != nil {
			lg.Warnw("delete product picture", "product_id", p.ID, "error", err)
		}
		respondJSON(w, http.StatusOK, map[string]any{"status": "Delete OK"})
	}
}
