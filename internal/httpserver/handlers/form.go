package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"craftmarket/internal/storage"
)

const maxMultipartMem = 32 << 20

func isMultipart(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data")
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func formUint(r *http.Request, name string) uint {
	v, err := strconv.ParseUint(strings.TrimSpace(r.FormValue(name)), 10, 64)
	if err != nil {
		return 0
	}
	return uint(v)
}

func formFloat(r *http.Request, name string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(r.FormValue(name)), 64)
	if err != nil {
		return 0
	}
	return v
}

// pictureFromRequest stores an uploaded image field into a bucket. provided
// is false when the request carries no file for the field; errs is non-nil
// when the upload was rejected.
func pictureFromRequest(r *http.Request, field, bucket string, store *storage.Store, maxBytes int64) (name string, provided bool, errs map[string][]string) {
	if !isMultipart(r) || r.MultipartForm == nil {
		return "", false, nil
	}
	fhs := r.MultipartForm.File[field]
	if len(fhs) == 0 {
		return "", false, nil
	}
	name, err := store.Save(bucket, fhs[0], maxBytes)
	if err != nil {
		switch err {
		case storage.ErrBadType:
			return "", true, map[string][]string{field: {"must be a jpeg, jpg, png or gif image"}}
		case storage.ErrTooLarge:
			return "", true, map[string][]string{field: {"exceeds the maximum file size"}}
		default:
			return "", true, map[string][]string{field: {"could not be stored"}}
		}
	}
	return name, true, nil
}
