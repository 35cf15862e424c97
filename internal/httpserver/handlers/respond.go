package handlers

import (
	"encoding/json"
	"net/http"
)

type meta struct {
	Code    int    `json:"code"`
	Status  string `json:"status"`
	Message string `json:"message"`
}

func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
}

// respondMeta wraps data in the {meta,data} envelope used by the auth
// endpoints.
func respondMeta(w http.ResponseWriter, code int, status, message string, data interface{}) {
	if data == nil {
		data = map[string]any{}
	}
	respondJSON(w, code, map[string]any{
		"meta": meta{Code: code, Status: status, Message: message},
		"data": data,
	})
}

func respondError(w http.ResponseWriter, code int, message string) {
	respondMeta(w, code, "error", message, nil)
}

// respondValidation reports field-level validation failures.
func respondValidation(w http.ResponseWriter, fields map[string][]string) {
	respondJSON(w, http.StatusBadRequest, map[string]any{
		"meta":   meta{Code: http.StatusBadRequest, Status: "error", Message: "Validation error"},
		"errors": fields,
	})
}

func notFound(w http.ResponseWriter, message string) {
	respondError(w, http.StatusNotFound, message)
}
