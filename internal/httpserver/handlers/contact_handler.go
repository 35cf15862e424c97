package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"craftmarket/internal/mail"
	"craftmarket/internal/metrics"
	"craftmarket/internal/validate"
)

type contactReq struct {
	Subject        string `json:"subject" validate:"required,max=255"`
	Name           string `json:"name" validate:"required,max=100"`
	Email          string `json:"email" validate:"required,email"`
	Message        string `json:"message" validate:"required,max=5000"`
	RecipientEmail string `json:"recipientEmail" validate:"required,email"`
	RecipientType  string `json:"recipientType" validate:"required"`
}

// Contact relays a contact-form message to the requested recipient. No retry:
// a transport failure is reported to the caller as a 500.
func Contact(lg *zap.SugaredLogger, m mail.Mailer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req contactReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		if errs := validate.Fields(req); errs != nil {
			respondValidation(w, errs)
			return
		}
		subject, body := mail.ContactRelay(req.Name, req.Email, req.Subject, req.Message, req.RecipientType)
		if err := m.Send(r.Context(), req.RecipientEmail, subject, body); err != nil {
			metrics.MailSendsTotal.WithLabelValues("failure").Inc()
			lg.Errorw("relay contact mail", "recipient", req.RecipientEmail, "error", err)
			respondError(w, http.StatusInternalServerError, "Erreur lors de l'envoi de l'e-mail")
			return
		}
		metrics.MailSendsTotal.WithLabelValues("success").Inc()
		respondJSON(w, http.StatusOK, map[string]any{"message": "Email envoyé avec succès"})
	}
}
