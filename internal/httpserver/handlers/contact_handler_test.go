package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const contactBody = `{"subject":"Devis","name":"Jean","email":"jean@example.com","message":"Bonjour","recipientEmail":"artisan@example.com","recipientType":"company"}`

func TestContactRelaysMail(t *testing.T) {
	fake := &fakeMailer{}
	h := Contact(zap.NewNop().Sugar(), fake)

	req := httptest.NewRequest(http.MethodPost, "/contact", strings.NewReader(contactBody))
	w := httptest.NewRecorder()
	h(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.Len(t, fake.sent, 1)
	assert.Equal(t, "artisan@example.com", fake.sent[0].To)
	assert.Equal(t, "Devis", fake.sent[0].Subject)
	assert.Contains(t, fake.sent[0].Body, "jean@example.com")
}

func TestContactMailFailureIs500(t *testing.T) {
	h := Contact(zap.NewNop().Sugar(), &fakeMailer{fail: true})

	req := httptest.NewRequest(http.MethodPost, "/contact", strings.NewReader(contactBody))
	w := httptest.NewRecorder()
	h(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestContactValidation(t *testing.T) {
	fake := &fakeMailer{}
	h := Contact(zap.NewNop().Sugar(), fake)

	req := httptest.NewRequest(http.MethodPost, "/contact", strings.NewReader(`{"subject":"x"}`))
	w := httptest.NewRecorder()
	h(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, fake.sent)
}
