package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/NikosWork1/Industrial-Project-sub000/internal/services"
)

// ApplicationHandler handles the administrator approval workflow for
// pending registrations. All routes are mounted behind RequireAdmin.
type ApplicationHandler struct {
	service services.AccountServiceProvider
}

// NewApplicationHandler creates a new ApplicationHandler.
func NewApplicationHandler(service services.AccountServiceProvider) *ApplicationHandler {
	return &ApplicationHandler{service: service}
}

// GetPending lists the accounts awaiting approval.
func (h *ApplicationHandler) GetPending(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.service.ListPending()
	if err != nil {
		log.Error().Err(err).Msg("Failed to list pending applications")
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, accounts)
}

// Approve transitions a pending account to the user role.
func (h *ApplicationHandler) Approve(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	account, err := h.service.ApproveAccount(id)
	if err != nil {
		log.Warn().Err(err).Str("account_id", id).Msg("Approval failed")
		writeError(w, err)
		return
	}

	log.Info().Str("account_id", id).Str("email", account.Email).Msg("Application approved")
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Application approved",
		"account": account,
	})
}

// Reject permanently deletes a pending application.
func (h *ApplicationHandler) Reject(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.service.RejectAccount(id); err != nil {
		log.Warn().Err(err).Str("account_id", id).Msg("Rejection failed")
		writeError(w, err)
		return
	}

	log.Info().Str("account_id", id).Msg("Application rejected")
	writeJSON(w, http.StatusOK, map[string]string{"message": "Application rejected"})
}
