package handlers

import (
	"encoding/json"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/NikosWork1/Industrial-Project-sub000/internal/apperrors"
	"github.com/NikosWork1/Industrial-Project-sub000/internal/auth"
	"github.com/NikosWork1/Industrial-Project-sub000/internal/policy"
	"github.com/NikosWork1/Industrial-Project-sub000/internal/services"
)

// AccountHandler handles HTTP requests for accounts and authentication.
type AccountHandler struct {
	service services.AccountServiceProvider
	tokens  *auth.Manager
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(service services.AccountServiceProvider, tokens *auth.Manager) *AccountHandler {
	return &AccountHandler{service: service, tokens: tokens}
}

// LoginPayload defines the structure for login requests.
type LoginPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register handles new account registration. Every new account starts
// pending and cannot authenticate until approved.
func (h *AccountHandler) Register(w http.ResponseWriter, r *http.Request) {
	var input services.RegisterInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, apperrors.Validation("invalid request body"))
		return
	}

	account, err := h.service.Register(input)
	if err != nil {
		log.Warn().Err(err).Str("email", input.Email).Msg("Registration failed")
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, account)
}

// Login handles authentication and credential token issuance.
func (h *AccountHandler) Login(w http.ResponseWriter, r *http.Request) {
	var payload LoginPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apperrors.Validation("invalid request body"))
		return
	}

	account, err := h.service.Authenticate(payload.Email, payload.Password)
	if err != nil {
		log.Warn().Err(err).Str("email", payload.Email).Msg("Failed authentication attempt")
		writeError(w, err)
		return
	}

	token, err := h.tokens.Generate(account)
	if err != nil {
		log.Error().Err(err).Str("account_id", account.ID).Msg("Failed to generate token")
		writeError(w, err)
		return
	}

	// Set Secure flag based on environment.
	isProd := os.Getenv("APP_ENV") == "production"

	http.SetCookie(w, &http.Cookie{
		Name:     "token",
		Value:    token,
		Expires:  time.Now().Add(h.tokens.TTL()),
		HttpOnly: true,
		Secure:   isProd,
		SameSite: http.SameSiteStrictMode,
		Path:     "/",
	})

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"token":   token,
		"account": account,
	})
}

// GetMe retrieves the currently authenticated account from the token.
func (h *AccountHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		log.Error().Msg("Could not retrieve claims from context")
		writeError(w, apperrors.Forbidden("could not retrieve identity from token"))
		return
	}

	account, err := h.service.GetAccountByID(claims.AccountID)
	if err != nil {
		log.Error().Err(err).Str("account_id", claims.AccountID).Msg("Account from token not found")
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, account)
}

// Get handles retrieving an account by its ID, subject to the view policy.
func (h *AccountHandler) Get(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, apperrors.Forbidden("could not retrieve identity from token"))
		return
	}

	id := chi.URLParam(r, "id")
	account, err := h.service.GetAccountByID(id)
	if err != nil {
		writeError(w, err)
		return
	}

	if !policy.CanViewProfile(claims.Requester(), policy.TargetOf(account)) {
		writeError(w, apperrors.Forbidden("this profile is not public"))
		return
	}

	writeJSON(w, http.StatusOK, account)
}

// GetAll handles the admin listing of every account.
func (h *AccountHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.service.ListAccounts()
	if err != nil {
		log.Error().Err(err).Msg("Failed to list accounts")
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, accounts)
}

// Update handles a partial profile update for the owner or an admin.
func (h *AccountHandler) Update(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, apperrors.Forbidden("could not retrieve identity from token"))
		return
	}

	id := chi.URLParam(r, "id")
	target, err := h.service.GetAccountByID(id)
	if err != nil {
		writeError(w, err)
		return
	}

	if !policy.CanEditProfile(claims.Requester(), policy.TargetOf(target)) {
		writeError(w, apperrors.Forbidden("not allowed to edit this profile"))
		return
	}

	var patch services.ProfilePatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, apperrors.Validation("invalid request body"))
		return
	}

	account, err := h.service.UpdateProfile(id, patch)
	if err != nil {
		log.Error().Err(err).Str("account_id", id).Msg("Failed to update profile")
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, account)
}

// Delete handles the permanent deletion of an account by an admin. The
// delete policy additionally protects admin accounts from each other.
func (h *AccountHandler) Delete(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, apperrors.Forbidden("could not retrieve identity from token"))
		return
	}

	id := chi.URLParam(r, "id")
	target, err := h.service.GetAccountByID(id)
	if err != nil {
		writeError(w, err)
		return
	}

	if !policy.CanDeleteAccount(claims.Requester(), policy.TargetOf(target)) {
		writeError(w, apperrors.Forbidden("not allowed to delete this account"))
		return
	}

	if err := h.service.DeleteAccount(id); err != nil {
		log.Error().Err(err).Str("account_id", id).Msg("Failed to delete account")
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ChangePassword handles changing the caller's own password.
func (h *AccountHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, apperrors.Forbidden("could not retrieve identity from token"))
		return
	}

	id := chi.URLParam(r, "id")
	if claims.AccountID != id {
		writeError(w, apperrors.Forbidden("passwords can only be changed by the account owner"))
		return
	}

	var payload struct {
		CurrentPassword string `json:"currentPassword"`
		NewPassword     string `json:"newPassword"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apperrors.Validation("invalid request body"))
		return
	}

	if err := h.service.ChangePassword(id, payload.CurrentPassword, payload.NewPassword); err != nil {
		log.Warn().Err(err).Str("account_id", id).Msg("Failed to change password")
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Password updated successfully"})
}
