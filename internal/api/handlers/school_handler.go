package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/NikosWork1/Industrial-Project-sub000/internal/apperrors"
	"github.com/NikosWork1/Industrial-Project-sub000/internal/models"
	"github.com/NikosWork1/Industrial-Project-sub000/internal/services"
)

// SchoolHandler handles HTTP requests for schools.
type SchoolHandler struct {
	service services.SchoolServiceProvider
}

// NewSchoolHandler creates a new SchoolHandler.
func NewSchoolHandler(service services.SchoolServiceProvider) *SchoolHandler {
	return &SchoolHandler{service: service}
}

// GetAll handles listing all schools. The listing is public so the
// registration form can offer it.
func (h *SchoolHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	schools, err := h.service.GetAllSchools()
	if err != nil {
		log.Error().Err(err).Msg("Failed to list schools")
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, schools)
}

// Get handles retrieving a school by its ID.
func (h *SchoolHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	school, err := h.service.GetSchoolByID(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, school)
}

// Create handles creating a new school.
func (h *SchoolHandler) Create(w http.ResponseWriter, r *http.Request) {
	var school models.School
	if err := json.NewDecoder(r.Body).Decode(&school); err != nil {
		writeError(w, apperrors.Validation("invalid request body"))
		return
	}

	created, err := h.service.CreateSchool(school)
	if err != nil {
		log.Error().Err(err).Str("name", school.Name).Msg("Failed to create school")
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// Update handles updating a school.
func (h *SchoolHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var school models.School
	if err := json.NewDecoder(r.Body).Decode(&school); err != nil {
		writeError(w, apperrors.Validation("invalid request body"))
		return
	}

	updated, err := h.service.UpdateSchool(id, school)
	if err != nil {
		log.Error().Err(err).Str("school_id", id).Msg("Failed to update school")
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// Delete handles removing a school. The service refuses while member
// accounts still reference it.
func (h *SchoolHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.service.DeleteSchool(id); err != nil {
		log.Warn().Err(err).Str("school_id", id).Msg("Failed to delete school")
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
