package provider

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/picthaisky/jobmarket/internal/user"
	"github.com/picthaisky/jobmarket/pkg/middleware"
	"github.com/picthaisky/jobmarket/pkg/response"
)

// Handler handles HTTP requests for provider operations
type Handler struct {
	service *Service
}

// NewHandler creates a new provider handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for provider endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.Create)
	r.Get("/", h.List)
	r.Get("/{id}", h.GetByID)
	r.Put("/{id}", h.Update)
	r.Post("/{id}/verify", h.Verify)

	r.Post("/{id}/availabilities", h.AddAvailability)
	r.Get("/{id}/availabilities", h.ListAvailabilities)
	r.Delete("/{id}/availabilities/{availabilityId}", h.RemoveAvailability)

	return r
}

// Create handles POST /providers
// @Summary      Create a provider profile
// @Tags         providers
// @Accept       json
// @Produce      json
// @Param        request body CreateProfileRequest true "Profile details"
// @Success      201 {object} response.APIResponse{data=ProfileResponse}
// @Failure      400 {object} response.APIResponse
// @Failure      409 {object} response.APIResponse
// @Router       /providers [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	p, err := h.service.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, user.ErrUserNotFound):
			response.NotFound(w, err.Error())
		case errors.Is(err, ErrProfileExists):
			response.Conflict(w, err.Error())
		case errors.Is(err, ErrNotAProvider), errors.Is(err, ErrInvalidHourlyRate):
			response.BadRequest(w, err.Error())
		default:
			response.InternalError(w, "Failed to create provider profile")
		}
		return
	}

	response.JSON(w, http.StatusCreated, p.ToResponse())
}

// GetByID handles GET /providers/{id}
// @Summary      Get provider profile by ID
// @Tags         providers
// @Produce      json
// @Param        id path int true "Profile ID"
// @Success      200 {object} response.APIResponse{data=ProfileResponse}
// @Failure      404 {object} response.APIResponse
// @Router       /providers/{id} [get]
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid profile ID")
		return
	}

	p, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrProfileNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to get provider profile")
		return
	}

	response.JSON(w, http.StatusOK, p.ToResponse())
}

// List handles GET /providers
// @Summary      Search provider profiles
// @Tags         providers
// @Produce      json
// @Param        profession query string false "Filter by profession"
// @Param        location query string false "Filter by location"
// @Param        min_rating query string false "Minimum average rating"
// @Param        page query int false "Page number"
// @Param        per_page query int false "Page size"
// @Success      200 {object} response.APIResponse{data=[]ProfileResponse}
// @Router       /providers [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	perPage, _ := strconv.Atoi(r.URL.Query().Get("per_page"))
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 20
	}

	var filter ListFilter
	if v := r.URL.Query().Get("profession"); v != "" {
		filter.Profession = &v
	}
	if v := r.URL.Query().Get("location"); v != "" {
		filter.Location = &v
	}
	if v := r.URL.Query().Get("min_rating"); v != "" {
		filter.MinRating = &v
	}

	profiles, total, err := h.service.List(r.Context(), filter, page, perPage)
	if err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	profileResponses := make([]*ProfileResponse, len(profiles))
	for i, p := range profiles {
		profileResponses[i] = p.ToResponse()
	}

	totalPages := (total + perPage - 1) / perPage
	meta := &response.Meta{
		Page:       page,
		PerPage:    perPage,
		Total:      total,
		TotalPages: totalPages,
	}

	response.JSONWithMeta(w, http.StatusOK, profileResponses, meta)
}

// Update handles PUT /providers/{id}
// @Summary      Update a provider profile
// @Tags         providers
// @Accept       json
// @Produce      json
// @Param        id path int true "Profile ID"
// @Param        request body UpdateProfileRequest true "Fields to update"
// @Success      200 {object} response.APIResponse{data=ProfileResponse}
// @Failure      404 {object} response.APIResponse
// @Router       /providers/{id} [put]
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid profile ID")
		return
	}

	var req UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	p, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrProfileNotFound):
			response.NotFound(w, err.Error())
		case errors.Is(err, ErrInvalidHourlyRate):
			response.BadRequest(w, err.Error())
		default:
			response.InternalError(w, "Failed to update provider profile")
		}
		return
	}

	response.JSON(w, http.StatusOK, p.ToResponse())
}

// Verify handles POST /providers/{id}/verify
// @Summary      Mark a provider profile as verified
// @Tags         providers
// @Produce      json
// @Param        id path int true "Profile ID"
// @Success      200 {object} response.APIResponse{data=ProfileResponse}
// @Failure      403 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /providers/{id}/verify [post]
func (h *Handler) Verify(w http.ResponseWriter, r *http.Request) {
	role, _ := middleware.GetUserRole(r.Context())
	if role != string(user.RoleAdmin) {
		response.Forbidden(w, "Only admins can verify providers")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid profile ID")
		return
	}

	p, err := h.service.Verify(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrProfileNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to verify provider profile")
		return
	}

	response.JSON(w, http.StatusOK, p.ToResponse())
}

// AddAvailability handles POST /providers/{id}/availabilities
// @Summary      Add a weekly availability slot
// @Tags         providers
// @Accept       json
// @Produce      json
// @Param        id path int true "Profile ID"
// @Param        request body CreateAvailabilityRequest true "Slot details"
// @Success      201 {object} response.APIResponse{data=AvailabilityResponse}
// @Failure      400 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /providers/{id}/availabilities [post]
func (h *Handler) AddAvailability(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid profile ID")
		return
	}

	var req CreateAvailabilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	slot, err := h.service.AddAvailability(r.Context(), id, &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrProfileNotFound):
			response.NotFound(w, err.Error())
		case errors.Is(err, ErrInvalidSlot):
			response.BadRequest(w, err.Error())
		default:
			response.InternalError(w, "Failed to add availability")
		}
		return
	}

	response.JSON(w, http.StatusCreated, slot.ToResponse())
}

// ListAvailabilities handles GET /providers/{id}/availabilities
// @Summary      List a provider's weekly availability
// @Tags         providers
// @Produce      json
// @Param        id path int true "Profile ID"
// @Success      200 {object} response.APIResponse{data=[]AvailabilityResponse}
// @Failure      404 {object} response.APIResponse
// @Router       /providers/{id}/availabilities [get]
func (h *Handler) ListAvailabilities(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid profile ID")
		return
	}

	slots, err := h.service.ListAvailabilities(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrProfileNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to list availabilities")
		return
	}

	slotResponses := make([]*AvailabilityResponse, len(slots))
	for i, a := range slots {
		slotResponses[i] = a.ToResponse()
	}

	response.JSON(w, http.StatusOK, slotResponses)
}

// RemoveAvailability handles DELETE /providers/{id}/availabilities/{availabilityId}
// @Summary      Remove an availability slot
// @Tags         providers
// @Param        id path int true "Profile ID"
// @Param        availabilityId path int true "Availability ID"
// @Success      204 "No Content"
// @Failure      404 {object} response.APIResponse
// @Router       /providers/{id}/availabilities/{availabilityId} [delete]
func (h *Handler) RemoveAvailability(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid profile ID")
		return
	}

	availabilityID, err := strconv.ParseInt(chi.URLParam(r, "availabilityId"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid availability ID")
		return
	}

	if err := h.service.RemoveAvailability(r.Context(), id, availabilityID); err != nil {
		if errors.Is(err, ErrAvailabilityNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to remove availability")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
