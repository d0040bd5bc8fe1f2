package review

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/picthaisky/jobmarket/internal/booking"
	"github.com/picthaisky/jobmarket/pkg/middleware"
	"github.com/picthaisky/jobmarket/pkg/response"
)

// Handler handles HTTP requests for review operations
type Handler struct {
	service *Service
}

// NewHandler creates a new review handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for review endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.Create)
	r.Get("/{id}", h.GetByID)
	r.Get("/booking/{bookingId}", h.GetByBooking)
	r.Get("/provider/{providerId}", h.ListByProvider)

	return r
}

// Create handles POST /reviews
// @Summary      Review a completed booking
// @Description  One review per booking, left by the client
// @Tags         reviews
// @Accept       json
// @Produce      json
// @Param        request body CreateReviewRequest true "Review details"
// @Success      201 {object} response.APIResponse{data=ReviewResponse}
// @Failure      400 {object} response.APIResponse
// @Failure      403 {object} response.APIResponse
// @Failure      409 {object} response.APIResponse
// @Router       /reviews [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	reviewerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		reviewerID = 1
	}

	var req CreateReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	rv, err := h.service.Create(r.Context(), reviewerID, &req)
	if err != nil {
		switch {
		case errors.Is(err, booking.ErrBookingNotFound):
			response.NotFound(w, err.Error())
		case errors.Is(err, ErrNotBookingClient):
			response.Forbidden(w, err.Error())
		case errors.Is(err, ErrReviewExists):
			response.Conflict(w, err.Error())
		case errors.Is(err, ErrInvalidRating), errors.Is(err, ErrBookingNotReviewed):
			response.BadRequest(w, err.Error())
		default:
			response.InternalError(w, "Failed to create review")
		}
		return
	}

	response.JSON(w, http.StatusCreated, rv.ToResponse())
}

// GetByID handles GET /reviews/{id}
// @Summary      Get review by ID
// @Tags         reviews
// @Produce      json
// @Param        id path int true "Review ID"
// @Success      200 {object} response.APIResponse{data=ReviewResponse}
// @Failure      404 {object} response.APIResponse
// @Router       /reviews/{id} [get]
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid review ID")
		return
	}

	rv, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrReviewNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to get review")
		return
	}

	response.JSON(w, http.StatusOK, rv.ToResponse())
}

// GetByBooking handles GET /reviews/booking/{bookingId}
// @Summary      Get the review for a booking
// @Tags         reviews
// @Produce      json
// @Param        bookingId path int true "Booking ID"
// @Success      200 {object} response.APIResponse{data=ReviewResponse}
// @Failure      404 {object} response.APIResponse
// @Router       /reviews/booking/{bookingId} [get]
func (h *Handler) GetByBooking(w http.ResponseWriter, r *http.Request) {
	bookingID, err := strconv.ParseInt(chi.URLParam(r, "bookingId"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid booking ID")
		return
	}

	rv, err := h.service.GetByBookingID(r.Context(), bookingID)
	if err != nil {
		if errors.Is(err, ErrReviewNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to get review")
		return
	}

	response.JSON(w, http.StatusOK, rv.ToResponse())
}

// ListByProvider handles GET /reviews/provider/{providerId}
// @Summary      List reviews received by a provider
// @Tags         reviews
// @Produce      json
// @Param        providerId path int true "Provider user ID"
// @Param        page query int false "Page number"
// @Param        per_page query int false "Page size"
// @Success      200 {object} response.APIResponse{data=[]ReviewResponse}
// @Router       /reviews/provider/{providerId} [get]
func (h *Handler) ListByProvider(w http.ResponseWriter, r *http.Request) {
	providerID, err := strconv.ParseInt(chi.URLParam(r, "providerId"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid provider ID")
		return
	}

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	perPage, _ := strconv.Atoi(r.URL.Query().Get("per_page"))
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 20
	}

	reviews, total, err := h.service.ListByProvider(r.Context(), providerID, page, perPage)
	if err != nil {
		response.InternalError(w, "Failed to list reviews")
		return
	}

	reviewResponses := make([]*ReviewResponse, len(reviews))
	for i, rv := range reviews {
		reviewResponses[i] = rv.ToResponse()
	}

	totalPages := (total + perPage - 1) / perPage
	meta := &response.Meta{
		Page:       page,
		PerPage:    perPage,
		Total:      total,
		TotalPages: totalPages,
	}

	response.JSONWithMeta(w, http.StatusOK, reviewResponses, meta)
}
