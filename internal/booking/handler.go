package booking

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/picthaisky/jobmarket/internal/payment"
	"github.com/picthaisky/jobmarket/internal/payment/settle"
	"github.com/picthaisky/jobmarket/pkg/middleware"
	"github.com/picthaisky/jobmarket/pkg/response"
)

// Handler handles HTTP requests for booking operations
type Handler struct {
	service *Service
}

// NewHandler creates a new booking handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for booking endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.Create)
	r.Get("/", h.List)
	r.Get("/{id}", h.GetByID)
	r.Post("/{id}/accept", h.Accept)
	r.Post("/{id}/start", h.Start)
	r.Post("/{id}/complete", h.Complete)
	r.Post("/{id}/cancel", h.Cancel)
	r.Post("/{id}/dispute", h.Dispute)

	return r
}

// Create handles POST /bookings
// @Summary      Create a new booking
// @Description  Books a provider for a job; total = hourly rate x estimated hours
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Param        request body CreateBookingRequest true "Booking details"
// @Success      201 {object} response.APIResponse{data=BookingResponse}
// @Failure      400 {object} response.APIResponse
// @Router       /bookings [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	clientID, ok := middleware.GetUserID(r.Context())
	if !ok {
		clientID = 1
	}

	var req CreateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	b, err := h.service.Create(r.Context(), clientID, &req)
	if err != nil {
		if errors.Is(err, ErrCannotBookSelf) || errors.Is(err, ErrInvalidAmount) || errors.Is(err, ErrInvalidSchedule) {
			response.BadRequest(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to create booking")
		return
	}

	response.JSON(w, http.StatusCreated, b.ToResponse())
}

// GetByID handles GET /bookings/{id}
// @Summary      Get booking by ID
// @Tags         bookings
// @Produce      json
// @Param        id path int true "Booking ID"
// @Success      200 {object} response.APIResponse{data=BookingResponse}
// @Failure      404 {object} response.APIResponse
// @Router       /bookings/{id} [get]
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid booking ID")
		return
	}

	b, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrBookingNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to get booking")
		return
	}

	response.JSON(w, http.StatusOK, b.ToResponse())
}

// List handles GET /bookings
// @Summary      List the acting user's bookings
// @Tags         bookings
// @Produce      json
// @Param        status query string false "Filter by status"
// @Param        page query int false "Page number"
// @Param        per_page query int false "Page size"
// @Success      200 {object} response.APIResponse{data=[]BookingResponse}
// @Router       /bookings [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		userID = 1
	}

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	perPage, _ := strconv.Atoi(r.URL.Query().Get("per_page"))
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 20
	}

	var status *Status
	if raw := r.URL.Query().Get("status"); raw != "" {
		s := Status(raw)
		if !s.Valid() {
			response.BadRequest(w, "Invalid booking status")
			return
		}
		status = &s
	}

	bookings, total, err := h.service.ListByUser(r.Context(), userID, status, page, perPage)
	if err != nil {
		response.InternalError(w, "Failed to list bookings")
		return
	}

	bookingResponses := make([]*BookingResponse, len(bookings))
	for i, b := range bookings {
		bookingResponses[i] = b.ToResponse()
	}

	totalPages := (total + perPage - 1) / perPage
	meta := &response.Meta{
		Page:       page,
		PerPage:    perPage,
		Total:      total,
		TotalPages: totalPages,
	}

	response.JSONWithMeta(w, http.StatusOK, bookingResponses, meta)
}

// Accept handles POST /bookings/{id}/accept
// @Summary      Accept a pending booking
// @Tags         bookings
// @Produce      json
// @Param        id path int true "Booking ID"
// @Success      200 {object} response.APIResponse{data=BookingResponse}
// @Failure      404 {object} response.APIResponse
// @Failure      409 {object} response.APIResponse
// @Router       /bookings/{id}/accept [post]
func (h *Handler) Accept(w http.ResponseWriter, r *http.Request) {
	h.doTransition(w, r, h.service.Accept)
}

// Start handles POST /bookings/{id}/start
// @Summary      Start an accepted booking
// @Tags         bookings
// @Produce      json
// @Param        id path int true "Booking ID"
// @Success      200 {object} response.APIResponse{data=BookingResponse}
// @Failure      404 {object} response.APIResponse
// @Failure      409 {object} response.APIResponse
// @Router       /bookings/{id}/start [post]
func (h *Handler) Start(w http.ResponseWriter, r *http.Request) {
	h.doTransition(w, r, h.service.Start)
}

// Complete handles POST /bookings/{id}/complete
// @Summary      Confirm completion and capture payment
// @Description  Completes the booking and creates the escrowed payment with its settlement ledger
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Param        id path int true "Booking ID"
// @Param        request body CompleteBookingRequest true "Payment details"
// @Success      200 {object} response.APIResponse{data=BookingWithPayment}
// @Failure      404 {object} response.APIResponse
// @Failure      409 {object} response.APIResponse
// @Router       /bookings/{id}/complete [post]
func (h *Handler) Complete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid booking ID")
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		userID = 1
	}

	var req CompleteBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	b, p, err := h.service.Complete(r.Context(), id, userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrBookingNotFound):
			response.NotFound(w, err.Error())
		case errors.Is(err, ErrNotClient):
			response.Forbidden(w, err.Error())
		case errors.Is(err, ErrInvalidStatusChange), errors.Is(err, payment.ErrPaymentExists):
			response.Conflict(w, err.Error())
		case errors.Is(err, payment.ErrInvalidMethod), errors.Is(err, settle.ErrNegativeAmount):
			response.BadRequest(w, err.Error())
		default:
			response.InternalError(w, "Failed to complete booking")
		}
		return
	}

	result := &BookingWithPayment{
		Booking: b.ToResponse(),
		Payment: p.ToResponse(),
	}
	response.JSON(w, http.StatusOK, result)
}

// Cancel handles POST /bookings/{id}/cancel
// @Summary      Cancel a booking that has not started
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Param        id path int true "Booking ID"
// @Param        request body CancelBookingRequest true "Cancellation reason"
// @Success      200 {object} response.APIResponse{data=BookingResponse}
// @Failure      404 {object} response.APIResponse
// @Failure      409 {object} response.APIResponse
// @Router       /bookings/{id}/cancel [post]
func (h *Handler) Cancel(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid booking ID")
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		userID = 1
	}

	var req CancelBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if req.Reason == "" {
		response.BadRequest(w, "Cancellation reason is required")
		return
	}

	b, err := h.service.Cancel(r.Context(), id, userID, req.Reason)
	if err != nil {
		h.writeTransitionError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, b.ToResponse())
}

// Dispute handles POST /bookings/{id}/dispute
// @Summary      Dispute a completed booking
// @Tags         bookings
// @Produce      json
// @Param        id path int true "Booking ID"
// @Success      200 {object} response.APIResponse{data=BookingResponse}
// @Failure      404 {object} response.APIResponse
// @Failure      409 {object} response.APIResponse
// @Router       /bookings/{id}/dispute [post]
func (h *Handler) Dispute(w http.ResponseWriter, r *http.Request) {
	h.doTransition(w, r, h.service.Dispute)
}

func (h *Handler) doTransition(w http.ResponseWriter, r *http.Request, op func(ctx context.Context, id, userID int64) (*Booking, error)) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid booking ID")
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		userID = 1
	}

	b, err := op(r.Context(), id, userID)
	if err != nil {
		h.writeTransitionError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, b.ToResponse())
}

func (h *Handler) writeTransitionError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrBookingNotFound):
		response.NotFound(w, err.Error())
	case errors.Is(err, ErrNotProvider), errors.Is(err, ErrNotClient), errors.Is(err, ErrNotParticipant):
		response.Forbidden(w, err.Error())
	case errors.Is(err, ErrInvalidStatusChange):
		response.Conflict(w, err.Error())
	default:
		response.InternalError(w, "Failed to update booking")
	}
}
