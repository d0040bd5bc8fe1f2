package payment

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/picthaisky/jobmarket/internal/payment/settle"
	"github.com/picthaisky/jobmarket/pkg/response"
)

// Handler handles HTTP requests for payment operations
type Handler struct {
	service *Service
}

// NewHandler creates a new payment handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for payment endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.List)
	r.Get("/calculate", h.Calculate)
	r.Get("/booking/{bookingId}", h.GetByBooking)
	r.Get("/{id}", h.GetByID)
	r.Get("/{id}/transactions", h.ListTransactions)
	r.Post("/{id}/pay", h.MarkPaid)
	r.Post("/{id}/hold", h.Hold)
	r.Post("/{id}/release", h.Release)
	r.Post("/{id}/refund", h.Refund)
	r.Post("/{id}/fail", h.Fail)

	return r
}

// Calculate handles GET /payments/calculate
// @Summary      Preview a settlement breakdown
// @Description  Split a gross amount into commission, withholding tax and net without creating anything
// @Tags         payments
// @Produce      json
// @Param        amount query string true "Gross amount"
// @Success      200 {object} response.APIResponse{data=CalculationResponse}
// @Failure      400 {object} response.APIResponse
// @Router       /payments/calculate [get]
func (h *Handler) Calculate(w http.ResponseWriter, r *http.Request) {
	gross, err := ParseAmount(r.URL.Query().Get("amount"))
	if err != nil {
		response.BadRequest(w, "Invalid amount")
		return
	}

	calc, err := h.service.Preview(r.Context(), gross)
	if err != nil {
		if errors.Is(err, settle.ErrNegativeAmount) {
			response.BadRequest(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to calculate settlement")
		return
	}

	response.JSON(w, http.StatusOK, NewCalculationResponse(calc))
}

// GetByID handles GET /payments/{id}
// @Summary      Get payment by ID
// @Tags         payments
// @Produce      json
// @Param        id path int true "Payment ID"
// @Success      200 {object} response.APIResponse{data=PaymentResponse}
// @Failure      404 {object} response.APIResponse
// @Router       /payments/{id} [get]
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid payment ID")
		return
	}

	p, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrPaymentNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to get payment")
		return
	}

	response.JSON(w, http.StatusOK, p.ToResponse())
}

// GetByBooking handles GET /payments/booking/{bookingId}
// @Summary      Get the payment owned by a booking
// @Tags         payments
// @Produce      json
// @Param        bookingId path int true "Booking ID"
// @Success      200 {object} response.APIResponse{data=PaymentResponse}
// @Failure      404 {object} response.APIResponse
// @Router       /payments/booking/{bookingId} [get]
func (h *Handler) GetByBooking(w http.ResponseWriter, r *http.Request) {
	bookingID, err := strconv.ParseInt(chi.URLParam(r, "bookingId"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid booking ID")
		return
	}

	p, err := h.service.GetByBookingID(r.Context(), bookingID)
	if err != nil {
		if errors.Is(err, ErrPaymentNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to get payment")
		return
	}

	response.JSON(w, http.StatusOK, p.ToResponse())
}

// List handles GET /payments
// @Summary      List payments
// @Tags         payments
// @Produce      json
// @Param        status query string false "Filter by status"
// @Param        page query int false "Page number"
// @Param        per_page query int false "Page size"
// @Success      200 {object} response.APIResponse{data=[]PaymentResponse}
// @Router       /payments [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
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
			response.BadRequest(w, "Invalid payment status")
			return
		}
		status = &s
	}

	payments, total, err := h.service.List(r.Context(), status, page, perPage)
	if err != nil {
		response.InternalError(w, "Failed to list payments")
		return
	}

	paymentResponses := make([]*PaymentResponse, len(payments))
	for i, p := range payments {
		paymentResponses[i] = p.ToResponse()
	}

	totalPages := (total + perPage - 1) / perPage
	meta := &response.Meta{
		Page:       page,
		PerPage:    perPage,
		Total:      total,
		TotalPages: totalPages,
	}

	response.JSONWithMeta(w, http.StatusOK, paymentResponses, meta)
}

// ListTransactions handles GET /payments/{id}/transactions
// @Summary      List a payment's ledger transactions
// @Description  The ledger is append-only and returned in insertion order
// @Tags         payments
// @Produce      json
// @Param        id path int true "Payment ID"
// @Success      200 {object} response.APIResponse{data=[]TransactionResponse}
// @Failure      404 {object} response.APIResponse
// @Router       /payments/{id}/transactions [get]
func (h *Handler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid payment ID")
		return
	}

	transactions, err := h.service.ListTransactions(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrPaymentNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to list transactions")
		return
	}

	transactionResponses := make([]*TransactionResponse, len(transactions))
	for i, txn := range transactions {
		transactionResponses[i] = txn.ToResponse()
	}

	response.JSON(w, http.StatusOK, transactionResponses)
}

// MarkPaid handles POST /payments/{id}/pay
// @Summary      Mark a pending payment as paid
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        id path int true "Payment ID"
// @Param        request body MarkPaidRequest false "Gateway confirmation"
// @Success      200 {object} response.APIResponse{data=PaymentResponse}
// @Failure      404 {object} response.APIResponse
// @Failure      409 {object} response.APIResponse
// @Router       /payments/{id}/pay [post]
func (h *Handler) MarkPaid(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid payment ID")
		return
	}

	var req MarkPaidRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.BadRequest(w, "Invalid request body")
			return
		}
	}

	p, err := h.service.MarkPaid(r.Context(), id, req.GatewayTransactionID)
	if err != nil {
		h.writeTransitionError(w, err, "Failed to mark payment as paid")
		return
	}

	response.JSON(w, http.StatusOK, p.ToResponse())
}

// Hold handles POST /payments/{id}/hold
// @Summary      Move a paid payment into escrow
// @Tags         payments
// @Produce      json
// @Param        id path int true "Payment ID"
// @Success      200 {object} response.APIResponse{data=PaymentResponse}
// @Failure      404 {object} response.APIResponse
// @Failure      409 {object} response.APIResponse
// @Router       /payments/{id}/hold [post]
func (h *Handler) Hold(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid payment ID")
		return
	}

	p, err := h.service.Hold(r.Context(), id)
	if err != nil {
		h.writeTransitionError(w, err, "Failed to hold payment")
		return
	}

	response.JSON(w, http.StatusOK, p.ToResponse())
}

// Release handles POST /payments/{id}/release
// @Summary      Release escrowed funds to the provider
// @Description  Records the release transaction for the stored net amount and issues the withholding certificate
// @Tags         payments
// @Produce      json
// @Param        id path int true "Payment ID"
// @Success      200 {object} response.APIResponse{data=PaymentResponse}
// @Failure      404 {object} response.APIResponse
// @Failure      409 {object} response.APIResponse
// @Router       /payments/{id}/release [post]
func (h *Handler) Release(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid payment ID")
		return
	}

	p, err := h.service.Release(r.Context(), id)
	if err != nil {
		h.writeTransitionError(w, err, "Failed to release payment")
		return
	}

	response.JSON(w, http.StatusOK, p.ToResponse())
}

// Refund handles POST /payments/{id}/refund
// @Summary      Refund a paid or held payment to the client
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        id path int true "Payment ID"
// @Param        request body RefundRequest true "Refund reason"
// @Success      200 {object} response.APIResponse{data=PaymentResponse}
// @Failure      404 {object} response.APIResponse
// @Failure      409 {object} response.APIResponse
// @Router       /payments/{id}/refund [post]
func (h *Handler) Refund(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid payment ID")
		return
	}

	var req RefundRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if req.Reason == "" {
		response.BadRequest(w, "Refund reason is required")
		return
	}

	p, err := h.service.Refund(r.Context(), id, req.Reason)
	if err != nil {
		h.writeTransitionError(w, err, "Failed to refund payment")
		return
	}

	response.JSON(w, http.StatusOK, p.ToResponse())
}

// Fail handles POST /payments/{id}/fail
// @Summary      Mark a payment as failed
// @Tags         payments
// @Produce      json
// @Param        id path int true "Payment ID"
// @Success      200 {object} response.APIResponse{data=PaymentResponse}
// @Failure      404 {object} response.APIResponse
// @Failure      409 {object} response.APIResponse
// @Router       /payments/{id}/fail [post]
func (h *Handler) Fail(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid payment ID")
		return
	}

	p, err := h.service.Fail(r.Context(), id)
	if err != nil {
		h.writeTransitionError(w, err, "Failed to fail payment")
		return
	}

	response.JSON(w, http.StatusOK, p.ToResponse())
}

func (h *Handler) writeTransitionError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, ErrPaymentNotFound):
		response.NotFound(w, err.Error())
	case errors.Is(err, ErrInvalidStatusChange):
		response.Conflict(w, err.Error())
	case errors.Is(err, settle.ErrNegativeAmount):
		response.BadRequest(w, err.Error())
	default:
		response.InternalError(w, fallback)
	}
}
