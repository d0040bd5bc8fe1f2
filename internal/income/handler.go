package income

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/picthaisky/jobmarket/pkg/response"
)

// Handler handles HTTP requests for provider income and tax documents
type Handler struct {
	service *Service
}

// NewHandler creates a new income handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for income endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/providers/{providerId}/summary", h.GetSummary)
	r.Get("/providers/{providerId}/documents", h.ListDocuments)
	r.Get("/documents/{id}", h.GetDocument)
	r.Post("/documents", h.IssueDocument)

	return r
}

// GetSummary handles GET /income/providers/{providerId}/summary
// @Summary      Get a provider's yearly income summary
// @Description  Totals are aggregated from released payments; defaults to the current year
// @Tags         income
// @Produce      json
// @Param        providerId path int true "Provider user ID"
// @Param        year query int false "Year"
// @Success      200 {object} response.APIResponse{data=SummaryResponse}
// @Router       /income/providers/{providerId}/summary [get]
func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	providerID, err := strconv.ParseInt(chi.URLParam(r, "providerId"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid provider ID")
		return
	}

	year, _ := strconv.Atoi(r.URL.Query().Get("year"))

	summary, err := h.service.GetYearlySummary(r.Context(), providerID, year)
	if err != nil {
		response.InternalError(w, "Failed to get income summary")
		return
	}

	response.JSON(w, http.StatusOK, summary.ToResponse())
}

// ListDocuments handles GET /income/providers/{providerId}/documents
// @Summary      List a provider's tax documents
// @Tags         income
// @Produce      json
// @Param        providerId path int true "Provider user ID"
// @Param        year query int false "Filter by year"
// @Param        page query int false "Page number"
// @Param        per_page query int false "Page size"
// @Success      200 {object} response.APIResponse{data=[]TaxDocumentResponse}
// @Router       /income/providers/{providerId}/documents [get]
func (h *Handler) ListDocuments(w http.ResponseWriter, r *http.Request) {
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

	var year *int
	if raw := r.URL.Query().Get("year"); raw != "" {
		y, err := strconv.Atoi(raw)
		if err != nil {
			response.BadRequest(w, "Invalid year")
			return
		}
		year = &y
	}

	docs, total, err := h.service.ListDocuments(r.Context(), providerID, year, page, perPage)
	if err != nil {
		response.InternalError(w, "Failed to list tax documents")
		return
	}

	docResponses := make([]*TaxDocumentResponse, len(docs))
	for i, doc := range docs {
		docResponses[i] = doc.ToResponse()
	}

	totalPages := (total + perPage - 1) / perPage
	meta := &response.Meta{
		Page:       page,
		PerPage:    perPage,
		Total:      total,
		TotalPages: totalPages,
	}

	response.JSONWithMeta(w, http.StatusOK, docResponses, meta)
}

// GetDocument handles GET /income/documents/{id}
// @Summary      Get a tax document by ID
// @Tags         income
// @Produce      json
// @Param        id path int true "Tax document ID"
// @Success      200 {object} response.APIResponse{data=TaxDocumentResponse}
// @Failure      404 {object} response.APIResponse
// @Router       /income/documents/{id} [get]
func (h *Handler) GetDocument(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid document ID")
		return
	}

	doc, err := h.service.GetDocumentByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrDocumentNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to get tax document")
		return
	}

	response.JSON(w, http.StatusOK, doc.ToResponse())
}

// IssueDocument handles POST /income/documents
// @Summary      Issue an invoice or receipt for a booking
// @Tags         income
// @Accept       json
// @Produce      json
// @Param        request body IssueDocumentRequest true "Document details"
// @Success      201 {object} response.APIResponse{data=TaxDocumentResponse}
// @Failure      400 {object} response.APIResponse
// @Router       /income/documents [post]
func (h *Handler) IssueDocument(w http.ResponseWriter, r *http.Request) {
	var req IssueDocumentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		response.BadRequest(w, "Invalid amount")
		return
	}

	doc, err := h.service.IssueDocument(r.Context(), req.ProviderID, req.BookingID, req.DocumentType, amount, req.Year)
	if err != nil {
		if errors.Is(err, ErrInvalidDocumentType) || errors.Is(err, ErrNegativeAmount) {
			response.BadRequest(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to issue tax document")
		return
	}

	response.JSON(w, http.StatusCreated, doc.ToResponse())
}
