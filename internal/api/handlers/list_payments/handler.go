package list_payments

import (
	"errors"
	"net/http"
	"time"

	"github.com/soleraspa/booking-service/internal/api/handlers"
	"github.com/soleraspa/booking-service/internal/domain"
	"github.com/soleraspa/booking-service/internal/service/bookings"
	"github.com/soleraspa/booking-service/internal/service/bookings/models"
)

const (
	msgInvalidDate   = "formato de fecha inválido, se espera YYYY-MM-DD"
	msgInvalidFilter = "filtro inválido"
)

type Handler struct {
	service BookingsService
	logger  Logger
}

func NewHandler(service BookingsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/admin/payments
// Query params: startDate, endDate (optional, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &models.ListBookingsRequest{}

	if raw := query.Get("startDate"); raw != "" {
		parsed, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			h.logger.Warn("GET /admin/payments - Invalid startDate: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		req.StartDate = &parsed
	}
	if raw := query.Get("endDate"); raw != "" {
		parsed, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			h.logger.Warn("GET /admin/payments - Invalid endDate: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		req.EndDate = &parsed
	}

	result, err := h.service.ListPayments(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /admin/payments - Invalid filter: %v", err)
			handlers.RespondBadRequest(w, msgInvalidFilter)

		default:
			h.logger.Error("GET /admin/payments - Failed: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
