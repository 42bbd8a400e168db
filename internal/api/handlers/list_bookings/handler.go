package list_bookings

import (
	"errors"
	"net/http"

	"github.com/soleraspa/booking-service/internal/api/handlers"
	"github.com/soleraspa/booking-service/internal/service/bookings"
)

const (
	msgInvalidDate   = "formato de fecha inválido, se espera YYYY-MM-DD"
	msgInvalidFilter = "filtro de estado inválido"
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

// Handle GET /api/v1/admin/bookings
// Query params: status, startDate, endDate (all optional)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	req, err := ToServiceRequest(query.Get("status"), query.Get("startDate"), query.Get("endDate"))
	if err != nil {
		h.logger.Warn("GET /admin/bookings - Invalid date filter: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.service.List(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /admin/bookings - Invalid filter: %v", err)
			handlers.RespondBadRequest(w, msgInvalidFilter)

		default:
			h.logger.Error("GET /admin/bookings - Failed: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
