package delete_booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/soleraspa/booking-service/internal/api/handlers"
	"github.com/soleraspa/booking-service/internal/service/bookings"
)

const (
	msgInvalidBookingID = "ID de reserva inválido"
	msgBookingNotFound  = "reserva no encontrada"
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

// Handle DELETE /api/v1/admin/bookings/{id}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /admin/bookings/{id} - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("DELETE /admin/bookings/{id} - Booking not found: booking_id=%d", id)
			handlers.RespondNotFound(w, msgBookingNotFound)

		default:
			h.logger.Error("DELETE /admin/bookings/{id} - Failed: booking_id=%d, error=%v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /admin/bookings/{id} - Booking removed: booking_id=%d", id)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
