package pay_balance

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/soleraspa/booking-service/internal/api/handlers"
	"github.com/soleraspa/booking-service/internal/service/bookings"
)

const (
	msgInvalidBookingID  = "ID de reserva inválido"
	msgBookingNotFound   = "reserva no encontrada"
	msgInvalidTransition = "el pago final requiere que el depósito esté registrado"
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

// Handle POST /api/v1/admin/bookings/{id}/balance
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /admin/bookings/{id}/balance - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	result, err := h.service.MarkBalancePaid(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("POST /admin/bookings/{id}/balance - Booking not found: booking_id=%d", id)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, bookings.ErrInvalidTransition):
			h.logger.Warn("POST /admin/bookings/{id}/balance - Invalid transition: booking_id=%d", id)
			handlers.RespondUnprocessable(w, msgInvalidTransition)

		default:
			h.logger.Error("POST /admin/bookings/{id}/balance - Failed: booking_id=%d, error=%v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/bookings/{id}/balance - Balance recorded: booking_id=%d", id)
	handlers.RespondJSON(w, http.StatusOK, result)
}
