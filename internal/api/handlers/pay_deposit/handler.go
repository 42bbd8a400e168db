package pay_deposit

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/soleraspa/booking-service/internal/api/handlers"
	"github.com/soleraspa/booking-service/internal/service/bookings"
	"github.com/soleraspa/booking-service/internal/service/bookings/models"
)

const (
	msgInvalidBookingID   = "ID de reserva inválido"
	msgInvalidRequestBody = "cuerpo de la petición inválido"
	msgBookingNotFound    = "reserva no encontrada"
	msgInvalidTransition  = "el depósito no es aplicable al estado actual de la reserva"
	msgInvalidInput       = "el identificador de la transacción es obligatorio"
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

// Handle POST /api/v1/bookings/{id}/deposit
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /bookings/{id}/deposit - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	var req models.MarkDepositPaidRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/{id}/deposit - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.MarkDepositPaid(r.Context(), id, &req)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("POST /bookings/{id}/deposit - Booking not found: booking_id=%d", id)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, bookings.ErrInvalidTransition):
			h.logger.Warn("POST /bookings/{id}/deposit - Invalid transition: booking_id=%d", id)
			handlers.RespondUnprocessable(w, msgInvalidTransition)

		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("POST /bookings/{id}/deposit - Invalid input: booking_id=%d", id)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /bookings/{id}/deposit - Failed: booking_id=%d, error=%v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/{id}/deposit - Deposit recorded: booking_id=%d", id)
	handlers.RespondJSON(w, http.StatusOK, result)
}
