package create_booking

import (
	"errors"
	"net/http"

	"github.com/soleraspa/booking-service/internal/api/handlers"
	commitBooking "github.com/soleraspa/booking-service/internal/usecase/commit_booking"
)

const (
	msgInvalidRequestBody = "cuerpo de la petición inválido"
	msgInvalidDate        = "formato de fecha inválido, se espera YYYY-MM-DD"
	msgSlotNotAvailable   = "el horario seleccionado ya no está disponible"
	msgServiceNotFound    = "servicio no encontrado"
	msgProviderNotFound   = "profesional no encontrado"
	msgCannotPerform      = "el profesional no ofrece este servicio"
	msgProviderNotWorking = "el profesional no está disponible en ese horario"
	msgInvalidBookingDate = "la fecha no es válida para reservar"
	msgDateTooFar         = "la fecha está demasiado lejos en el futuro"
	msgInvalidInput       = "datos de la reserva inválidos"
)

type Handler struct {
	useCase CommitBookingUseCase
	logger  Logger
}

func NewHandler(useCase CommitBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, commitBooking.ErrSlotNotAvailable):
			h.logger.Warn("POST /bookings - Slot not available: date=%s time=%s", req.BookingDate, req.StartTime)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, commitBooking.ErrServiceNotFound):
			h.logger.Warn("POST /bookings - Service not found: %v", err)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, commitBooking.ErrProviderNotFound):
			h.logger.Warn("POST /bookings - Provider not found: %v", err)
			handlers.RespondNotFound(w, msgProviderNotFound)

		case errors.Is(err, commitBooking.ErrProviderCannotPerform):
			h.logger.Warn("POST /bookings - Provider cannot perform service: %v", err)
			handlers.RespondBadRequest(w, msgCannotPerform)

		case errors.Is(err, commitBooking.ErrProviderNotWorking):
			h.logger.Warn("POST /bookings - Provider not working: %v", err)
			handlers.RespondBadRequest(w, msgProviderNotWorking)

		case errors.Is(err, commitBooking.ErrInvalidDate):
			h.logger.Warn("POST /bookings - Invalid booking date: date=%s", req.BookingDate)
			handlers.RespondBadRequest(w, msgInvalidBookingDate)

		case errors.Is(err, commitBooking.ErrDateTooFarInFuture):
			h.logger.Warn("POST /bookings - Date too far in future: date=%s", req.BookingDate)
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, commitBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /bookings - Failed to commit booking: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created: booking_id=%d reference=%s", result.ID, result.Reference)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
