package get_availability

import (
	"errors"
	"net/http"

	"github.com/soleraspa/booking-service/internal/api/handlers"
	getAvailability "github.com/soleraspa/booking-service/internal/usecase/get_availability"
)

const (
	msgMissingDate      = "la fecha es obligatoria"
	msgInvalidDate      = "formato de fecha inválido, se espera YYYY-MM-DD"
	msgInvalidInput     = "parámetros de consulta inválidos"
	msgInvalidBookDate  = "la fecha no es válida para reservar"
	msgDateTooFar       = "la fecha está demasiado lejos en el futuro"
	msgProviderNotFound = "profesional no encontrado"
)

type Handler struct {
	useCase GetAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/availability
// Query params: date (required, YYYY-MM-DD), providers (comma-separated ids)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /availability - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	useCaseReq, err := ToUseCaseRequest(dateStr, r.URL.Query().Get("providers"))
	if err != nil {
		h.logger.Warn("GET /availability - Invalid date %q: %v", dateStr, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailability.ErrProviderNotFound):
			h.logger.Warn("GET /availability - Provider not found: %v", err)
			handlers.RespondNotFound(w, msgProviderNotFound)

		case errors.Is(err, getAvailability.ErrInvalidDate):
			h.logger.Warn("GET /availability - Invalid booking date: %v", err)
			handlers.RespondBadRequest(w, msgInvalidBookDate)

		case errors.Is(err, getAvailability.ErrDateTooFarInFuture):
			h.logger.Warn("GET /availability - Date too far in future: %v", err)
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, getAvailability.ErrInvalidInput):
			h.logger.Warn("GET /availability - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("GET /availability - Failed: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
