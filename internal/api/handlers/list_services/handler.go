package list_services

import (
	"net/http"

	"github.com/soleraspa/booking-service/internal/api/handlers"
	"github.com/soleraspa/booking-service/internal/domain"
)

type ServiceResponse struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	DurationMinutes int     `json:"durationMinutes"`
	Price           float64 `json:"price"`
}

type ServiceListResponse struct {
	Services []ServiceResponse `json:"services"`
}

type Handler struct {
	catalog CatalogClient
	logger  Logger
}

func NewHandler(catalog CatalogClient, logger Logger) *Handler {
	return &Handler{
		catalog: catalog,
		logger:  logger,
	}
}

// Handle GET /api/v1/services
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	services, err := h.catalog.ListActiveServices(r.Context())
	if err != nil {
		h.logger.Error("GET /services - Failed to list services: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, fromDomainServices(services))
}

func fromDomainServices(services []domain.Service) *ServiceListResponse {
	out := make([]ServiceResponse, 0, len(services))
	for _, s := range services {
		out = append(out, ServiceResponse{
			ID:              s.ID,
			Name:            s.Name,
			DurationMinutes: s.DurationMinutes,
			Price:           s.Price,
		})
	}
	return &ServiceListResponse{Services: out}
}
