package list_providers

import (
	"net/http"

	"github.com/soleraspa/booking-service/internal/api/handlers"
	"github.com/soleraspa/booking-service/internal/domain"
)

type ProviderResponse struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Specialties []string `json:"specialties"`
	WorkDays    []int    `json:"workDays"` // 0 = Sunday .. 6 = Saturday
	DailySlots  []string `json:"dailySlots"`
}

type ProviderListResponse struct {
	Providers []ProviderResponse `json:"providers"`
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

// Handle GET /api/v1/providers
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	providers, err := h.catalog.ListProviders(r.Context())
	if err != nil {
		h.logger.Error("GET /providers - Failed to list providers: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, fromDomainProviders(providers))
}

func fromDomainProviders(providers []domain.Provider) *ProviderListResponse {
	out := make([]ProviderResponse, 0, len(providers))
	for _, p := range providers {
		workDays := make([]int, 0, len(p.WorkDays))
		for _, d := range p.WorkDays {
			workDays = append(workDays, int(d))
		}
		slots := make([]string, 0, len(p.DailySlots))
		for _, s := range p.DailySlots {
			slots = append(slots, s.String())
		}
		out = append(out, ProviderResponse{
			ID:          p.ID,
			Name:        p.Name,
			Specialties: p.Specialties,
			WorkDays:    workDays,
			DailySlots:  slots,
		})
	}
	return &ProviderListResponse{Providers: out}
}
