package catalogservice

import (
	"fmt"
	"time"

	"github.com/soleraspa/booking-service/internal/domain"
	"github.com/soleraspa/booking-service/pkg/types"
)

// serviceDTO is the wire model of a catalog service entry.
type serviceDTO struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	DurationMinutes int     `json:"durationMinutes"`
	Price           float64 `json:"price"`
	Active          bool    `json:"active"`
}

func (s serviceDTO) toDomain() domain.Service {
	return domain.Service{
		ID:              s.ID,
		Name:            s.Name,
		DurationMinutes: s.DurationMinutes,
		Price:           s.Price,
		Active:          s.Active,
	}
}

// providerDTO is the wire model of a provider entry. Work days come over the
// wire as integers 0 (Sunday) through 6 (Saturday); daily slots as "HH:MM".
type providerDTO struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Specialties []string `json:"specialties"`
	WorkDays    []int    `json:"workDays"`
	DailySlots  []string `json:"dailySlots"`
}

func (p providerDTO) toDomain() (domain.Provider, error) {
	workDays := make([]time.Weekday, 0, len(p.WorkDays))
	for _, d := range p.WorkDays {
		if d < 0 || d > 6 {
			return domain.Provider{}, fmt.Errorf("%w: provider %s has invalid work day %d", ErrInvalidResponse, p.ID, d)
		}
		workDays = append(workDays, time.Weekday(d))
	}

	slots := make([]types.TimeString, 0, len(p.DailySlots))
	for _, s := range p.DailySlots {
		slot, err := types.NewTimeStringFromString(s)
		if err != nil {
			return domain.Provider{}, fmt.Errorf("%w: provider %s has invalid slot %q", ErrInvalidResponse, p.ID, s)
		}
		slots = append(slots, slot)
	}

	return domain.Provider{
		ID:          p.ID,
		Name:        p.Name,
		Specialties: p.Specialties,
		WorkDays:    workDays,
		DailySlots:  slots,
	}, nil
}

// ErrorResponse is the error body returned by the catalog service.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
