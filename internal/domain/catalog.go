package domain

import (
	"time"

	"github.com/soleraspa/booking-service/pkg/types"
)

// Service is a bookable spa service from the catalog. Read-only here;
// the catalog service owns creation and editing.
type Service struct {
	ID              string
	Name            string
	DurationMinutes int
	Price           float64
	Active          bool
}

// Provider is a service professional with a weekly work-day pattern and a
// fixed catalog of daily time slots, identical on every work day.
type Provider struct {
	ID          string
	Name        string
	Specialties []string
	WorkDays    []time.Weekday
	DailySlots  []types.TimeString
}

// WorksOn reports whether the provider works on the given weekday.
func (p *Provider) WorksOn(day time.Weekday) bool {
	for _, d := range p.WorkDays {
		if d == day {
			return true
		}
	}
	return false
}

// HasSlot reports whether t is in the provider's daily slot catalog.
func (p *Provider) HasSlot(t types.TimeString) bool {
	for _, slot := range p.DailySlots {
		if slot == t {
			return true
		}
	}
	return false
}

// CanPerform reports whether serviceID is in the provider's specialty set.
func (p *Provider) CanPerform(serviceID string) bool {
	for _, s := range p.Specialties {
		if s == serviceID {
			return true
		}
	}
	return false
}
