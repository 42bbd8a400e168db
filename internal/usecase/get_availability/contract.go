package get_availability

import (
	"context"
	"time"

	"github.com/soleraspa/booking-service/internal/domain"
	"github.com/soleraspa/booking-service/pkg/types"
)

// CatalogClient is the catalog service surface used by this use case.
type CatalogClient interface {
	ListProviders(ctx context.Context) ([]domain.Provider, error)
}

// ReservationRepository is the reservation index read surface.
type ReservationRepository interface {
	GetTimesForProviders(ctx context.Context, providerIDs []string, date time.Time) (map[string][]types.TimeString, error)
}

// TimeProvider supplies the current time (swappable in tests).
type TimeProvider interface {
	Now() time.Time
}

// Logger is the logging interface consumed by this use case.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider is the production TimeProvider.
type RealTimeProvider struct{}

// Now returns the current time.
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
