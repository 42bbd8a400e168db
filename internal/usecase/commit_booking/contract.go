package commit_booking

import (
	"context"
	"time"

	"github.com/soleraspa/booking-service/internal/domain"
	"github.com/soleraspa/booking-service/pkg/types"
)

// BookingRepository persists bookings with their assignments.
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
}

// ReservationRepository is the reservation index surface. GetTimesForProviders
// locks the matching rows when called inside a transaction.
type ReservationRepository interface {
	GetTimesForProviders(ctx context.Context, providerIDs []string, date time.Time) (map[string][]types.TimeString, error)
	Insert(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error)
}

// CatalogClient is the catalog service surface used by this use case.
type CatalogClient interface {
	ListActiveServices(ctx context.Context) ([]domain.Service, error)
	ListProviders(ctx context.Context) ([]domain.Provider, error)
}

// TransactionManager runs the conflict check and the writes atomically.
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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
