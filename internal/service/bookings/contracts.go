package bookings

import (
	"context"

	"github.com/soleraspa/booking-service/internal/domain"
)

// BookingRepository is the booking persistence surface used by the service.
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
	RecordDeposit(ctx context.Context, id int64, transactionID string) error
	RecordBalance(ctx context.Context, id int64) error
	Delete(ctx context.Context, id int64) error
}

// ReservationRepository frees the slot index rows when a booking is removed.
type ReservationRepository interface {
	DeleteByBookingID(ctx context.Context, bookingID int64) (int64, error)
}

// TransactionManager groups multi-table writes.
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Notifier sends customer-facing notifications. Implementations must be safe
// to call best-effort; failures are logged, never propagated.
type Notifier interface {
	SendDepositConfirmation(ctx context.Context, booking *domain.Booking) error
}

// Logger is the logging interface consumed by the service.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
