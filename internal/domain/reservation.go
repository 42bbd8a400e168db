package domain

import (
	"time"

	"github.com/soleraspa/booking-service/pkg/types"
)

// Reservation is one committed (provider, date, time) triple in the
// reservation index. The triple is unique: two bookings can never hold
// the same provider at the same moment.
type Reservation struct {
	ID         int64
	BookingID  int64
	ProviderID string
	Date       time.Time
	StartTime  types.TimeString
	CreatedAt  time.Time
}
