package domain

import (
	"time"

	"github.com/soleraspa/booking-service/pkg/types"
)

// BookingStatus represents the lifecycle status of a booking.
type BookingStatus string

const (
	// StatusAwaitingPayment is the state right after commit: the slot is
	// reserved, the deposit has not been recorded yet.
	StatusAwaitingPayment BookingStatus = "awaiting_payment"

	// StatusDepositPaid means the 50% deposit has been recorded.
	StatusDepositPaid BookingStatus = "deposit_paid"

	// StatusCompleted means the remaining balance has been settled.
	StatusCompleted BookingStatus = "completed"
)

// ServiceAssignment binds one selected service to the provider who will
// perform it. A booking holds an ordered list of assignments, all sharing
// the booking's date and time.
type ServiceAssignment struct {
	ServiceID  string
	ProviderID string

	// Denormalized catalog data, captured at commit time so history
	// survives later catalog edits.
	ServiceName  string
	ServicePrice float64
	ProviderName string
}

// Booking is one customer's committed appointment: the assignments, the
// shared date/time slot and the payment commitment.
type Booking struct {
	ID        int64
	Reference string

	CustomerName  string
	CustomerEmail string
	CustomerPhone string

	BookingDate time.Time
	StartTime   types.TimeString

	Assignments []ServiceAssignment
	Payment     Payment
	Status      BookingStatus

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ProviderIDs returns the distinct provider ids across assignments,
// preserving first-seen order. A provider performing two services in the
// same appointment occupies the slot once.
func (b *Booking) ProviderIDs() []string {
	seen := make(map[string]struct{}, len(b.Assignments))
	ids := make([]string, 0, len(b.Assignments))
	for _, a := range b.Assignments {
		if _, ok := seen[a.ProviderID]; ok {
			continue
		}
		seen[a.ProviderID] = struct{}{}
		ids = append(ids, a.ProviderID)
	}
	return ids
}

// CanRecordDeposit reports whether the deposit transition is applicable.
func (b *Booking) CanRecordDeposit() bool {
	return b.Status == StatusAwaitingPayment
}

// CanRecordBalance reports whether the balance transition is applicable.
func (b *Booking) CanRecordBalance() bool {
	return b.Status == StatusDepositPaid
}

// IsCompleted reports whether the booking is fully paid.
func (b *Booking) IsCompleted() bool {
	return b.Status == StatusCompleted
}

// BookingsFilter is the admin listing filter.
type BookingsFilter struct {
	Status    *BookingStatus
	StartDate *time.Time
	EndDate   *time.Time
}
