package commit_booking

import (
	"time"

	"github.com/soleraspa/booking-service/internal/domain"
	"github.com/soleraspa/booking-service/pkg/types"
)

// AssignmentRequest is one service/provider pair selected by the customer.
type AssignmentRequest struct {
	ServiceID  string
	ProviderID string
}

// Request carries everything needed to commit a booking.
type Request struct {
	CustomerName  string
	CustomerEmail string
	CustomerPhone string

	Date      time.Time
	StartTime types.TimeString

	Assignments   []AssignmentRequest
	PaymentMethod domain.PaymentMethod
}

// Response is the committed booking.
type Response struct {
	ID        int64
	Reference string

	CustomerName  string
	CustomerEmail string
	CustomerPhone string

	BookingDate time.Time
	StartTime   types.TimeString

	Assignments []domain.ServiceAssignment
	Status      string

	PaymentMethod   string
	PaymentStatus   string
	TotalAmount     float64
	DepositAmount   float64
	RemainingAmount float64

	CreatedAt time.Time
	UpdatedAt time.Time
}
