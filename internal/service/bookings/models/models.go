package models

import (
	"errors"
	"time"

	"github.com/soleraspa/booking-service/internal/domain"
)

var (
	// ErrInvalidStatus is returned when a status string is not recognized.
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request models

// ListBookingsRequest is the admin listing filter.
type ListBookingsRequest struct {
	Status    *string    `json:"status,omitempty"`
	StartDate *time.Time `json:"startDate,omitempty"`
	EndDate   *time.Time `json:"endDate,omitempty"`
}

// ToDomainFilter converts the request into a domain filter.
func (r *ListBookingsRequest) ToDomainFilter() (domain.BookingsFilter, error) {
	filter := domain.BookingsFilter{
		StartDate: r.StartDate,
		EndDate:   r.EndDate,
	}

	if r.Status != nil {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// MarkDepositPaidRequest records the deposit payment.
type MarkDepositPaidRequest struct {
	TransactionID string `json:"transactionId"`
}

// Response models

// AssignmentResponse is one service/provider pair of a booking.
type AssignmentResponse struct {
	ServiceID    string  `json:"serviceId"`
	ServiceName  string  `json:"serviceName"`
	ServicePrice float64 `json:"servicePrice"`
	ProviderID   string  `json:"providerId"`
	ProviderName string  `json:"providerName"`
}

// BookingResponse is the booking DTO.
type BookingResponse struct {
	ID        int64  `json:"id"`
	Reference string `json:"reference"`

	CustomerName  string `json:"customerName"`
	CustomerEmail string `json:"customerEmail"`
	CustomerPhone string `json:"customerPhone,omitempty"`

	BookingDate string `json:"bookingDate"` // "2025-10-15"
	StartTime   string `json:"startTime"`   // "10:00"
	Status      string `json:"status"`

	Assignments []AssignmentResponse `json:"assignments"`

	PaymentMethod   string  `json:"paymentMethod"`
	PaymentStatus   string  `json:"paymentStatus"`
	TotalAmount     float64 `json:"totalAmount"`
	DepositAmount   float64 `json:"depositAmount"`
	RemainingAmount float64 `json:"remainingAmount"`
	TransactionID   *string `json:"transactionId,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse is the list envelope.
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Payment report models

const (
	PaymentTypeDeposit = "deposit"
	PaymentTypeFinal   = "final"

	PaymentEntryCompleted = "completed"
	PaymentEntryPending   = "pending"
)

// PaymentEntry is one row of the payments report: either the deposit or the
// final payment of a booking.
type PaymentEntry struct {
	BookingID  int64   `json:"bookingId"`
	Reference  string  `json:"reference"`
	ClientName string  `json:"clientName"`
	Method     string  `json:"method"`
	Amount     float64 `json:"amount"`
	Date       string  `json:"date"` // "2025-10-15"
	Type       string  `json:"type"`
	Status     string  `json:"status"`
}

// PaymentsReportResponse aggregates payment entries with revenue totals.
type PaymentsReportResponse struct {
	Payments        []PaymentEntry `json:"payments"`
	TotalRevenue    float64        `json:"totalRevenue"`
	PendingPayments float64        `json:"pendingPayments"`
}

// Conversion helpers

// ToDomainBookingStatus parses a status string.
func ToDomainBookingStatus(s string) (domain.BookingStatus, error) {
	switch domain.BookingStatus(s) {
	case domain.StatusAwaitingPayment, domain.StatusDepositPaid, domain.StatusCompleted:
		return domain.BookingStatus(s), nil
	default:
		return "", ErrInvalidStatus
	}
}

// FromDomainBooking converts a domain booking into the DTO.
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	assignments := make([]AssignmentResponse, 0, len(b.Assignments))
	for _, a := range b.Assignments {
		assignments = append(assignments, AssignmentResponse{
			ServiceID:    a.ServiceID,
			ServiceName:  a.ServiceName,
			ServicePrice: a.ServicePrice,
			ProviderID:   a.ProviderID,
			ProviderName: a.ProviderName,
		})
	}

	return &BookingResponse{
		ID:              b.ID,
		Reference:       b.Reference,
		CustomerName:    b.CustomerName,
		CustomerEmail:   b.CustomerEmail,
		CustomerPhone:   b.CustomerPhone,
		BookingDate:     b.BookingDate.Format(domain.DateFormat),
		StartTime:       b.StartTime.String(),
		Status:          string(b.Status),
		Assignments:     assignments,
		PaymentMethod:   string(b.Payment.Method),
		PaymentStatus:   string(b.Payment.Status),
		TotalAmount:     b.Payment.TotalAmount,
		DepositAmount:   b.Payment.DepositAmount,
		RemainingAmount: b.Payment.RemainingAmount,
		TransactionID:   b.Payment.TransactionID,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
}

// FromDomainBookingList converts a slice of bookings into the list envelope.
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	out := make([]BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, *FromDomainBooking(b))
	}
	return &BookingListResponse{Bookings: out}
}
