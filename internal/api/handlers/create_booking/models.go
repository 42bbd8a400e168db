package create_booking

import (
	"time"

	"github.com/soleraspa/booking-service/internal/domain"
	commitBooking "github.com/soleraspa/booking-service/internal/usecase/commit_booking"
	"github.com/soleraspa/booking-service/pkg/types"
)

// AssignmentRequest is one service/provider pair.
type AssignmentRequest struct {
	ServiceID  string `json:"serviceId"`
	ProviderID string `json:"providerId"`
}

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	CustomerName  string              `json:"customerName"`
	CustomerEmail string              `json:"customerEmail"`
	CustomerPhone string              `json:"customerPhone,omitempty"`
	BookingDate   string              `json:"bookingDate"` // "2025-10-15"
	StartTime     string              `json:"startTime"`   // "10:00"
	Assignments   []AssignmentRequest `json:"assignments"`
	PaymentMethod string              `json:"paymentMethod"` // card | transfer | cash
}

// AssignmentResponse mirrors one committed assignment.
type AssignmentResponse struct {
	ServiceID    string  `json:"serviceId"`
	ServiceName  string  `json:"serviceName"`
	ServicePrice float64 `json:"servicePrice"`
	ProviderID   string  `json:"providerId"`
	ProviderName string  `json:"providerName"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID              int64                `json:"id"`
	Reference       string               `json:"reference"`
	CustomerName    string               `json:"customerName"`
	CustomerEmail   string               `json:"customerEmail"`
	CustomerPhone   string               `json:"customerPhone,omitempty"`
	BookingDate     string               `json:"bookingDate"`
	StartTime       string               `json:"startTime"`
	Status          string               `json:"status"`
	Assignments     []AssignmentResponse `json:"assignments"`
	PaymentMethod   string               `json:"paymentMethod"`
	PaymentStatus   string               `json:"paymentStatus"`
	TotalAmount     float64              `json:"totalAmount"`
	DepositAmount   float64              `json:"depositAmount"`
	RemainingAmount float64              `json:"remainingAmount"`
	CreatedAt       string               `json:"createdAt"`
	UpdatedAt       string               `json:"updatedAt"`
}

// ToUseCaseRequest converts the HTTP request into the use case model.
func (r *CreateBookingRequest) ToUseCaseRequest() (*commitBooking.Request, error) {
	bookingDate, err := time.Parse(domain.DateFormat, r.BookingDate)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	assignments := make([]commitBooking.AssignmentRequest, 0, len(r.Assignments))
	for _, a := range r.Assignments {
		assignments = append(assignments, commitBooking.AssignmentRequest{
			ServiceID:  a.ServiceID,
			ProviderID: a.ProviderID,
		})
	}

	return &commitBooking.Request{
		CustomerName:  r.CustomerName,
		CustomerEmail: r.CustomerEmail,
		CustomerPhone: r.CustomerPhone,
		Date:          bookingDate,
		StartTime:     startTime,
		Assignments:   assignments,
		PaymentMethod: domain.PaymentMethod(r.PaymentMethod),
	}, nil
}

// FromUseCaseResponse converts the use case response into the HTTP model.
func FromUseCaseResponse(resp *commitBooking.Response) *BookingResponse {
	assignments := make([]AssignmentResponse, 0, len(resp.Assignments))
	for _, a := range resp.Assignments {
		assignments = append(assignments, AssignmentResponse{
			ServiceID:    a.ServiceID,
			ServiceName:  a.ServiceName,
			ServicePrice: a.ServicePrice,
			ProviderID:   a.ProviderID,
			ProviderName: a.ProviderName,
		})
	}

	return &BookingResponse{
		ID:              resp.ID,
		Reference:       resp.Reference,
		CustomerName:    resp.CustomerName,
		CustomerEmail:   resp.CustomerEmail,
		CustomerPhone:   resp.CustomerPhone,
		BookingDate:     resp.BookingDate.Format(domain.DateFormat),
		StartTime:       resp.StartTime.String(),
		Status:          resp.Status,
		Assignments:     assignments,
		PaymentMethod:   resp.PaymentMethod,
		PaymentStatus:   resp.PaymentStatus,
		TotalAmount:     resp.TotalAmount,
		DepositAmount:   resp.DepositAmount,
		RemainingAmount: resp.RemainingAmount,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
	}
}
