package list_payments

import (
	"context"

	"github.com/soleraspa/booking-service/internal/service/bookings/models"
)

type BookingsService interface {
	ListPayments(ctx context.Context, req *models.ListBookingsRequest) (*models.PaymentsReportResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
