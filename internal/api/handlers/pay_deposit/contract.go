package pay_deposit

import (
	"context"

	"github.com/soleraspa/booking-service/internal/service/bookings/models"
)

type BookingsService interface {
	MarkDepositPaid(ctx context.Context, id int64, req *models.MarkDepositPaidRequest) (*models.BookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
