package create_booking

import (
	"context"

	commitBooking "github.com/soleraspa/booking-service/internal/usecase/commit_booking"
)

type CommitBookingUseCase interface {
	Execute(ctx context.Context, req *commitBooking.Request) (*commitBooking.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
