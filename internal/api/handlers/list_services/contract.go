package list_services

import (
	"context"

	"github.com/soleraspa/booking-service/internal/domain"
)

type CatalogClient interface {
	ListActiveServices(ctx context.Context) ([]domain.Service, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
