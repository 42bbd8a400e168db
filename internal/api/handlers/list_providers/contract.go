package list_providers

import (
	"context"

	"github.com/soleraspa/booking-service/internal/domain"
)

type CatalogClient interface {
	ListProviders(ctx context.Context) ([]domain.Provider, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
