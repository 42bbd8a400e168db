package list_bookings

import (
	"time"

	"github.com/soleraspa/booking-service/internal/domain"
	"github.com/soleraspa/booking-service/internal/service/bookings/models"
)

// ToServiceRequest builds the listing filter from query parameters.
// All parameters are optional; dates use YYYY-MM-DD.
func ToServiceRequest(status, startDate, endDate string) (*models.ListBookingsRequest, error) {
	req := &models.ListBookingsRequest{}

	if status != "" {
		req.Status = &status
	}

	if startDate != "" {
		parsed, err := time.Parse(domain.DateFormat, startDate)
		if err != nil {
			return nil, err
		}
		req.StartDate = &parsed
	}

	if endDate != "" {
		parsed, err := time.Parse(domain.DateFormat, endDate)
		if err != nil {
			return nil, err
		}
		req.EndDate = &parsed
	}

	return req, nil
}
