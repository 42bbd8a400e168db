package get_availability

import (
	"strings"
	"time"

	"github.com/soleraspa/booking-service/internal/domain"
	getAvailability "github.com/soleraspa/booking-service/internal/usecase/get_availability"
)

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	Date      string   `json:"date"`
	Providers []string `json:"providers"`
	Slots     []string `json:"slots"`
}

// ToUseCaseRequest builds the use case request from query parameters.
// providers is a comma-separated id list.
func ToUseCaseRequest(dateStr, providers string) (*getAvailability.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0)
	for _, id := range strings.Split(providers, ",") {
		if trimmed := strings.TrimSpace(id); trimmed != "" {
			ids = append(ids, trimmed)
		}
	}

	return &getAvailability.Request{
		ProviderIDs: ids,
		Date:        date,
	}, nil
}

// FromUseCaseResponse converts the use case response into the HTTP model.
func FromUseCaseResponse(resp *getAvailability.Response) *AvailabilityResponse {
	slots := make([]string, len(resp.Slots))
	for i, s := range resp.Slots {
		slots[i] = s.String()
	}

	return &AvailabilityResponse{
		Date:      resp.Date.Format(domain.DateFormat),
		Providers: resp.ProviderIDs,
		Slots:     slots,
	}
}
