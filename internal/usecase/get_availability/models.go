package get_availability

import (
	"time"

	"github.com/soleraspa/booking-service/pkg/types"
)

// Request asks for the time slots free for every listed provider on a date.
type Request struct {
	ProviderIDs []string  // Providers that must all be free simultaneously
	Date        time.Time // Date to query (time-of-day part ignored)
}

// Response carries the intersection of the providers' free slots.
type Response struct {
	Date        time.Time
	ProviderIDs []string
	Slots       []types.TimeString // Ascending, no duplicates
}
