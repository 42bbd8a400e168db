package get_availability

import (
	"fmt"
	"time"

	"github.com/soleraspa/booking-service/internal/domain"
)

// validateRequest validates the request shape. An empty provider list is not
// an error: no selection, no answer.
func validateRequest(req *Request) error {
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	for _, id := range req.ProviderIDs {
		if id == "" {
			return fmt.Errorf("%w: provider id must not be empty", ErrInvalidInput)
		}
	}

	return nil
}

// validateDate checks the date is not in the past and within the advance
// booking window.
func validateDate(date time.Time, now time.Time) error {
	if isDateInPast(date, now) {
		return ErrInvalidDate
	}

	maxDate := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).
		AddDate(0, 0, domain.AdvanceBookingDays)

	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())

	if dateOnly.After(maxDate) {
		return fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, domain.AdvanceBookingDays)
	}

	return nil
}

// dedupeProviderIDs drops repeated ids, keeping first-seen order. Selecting
// the same provider for two services must not change the intersection.
func dedupeProviderIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// isDateInPast compares only the date parts.
func isDateInPast(date, now time.Time) bool {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}
