package commit_booking

import (
	"fmt"
	"strings"
	"time"

	"github.com/soleraspa/booking-service/internal/domain"
	"github.com/soleraspa/booking-service/pkg/types"
)

// validateRequest validates the request shape before any catalog lookups.
func validateRequest(req *Request) error {
	if err := validateContactField("customerName", req.CustomerName, true); err != nil {
		return err
	}
	if err := validateContactField("customerEmail", req.CustomerEmail, true); err != nil {
		return err
	}
	if !strings.Contains(req.CustomerEmail, "@") {
		return fmt.Errorf("%w: customerEmail is not a valid email", ErrInvalidInput)
	}
	if err := validateContactField("customerPhone", req.CustomerPhone, false); err != nil {
		return err
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}
	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	if len(req.Assignments) == 0 {
		return fmt.Errorf("%w: at least one service is required", ErrInvalidInput)
	}
	if len(req.Assignments) > domain.MaxAssignmentsPerBooking {
		return fmt.Errorf("%w: at most %d services per booking", ErrInvalidInput, domain.MaxAssignmentsPerBooking)
	}
	for i, a := range req.Assignments {
		if a.ServiceID == "" {
			return fmt.Errorf("%w: assignments[%d].serviceId is required", ErrInvalidInput, i)
		}
		if a.ProviderID == "" {
			return fmt.Errorf("%w: assignments[%d].providerId is required", ErrInvalidInput, i)
		}
	}

	if !domain.ValidPaymentMethod(req.PaymentMethod) {
		return fmt.Errorf("%w: unsupported payment method %q", ErrInvalidInput, req.PaymentMethod)
	}

	return nil
}

func validateContactField(name, value string, required bool) error {
	trimmed := strings.TrimSpace(value)
	if required && trimmed == "" {
		return fmt.Errorf("%w: %s is required", ErrInvalidInput, name)
	}
	if len(value) > domain.MaxContactFieldLength {
		return fmt.Errorf("%w: %s is too long", ErrInvalidInput, name)
	}
	return nil
}

// validateDate checks the booking date is not in the past and within the
// advance booking window.
func validateDate(bookingDate time.Time, now time.Time) error {
	if isDateInPast(bookingDate, now) {
		return ErrInvalidDate
	}

	maxDate := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).
		AddDate(0, 0, domain.AdvanceBookingDays)

	dateOnly := time.Date(bookingDate.Year(), bookingDate.Month(), bookingDate.Day(), 0, 0, 0, 0, bookingDate.Location())

	if dateOnly.After(maxDate) {
		return fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, domain.AdvanceBookingDays)
	}

	return nil
}

// validateAssignment checks one service/provider pair against the catalog
// and the provider's schedule.
func validateAssignment(service *domain.Service, provider *domain.Provider, date time.Time, start types.TimeString) error {
	if !provider.CanPerform(service.ID) {
		return fmt.Errorf("%w: provider %q does not offer service %q", ErrProviderCannotPerform, provider.ID, service.ID)
	}
	if !provider.WorksOn(date.Weekday()) {
		return fmt.Errorf("%w: provider %q does not work on %s", ErrProviderNotWorking, provider.ID, date.Weekday())
	}
	if !provider.HasSlot(start) {
		return fmt.Errorf("%w: provider %q has no %s slot", ErrProviderNotWorking, provider.ID, start)
	}
	return nil
}

// isDateInPast compares only the date parts.
func isDateInPast(date, now time.Time) bool {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}
