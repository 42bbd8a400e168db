package domain

// DepositRate is the fixed share of the total price required up front.
// Not configurable: the business policy is a flat 50% deposit.
const DepositRate = 0.5

// AdvanceBookingDays limits how far ahead an appointment can be placed.
const AdvanceBookingDays = 30

// Business validation constants.
const (
	MaxAssignmentsPerBooking = 10
	MaxContactFieldLength    = 200
)

// DateFormat is the wire layout for booking dates (YYYY-MM-DD).
const DateFormat = "2006-01-02"
