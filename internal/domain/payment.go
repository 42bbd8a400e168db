package domain

// PaymentMethod is how the customer committed to pay.
type PaymentMethod string

const (
	MethodCard     PaymentMethod = "card"
	MethodTransfer PaymentMethod = "transfer"
	MethodCash     PaymentMethod = "cash"
)

// ValidPaymentMethod reports whether m is one of the supported methods.
func ValidPaymentMethod(m PaymentMethod) bool {
	return m == MethodCard || m == MethodTransfer || m == MethodCash
}

// PaymentStatus tracks how much of the commitment has been settled.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentPartial   PaymentStatus = "partial"
	PaymentCompleted PaymentStatus = "completed"
)

// Payment is the two-stage payment commitment attached to a booking.
// It tracks amounts and an opaque transaction reference, never actual
// money movement.
type Payment struct {
	Method          PaymentMethod
	Status          PaymentStatus
	TotalAmount     float64
	DepositAmount   float64
	RemainingAmount float64
	TransactionID   *string
}

// NewPayment derives the payment commitment from the total price.
// Deposit is the fixed 50% rate; remaining is the difference, so
// deposit + remaining == total always holds.
func NewPayment(method PaymentMethod, totalAmount float64) Payment {
	deposit := totalAmount * DepositRate
	return Payment{
		Method:          method,
		Status:          PaymentPending,
		TotalAmount:     totalAmount,
		DepositAmount:   deposit,
		RemainingAmount: totalAmount - deposit,
	}
}
