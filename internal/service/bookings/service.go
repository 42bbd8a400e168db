package bookings

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/soleraspa/booking-service/internal/domain"
	bookingRepo "github.com/soleraspa/booking-service/internal/infra/storage/booking"
	"github.com/soleraspa/booking-service/internal/service/bookings/models"
)

// Service handles booking lifecycle and admin reads: payment transitions,
// deletion and the payments report. Commit lives in its own use case.
type Service struct {
	bookingRepo     BookingRepository
	reservationRepo ReservationRepository
	txManager       TransactionManager
	notifier        Notifier
	log             Logger
}

func NewService(
	bookingRepo BookingRepository,
	reservationRepo ReservationRepository,
	txManager TransactionManager,
	notifier Notifier,
	log Logger,
) *Service {
	return &Service{
		bookingRepo:     bookingRepo,
		reservationRepo: reservationRepo,
		txManager:       txManager,
		notifier:        notifier,
		log:             log,
	}
}

// GetByID fetches one booking.
func (s *Service) GetByID(ctx context.Context, id int64) (*models.BookingResponse, error) {
	booking, err := s.getBooking(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}
	return models.FromDomainBooking(booking), nil
}

// List fetches bookings with optional status and date-range filters.
func (s *Service) List(ctx context.Context, req *models.ListBookingsRequest) (*models.BookingListResponse, error) {
	filter, err := req.ToDomainFilter()
	if err != nil {
		s.log.Warn("List: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: invalid status filter", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.List(ctx, filter)
	if err != nil {
		s.log.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.log.Info("List: fetched %d bookings", len(bookings))
	return models.FromDomainBookingList(bookings), nil
}

// MarkDepositPaid records the 50% deposit. Only applicable while the booking
// awaits payment; any other status is an invalid transition.
func (s *Service) MarkDepositPaid(ctx context.Context, id int64, req *models.MarkDepositPaidRequest) (*models.BookingResponse, error) {
	s.log.Info("MarkDepositPaid: booking id=%d", id)

	if strings.TrimSpace(req.TransactionID) == "" {
		return nil, fmt.Errorf("%w: transactionId is required", ErrInvalidInput)
	}

	booking, err := s.getBooking(ctx, "MarkDepositPaid", id)
	if err != nil {
		return nil, err
	}

	if !booking.CanRecordDeposit() {
		s.log.Warn("MarkDepositPaid: booking id=%d in status %s", id, booking.Status)
		return nil, fmt.Errorf("%w: cannot record deposit in status %s", ErrInvalidTransition, booking.Status)
	}

	if err := s.bookingRepo.RecordDeposit(ctx, id, req.TransactionID); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return nil, ErrBookingNotFound
		}
		s.log.Error("MarkDepositPaid: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: MarkDepositPaid - repository error: %v", ErrInternal, err)
	}

	updated, err := s.getBooking(ctx, "MarkDepositPaid", id)
	if err != nil {
		return nil, err
	}

	// Best effort; the payment is already recorded.
	if err := s.notifier.SendDepositConfirmation(ctx, updated); err != nil {
		s.log.Warn("MarkDepositPaid: confirmation email failed for booking id=%d: %v", id, err)
	}

	s.log.Info("MarkDepositPaid: booking id=%d moved to %s", id, updated.Status)
	return models.FromDomainBooking(updated), nil
}

// MarkBalancePaid settles the remaining balance. Recording the balance on an
// already completed booking is a no-op, so retries are safe.
func (s *Service) MarkBalancePaid(ctx context.Context, id int64) (*models.BookingResponse, error) {
	s.log.Info("MarkBalancePaid: booking id=%d", id)

	booking, err := s.getBooking(ctx, "MarkBalancePaid", id)
	if err != nil {
		return nil, err
	}

	if booking.IsCompleted() {
		s.log.Info("MarkBalancePaid: booking id=%d already completed", id)
		return models.FromDomainBooking(booking), nil
	}

	if !booking.CanRecordBalance() {
		s.log.Warn("MarkBalancePaid: booking id=%d in status %s", id, booking.Status)
		return nil, fmt.Errorf("%w: cannot record balance in status %s", ErrInvalidTransition, booking.Status)
	}

	if err := s.bookingRepo.RecordBalance(ctx, id); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return nil, ErrBookingNotFound
		}
		s.log.Error("MarkBalancePaid: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: MarkBalancePaid - repository error: %v", ErrInternal, err)
	}

	updated, err := s.getBooking(ctx, "MarkBalancePaid", id)
	if err != nil {
		return nil, err
	}

	s.log.Info("MarkBalancePaid: booking id=%d completed", id)
	return models.FromDomainBooking(updated), nil
}

// Delete removes a booking and frees its reserved slots in one transaction,
// so the times become bookable again immediately.
func (s *Service) Delete(ctx context.Context, id int64) error {
	s.log.Info("Delete: booking id=%d", id)

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		freed, err := s.reservationRepo.DeleteByBookingID(txCtx, id)
		if err != nil {
			s.log.Error("Delete: failed to free reservations for booking id=%d: %v", id, err)
			return fmt.Errorf("%w: Delete - failed to free reservations: %v", ErrInternal, err)
		}

		if err := s.bookingRepo.Delete(txCtx, id); err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			s.log.Error("Delete: repository error for booking id=%d: %v", id, err)
			return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
		}

		s.log.Info("Delete: booking id=%d removed, %d slots freed", id, freed)
		return nil
	})

	return err
}

// ListPayments projects bookings into the payments report. Bookings still
// awaiting their deposit carry no recorded payment and are skipped.
func (s *Service) ListPayments(ctx context.Context, req *models.ListBookingsRequest) (*models.PaymentsReportResponse, error) {
	filter, err := req.ToDomainFilter()
	if err != nil {
		s.log.Warn("ListPayments: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: invalid status filter", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.List(ctx, filter)
	if err != nil {
		s.log.Error("ListPayments: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListPayments - repository error: %v", ErrInternal, err)
	}

	report := buildPaymentsReport(bookings)
	s.log.Info("ListPayments: %d entries, revenue=%.2f pending=%.2f",
		len(report.Payments), report.TotalRevenue, report.PendingPayments)
	return report, nil
}

func (s *Service) getBooking(ctx context.Context, op string, id int64) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.log.Warn("%s: booking id=%d not found", op, id)
			return nil, ErrBookingNotFound
		}
		s.log.Error("%s: repository error for booking id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return booking, nil
}

// buildPaymentsReport extracts deposit and final entries per booking.
// The deposit entry exists once recorded; the final entry is completed for
// fully paid bookings and pending while the balance is outstanding.
func buildPaymentsReport(bookings []*domain.Booking) *models.PaymentsReportResponse {
	report := &models.PaymentsReportResponse{Payments: []models.PaymentEntry{}}

	for _, b := range bookings {
		if b.Payment.Status == domain.PaymentPending {
			continue
		}

		date := b.UpdatedAt.Format(domain.DateFormat)

		report.Payments = append(report.Payments, models.PaymentEntry{
			BookingID:  b.ID,
			Reference:  b.Reference,
			ClientName: b.CustomerName,
			Method:     string(b.Payment.Method),
			Amount:     b.Payment.DepositAmount,
			Date:       date,
			Type:       models.PaymentTypeDeposit,
			Status:     models.PaymentEntryCompleted,
		})
		report.TotalRevenue += b.Payment.DepositAmount

		switch b.Payment.Status {
		case domain.PaymentCompleted:
			report.Payments = append(report.Payments, models.PaymentEntry{
				BookingID:  b.ID,
				Reference:  b.Reference,
				ClientName: b.CustomerName,
				Method:     string(b.Payment.Method),
				Amount:     b.Payment.TotalAmount - b.Payment.DepositAmount,
				Date:       date,
				Type:       models.PaymentTypeFinal,
				Status:     models.PaymentEntryCompleted,
			})
			report.TotalRevenue += b.Payment.TotalAmount - b.Payment.DepositAmount
		case domain.PaymentPartial:
			if b.Payment.RemainingAmount > 0 {
				report.Payments = append(report.Payments, models.PaymentEntry{
					BookingID:  b.ID,
					Reference:  b.Reference,
					ClientName: b.CustomerName,
					Method:     string(b.Payment.Method),
					Amount:     b.Payment.RemainingAmount,
					Date:       date,
					Type:       models.PaymentTypeFinal,
					Status:     models.PaymentEntryPending,
				})
				report.PendingPayments += b.Payment.RemainingAmount
			}
		}
	}

	// Newest first, stable within a day by booking id.
	sort.SliceStable(report.Payments, func(i, j int) bool {
		if report.Payments[i].Date != report.Payments[j].Date {
			return report.Payments[i].Date > report.Payments[j].Date
		}
		return report.Payments[i].BookingID > report.Payments[j].BookingID
	})

	return report
}
