package commit_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/soleraspa/booking-service/internal/domain"
	reservationRepo "github.com/soleraspa/booking-service/internal/infra/storage/reservation"
)

// UseCase commits a booking: it re-checks every assigned provider's slot
// inside a serializable transaction and writes the reservation rows together
// with the booking, so two concurrent commits for the same slot can never
// both succeed.
type UseCase struct {
	bookingRepo     BookingRepository
	reservationRepo ReservationRepository
	catalog         CatalogClient
	txManager       TransactionManager
	timeProvider    TimeProvider
	log             Logger
}

func New(
	bookingRepo BookingRepository,
	reservationRepo ReservationRepository,
	catalog CatalogClient,
	txManager TransactionManager,
	log Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:     bookingRepo,
		reservationRepo: reservationRepo,
		catalog:         catalog,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		log:             log,
	}
}

func (u *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	u.log.Info("CommitBooking: customer=%s date=%s time=%s services=%d",
		req.CustomerName, req.Date.Format(domain.DateFormat), req.StartTime, len(req.Assignments))

	// 1. Validate input
	if err := validateRequest(req); err != nil {
		u.log.Warn("CommitBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Validate the date window
	now := u.timeProvider.Now()
	if err := validateDate(req.Date, now); err != nil {
		u.log.Warn("CommitBooking: date validation failed: %v", err)
		return nil, err
	}

	// 3. Resolve every assignment against the catalog
	assignments, total, err := u.resolveAssignments(ctx, req)
	if err != nil {
		return nil, err
	}

	booking := &domain.Booking{
		Reference:     uuid.NewString(),
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		CustomerPhone: req.CustomerPhone,
		BookingDate:   req.Date,
		StartTime:     req.StartTime,
		Assignments:   assignments,
		Payment:       domain.NewPayment(req.PaymentMethod, total),
		Status:        domain.StatusAwaitingPayment,
	}

	var result *domain.Booking

	// 4. Conflict check and writes in one serializable transaction
	err = u.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		providerIDs := booking.ProviderIDs()

		// 4.1. Lock and read the committed times for the assigned providers
		reserved, err := u.reservationRepo.GetTimesForProviders(txCtx, providerIDs, req.Date)
		if err != nil {
			u.log.Error("CommitBooking: failed to load reservations: %v", err)
			return fmt.Errorf("%w: failed to load reservations: %v", ErrInternal, err)
		}

		for _, pid := range providerIDs {
			for _, t := range reserved[pid] {
				if t == req.StartTime {
					u.log.Warn("CommitBooking: slot %s %s already taken for provider %s",
						req.Date.Format(domain.DateFormat), req.StartTime, pid)
					return fmt.Errorf("%w: provider %s at %s", ErrSlotNotAvailable, pid, req.StartTime)
				}
			}
		}

		// 4.2. Persist the booking with its assignments
		created, err := u.bookingRepo.Create(txCtx, booking)
		if err != nil {
			u.log.Error("CommitBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		// 4.3. One reservation row per distinct provider. The unique index on
		// (provider_id, booking_date, start_time) backstops the check above.
		for _, pid := range providerIDs {
			_, err := u.reservationRepo.Insert(txCtx, &domain.Reservation{
				BookingID:  created.ID,
				ProviderID: pid,
				Date:       req.Date,
				StartTime:  req.StartTime,
			})
			if err != nil {
				if errors.Is(err, reservationRepo.ErrSlotTaken) {
					u.log.Warn("CommitBooking: lost slot race for provider %s", pid)
					return fmt.Errorf("%w: provider %s at %s", ErrSlotNotAvailable, pid, req.StartTime)
				}
				u.log.Error("CommitBooking: failed to insert reservation: %v", err)
				return fmt.Errorf("%w: failed to insert reservation: %v", ErrInternal, err)
			}
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	u.log.Info("CommitBooking: created booking id=%d reference=%s total=%.2f deposit=%.2f",
		result.ID, result.Reference, result.Payment.TotalAmount, result.Payment.DepositAmount)

	return toResponse(result), nil
}

// resolveAssignments maps the requested service/provider pairs onto catalog
// entities, checking existence, specialty and schedule, and denormalizing
// names and prices. Returns the assignments and the summed total price.
func (u *UseCase) resolveAssignments(ctx context.Context, req *Request) ([]domain.ServiceAssignment, float64, error) {
	services, err := u.catalog.ListActiveServices(ctx)
	if err != nil {
		u.log.Error("CommitBooking: failed to list services: %v", err)
		return nil, 0, fmt.Errorf("%w: failed to list services: %v", ErrInternal, err)
	}
	providers, err := u.catalog.ListProviders(ctx)
	if err != nil {
		u.log.Error("CommitBooking: failed to list providers: %v", err)
		return nil, 0, fmt.Errorf("%w: failed to list providers: %v", ErrInternal, err)
	}

	serviceByID := make(map[string]*domain.Service, len(services))
	for i := range services {
		serviceByID[services[i].ID] = &services[i]
	}
	providerByID := make(map[string]*domain.Provider, len(providers))
	for i := range providers {
		providerByID[providers[i].ID] = &providers[i]
	}

	assignments := make([]domain.ServiceAssignment, 0, len(req.Assignments))
	var total float64
	for _, a := range req.Assignments {
		service, ok := serviceByID[a.ServiceID]
		if !ok {
			u.log.Warn("CommitBooking: service %q not found", a.ServiceID)
			return nil, 0, fmt.Errorf("%w: %s", ErrServiceNotFound, a.ServiceID)
		}
		provider, ok := providerByID[a.ProviderID]
		if !ok {
			u.log.Warn("CommitBooking: provider %q not found", a.ProviderID)
			return nil, 0, fmt.Errorf("%w: %s", ErrProviderNotFound, a.ProviderID)
		}
		if err := validateAssignment(service, provider, req.Date, req.StartTime); err != nil {
			u.log.Warn("CommitBooking: assignment rejected: %v", err)
			return nil, 0, err
		}

		assignments = append(assignments, domain.ServiceAssignment{
			ServiceID:    service.ID,
			ProviderID:   provider.ID,
			ServiceName:  service.Name,
			ServicePrice: service.Price,
			ProviderName: provider.Name,
		})
		total += service.Price
	}

	return assignments, total, nil
}

func toResponse(b *domain.Booking) *Response {
	return &Response{
		ID:              b.ID,
		Reference:       b.Reference,
		CustomerName:    b.CustomerName,
		CustomerEmail:   b.CustomerEmail,
		CustomerPhone:   b.CustomerPhone,
		BookingDate:     b.BookingDate,
		StartTime:       b.StartTime,
		Assignments:     b.Assignments,
		Status:          string(b.Status),
		PaymentMethod:   string(b.Payment.Method),
		PaymentStatus:   string(b.Payment.Status),
		TotalAmount:     b.Payment.TotalAmount,
		DepositAmount:   b.Payment.DepositAmount,
		RemainingAmount: b.Payment.RemainingAmount,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
}
