package get_availability

import (
	"context"
	"fmt"

	"github.com/soleraspa/booking-service/internal/domain"
	"github.com/soleraspa/booking-service/pkg/types"
)

// UseCase computes the slots on which every requested provider is free at the
// same time. The reservation index is the source of truth for committed
// times; the catalog supplies schedules.
type UseCase struct {
	catalog      CatalogClient
	reservations ReservationRepository
	timeProvider TimeProvider
	log          Logger
}

func New(catalog CatalogClient, reservations ReservationRepository, timeProvider TimeProvider, log Logger) *UseCase {
	return &UseCase{
		catalog:      catalog,
		reservations: reservations,
		timeProvider: timeProvider,
		log:          log,
	}
}

func (u *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Validate input
	if err := validateRequest(req); err != nil {
		u.log.Warn("GetAvailability: invalid request: %v", err)
		return nil, err
	}

	providerIDs := dedupeProviderIDs(req.ProviderIDs)
	if len(providerIDs) == 0 {
		return &Response{Date: req.Date, ProviderIDs: providerIDs, Slots: []types.TimeString{}}, nil
	}

	// 2. Validate the date window
	now := u.timeProvider.Now()
	if err := validateDate(req.Date, now); err != nil {
		u.log.Warn("GetAvailability: rejected date %s: %v", req.Date.Format(domain.DateFormat), err)
		return nil, err
	}

	// 3. Resolve requested providers against the catalog
	providers, err := u.catalog.ListProviders(ctx)
	if err != nil {
		u.log.Error("GetAvailability: failed to list providers: %v", err)
		return nil, fmt.Errorf("%w: Execute - failed to list providers: %v", ErrInternal, err)
	}

	byID := make(map[string]*domain.Provider, len(providers))
	for i := range providers {
		byID[providers[i].ID] = &providers[i]
	}

	requested := make([]*domain.Provider, 0, len(providerIDs))
	for _, id := range providerIDs {
		p, ok := byID[id]
		if !ok {
			u.log.Warn("GetAvailability: unknown provider %q", id)
			return nil, fmt.Errorf("%w: %s", ErrProviderNotFound, id)
		}
		requested = append(requested, p)
	}

	// 4. Load committed times for the date
	reserved, err := u.reservations.GetTimesForProviders(ctx, providerIDs, req.Date)
	if err != nil {
		u.log.Error("GetAvailability: failed to load reservations: %v", err)
		return nil, fmt.Errorf("%w: Execute - failed to load reservations: %v", ErrInternal, err)
	}

	// 5. Intersect per-provider free slots
	lists := make([][]types.TimeString, 0, len(requested))
	for _, p := range requested {
		lists = append(lists, providerFreeSlots(p, req.Date, reserved[p.ID]))
	}
	slots := intersectSlots(lists)

	u.log.Info("GetAvailability: date=%s providers=%d slots=%d",
		req.Date.Format(domain.DateFormat), len(providerIDs), len(slots))

	return &Response{
		Date:        req.Date,
		ProviderIDs: providerIDs,
		Slots:       slots,
	}, nil
}
