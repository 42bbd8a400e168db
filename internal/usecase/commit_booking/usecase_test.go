package commit_booking

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soleraspa/booking-service/internal/domain"
	reservationRepo "github.com/soleraspa/booking-service/internal/infra/storage/reservation"
	"github.com/soleraspa/booking-service/pkg/types"
)

type fakeCatalog struct {
	services  []domain.Service
	providers []domain.Provider
}

func (f *fakeCatalog) ListActiveServices(_ context.Context) ([]domain.Service, error) {
	return f.services, nil
}

func (f *fakeCatalog) ListProviders(_ context.Context) ([]domain.Provider, error) {
	return f.providers, nil
}

type fakeBookingRepo struct {
	mu     sync.Mutex
	nextID int64
	saved  []*domain.Booking
}

func (f *fakeBookingRepo) Create(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	created := *b
	created.ID = f.nextID
	created.CreatedAt = time.Now()
	created.UpdatedAt = created.CreatedAt
	f.saved = append(f.saved, &created)
	return &created, nil
}

// fakeReservationIndex mimics the unique constraint on
// (provider_id, booking_date, start_time).
type fakeReservationIndex struct {
	mu    sync.Mutex
	taken map[string]int64 // key -> booking id
}

func newFakeReservationIndex() *fakeReservationIndex {
	return &fakeReservationIndex{taken: make(map[string]int64)}
}

func resKey(providerID string, date time.Time, start types.TimeString) string {
	return fmt.Sprintf("%s|%s|%s", providerID, date.Format(domain.DateFormat), start)
}

func (f *fakeReservationIndex) GetTimesForProviders(_ context.Context, providerIDs []string, date time.Time) (map[string][]types.TimeString, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[string][]types.TimeString)
	for _, pid := range providerIDs {
		prefix := pid + "|" + date.Format(domain.DateFormat) + "|"
		for key := range f.taken {
			if len(key) > len(prefix) && key[:len(prefix)] == prefix {
				out[pid] = append(out[pid], types.TimeString(key[len(prefix):]))
			}
		}
	}
	return out, nil
}

func (f *fakeReservationIndex) Insert(_ context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := resKey(res.ProviderID, res.Date, res.StartTime)
	if _, ok := f.taken[key]; ok {
		return nil, reservationRepo.ErrSlotTaken
	}
	f.taken[key] = res.BookingID
	return res, nil
}

// fakeTxManager serializes the callbacks with a mutex, the in-memory stand-in
// for serializable isolation.
type fakeTxManager struct {
	mu sync.Mutex
}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return fn(ctx)
}

type fixedTime struct{ now time.Time }

func (f *fixedTime) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// 2026-09-07 is a Monday.
var monday = time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)

func allWeek() []time.Weekday {
	return []time.Weekday{
		time.Sunday, time.Monday, time.Tuesday, time.Wednesday,
		time.Thursday, time.Friday, time.Saturday,
	}
}

func spaCatalog() *fakeCatalog {
	return &fakeCatalog{
		services: []domain.Service{
			{ID: "masaje", Name: "Masaje Relajante", DurationMinutes: 60, Price: 50, Active: true},
			{ID: "veloterapia", Name: "Veloterapia", DurationMinutes: 45, Price: 40, Active: true},
		},
		providers: []domain.Provider{
			{
				ID: "maria", Name: "María",
				Specialties: []string{"masaje"},
				WorkDays:    allWeek(),
				DailySlots:  []types.TimeString{"10:00", "11:00", "12:00"},
			},
			{
				ID: "lucia", Name: "Lucía",
				Specialties: []string{"veloterapia", "masaje"},
				WorkDays:    allWeek(),
				DailySlots:  []types.TimeString{"10:00", "11:00", "12:00"},
			},
		},
	}
}

func newTestUseCase(catalog *fakeCatalog, index *fakeReservationIndex) (*UseCase, *fakeBookingRepo) {
	bookings := &fakeBookingRepo{}
	uc := New(bookings, index, catalog, &fakeTxManager{}, nopLogger{})
	uc.timeProvider = &fixedTime{now: monday}
	return uc, bookings
}

func validRequest() *Request {
	return &Request{
		CustomerName:  "Ana Pérez",
		CustomerEmail: "ana@example.com",
		CustomerPhone: "+34 600 000 000",
		Date:          monday,
		StartTime:     "10:00",
		Assignments: []AssignmentRequest{
			{ServiceID: "masaje", ProviderID: "maria"},
			{ServiceID: "veloterapia", ProviderID: "lucia"},
		},
		PaymentMethod: domain.MethodCard,
	}
}

func TestExecute_CommitsBookingWithDepositSplit(t *testing.T) {
	uc, bookings := newTestUseCase(spaCatalog(), newFakeReservationIndex())

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, "awaiting_payment", resp.Status)
	assert.Equal(t, "pending", resp.PaymentStatus)
	assert.Equal(t, 90.0, resp.TotalAmount)
	assert.Equal(t, 45.0, resp.DepositAmount)
	assert.Equal(t, 45.0, resp.RemainingAmount)
	assert.NotEmpty(t, resp.Reference)
	require.Len(t, resp.Assignments, 2)
	assert.Equal(t, "Masaje Relajante", resp.Assignments[0].ServiceName)
	assert.Equal(t, "María", resp.Assignments[0].ProviderName)
	require.Len(t, bookings.saved, 1)
}

func TestExecute_ReservesSlotPerDistinctProvider(t *testing.T) {
	index := newFakeReservationIndex()
	uc, _ := newTestUseCase(spaCatalog(), index)

	req := validRequest()
	req.Assignments = []AssignmentRequest{
		{ServiceID: "masaje", ProviderID: "lucia"},
		{ServiceID: "veloterapia", ProviderID: "lucia"},
	}

	_, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	// Same provider twice must not conflict with itself: one row.
	assert.Len(t, index.taken, 1)
}

func TestExecute_RejectsTakenSlot(t *testing.T) {
	index := newFakeReservationIndex()
	uc, _ := newTestUseCase(spaCatalog(), index)

	_, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	req := validRequest()
	req.CustomerName = "Otro Cliente"
	req.Assignments = []AssignmentRequest{{ServiceID: "masaje", ProviderID: "maria"}}

	_, err = uc.Execute(context.Background(), req)
	require.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestExecute_ConcurrentCommitsOneWinner(t *testing.T) {
	index := newFakeReservationIndex()
	catalog := spaCatalog()

	const attempts = 8
	var wg sync.WaitGroup
	errs := make([]error, attempts)

	bookings := &fakeBookingRepo{}
	tx := &fakeTxManager{}
	for i := 0; i < attempts; i++ {
		uc := New(bookings, index, catalog, tx, nopLogger{})
		uc.timeProvider = &fixedTime{now: monday}

		wg.Add(1)
		go func(i int, uc *UseCase) {
			defer wg.Done()
			req := validRequest()
			req.Assignments = []AssignmentRequest{{ServiceID: "masaje", ProviderID: "maria"}}
			_, errs[i] = uc.Execute(context.Background(), req)
		}(i, uc)
	}
	wg.Wait()

	won := 0
	for _, err := range errs {
		if err == nil {
			won++
		} else {
			require.ErrorIs(t, err, ErrSlotNotAvailable)
		}
	}
	assert.Equal(t, 1, won)
	assert.Len(t, index.taken, 1)
}

func TestExecute_UnknownService(t *testing.T) {
	uc, _ := newTestUseCase(spaCatalog(), newFakeReservationIndex())

	req := validRequest()
	req.Assignments = []AssignmentRequest{{ServiceID: "nope", ProviderID: "maria"}}

	_, err := uc.Execute(context.Background(), req)
	require.ErrorIs(t, err, ErrServiceNotFound)
}

func TestExecute_UnknownProvider(t *testing.T) {
	uc, _ := newTestUseCase(spaCatalog(), newFakeReservationIndex())

	req := validRequest()
	req.Assignments = []AssignmentRequest{{ServiceID: "masaje", ProviderID: "ghost"}}

	_, err := uc.Execute(context.Background(), req)
	require.ErrorIs(t, err, ErrProviderNotFound)
}

func TestExecute_ProviderWithoutSpecialty(t *testing.T) {
	uc, _ := newTestUseCase(spaCatalog(), newFakeReservationIndex())

	req := validRequest()
	req.Assignments = []AssignmentRequest{{ServiceID: "veloterapia", ProviderID: "maria"}}

	_, err := uc.Execute(context.Background(), req)
	require.ErrorIs(t, err, ErrProviderCannotPerform)
}

func TestExecute_ProviderOffThatDay(t *testing.T) {
	catalog := spaCatalog()
	catalog.providers[0].WorkDays = []time.Weekday{time.Tuesday}
	uc, _ := newTestUseCase(catalog, newFakeReservationIndex())

	req := validRequest()
	req.Assignments = []AssignmentRequest{{ServiceID: "masaje", ProviderID: "maria"}}

	_, err := uc.Execute(context.Background(), req)
	require.ErrorIs(t, err, ErrProviderNotWorking)
}

func TestExecute_TimeOutsideSlotCatalog(t *testing.T) {
	uc, _ := newTestUseCase(spaCatalog(), newFakeReservationIndex())

	req := validRequest()
	req.StartTime = "09:30"

	_, err := uc.Execute(context.Background(), req)
	require.ErrorIs(t, err, ErrProviderNotWorking)
}

func TestExecute_ValidationFailures(t *testing.T) {
	uc, _ := newTestUseCase(spaCatalog(), newFakeReservationIndex())

	tests := []struct {
		name   string
		mutate func(*Request)
	}{
		{"missing name", func(r *Request) { r.CustomerName = "  " }},
		{"missing email", func(r *Request) { r.CustomerEmail = "" }},
		{"bad email", func(r *Request) { r.CustomerEmail = "not-an-email" }},
		{"no assignments", func(r *Request) { r.Assignments = nil }},
		{"bad time format", func(r *Request) { r.StartTime = "25:99" }},
		{"bad method", func(r *Request) { r.PaymentMethod = "crypto" }},
		{"empty service id", func(r *Request) { r.Assignments[0].ServiceID = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)
			_, err := uc.Execute(context.Background(), req)
			require.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestExecute_PastDate(t *testing.T) {
	uc, _ := newTestUseCase(spaCatalog(), newFakeReservationIndex())

	req := validRequest()
	req.Date = monday.AddDate(0, 0, -1)

	_, err := uc.Execute(context.Background(), req)
	require.ErrorIs(t, err, ErrInvalidDate)
}

func TestExecute_DateBeyondWindow(t *testing.T) {
	uc, _ := newTestUseCase(spaCatalog(), newFakeReservationIndex())

	req := validRequest()
	req.Date = monday.AddDate(0, 0, domain.AdvanceBookingDays+1)

	_, err := uc.Execute(context.Background(), req)
	require.ErrorIs(t, err, ErrDateTooFarInFuture)
}
