package get_availability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soleraspa/booking-service/internal/domain"
	"github.com/soleraspa/booking-service/pkg/types"
)

type fakeCatalog struct {
	providers []domain.Provider
	err       error
}

func (f *fakeCatalog) ListProviders(_ context.Context) ([]domain.Provider, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.providers, nil
}

type fakeReservations struct {
	times map[string][]types.TimeString
	err   error
}

func (f *fakeReservations) GetTimesForProviders(_ context.Context, _ []string, _ time.Time) (map[string][]types.TimeString, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.times, nil
}

type fixedTime struct{ now time.Time }

func (f *fixedTime) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func slots(ts ...string) []types.TimeString {
	out := make([]types.TimeString, 0, len(ts))
	for _, t := range ts {
		out = append(out, types.TimeString(t))
	}
	return out
}

func testProvider(id string, workDays []time.Weekday, daily ...string) domain.Provider {
	return domain.Provider{
		ID:         id,
		Name:       id,
		WorkDays:   workDays,
		DailySlots: slots(daily...),
	}
}

// 2026-09-07 is a Monday.
var monday = time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)

func newUseCase(catalog *fakeCatalog, res *fakeReservations, now time.Time) *UseCase {
	return New(catalog, res, &fixedTime{now: now}, nopLogger{})
}

func TestExecute_IntersectsProviders(t *testing.T) {
	weekdays := []time.Weekday{time.Monday, time.Tuesday, time.Wednesday}
	catalog := &fakeCatalog{providers: []domain.Provider{
		testProvider("maria", weekdays, "10:00", "11:00", "12:00", "16:00"),
		testProvider("lucia", weekdays, "11:00", "12:00", "17:00"),
	}}
	res := &fakeReservations{times: map[string][]types.TimeString{}}

	resp, err := newUseCase(catalog, res, monday).Execute(context.Background(), &Request{
		ProviderIDs: []string{"maria", "lucia"},
		Date:        monday,
	})
	require.NoError(t, err)
	assert.Equal(t, slots("11:00", "12:00"), resp.Slots)
}

func TestExecute_ExcludesReservedTimes(t *testing.T) {
	weekdays := []time.Weekday{time.Monday}
	catalog := &fakeCatalog{providers: []domain.Provider{
		testProvider("maria", weekdays, "10:00", "11:00", "12:00"),
		testProvider("lucia", weekdays, "10:00", "11:00", "12:00"),
	}}
	res := &fakeReservations{times: map[string][]types.TimeString{
		"maria": slots("11:00"),
		"lucia": slots("12:00"),
	}}

	resp, err := newUseCase(catalog, res, monday).Execute(context.Background(), &Request{
		ProviderIDs: []string{"maria", "lucia"},
		Date:        monday,
	})
	require.NoError(t, err)
	assert.Equal(t, slots("10:00"), resp.Slots)
}

func TestExecute_ProviderOffThatWeekday(t *testing.T) {
	catalog := &fakeCatalog{providers: []domain.Provider{
		testProvider("maria", []time.Weekday{time.Monday}, "10:00", "11:00"),
		testProvider("lucia", []time.Weekday{time.Tuesday}, "10:00", "11:00"),
	}}
	res := &fakeReservations{times: map[string][]types.TimeString{}}

	resp, err := newUseCase(catalog, res, monday).Execute(context.Background(), &Request{
		ProviderIDs: []string{"maria", "lucia"},
		Date:        monday,
	})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_SlotsSortedAndUnique(t *testing.T) {
	catalog := &fakeCatalog{providers: []domain.Provider{
		testProvider("maria", []time.Weekday{time.Monday}, "16:00", "09:00", "12:00", "09:00"),
	}}
	res := &fakeReservations{times: map[string][]types.TimeString{}}

	resp, err := newUseCase(catalog, res, monday).Execute(context.Background(), &Request{
		ProviderIDs: []string{"maria"},
		Date:        monday,
	})
	require.NoError(t, err)
	assert.Equal(t, slots("09:00", "12:00", "16:00"), resp.Slots)
}

func TestExecute_DuplicateProviderIDsCollapse(t *testing.T) {
	catalog := &fakeCatalog{providers: []domain.Provider{
		testProvider("maria", []time.Weekday{time.Monday}, "10:00", "11:00"),
	}}
	res := &fakeReservations{times: map[string][]types.TimeString{}}

	resp, err := newUseCase(catalog, res, monday).Execute(context.Background(), &Request{
		ProviderIDs: []string{"maria", "maria"},
		Date:        monday,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"maria"}, resp.ProviderIDs)
	assert.Equal(t, slots("10:00", "11:00"), resp.Slots)
}

func TestExecute_EmptyProviderList(t *testing.T) {
	catalog := &fakeCatalog{}
	res := &fakeReservations{}

	resp, err := newUseCase(catalog, res, monday).Execute(context.Background(), &Request{
		ProviderIDs: nil,
		Date:        monday,
	})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_UnknownProvider(t *testing.T) {
	catalog := &fakeCatalog{providers: []domain.Provider{
		testProvider("maria", []time.Weekday{time.Monday}, "10:00"),
	}}
	res := &fakeReservations{times: map[string][]types.TimeString{}}

	_, err := newUseCase(catalog, res, monday).Execute(context.Background(), &Request{
		ProviderIDs: []string{"maria", "ghost"},
		Date:        monday,
	})
	require.ErrorIs(t, err, ErrProviderNotFound)
}

func TestExecute_PastDateRejected(t *testing.T) {
	catalog := &fakeCatalog{providers: []domain.Provider{
		testProvider("maria", []time.Weekday{time.Monday}, "10:00"),
	}}
	res := &fakeReservations{times: map[string][]types.TimeString{}}

	_, err := newUseCase(catalog, res, monday).Execute(context.Background(), &Request{
		ProviderIDs: []string{"maria"},
		Date:        monday.AddDate(0, 0, -1),
	})
	require.ErrorIs(t, err, ErrInvalidDate)
}

func TestExecute_DateBeyondAdvanceWindow(t *testing.T) {
	catalog := &fakeCatalog{providers: []domain.Provider{
		testProvider("maria", []time.Weekday{time.Monday}, "10:00"),
	}}
	res := &fakeReservations{times: map[string][]types.TimeString{}}

	_, err := newUseCase(catalog, res, monday).Execute(context.Background(), &Request{
		ProviderIDs: []string{"maria"},
		Date:        monday.AddDate(0, 0, domain.AdvanceBookingDays+1),
	})
	require.ErrorIs(t, err, ErrDateTooFarInFuture)
}

func TestExecute_CatalogFailure(t *testing.T) {
	catalog := &fakeCatalog{err: errors.New("catalog down")}
	res := &fakeReservations{times: map[string][]types.TimeString{}}

	_, err := newUseCase(catalog, res, monday).Execute(context.Background(), &Request{
		ProviderIDs: []string{"maria"},
		Date:        monday,
	})
	require.ErrorIs(t, err, ErrInternal)
}
