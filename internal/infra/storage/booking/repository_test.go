package booking

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soleraspa/booking-service/internal/domain"
)

var testDate = time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)

func bookingRowValues(id int64, status domain.BookingStatus) []driverValue {
	return []driverValue{
		id, "ref-1", "Ana Pérez", "ana@example.com", "+34 600 000 000",
		testDate, "10:00", string(status), "card", "pending",
		90.0, 45.0, 45.0, nil, time.Now(), time.Now(),
	}
}

type driverValue = driver.Value

func newBookingRows(values ...[]driverValue) *sqlmock.Rows {
	rows := sqlmock.NewRows(bookingColumns)
	for _, v := range values {
		rows.AddRow(v...)
	}
	return rows
}

func TestCreate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery("INSERT INTO bookings").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(3), now, now))
	mock.ExpectExec("INSERT INTO booking_services").
		WithArgs(int64(3), 0, "masaje", "Masaje", 50.0, "maria", "María").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO booking_services").
		WithArgs(int64(3), 1, "veloterapia", "Veloterapia", 40.0, "lucia", "Lucía").
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := NewRepository(db)
	created, err := repo.Create(context.Background(), &domain.Booking{
		Reference:     "ref-1",
		CustomerName:  "Ana Pérez",
		CustomerEmail: "ana@example.com",
		BookingDate:   testDate,
		StartTime:     "10:00",
		Status:        domain.StatusAwaitingPayment,
		Payment:       domain.NewPayment(domain.MethodCard, 90),
		Assignments: []domain.ServiceAssignment{
			{ServiceID: "masaje", ServiceName: "Masaje", ServicePrice: 50, ProviderID: "maria", ProviderName: "María"},
			{ServiceID: "veloterapia", ServiceName: "Veloterapia", ServicePrice: 40, ProviderID: "lucia", ProviderName: "Lucía"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(3), created.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM bookings").
		WithArgs(int64(3)).
		WillReturnRows(newBookingRows(bookingRowValues(3, domain.StatusAwaitingPayment)))
	mock.ExpectQuery("SELECT (.+) FROM booking_services").
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"booking_id", "service_id", "service_name", "service_price", "provider_id", "provider_name"}).
			AddRow(int64(3), "masaje", "Masaje", 50.0, "maria", "María"))

	repo := NewRepository(db)
	b, err := repo.GetByID(context.Background(), 3)
	require.NoError(t, err)

	assert.Equal(t, "ref-1", b.Reference)
	assert.Equal(t, domain.StatusAwaitingPayment, b.Status)
	require.Len(t, b.Assignments, 1)
	assert.Equal(t, "maria", b.Assignments[0].ProviderID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByID_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM bookings").
		WithArgs(int64(42)).
		WillReturnError(sql.ErrNoRows)

	repo := NewRepository(db)
	_, err = repo.GetByID(context.Background(), 42)
	require.ErrorIs(t, err, ErrBookingNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestList_WithStatusFilter(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	status := domain.StatusDepositPaid
	mock.ExpectQuery("SELECT (.+) FROM bookings").
		WithArgs(string(status)).
		WillReturnRows(newBookingRows(bookingRowValues(1, status), bookingRowValues(2, status)))
	mock.ExpectQuery("SELECT (.+) FROM booking_services").
		WithArgs(int64(1), int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"booking_id", "service_id", "service_name", "service_price", "provider_id", "provider_name"}).
			AddRow(int64(1), "masaje", "Masaje", 50.0, "maria", "María").
			AddRow(int64(2), "veloterapia", "Veloterapia", 40.0, "lucia", "Lucía"))

	repo := NewRepository(db)
	bookings, err := repo.List(context.Background(), domain.BookingsFilter{Status: &status})
	require.NoError(t, err)

	require.Len(t, bookings, 2)
	assert.Equal(t, "maria", bookings[0].Assignments[0].ProviderID)
	assert.Equal(t, "lucia", bookings[1].Assignments[0].ProviderID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordDeposit(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("UPDATE bookings").
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := NewRepository(db)
	require.NoError(t, repo.RecordDeposit(context.Background(), 3, "tx-99"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordBalance_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("UPDATE bookings").
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewRepository(db)
	err = repo.RecordBalance(context.Background(), 42)
	require.ErrorIs(t, err, ErrBookingNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDelete(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("DELETE FROM bookings").
		WithArgs(int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := NewRepository(db)
	require.NoError(t, repo.Delete(context.Background(), 3))
	require.NoError(t, mock.ExpectationsWereMet())
}
