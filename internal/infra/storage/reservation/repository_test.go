package reservation

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soleraspa/booking-service/internal/domain"
	"github.com/soleraspa/booking-service/pkg/types"
)

var testDate = time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)

func TestGetTimesForProviders(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"provider_id", "start_time"}).
		AddRow("lucia", "11:00").
		AddRow("maria", "10:00").
		AddRow("maria", "12:00")

	mock.ExpectQuery("SELECT provider_id, start_time FROM reservations").
		WithArgs("maria", "lucia", testDate).
		WillReturnRows(rows)

	repo := NewRepository(db)
	result, err := repo.GetTimesForProviders(context.Background(), []string{"maria", "lucia"}, testDate)
	require.NoError(t, err)

	assert.Equal(t, []types.TimeString{"10:00", "12:00"}, result["maria"])
	assert.Equal(t, []types.TimeString{"11:00"}, result["lucia"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetTimesForProviders_EmptyInput(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	result, err := repo.GetTimesForProviders(context.Background(), nil, testDate)
	require.NoError(t, err)
	assert.Empty(t, result)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestInsert(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	createdAt := time.Now()
	mock.ExpectQuery("INSERT INTO reservations").
		WithArgs(int64(1), "maria", testDate, types.TimeString("10:00")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(5), createdAt))

	repo := NewRepository(db)
	res, err := repo.Insert(context.Background(), &domain.Reservation{
		BookingID:  1,
		ProviderID: "maria",
		Date:       testDate,
		StartTime:  "10:00",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(5), res.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestInsert_UniqueViolation(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("INSERT INTO reservations").
		WillReturnError(&pq.Error{Code: "23505"})

	repo := NewRepository(db)
	_, err = repo.Insert(context.Background(), &domain.Reservation{
		BookingID:  1,
		ProviderID: "maria",
		Date:       testDate,
		StartTime:  "10:00",
	})
	require.ErrorIs(t, err, ErrSlotTaken)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteByBookingID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("DELETE FROM reservations").
		WithArgs(int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 2))

	repo := NewRepository(db)
	freed, err := repo.DeleteByBookingID(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, int64(2), freed)
	require.NoError(t, mock.ExpectationsWereMet())
}
