package reservation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/soleraspa/booking-service/internal/domain"
	"github.com/soleraspa/booking-service/pkg/dbmetrics"
	"github.com/soleraspa/booking-service/pkg/psqlbuilder"
	"github.com/soleraspa/booking-service/pkg/types"
)

// SQLSTATE 23505: unique_violation.
const uniqueViolationCode = "23505"

// Repository persists the reservation index: one row per committed
// (provider, date, time) triple.
type Repository struct {
	db DBExecutor
}

// NewRepository creates a reservation index repository.
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetTimesForProviders returns the committed times per provider for one date.
// Providers with no reservations are absent from the map.
//
// Inside a transaction the rows are locked with FOR UPDATE, so a concurrent
// commit touching the same provider/date serializes behind this read.
func (r *Repository) GetTimesForProviders(ctx context.Context, providerIDs []string, date time.Time) (map[string][]types.TimeString, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	result := make(map[string][]types.TimeString, len(providerIDs))
	if len(providerIDs) == 0 {
		return result, nil
	}

	selectBuilder := psqlbuilder.Select("provider_id", "start_time").
		From("reservations").
		Where(squirrel.Eq{"provider_id": providerIDs}).
		Where(squirrel.Eq{"booking_date": date}).
		OrderBy("provider_id ASC", "start_time ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetTimesForProviders - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetTimesForProviders - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var providerID string
		var startTime types.TimeString
		if err := rows.Scan(&providerID, &startTime); err != nil {
			return nil, fmt.Errorf("%w: GetTimesForProviders - scan row: %v", ErrScanRow, err)
		}
		result[providerID] = append(result[providerID], startTime)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetTimesForProviders - rows error: %v", ErrScanRow, err)
	}

	return result, nil
}

// Insert commits one (provider, date, time) triple for a booking.
// Returns ErrSlotTaken when the triple already exists.
func (r *Repository) Insert(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("reservations").
		Columns("booking_id", "provider_id", "booking_date", "start_time").
		Values(res.BookingID, res.ProviderID, res.Date, res.StartTime).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Insert - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&res.ID, &createdAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrSlotTaken
		}
		return nil, fmt.Errorf("%w: Insert - execute insert: %v", ErrExecQuery, err)
	}

	res.CreatedAt = createdAt.Time
	return res, nil
}

// DeleteByBookingID removes all reservation rows held by a booking,
// returning the number of freed slots.
func (r *Repository) DeleteByBookingID(ctx context.Context, bookingID int64) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("reservations").
		Where(squirrel.Eq{"booking_id": bookingID}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: DeleteByBookingID - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteByBookingID - execute delete: %v", ErrExecQuery, err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteByBookingID - get rows affected: %v", ErrExecQuery, err)
	}

	return deleted, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == uniqueViolationCode
	}
	return false
}
