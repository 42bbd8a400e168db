package booking

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/soleraspa/booking-service/internal/domain"
	"github.com/soleraspa/booking-service/pkg/dbmetrics"
	"github.com/soleraspa/booking-service/pkg/psqlbuilder"
)

var bookingColumns = []string{
	"id",
	"reference",
	"customer_name",
	"customer_email",
	"customer_phone",
	"booking_date",
	"start_time",
	"status",
	"payment_method",
	"payment_status",
	"total_amount",
	"deposit_amount",
	"remaining_amount",
	"transaction_id",
	"created_at",
	"updated_at",
}

// Repository persists booking aggregates: the bookings row plus its ordered
// booking_services assignment rows.
type Repository struct {
	db DBExecutor
}

// NewRepository creates a booking repository.
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create inserts the booking and its assignments. Callers run it inside the
// commit transaction so the booking and its reservation rows land atomically.
func (r *Repository) Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"reference",
			"customer_name",
			"customer_email",
			"customer_phone",
			"booking_date",
			"start_time",
			"status",
			"payment_method",
			"payment_status",
			"total_amount",
			"deposit_amount",
			"remaining_amount",
		).
		Values(
			b.Reference,
			b.CustomerName,
			b.CustomerEmail,
			b.CustomerPhone,
			b.BookingDate,
			b.StartTime,
			b.Status,
			b.Payment.Method,
			b.Payment.Status,
			b.Payment.TotalAmount,
			b.Payment.DepositAmount,
			b.Payment.RemainingAmount,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&b.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time

	for position, assignment := range b.Assignments {
		query, args, err := psqlbuilder.Insert("booking_services").
			Columns("booking_id", "position", "service_id", "service_name", "service_price", "provider_id", "provider_name").
			Values(b.ID, position, assignment.ServiceID, assignment.ServiceName, assignment.ServicePrice, assignment.ProviderID, assignment.ProviderName).
			ToSql()
		if err != nil {
			return nil, fmt.Errorf("%w: Create - build assignment insert: %v", ErrBuildQuery, err)
		}
		if _, err := executor.ExecContext(ctx, query, args...); err != nil {
			return nil, fmt.Errorf("%w: Create - execute assignment insert: %v", ErrExecQuery, err)
		}
	}

	return b, nil
}

// GetByID fetches a booking with its assignments.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	b, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	assignments, err := r.loadAssignments(ctx, executor, []int64{b.ID})
	if err != nil {
		return nil, err
	}
	b.Assignments = assignments[b.ID]

	return b, nil
}

// List fetches bookings with optional status and date-range filters,
// newest appointment first, assignments included.
func (r *Repository) List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		OrderBy("booking_date DESC", "start_time DESC")

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	}
	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"booking_date": *filter.StartDate})
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"booking_date": *filter.EndDate})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	bookings := make([]*domain.Booking, 0)
	ids := make([]int64, 0)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan booking: %v", ErrScanRow, err)
		}
		bookings = append(bookings, b)
		ids = append(ids, b.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	if len(ids) == 0 {
		return bookings, nil
	}

	assignments, err := r.loadAssignments(ctx, executor, ids)
	if err != nil {
		return nil, err
	}
	for _, b := range bookings {
		b.Assignments = assignments[b.ID]
	}

	return bookings, nil
}

// RecordDeposit moves the booking to deposit_paid, storing the opaque
// transaction reference.
func (r *Repository) RecordDeposit(ctx context.Context, id int64, transactionID string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", domain.StatusDepositPaid).
		Set("payment_status", domain.PaymentPartial).
		Set("transaction_id", transactionID).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: RecordDeposit - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, "RecordDeposit", query, args)
}

// RecordBalance moves the booking to completed, zeroing the remaining amount.
func (r *Repository) RecordBalance(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", domain.StatusCompleted).
		Set("payment_status", domain.PaymentCompleted).
		Set("remaining_amount", 0).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: RecordBalance - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, "RecordBalance", query, args)
}

// Delete removes the booking row. Assignment rows go with it via the FK
// cascade; reservation rows are freed by the reservation repository inside
// the same transaction.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, "Delete", query, args)
}

func (r *Repository) execExpectingRow(ctx context.Context, executor DBExecutor, op, query string, args []interface{}) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute: %v", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}
	return nil
}

func (r *Repository) loadAssignments(ctx context.Context, executor DBExecutor, bookingIDs []int64) (map[int64][]domain.ServiceAssignment, error) {
	query, args, err := psqlbuilder.Select("booking_id", "service_id", "service_name", "service_price", "provider_id", "provider_name").
		From("booking_services").
		Where(squirrel.Eq{"booking_id": bookingIDs}).
		OrderBy("booking_id ASC", "position ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: loadAssignments - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: loadAssignments - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make(map[int64][]domain.ServiceAssignment, len(bookingIDs))
	for rows.Next() {
		var bookingID int64
		var a domain.ServiceAssignment
		if err := rows.Scan(&bookingID, &a.ServiceID, &a.ServiceName, &a.ServicePrice, &a.ProviderID, &a.ProviderName); err != nil {
			return nil, fmt.Errorf("%w: loadAssignments - scan row: %v", ErrScanRow, err)
		}
		result[bookingID] = append(result[bookingID], a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: loadAssignments - rows error: %v", ErrScanRow, err)
	}

	return result, nil
}

// rowScanner lets scanBooking work over both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var b domain.Booking
	var createdAt, updatedAt sql.NullTime
	var transactionID sql.NullString

	err := row.Scan(
		&b.ID,
		&b.Reference,
		&b.CustomerName,
		&b.CustomerEmail,
		&b.CustomerPhone,
		&b.BookingDate,
		&b.StartTime,
		&b.Status,
		&b.Payment.Method,
		&b.Payment.Status,
		&b.Payment.TotalAmount,
		&b.Payment.DepositAmount,
		&b.Payment.RemainingAmount,
		&transactionID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if transactionID.Valid {
		b.Payment.TransactionID = &transactionID.String
	}
	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time

	return &b, nil
}
