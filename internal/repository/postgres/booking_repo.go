package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"crewup/internal/domain"
)

// uniqueViolation is the Postgres error code for unique_violation.
const uniqueViolation = "23505"

const bookingColumns = `id, group_id, user_email, booked_at, group_title, group_category, meeting_type`

type bookingRepository struct {
	DB *sql.DB
}

func NewBookingRepository(db *sql.DB) domain.BookingRepository {
	return &bookingRepository{
		DB: db,
	}
}

// Create runs the duplicate check, the capacity check, and the insert
// in one transaction. The group row is locked up front so concurrent
// bookings against the same group serialize; the unique index on
// (group_id, user_email) backstops the duplicate check.
func (r *bookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var maxMembers int
	err = tx.QueryRowContext(ctx, `SELECT max_members FROM groups WHERE id = $1 FOR UPDATE`, b.GroupID).Scan(&maxMembers)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrNotFound
		}
		return err
	}

	var booked bool
	err = tx.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM bookings WHERE group_id = $1 AND user_email = $2)`,
		b.GroupID, b.UserEmail,
	).Scan(&booked)
	if err != nil {
		return err
	}
	if booked {
		return domain.ErrAlreadyBooked
	}

	var count int
	err = tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM bookings WHERE group_id = $1`, b.GroupID).Scan(&count)
	if err != nil {
		return err
	}
	if count >= maxMembers {
		return domain.ErrCapacityExceeded
	}

	query := `
		INSERT INTO bookings (group_id, user_email, booked_at, group_title, group_category, meeting_type)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	err = tx.QueryRowContext(ctx, query,
		b.GroupID, b.UserEmail, b.BookedAt, b.GroupTitle, b.GroupCategory, b.MeetingType,
	).Scan(&b.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return domain.ErrAlreadyBooked
		}
		return err
	}
	return tx.Commit()
}

func scanBooking(row interface{ Scan(dest ...any) error }) (*domain.Booking, error) {
	b := &domain.Booking{}
	err := row.Scan(
		&b.ID, &b.GroupID, &b.UserEmail, &b.BookedAt,
		&b.GroupTitle, &b.GroupCategory, &b.MeetingType,
	)
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (r *bookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`
	b, err := scanBooking(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return b, nil
}

func (r *bookingRepository) GetByGroupAndEmail(ctx context.Context, groupID, userEmail string) (*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE group_id = $1 AND user_email = $2`
	b, err := scanBooking(r.DB.QueryRowContext(ctx, query, groupID, userEmail))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return b, nil
}

func (r *bookingRepository) ListByGroupID(ctx context.Context, groupID string) ([]*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE group_id = $1`
	return r.queryBookings(ctx, query, groupID)
}

func (r *bookingRepository) ListByUserEmail(ctx context.Context, userEmail string) ([]*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE user_email = $1 ORDER BY booked_at DESC`
	return r.queryBookings(ctx, query, userEmail)
}

func (r *bookingRepository) queryBookings(ctx context.Context, query string, args ...any) ([]*domain.Booking, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	bookings := make([]*domain.Booking, 0)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

func (r *bookingRepository) CountByGroupID(ctx context.Context, groupID string) (int, error) {
	var count int
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM bookings WHERE group_id = $1`, groupID).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *bookingRepository) Delete(ctx context.Context, id string) (int64, error) {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM bookings WHERE id = $1`, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
