package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"crewup/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

func bookingRows(bookings ...*domain.Booking) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{"id", "group_id", "user_email", "booked_at", "group_title", "group_category", "meeting_type"})
	for _, b := range bookings {
		rows.AddRow(b.ID, b.GroupID, b.UserEmail, b.BookedAt, b.GroupTitle, b.GroupCategory, b.MeetingType)
	}
	return rows
}

func TestBookingRepository_Create(t *testing.T) {
	ctx := context.Background()
	bookedAt := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

	booking := func() *domain.Booking {
		return &domain.Booking{
			GroupID:       "grp-uuid-1",
			UserEmail:     "a@x.com",
			BookedAt:      bookedAt,
			GroupTitle:    "Morning Ride",
			GroupCategory: "cycling",
			MeetingType:   "offline",
		}
	}

	tests := []struct {
		name    string
		mock    func(mock sqlmock.Sqlmock)
		wantID  string
		wantErr error
	}{
		{
			name: "success",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(`SELECT max_members FROM groups WHERE id = \$1 FOR UPDATE`).
					WithArgs("grp-uuid-1").
					WillReturnRows(sqlmock.NewRows([]string{"max_members"}).AddRow(3))
				mock.ExpectQuery(`SELECT EXISTS\(SELECT 1 FROM bookings WHERE group_id = \$1 AND user_email = \$2\)`).
					WithArgs("grp-uuid-1", "a@x.com").
					WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
				mock.ExpectQuery(`SELECT COUNT\(\*\) FROM bookings WHERE group_id = \$1`).
					WithArgs("grp-uuid-1").
					WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
				mock.ExpectQuery(`INSERT INTO bookings \(group_id, user_email, booked_at, group_title, group_category, meeting_type\)`).
					WithArgs("grp-uuid-1", "a@x.com", bookedAt, "Morning Ride", "cycling", "offline").
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("bk-uuid-1"))
				mock.ExpectCommit()
			},
			wantID: "bk-uuid-1",
		},
		{
			name: "group not found",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(`SELECT max_members FROM groups WHERE id = \$1 FOR UPDATE`).
					WithArgs("grp-uuid-1").
					WillReturnError(sql.ErrNoRows)
				mock.ExpectRollback()
			},
			wantErr: domain.ErrNotFound,
		},
		{
			name: "duplicate booking",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(`SELECT max_members FROM groups WHERE id = \$1 FOR UPDATE`).
					WithArgs("grp-uuid-1").
					WillReturnRows(sqlmock.NewRows([]string{"max_members"}).AddRow(3))
				mock.ExpectQuery(`SELECT EXISTS\(SELECT 1 FROM bookings WHERE group_id = \$1 AND user_email = \$2\)`).
					WithArgs("grp-uuid-1", "a@x.com").
					WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
				mock.ExpectRollback()
			},
			wantErr: domain.ErrAlreadyBooked,
		},
		{
			name: "capacity exceeded",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(`SELECT max_members FROM groups WHERE id = \$1 FOR UPDATE`).
					WithArgs("grp-uuid-1").
					WillReturnRows(sqlmock.NewRows([]string{"max_members"}).AddRow(3))
				mock.ExpectQuery(`SELECT EXISTS\(SELECT 1 FROM bookings WHERE group_id = \$1 AND user_email = \$2\)`).
					WithArgs("grp-uuid-1", "a@x.com").
					WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
				mock.ExpectQuery(`SELECT COUNT\(\*\) FROM bookings WHERE group_id = \$1`).
					WithArgs("grp-uuid-1").
					WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))
				mock.ExpectRollback()
			},
			wantErr: domain.ErrCapacityExceeded,
		},
		{
			name: "db error",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(`SELECT max_members FROM groups WHERE id = \$1 FOR UPDATE`).
					WillReturnError(sql.ErrConnDone)
				mock.ExpectRollback()
			},
			wantErr: sql.ErrConnDone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewBookingRepository(db)
			b := booking()
			err = repo.Create(ctx, b)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				require.Equal(t, tt.wantID, b.ID)
			}
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestBookingRepository_ListByUserEmail(t *testing.T) {
	ctx := context.Background()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	newer := &domain.Booking{ID: "bk-2", GroupID: "grp-2", UserEmail: "a@x.com", BookedAt: time.Date(2025, 3, 2, 9, 0, 0, 0, time.UTC)}
	older := &domain.Booking{ID: "bk-1", GroupID: "grp-1", UserEmail: "a@x.com", BookedAt: time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)}
	mock.ExpectQuery(`SELECT id, group_id, user_email, booked_at, group_title, group_category, meeting_type FROM bookings WHERE user_email = \$1 ORDER BY booked_at DESC`).
		WithArgs("a@x.com").
		WillReturnRows(bookingRows(newer, older))

	repo := NewBookingRepository(db)
	got, err := repo.ListByUserEmail(ctx, "a@x.com")
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "bk-2", got[0].ID)
	require.Equal(t, "bk-1", got[1].ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingRepository_GetByGroupAndEmail(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		mock    func(mock sqlmock.Sqlmock)
		wantErr error
	}{
		{
			name: "found",
			mock: func(mock sqlmock.Sqlmock) {
				b := &domain.Booking{ID: "bk-1", GroupID: "grp-1", UserEmail: "a@x.com", BookedAt: time.Now()}
				mock.ExpectQuery(`SELECT id, group_id, user_email, booked_at`).
					WithArgs("grp-1", "a@x.com").
					WillReturnRows(bookingRows(b))
			},
		},
		{
			name: "not found",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, group_id, user_email, booked_at`).
					WithArgs("grp-1", "a@x.com").
					WillReturnError(sql.ErrNoRows)
			},
			wantErr: domain.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewBookingRepository(db)
			_, err = repo.GetByGroupAndEmail(ctx, "grp-1", "a@x.com")
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestBookingRepository_Delete(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name        string
		mock        func(mock sqlmock.Sqlmock)
		wantDeleted int64
	}{
		{
			name: "deletes one",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`DELETE FROM bookings WHERE id = \$1`).
					WithArgs("bk-1").
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
			wantDeleted: 1,
		},
		{
			name: "missing id deletes nothing",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`DELETE FROM bookings WHERE id = \$1`).
					WithArgs("bk-1").
					WillReturnResult(sqlmock.NewResult(0, 0))
			},
			wantDeleted: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewBookingRepository(db)
			deleted, err := repo.Delete(ctx, "bk-1")
			require.NoError(t, err)
			require.Equal(t, tt.wantDeleted, deleted)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestBookingRepository_CountByGroupID(t *testing.T) {
	ctx := context.Background()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM bookings WHERE group_id = \$1`).
		WithArgs("grp-1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(4))

	repo := NewBookingRepository(db)
	count, err := repo.CountByGroupID(ctx, "grp-1")
	require.NoError(t, err)
	require.Equal(t, 4, count)
	require.NoError(t, mock.ExpectationsWereMet())
}
