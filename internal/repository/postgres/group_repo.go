package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"crewup/internal/domain"
)

const groupColumns = `id, owner_email, title, category, meeting_type, start_date, start_time, max_members, description, location, image_url, created_at, updated_at`

type groupRepository struct {
	DB *sql.DB
}

func NewGroupRepository(db *sql.DB) domain.GroupRepository {
	return &groupRepository{
		DB: db,
	}
}

func (r *groupRepository) Create(ctx context.Context, g *domain.Group) error {
	query := `
		INSERT INTO groups (owner_email, title, category, meeting_type, start_date, start_time, max_members, description, location, image_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query,
		g.OwnerEmail, g.Title, g.Category, g.MeetingType, g.StartDate, g.StartTime,
		g.MaxMembers, g.Description, g.Location, g.ImageURL, g.CreatedAt, g.UpdatedAt,
	).Scan(&g.ID)
}

func scanGroup(row interface{ Scan(dest ...any) error }) (*domain.Group, error) {
	g := &domain.Group{}
	err := row.Scan(
		&g.ID, &g.OwnerEmail, &g.Title, &g.Category, &g.MeetingType,
		&g.StartDate, &g.StartTime, &g.MaxMembers,
		&g.Description, &g.Location, &g.ImageURL,
		&g.CreatedAt, &g.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return g, nil
}

func (r *groupRepository) GetByID(ctx context.Context, id string) (*domain.Group, error) {
	query := `SELECT ` + groupColumns + ` FROM groups WHERE id = $1`
	g, err := scanGroup(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return g, nil
}

func (r *groupRepository) List(ctx context.Context) ([]*domain.Group, error) {
	query := `SELECT ` + groupColumns + ` FROM groups ORDER BY created_at DESC`
	return r.queryGroups(ctx, query)
}

func (r *groupRepository) ListByOwnerEmail(ctx context.Context, ownerEmail string) ([]*domain.Group, error) {
	query := `SELECT ` + groupColumns + ` FROM groups WHERE owner_email = $1 ORDER BY created_at DESC`
	return r.queryGroups(ctx, query, ownerEmail)
}

func (r *groupRepository) ListByIDs(ctx context.Context, ids []string) ([]*domain.Group, error) {
	if len(ids) == 0 {
		return []*domain.Group{}, nil
	}
	query := `SELECT ` + groupColumns + ` FROM groups WHERE id = ANY($1)`
	return r.queryGroups(ctx, query, pq.Array(ids))
}

func (r *groupRepository) queryGroups(ctx context.Context, query string, args ...any) ([]*domain.Group, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	groups := make([]*domain.Group, 0)
	for rows.Next() {
		g, err := scanGroup(rows)
		if err != nil {
			return nil, err
		}
		groups = append(groups, g)
	}
	return groups, rows.Err()
}

// Update applies the patch in one transaction. The group row is locked
// first so a capacity change is validated against a booking count that
// cannot move underneath it; on rejection nothing is applied.
func (r *groupRepository) Update(ctx context.Context, id string, patch domain.GroupPatch) (*domain.Group, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var currentMax int
	err = tx.QueryRowContext(ctx, `SELECT max_members FROM groups WHERE id = $1 FOR UPDATE`, id).Scan(&currentMax)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	if patch.MaxMembers != nil {
		var booked int
		err = tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM bookings WHERE group_id = $1`, id).Scan(&booked)
		if err != nil {
			return nil, err
		}
		if *patch.MaxMembers < booked {
			return nil, domain.ErrCapacityBelowBookings
		}
	}

	setClauses := []string{"updated_at = NOW()"}
	args := []any{}
	n := 1
	add := func(column string, value any) {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, n))
		args = append(args, value)
		n++
	}
	if patch.Title != nil {
		add("title", *patch.Title)
	}
	if patch.Category != nil {
		add("category", *patch.Category)
	}
	if patch.MeetingType != nil {
		add("meeting_type", *patch.MeetingType)
	}
	if patch.StartDate != nil {
		add("start_date", *patch.StartDate)
	}
	if patch.StartTime != nil {
		add("start_time", *patch.StartTime)
	}
	if patch.MaxMembers != nil {
		add("max_members", *patch.MaxMembers)
	}
	if patch.Description != nil {
		add("description", *patch.Description)
	}
	if patch.Location != nil {
		add("location", *patch.Location)
	}
	if patch.ImageURL != nil {
		add("image_url", *patch.ImageURL)
	}

	args = append(args, id)
	query := fmt.Sprintf(`
		UPDATE groups SET %s
		WHERE id = $%d
		RETURNING %s
	`, strings.Join(setClauses, ", "), n, groupColumns)
	g, err := scanGroup(tx.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return g, nil
}

func (r *groupRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM groups WHERE id = $1`
	result, err := r.DB.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
