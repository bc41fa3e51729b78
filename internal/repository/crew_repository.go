package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Slava-Nykonenko/emerald-railroads/internal/model"
)

// ErrCrewNotFound is returned when a crew lookup fails.
var ErrCrewNotFound = errors.New("crew member not found")

// CrewRepo provides persistence for crew members.
type CrewRepo struct {
	db *sql.DB
}

func NewCrewRepo(db *sql.DB) *CrewRepo { return &CrewRepo{db: db} }

// Create inserts a new crew member and fills in the generated ID.
func (r *CrewRepo) Create(ctx context.Context, c *model.Crew) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO crews (first_name, last_name) VALUES (?, ?)`, c.FirstName, c.LastName)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	c.ID = uint64(id)
	return nil
}

// GetByID retrieves a crew member by id.
func (r *CrewRepo) GetByID(ctx context.Context, id uint64) (*model.Crew, error) {
	var c model.Crew
	err := r.db.QueryRowContext(ctx,
		`SELECT id, first_name, last_name FROM crews WHERE id = ?`, id).
		Scan(&c.ID, &c.FirstName, &c.LastName)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCrewNotFound
		}
		return nil, err
	}
	return &c, nil
}

// List returns one page of crew members ordered by id plus the
// total count.
func (r *CrewRepo) List(ctx context.Context, page, pageSize int) ([]model.Crew, int64, error) {
	var total int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM crews`).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, first_name, last_name FROM crews ORDER BY id LIMIT ? OFFSET ?`,
		pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]model.Crew, 0, pageSize)
	for rows.Next() {
		var c model.Crew
		if err := rows.Scan(&c.ID, &c.FirstName, &c.LastName); err != nil {
			return nil, 0, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// Update rewrites a crew member's name.
func (r *CrewRepo) Update(ctx context.Context, c *model.Crew) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE crews SET first_name = ?, last_name = ? WHERE id = ?`,
		c.FirstName, c.LastName, c.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		var exists bool
		if err := r.db.QueryRowContext(ctx,
			`SELECT EXISTS(SELECT 1 FROM crews WHERE id = ?)`, c.ID).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return ErrCrewNotFound
		}
	}
	return nil
}

// Delete removes a crew member and their journey assignments.
func (r *CrewRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM crews WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrCrewNotFound
	}
	return nil
}
