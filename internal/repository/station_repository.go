package repository // repository holds data access logic for domain entities

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Slava-Nykonenko/emerald-railroads/internal/model"
)

// ErrStationNotFound is returned when a station lookup fails.
var ErrStationNotFound = errors.New("station not found")

// ErrStationExists is returned when a station name is already taken.
var ErrStationExists = errors.New("station name already exists")

// StationRepo provides persistence for stations.
type StationRepo struct {
	db *sql.DB
}

// NewStationRepo constructs a StationRepo with the given DB handle.
func NewStationRepo(db *sql.DB) *StationRepo {
	return &StationRepo{db: db}
}

// Create inserts a new station and fills in the generated ID.
func (r *StationRepo) Create(ctx context.Context, s *model.Station) error {
	const q = `INSERT INTO stations (name, latitude, longitude) VALUES (?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, s.Name, s.Latitude, s.Longitude)
	if err != nil {
		if isDupKey(err) {
			return ErrStationExists
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	s.ID = uint64(id)
	return nil
}

// GetByID retrieves a station by its ID. Returns ErrStationNotFound
// when no row matches.
func (r *StationRepo) GetByID(ctx context.Context, id uint64) (*model.Station, error) {
	const q = `SELECT id, name, latitude, longitude FROM stations WHERE id = ?`
	var s model.Station
	err := r.db.QueryRowContext(ctx, q, id).Scan(&s.ID, &s.Name, &s.Latitude, &s.Longitude)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrStationNotFound
		}
		return nil, err
	}
	return &s, nil
}

// List returns one page of stations ordered by id plus the total
// station count for pagination.
func (r *StationRepo) List(ctx context.Context, page, pageSize int) ([]model.Station, int64, error) {
	var total int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM stations`).Scan(&total); err != nil {
		return nil, 0, err
	}

	const q = `SELECT id, name, latitude, longitude FROM stations ORDER BY id LIMIT ? OFFSET ?`
	rows, err := r.db.QueryContext(ctx, q, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]model.Station, 0, pageSize)
	for rows.Next() {
		var s model.Station
		if err := rows.Scan(&s.ID, &s.Name, &s.Latitude, &s.Longitude); err != nil {
			return nil, 0, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// Update rewrites all mutable station fields. A zero rows-affected
// result is checked against existence so that saving unchanged
// values is not mistaken for a missing row.
func (r *StationRepo) Update(ctx context.Context, s *model.Station) error {
	const q = `UPDATE stations SET name = ?, latitude = ?, longitude = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, s.Name, s.Latitude, s.Longitude, s.ID)
	if err != nil {
		if isDupKey(err) {
			return ErrStationExists
		}
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return r.ensureExists(ctx, s.ID)
	}
	return nil
}

// Delete removes a station. Routes referencing it cascade away,
// taking their journeys and tickets with them.
func (r *StationRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM stations WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrStationNotFound
	}
	return nil
}

func (r *StationRepo) ensureExists(ctx context.Context, id uint64) error {
	var exists bool
	if err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM stations WHERE id = ?)`, id).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return ErrStationNotFound
	}
	return nil
}
