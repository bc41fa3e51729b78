package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Slava-Nykonenko/emerald-railroads/internal/model"
)

// ErrRouteNotFound is returned when a route lookup fails.
var ErrRouteNotFound = errors.New("route not found")

// RouteRepo provides persistence for routes.
type RouteRepo struct {
	db *sql.DB
}

func NewRouteRepo(db *sql.DB) *RouteRepo { return &RouteRepo{db: db} }

// RouteRow is the read shape for routes: ids plus the joined station
// names, so lists and details can show "Kyiv -> Lviv (540)" without
// extra queries.
type RouteRow struct {
	ID            uint64 `json:"id"`
	SourceID      uint64 `json:"source_id"`
	Source        string `json:"source"`
	DestinationID uint64 `json:"destination_id"`
	Destination   string `json:"destination"`
	Distance      uint32 `json:"distance"`
}

// Label renders the canonical route string.
func (r RouteRow) Label() string {
	return model.RouteLabel(r.Source, r.Destination, r.Distance)
}

// Create inserts a new route and fills in the generated ID. Missing
// stations surface as ErrStationNotFound through the foreign keys.
func (r *RouteRepo) Create(ctx context.Context, rt *model.Route) error {
	const q = `INSERT INTO routes (source_id, destination_id, distance) VALUES (?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, rt.SourceID, rt.DestinationID, rt.Distance)
	if err != nil {
		if isFKMissing(err) {
			return ErrStationNotFound
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	rt.ID = uint64(id)
	return nil
}

// GetByID retrieves a route with both station names resolved.
func (r *RouteRepo) GetByID(ctx context.Context, id uint64) (*RouteRow, error) {
	const q = `SELECT r.id, r.source_id, src.name, r.destination_id, dst.name, r.distance
	           FROM routes r
	           JOIN stations src ON src.id = r.source_id
	           JOIN stations dst ON dst.id = r.destination_id
	           WHERE r.id = ?`
	var row RouteRow
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&row.ID, &row.SourceID, &row.Source, &row.DestinationID, &row.Destination, &row.Distance)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRouteNotFound
		}
		return nil, err
	}
	return &row, nil
}

// List returns one page of routes ordered by id plus the total
// count.
func (r *RouteRepo) List(ctx context.Context, page, pageSize int) ([]RouteRow, int64, error) {
	var total int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM routes`).Scan(&total); err != nil {
		return nil, 0, err
	}

	const q = `SELECT r.id, r.source_id, src.name, r.destination_id, dst.name, r.distance
	           FROM routes r
	           JOIN stations src ON src.id = r.source_id
	           JOIN stations dst ON dst.id = r.destination_id
	           ORDER BY r.id
	           LIMIT ? OFFSET ?`
	rows, err := r.db.QueryContext(ctx, q, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]RouteRow, 0, pageSize)
	for rows.Next() {
		var row RouteRow
		if err := rows.Scan(&row.ID, &row.SourceID, &row.Source,
			&row.DestinationID, &row.Destination, &row.Distance); err != nil {
			return nil, 0, err
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// Update rewrites the route endpoints and distance.
func (r *RouteRepo) Update(ctx context.Context, rt *model.Route) error {
	const q = `UPDATE routes SET source_id = ?, destination_id = ?, distance = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, rt.SourceID, rt.DestinationID, rt.Distance, rt.ID)
	if err != nil {
		if isFKMissing(err) {
			return ErrStationNotFound
		}
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		var exists bool
		if err := r.db.QueryRowContext(ctx,
			`SELECT EXISTS(SELECT 1 FROM routes WHERE id = ?)`, rt.ID).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return ErrRouteNotFound
		}
	}
	return nil
}

// Delete removes a route; journeys scheduled on it cascade.
func (r *RouteRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM routes WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrRouteNotFound
	}
	return nil
}
