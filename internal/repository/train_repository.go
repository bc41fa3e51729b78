package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Slava-Nykonenko/emerald-railroads/internal/model"
)

// ErrTrainNotFound is returned when a train lookup fails.
var ErrTrainNotFound = errors.New("train not found")

// TrainRepo provides persistence for trains.
type TrainRepo struct {
	db *sql.DB
}

func NewTrainRepo(db *sql.DB) *TrainRepo {
	return &TrainRepo{db: db}
}

// TrainRow is the read shape for trains: the raw columns plus the
// joined type name and the derived capacity.
type TrainRow struct {
	ID            uint64  `json:"id"`
	Name          string  `json:"name"`
	CargoNum      int     `json:"cargo_num"`
	PlacesInCargo int     `json:"places_in_cargo"`
	Capacity      int     `json:"capacity"`
	TrainTypeID   uint64  `json:"train_type_id"`
	TrainType     string  `json:"train_type"`
	Image         *string `json:"image"`
}

// finish resolves the nullable image column and derives the seat
// capacity once the raw columns are scanned.
func (row *TrainRow) finish(image sql.NullString) {
	if image.Valid {
		img := image.String
		row.Image = &img
	}
	row.Capacity = model.Train{CargoNum: row.CargoNum, PlacesInCargo: row.PlacesInCargo}.Capacity()
}

// Create inserts a new train and fills in the generated ID. The
// image column is never written here; images arrive only through
// SetImage after an upload.
func (r *TrainRepo) Create(ctx context.Context, t *model.Train) error {
	const q = `INSERT INTO trains (name, cargo_num, places_in_cargo, train_type_id) VALUES (?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, t.Name, t.CargoNum, t.PlacesInCargo, t.TrainTypeID)
	if err != nil {
		if isFKMissing(err) {
			return ErrTrainTypeNotFound
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	t.ID = uint64(id)
	return nil
}

// GetByID retrieves a train with its type name.
func (r *TrainRepo) GetByID(ctx context.Context, id uint64) (*TrainRow, error) {
	const q = `SELECT t.id, t.name, t.cargo_num, t.places_in_cargo, t.train_type_id, tt.name, t.image
	           FROM trains t
	           JOIN train_types tt ON tt.id = t.train_type_id
	           WHERE t.id = ?`
	var row TrainRow
	var image sql.NullString
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&row.ID, &row.Name, &row.CargoNum, &row.PlacesInCargo, &row.TrainTypeID, &row.TrainType, &image)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTrainNotFound
		}
		return nil, err
	}
	row.finish(image)
	return &row, nil
}

// List returns one page of trains ordered by id plus the total
// count.
func (r *TrainRepo) List(ctx context.Context, page, pageSize int) ([]TrainRow, int64, error) {
	var total int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM trains`).Scan(&total); err != nil {
		return nil, 0, err
	}

	const q = `SELECT t.id, t.name, t.cargo_num, t.places_in_cargo, t.train_type_id, tt.name, t.image
	           FROM trains t
	           JOIN train_types tt ON tt.id = t.train_type_id
	           ORDER BY t.id
	           LIMIT ? OFFSET ?`
	rows, err := r.db.QueryContext(ctx, q, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]TrainRow, 0, pageSize)
	for rows.Next() {
		var row TrainRow
		var image sql.NullString
		if err := rows.Scan(&row.ID, &row.Name, &row.CargoNum, &row.PlacesInCargo,
			&row.TrainTypeID, &row.TrainType, &image); err != nil {
			return nil, 0, err
		}
		row.finish(image)
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// ListByType returns every train of one type, for the train-type
// detail view.
func (r *TrainRepo) ListByType(ctx context.Context, typeID uint64) ([]TrainRow, error) {
	const q = `SELECT t.id, t.name, t.cargo_num, t.places_in_cargo, t.train_type_id, tt.name, t.image
	           FROM trains t
	           JOIN train_types tt ON tt.id = t.train_type_id
	           WHERE t.train_type_id = ?
	           ORDER BY t.id`
	rows, err := r.db.QueryContext(ctx, q, typeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]TrainRow, 0)
	for rows.Next() {
		var row TrainRow
		var image sql.NullString
		if err := rows.Scan(&row.ID, &row.Name, &row.CargoNum, &row.PlacesInCargo,
			&row.TrainTypeID, &row.TrainType, &image); err != nil {
			return nil, err
		}
		row.finish(image)
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update rewrites the mutable train fields. The image column is
// deliberately left out; see SetImage.
func (r *TrainRepo) Update(ctx context.Context, t *model.Train) error {
	const q = `UPDATE trains SET name = ?, cargo_num = ?, places_in_cargo = ?, train_type_id = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, t.Name, t.CargoNum, t.PlacesInCargo, t.TrainTypeID, t.ID)
	if err != nil {
		if isFKMissing(err) {
			return ErrTrainTypeNotFound
		}
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		var exists bool
		if err := r.db.QueryRowContext(ctx,
			`SELECT EXISTS(SELECT 1 FROM trains WHERE id = ?)`, t.ID).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return ErrTrainNotFound
		}
	}
	return nil
}

// SetImage records the media path of an uploaded train photo.
func (r *TrainRepo) SetImage(ctx context.Context, id uint64, path string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE trains SET image = ? WHERE id = ?`, path, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		var exists bool
		if err := r.db.QueryRowContext(ctx,
			`SELECT EXISTS(SELECT 1 FROM trains WHERE id = ?)`, id).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return ErrTrainNotFound
		}
	}
	return nil
}

// Delete removes a train; its journeys and their tickets cascade.
func (r *TrainRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM trains WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrTrainNotFound
	}
	return nil
}
