package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Slava-Nykonenko/emerald-railroads/internal/model"
)

// ErrTrainTypeNotFound is returned when a train type lookup fails.
var ErrTrainTypeNotFound = errors.New("train type not found")

// ErrTrainTypeExists is returned when a train type name is taken.
var ErrTrainTypeExists = errors.New("train type name already exists")

// ErrTrainTypeInUse is returned when deleting a train type that
// trains still reference. The foreign key is RESTRICT on purpose:
// removing a type must never orphan the capacity data of its trains.
var ErrTrainTypeInUse = errors.New("train type is referenced by trains")

// TrainTypeRepo provides persistence for train types.
type TrainTypeRepo struct {
	db *sql.DB
}

func NewTrainTypeRepo(db *sql.DB) *TrainTypeRepo {
	return &TrainTypeRepo{db: db}
}

// Create inserts a new train type and fills in the generated ID.
func (r *TrainTypeRepo) Create(ctx context.Context, t *model.TrainType) error {
	res, err := r.db.ExecContext(ctx, `INSERT INTO train_types (name) VALUES (?)`, t.Name)
	if err != nil {
		if isDupKey(err) {
			return ErrTrainTypeExists
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

// GetByID retrieves a train type by its ID.
func (r *TrainTypeRepo) GetByID(ctx context.Context, id uint64) (*model.TrainType, error) {
	var t model.TrainType
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name FROM train_types WHERE id = ?`, id).Scan(&t.ID, &t.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTrainTypeNotFound
		}
		return nil, err
	}
	return &t, nil
}

// List returns one page of train types ordered by id plus the total
// count.
func (r *TrainTypeRepo) List(ctx context.Context, page, pageSize int) ([]model.TrainType, int64, error) {
	var total int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM train_types`).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name FROM train_types ORDER BY id LIMIT ? OFFSET ?`,
		pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]model.TrainType, 0, pageSize)
	for rows.Next() {
		var t model.TrainType
		if err := rows.Scan(&t.ID, &t.Name); err != nil {
			return nil, 0, err
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// Update renames a train type.
func (r *TrainTypeRepo) Update(ctx context.Context, t *model.TrainType) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE train_types SET name = ? WHERE id = ?`, t.Name, t.ID)
	if err != nil {
		if isDupKey(err) {
			return ErrTrainTypeExists
		}
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		var exists bool
		if err := r.db.QueryRowContext(ctx,
			`SELECT EXISTS(SELECT 1 FROM train_types WHERE id = ?)`, t.ID).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return ErrTrainTypeNotFound
		}
	}
	return nil
}

// Delete removes a train type. The RESTRICT foreign key from trains
// turns into ErrTrainTypeInUse so handlers can answer 409.
func (r *TrainTypeRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM train_types WHERE id = ?`, id)
	if err != nil {
		if isFKRestrict(err) {
			return ErrTrainTypeInUse
		}
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrTrainTypeNotFound
	}
	return nil
}
