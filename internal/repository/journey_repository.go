package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/Slava-Nykonenko/emerald-railroads/internal/model"
)

// ErrJourneyNotFound is returned when a journey lookup fails.
var ErrJourneyNotFound = errors.New("journey not found")

// JourneyRepo provides persistence for journeys and their crew
// assignments.
type JourneyRepo struct {
	db *sql.DB
}

func NewJourneyRepo(db *sql.DB) *JourneyRepo { return &JourneyRepo{db: db} }

// availableExpr computes seats left on a journey at read time:
// train capacity minus tickets already sold. Never stored, so it is
// always consistent with the tickets table it is derived from.
const availableExpr = `t.cargo_num * t.places_in_cargo - (SELECT COUNT(*) FROM tickets tk WHERE tk.journey_id = j.id)`

// CrewName is the journey-detail view of an assigned crew member.
type CrewName struct {
	ID       uint64 `json:"id"`
	FullName string `json:"full_name"`
}

// JourneyDetail is the full read shape of one journey: route and
// train context, assigned crews and the derived availability.
type JourneyDetail struct {
	ID               uint64     `json:"id"`
	RouteID          uint64     `json:"route_id"`
	Source           string     `json:"source"`
	Destination      string     `json:"destination"`
	Distance         uint32     `json:"distance"`
	TrainID          uint64     `json:"train_id"`
	TrainName        string     `json:"train_name"`
	TrainType        string     `json:"train_type"`
	CargoNum         int        `json:"cargo_num"`
	PlacesInCargo    int        `json:"places_in_cargo"`
	TrainImage       *string    `json:"train_image"`
	DepartureTime    string     `json:"departure_time"`
	ArrivalTime      string     `json:"arrival_time"`
	AvailableTickets int64      `json:"available_tickets"`
	Crews            []CrewName `json:"crews"`
}

// Create inserts a journey and its crew assignments in one
// transaction.
func (r *JourneyRepo) Create(ctx context.Context, j *model.Journey, crewIDs []uint64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	const q = `INSERT INTO journeys (route_id, train_id, departure_time, arrival_time) VALUES (?, ?, ?, ?)`
	res, err := tx.ExecContext(ctx, q, j.RouteID, j.TrainID, j.DepartureTime.UTC(), j.ArrivalTime.UTC())
	if err != nil {
		return mapJourneyFKErr(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	j.ID = uint64(id)

	if err := assignCrewsTx(ctx, tx, j.ID, crewIDs); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// Update rewrites the journey fields and replaces its crew set in
// one transaction.
func (r *JourneyRepo) Update(ctx context.Context, j *model.Journey, crewIDs []uint64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	const q = `UPDATE journeys SET route_id = ?, train_id = ?, departure_time = ?, arrival_time = ? WHERE id = ?`
	res, err := tx.ExecContext(ctx, q, j.RouteID, j.TrainID, j.DepartureTime.UTC(), j.ArrivalTime.UTC(), j.ID)
	if err != nil {
		return mapJourneyFKErr(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		var exists bool
		if err := tx.QueryRowContext(ctx,
			`SELECT EXISTS(SELECT 1 FROM journeys WHERE id = ?)`, j.ID).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return ErrJourneyNotFound
		}
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM journey_crews WHERE journey_id = ?`, j.ID); err != nil {
		return err
	}
	if err := assignCrewsTx(ctx, tx, j.ID, crewIDs); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// assignCrewsTx bulk-inserts journey_crews rows. Duplicate crew IDs
// in the request collapse to one assignment. An empty list is a
// no-op.
func assignCrewsTx(ctx context.Context, tx *sql.Tx, journeyID uint64, crewIDs []uint64) error {
	if len(crewIDs) == 0 {
		return nil
	}
	seen := make(map[uint64]struct{}, len(crewIDs))
	query := `INSERT INTO journey_crews (journey_id, crew_id) VALUES `
	args := make([]interface{}, 0, len(crewIDs)*2)
	for _, id := range crewIDs {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		if len(args) > 0 {
			query += ","
		}
		query += "(?, ?)"
		args = append(args, journeyID, id)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		if isFKMissing(err) {
			return ErrCrewNotFound
		}
		return err
	}
	return nil
}

// mapJourneyFKErr narrows a MySQL missing-reference error to the
// entity whose foreign key failed.
func mapJourneyFKErr(err error) error {
	if !isFKMissing(err) {
		return err
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, "fk_journeys_route"):
		return ErrRouteNotFound
	case strings.Contains(msg, "fk_journeys_train"):
		return ErrTrainNotFound
	}
	return err
}

// GetDetail loads the full journey view, including past journeys.
// Returns ErrJourneyNotFound when no row matches.
func (r *JourneyRepo) GetDetail(ctx context.Context, id uint64) (*JourneyDetail, error) {
	const q = `SELECT j.id, j.route_id, src.name, dst.name, r.distance,
	                  j.train_id, t.name, tt.name, t.cargo_num, t.places_in_cargo, t.image,
	                  j.departure_time, j.arrival_time,
	                  ` + availableExpr + `
	           FROM journeys j
	           JOIN routes r ON r.id = j.route_id
	           JOIN stations src ON src.id = r.source_id
	           JOIN stations dst ON dst.id = r.destination_id
	           JOIN trains t ON t.id = j.train_id
	           JOIN train_types tt ON tt.id = t.train_type_id
	           WHERE j.id = ?`
	var det JourneyDetail
	var image sql.NullString
	var dep, arr time.Time
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&det.ID, &det.RouteID, &det.Source, &det.Destination, &det.Distance,
		&det.TrainID, &det.TrainName, &det.TrainType, &det.CargoNum, &det.PlacesInCargo, &image,
		&dep, &arr, &det.AvailableTickets)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrJourneyNotFound
		}
		return nil, err
	}
	if image.Valid {
		img := image.String
		det.TrainImage = &img
	}
	det.DepartureTime = dep.UTC().Format(time.RFC3339)
	det.ArrivalTime = arr.UTC().Format(time.RFC3339)

	det.Crews = []CrewName{}
	const crewQ = `SELECT c.id, c.first_name, c.last_name
	               FROM journey_crews jc
	               JOIN crews c ON c.id = jc.crew_id
	               WHERE jc.journey_id = ?
	               ORDER BY c.id`
	rows, err := r.db.QueryContext(ctx, crewQ, det.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var cid uint64
		var first, last string
		if err := rows.Scan(&cid, &first, &last); err != nil {
			return nil, err
		}
		det.Crews = append(det.Crews, CrewName{
			ID:       cid,
			FullName: model.Crew{FirstName: first, LastName: last}.FullName(),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &det, nil
}

// Delete removes a journey; its tickets cascade.
func (r *JourneyRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM journeys WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrJourneyNotFound
	}
	return nil
}

// JourneyBounds carries the seat grid and route context an order
// needs while validating tickets inside its transaction.
type JourneyBounds struct {
	ID            uint64
	CargoNum      int
	PlacesInCargo int
	Source        string
	Destination   string
	Distance      uint32
	DepartureTime time.Time
}

// Label renders the route string for events and responses.
func (b JourneyBounds) Label() string {
	return model.RouteLabel(b.Source, b.Destination, b.Distance)
}

// GetBoundsTx loads the bounds of one journey within the caller's
// transaction, so validation and the ticket insert read one
// consistent snapshot.
func (r *JourneyRepo) GetBoundsTx(ctx context.Context, tx *sql.Tx, id uint64) (*JourneyBounds, error) {
	const q = `SELECT j.id, t.cargo_num, t.places_in_cargo, src.name, dst.name, r.distance, j.departure_time
	           FROM journeys j
	           JOIN routes r ON r.id = j.route_id
	           JOIN stations src ON src.id = r.source_id
	           JOIN stations dst ON dst.id = r.destination_id
	           JOIN trains t ON t.id = j.train_id
	           WHERE j.id = ?`
	var b JourneyBounds
	err := tx.QueryRowContext(ctx, q, id).Scan(
		&b.ID, &b.CargoNum, &b.PlacesInCargo, &b.Source, &b.Destination, &b.Distance, &b.DepartureTime)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrJourneyNotFound
		}
		return nil, err
	}
	return &b, nil
}
