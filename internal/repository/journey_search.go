package repository

import (
	"context"
	"strings"
	"time"
)

// JourneySearchQuery carries the public search filters. Date, when
// set, keeps journeys departing at or after that day's UTC midnight.
type JourneySearchQuery struct {
	Source      string
	Destination string
	Date        *time.Time
	Page        int
	PageSize    int
}

// JourneyRow is one row of the public journey list.
type JourneyRow struct {
	ID               uint64 `json:"id"`
	Source           string `json:"source"`
	Destination      string `json:"destination"`
	Distance         uint32 `json:"distance"`
	TrainName        string `json:"train_name"`
	DepartureTime    string `json:"departure_time"`
	ArrivalTime      string `json:"arrival_time"`
	AvailableTickets int64  `json:"available_tickets"`
}

// SearchUpcoming lists journeys that have not yet departed, filtered
// and paginated. Station name filters match case-insensitive
// substrings.
func (r *JourneyRepo) SearchUpcoming(ctx context.Context, q JourneySearchQuery) ([]JourneyRow, int64, error) {
	where := []string{"j.departure_time >= NOW()"}
	args := []interface{}{}

	if s := strings.TrimSpace(q.Source); s != "" {
		where = append(where, "LOWER(src.name) LIKE ?")
		args = append(args, "%"+strings.ToLower(s)+"%")
	}
	if d := strings.TrimSpace(q.Destination); d != "" {
		where = append(where, "LOWER(dst.name) LIKE ?")
		args = append(args, "%"+strings.ToLower(d)+"%")
	}
	if q.Date != nil {
		where = append(where, "j.departure_time >= ?")
		args = append(args, q.Date.UTC())
	}

	const from = ` FROM journeys j
	               JOIN routes r ON r.id = j.route_id
	               JOIN stations src ON src.id = r.source_id
	               JOIN stations dst ON dst.id = r.destination_id
	               JOIN trains t ON t.id = j.train_id`
	cond := " WHERE " + strings.Join(where, " AND ")

	var total int64
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*)"+from+cond, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT j.id, src.name, dst.name, r.distance, t.name,
	                 j.departure_time, j.arrival_time, ` + availableExpr +
		from + cond + ` ORDER BY j.departure_time ASC, j.id ASC LIMIT ? OFFSET ?`
	args = append(args, q.PageSize, (q.Page-1)*q.PageSize)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := []JourneyRow{}
	for rows.Next() {
		var jr JourneyRow
		var dep, arr time.Time
		if err := rows.Scan(&jr.ID, &jr.Source, &jr.Destination, &jr.Distance, &jr.TrainName,
			&dep, &arr, &jr.AvailableTickets); err != nil {
			return nil, 0, err
		}
		jr.DepartureTime = dep.UTC().Format(time.RFC3339)
		jr.ArrivalTime = arr.UTC().Format(time.RFC3339)
		out = append(out, jr)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// StationJourneyRow is one journey embedded in a station detail.
// Outgoing rows carry the destination and departure time, incoming
// rows the source and arrival time.
type StationJourneyRow struct {
	ID               uint64 `json:"id"`
	Source           string `json:"source,omitempty"`
	Destination      string `json:"destination,omitempty"`
	DepartureTime    string `json:"departure_time,omitempty"`
	ArrivalTime      string `json:"arrival_time,omitempty"`
	AvailableTickets int64  `json:"available_tickets"`
}

// ListOutgoingByStation lists journeys leaving the station that have
// not yet arrived, soonest departure first.
func (r *JourneyRepo) ListOutgoingByStation(ctx context.Context, stationID uint64) ([]StationJourneyRow, error) {
	const q = `SELECT j.id, dst.name, j.departure_time, ` + availableExpr + `
	           FROM journeys j
	           JOIN routes r ON r.id = j.route_id
	           JOIN stations dst ON dst.id = r.destination_id
	           JOIN trains t ON t.id = j.train_id
	           WHERE r.source_id = ? AND j.arrival_time >= NOW()
	           ORDER BY j.departure_time ASC`
	rows, err := r.db.QueryContext(ctx, q, stationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []StationJourneyRow{}
	for rows.Next() {
		var sr StationJourneyRow
		var dep time.Time
		if err := rows.Scan(&sr.ID, &sr.Destination, &dep, &sr.AvailableTickets); err != nil {
			return nil, err
		}
		sr.DepartureTime = dep.UTC().Format(time.RFC3339)
		out = append(out, sr)
	}
	return out, rows.Err()
}

// ListIncomingByStation lists journeys bound for the station that
// have not yet departed, soonest arrival first.
func (r *JourneyRepo) ListIncomingByStation(ctx context.Context, stationID uint64) ([]StationJourneyRow, error) {
	const q = `SELECT j.id, src.name, j.arrival_time, ` + availableExpr + `
	           FROM journeys j
	           JOIN routes r ON r.id = j.route_id
	           JOIN stations src ON src.id = r.source_id
	           JOIN trains t ON t.id = j.train_id
	           WHERE r.destination_id = ? AND j.departure_time >= NOW()
	           ORDER BY j.arrival_time ASC`
	rows, err := r.db.QueryContext(ctx, q, stationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []StationJourneyRow{}
	for rows.Next() {
		var sr StationJourneyRow
		var arr time.Time
		if err := rows.Scan(&sr.ID, &sr.Source, &arr, &sr.AvailableTickets); err != nil {
			return nil, err
		}
		sr.ArrivalTime = arr.UTC().Format(time.RFC3339)
		out = append(out, sr)
	}
	return out, rows.Err()
}

// RouteJourneyRow is one journey embedded in a route detail.
type RouteJourneyRow struct {
	ID               uint64 `json:"id"`
	DepartureTime    string `json:"departure_time"`
	ArrivalTime      string `json:"arrival_time"`
	AvailableTickets int64  `json:"available_tickets"`
}

// ListUpcomingByRoute lists the route's journeys that have not yet
// departed, soonest first.
func (r *JourneyRepo) ListUpcomingByRoute(ctx context.Context, routeID uint64) ([]RouteJourneyRow, error) {
	const q = `SELECT j.id, j.departure_time, j.arrival_time, ` + availableExpr + `
	           FROM journeys j
	           JOIN trains t ON t.id = j.train_id
	           WHERE j.route_id = ? AND j.departure_time >= NOW()
	           ORDER BY j.departure_time ASC`
	rows, err := r.db.QueryContext(ctx, q, routeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []RouteJourneyRow{}
	for rows.Next() {
		var rr RouteJourneyRow
		var dep, arr time.Time
		if err := rows.Scan(&rr.ID, &dep, &arr, &rr.AvailableTickets); err != nil {
			return nil, err
		}
		rr.DepartureTime = dep.UTC().Format(time.RFC3339)
		rr.ArrivalTime = arr.UTC().Format(time.RFC3339)
		out = append(out, rr)
	}
	return out, rows.Err()
}
