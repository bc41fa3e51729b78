package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/Slava-Nykonenko/emerald-railroads/internal/model"
)

// OrderRepo provides persistence for orders and their tickets. The
// order handler owns the booking transaction, so the write methods
// take a *sql.Tx.
type OrderRepo struct {
	db *sql.DB
}

func NewOrderRepo(db *sql.DB) *OrderRepo { return &OrderRepo{db: db} }

// DB exposes the handle so the handler can begin the booking
// transaction.
func (r *OrderRepo) DB() *sql.DB { return r.db }

// TicketDetail is one ticket as embedded in an order response.
type TicketDetail struct {
	ID            uint64 `json:"id"`
	JourneyID     uint64 `json:"journey_id"`
	Route         string `json:"route"`
	DepartureTime string `json:"departure_time"`
	Cargo         int    `json:"cargo"`
	Seat          int    `json:"seat"`
}

// OrderDetail is the read shape of one order with its tickets.
type OrderDetail struct {
	ID        uint64         `json:"id"`
	CreatedAt string         `json:"created_at"`
	Tickets   []TicketDetail `json:"tickets"`
}

// CreateTx inserts the order row and reads back its creation time.
func (r *OrderRepo) CreateTx(ctx context.Context, tx *sql.Tx, userID uint64) (*model.Order, error) {
	res, err := tx.ExecContext(ctx, `INSERT INTO orders (user_id) VALUES (?)`, userID)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	o := &model.Order{ID: uint64(id), UserID: userID}
	if err := tx.QueryRowContext(ctx,
		`SELECT created_at FROM orders WHERE id = ?`, o.ID).Scan(&o.CreatedAt); err != nil {
		return nil, err
	}
	return o, nil
}

// InsertTicketTx adds one ticket to the order and fills in the
// generated ID. The unique key on (journey_id, cargo, seat) is the
// arbiter between concurrent bookings; a duplicate maps to
// ErrSeatTaken for this ticket alone.
func (r *OrderRepo) InsertTicketTx(ctx context.Context, tx *sql.Tx, t *model.Ticket) error {
	const q = `INSERT INTO tickets (order_id, journey_id, cargo, seat) VALUES (?, ?, ?, ?)`
	res, err := tx.ExecContext(ctx, q, t.OrderID, t.JourneyID, t.Cargo, t.Seat)
	if err != nil {
		if isDupKey(err) {
			return ErrSeatTaken
		}
		if isFKMissing(err) {
			return ErrJourneyNotFound
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

// GetByIDForUser loads one order scoped to its owner. A foreign or
// missing ID both come back as sql.ErrNoRows.
func (r *OrderRepo) GetByIDForUser(ctx context.Context, id, userID uint64) (*OrderDetail, error) {
	var det OrderDetail
	var created time.Time
	err := r.db.QueryRowContext(ctx,
		`SELECT id, created_at FROM orders WHERE id = ? AND user_id = ?`, id, userID).
		Scan(&det.ID, &created)
	if err != nil {
		return nil, err
	}
	det.CreatedAt = created.UTC().Format(time.RFC3339)

	tickets, err := r.loadTickets(ctx, []uint64{det.ID})
	if err != nil {
		return nil, err
	}
	det.Tickets = tickets[det.ID]
	if det.Tickets == nil {
		det.Tickets = []TicketDetail{}
	}
	return &det, nil
}

// ListByUser pages through the user's orders, newest first, and
// attaches tickets with one extra query.
func (r *OrderRepo) ListByUser(ctx context.Context, userID uint64, page, pageSize int) ([]OrderDetail, int64, error) {
	var total int64
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM orders WHERE user_id = ?`, userID).Scan(&total); err != nil {
		return nil, 0, err
	}

	const q = `SELECT id, created_at FROM orders
	           WHERE user_id = ?
	           ORDER BY created_at DESC, id DESC
	           LIMIT ? OFFSET ?`
	rows, err := r.db.QueryContext(ctx, q, userID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := []OrderDetail{}
	ids := []uint64{}
	for rows.Next() {
		var det OrderDetail
		var created time.Time
		if err := rows.Scan(&det.ID, &created); err != nil {
			return nil, 0, err
		}
		det.CreatedAt = created.UTC().Format(time.RFC3339)
		det.Tickets = []TicketDetail{}
		out = append(out, det)
		ids = append(ids, det.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	if len(ids) == 0 {
		return out, total, nil
	}

	tickets, err := r.loadTickets(ctx, ids)
	if err != nil {
		return nil, 0, err
	}
	index := make(map[uint64]int, len(out))
	for i := range out {
		index[out[i].ID] = i
	}
	for orderID, ts := range tickets {
		if i, ok := index[orderID]; ok {
			out[i].Tickets = ts
		}
	}
	return out, total, nil
}

// loadTickets fetches the tickets of the given orders in one query,
// keyed by order ID.
func (r *OrderRepo) loadTickets(ctx context.Context, orderIDs []uint64) (map[uint64][]TicketDetail, error) {
	query := `SELECT tk.order_id, tk.id, tk.journey_id, src.name, dst.name, r.distance,
	                 j.departure_time, tk.cargo, tk.seat
	          FROM tickets tk
	          JOIN journeys j ON j.id = tk.journey_id
	          JOIN routes r ON r.id = j.route_id
	          JOIN stations src ON src.id = r.source_id
	          JOIN stations dst ON dst.id = r.destination_id
	          WHERE tk.order_id IN (`
	args := make([]interface{}, 0, len(orderIDs))
	for i, id := range orderIDs {
		if i > 0 {
			query += ","
		}
		query += "?"
		args = append(args, id)
	}
	query += `) ORDER BY tk.order_id ASC, tk.id ASC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[uint64][]TicketDetail, len(orderIDs))
	for rows.Next() {
		var orderID uint64
		var td TicketDetail
		var src, dst string
		var distance uint32
		var dep time.Time
		if err := rows.Scan(&orderID, &td.ID, &td.JourneyID, &src, &dst, &distance,
			&dep, &td.Cargo, &td.Seat); err != nil {
			return nil, err
		}
		td.Route = model.RouteLabel(src, dst, distance)
		td.DepartureTime = dep.UTC().Format(time.RFC3339)
		out[orderID] = append(out[orderID], td)
	}
	return out, rows.Err()
}

// DeleteByIDForUser removes an order owned by the user; its tickets
// cascade, freeing the seats. Foreign and missing IDs both report
// sql.ErrNoRows.
func (r *OrderRepo) DeleteByIDForUser(ctx context.Context, id, userID uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM orders WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
