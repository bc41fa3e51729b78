package handler

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Slava-Nykonenko/emerald-railroads/internal/model"
	"github.com/Slava-Nykonenko/emerald-railroads/internal/queue"
	"github.com/Slava-Nykonenko/emerald-railroads/internal/repository"
	queue_publisher "github.com/Slava-Nykonenko/emerald-railroads/internal/service"
)

// OrderHandler serves order placement and the caller's order
// history. Placement owns the booking transaction: the order row and
// every ticket commit together or not at all.
type OrderHandler struct {
	Orders   *repository.OrderRepo
	Journeys *repository.JourneyRepo
}

func NewOrderHandler(orders *repository.OrderRepo, journeys *repository.JourneyRepo) *OrderHandler {
	if orders == nil || journeys == nil {
		panic("nil repository passed to NewOrderHandler")
	}
	return &OrderHandler{Orders: orders, Journeys: journeys}
}

type orderTicketReq struct {
	JourneyID uint64 `json:"journey_id" validate:"required,min=1"`
	Cargo     int    `json:"cargo" validate:"required,min=1"`
	Seat      int    `json:"seat" validate:"required,min=1"`
}

type orderReq struct {
	Tickets []orderTicketReq `json:"tickets" validate:"required,min=1,dive"`
}

// Create handles POST /v1/orders. Every ticket is validated against
// its journey's seat grid inside the transaction; the first failure
// rolls the whole order back with the offending ticket's index. Seat
// races are settled by the unique key on (journey, cargo, seat), so
// the loser of a concurrent booking gets the same 400 as a stale
// client.
func (h *OrderHandler) Create(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req orderReq
	if bindAndValidate(c, &req) {
		return nil
	}

	ctx := c.Request().Context()
	tx, err := h.Orders.DB().BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database_error"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	order, err := h.Orders.CreateTx(ctx, tx, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database_error"})
	}

	// One order may book several seats on one journey; bounds are
	// loaded once per journey within the tx snapshot.
	bounds := make(map[uint64]*repository.JourneyBounds, len(req.Tickets))
	events := make([]queue.TicketEvent, 0, len(req.Tickets))
	for i, t := range req.Tickets {
		b, ok := bounds[t.JourneyID]
		if !ok {
			b, err = h.Journeys.GetBoundsTx(ctx, tx, t.JourneyID)
			if err != nil {
				if errors.Is(err, repository.ErrJourneyNotFound) {
					return c.JSON(http.StatusBadRequest, echo.Map{
						"error":        "invalid_request",
						"ticket_index": i,
						"message":      "journey not found",
					})
				}
				return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database_error"})
			}
			bounds[t.JourneyID] = b
		}

		if err := model.ValidateSeat(t.Seat, t.Cargo, b.PlacesInCargo, b.CargoNum); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{
				"error":        "invalid_request",
				"ticket_index": i,
				"message":      err.Error(),
			})
		}

		ticket := model.Ticket{
			Cargo:     t.Cargo,
			Seat:      t.Seat,
			JourneyID: t.JourneyID,
			OrderID:   order.ID,
		}
		if err := h.Orders.InsertTicketTx(ctx, tx, &ticket); err != nil {
			if errors.Is(err, repository.ErrSeatTaken) {
				return c.JSON(http.StatusBadRequest, echo.Map{
					"error":        "seat_taken",
					"ticket_index": i,
					"message":      "seat already taken for this journey",
				})
			}
			if errors.Is(err, repository.ErrJourneyNotFound) {
				return c.JSON(http.StatusBadRequest, echo.Map{
					"error":        "invalid_request",
					"ticket_index": i,
					"message":      "journey not found",
				})
			}
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database_error"})
		}

		events = append(events, queue.TicketEvent{
			JourneyID:     t.JourneyID,
			Route:         b.Label(),
			DepartureTime: b.DepartureTime.UTC().Format(time.RFC3339),
			Cargo:         t.Cargo,
			Seat:          t.Seat,
		})
	}

	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database_error"})
	}
	committed = true

	ev := queue.OrderConfirmedEvent{
		OrderID:     order.ID,
		UserID:      userID,
		TicketCount: len(events),
		Tickets:     events,
		ConfirmedAt: time.Now().UTC().Format(time.RFC3339),
	}
	// Best effort: the order is committed, a broker outage only costs
	// the notification. Detached context so the publish survives the
	// request returning.
	go func() {
		pubCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = queue_publisher.PublishOrderConfirmed(pubCtx, ev)
	}()

	det, err := h.Orders.GetByIDForUser(ctx, order.ID, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database_error"})
	}
	return c.JSON(http.StatusCreated, det)
}

// List handles GET /v1/orders, the caller's orders newest first.
func (h *OrderHandler) List(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	page, pageSize := pageParams(c, 10)
	orders, total, err := h.Orders.ListByUser(c.Request().Context(), userID, page, pageSize)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database_error"})
	}
	return listResponse(c, orders, total, page, pageSize)
}

// Get handles GET /v1/orders/:id. Another user's order reports
// not_found, never forbidden, so order IDs cannot be probed.
func (h *OrderHandler) Get(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid_request", "message": "invalid order id"})
	}
	det, err := h.Orders.GetByIDForUser(c.Request().Context(), id, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "not_found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database_error"})
	}
	return c.JSON(http.StatusOK, det)
}

// Delete handles DELETE /v1/orders/:id. Cancelling an order removes
// its tickets, which frees the seats for rebooking.
func (h *OrderHandler) Delete(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid_request", "message": "invalid order id"})
	}
	if err := h.Orders.DeleteByIDForUser(c.Request().Context(), id, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "not_found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database_error"})
	}
	return c.NoContent(http.StatusNoContent)
}
