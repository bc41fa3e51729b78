package model

import "time"

// Order groups the tickets a user bought in one purchase. An order
// and all of its tickets are created inside a single database
// transaction; a failing ticket aborts the whole order.
//
// Fields:
//  ID        - primary key identifier.
//  UserID    - user who placed the order.
//  CreatedAt - purchase timestamp; listings sort on it descending.
type Order struct {
	ID        uint64    // orders.id
	UserID    uint64    // orders.user_id
	CreatedAt time.Time // orders.created_at
}
