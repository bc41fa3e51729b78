package model

import "time"

// Journey is one scheduled trip of a train along a route. A journey
// must depart before it arrives; crews are attached through the
// journey_crews link table.
//
// Fields:
//  ID            - primary key identifier.
//  RouteID       - route the journey runs on.
//  TrainID       - train operating the journey.
//  DepartureTime - when the journey leaves the source station (UTC).
//  ArrivalTime   - when it reaches the destination station (UTC).
type Journey struct {
	ID            uint64    // journeys.id
	RouteID       uint64    // journeys.route_id
	TrainID       uint64    // journeys.train_id
	DepartureTime time.Time // journeys.departure_time
	ArrivalTime   time.Time // journeys.arrival_time
}
