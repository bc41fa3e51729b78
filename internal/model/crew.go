package model

// Crew is a staff member that can be assigned to journeys. Journeys
// and crews form a many-to-many relation through journey_crews.
type Crew struct {
	ID        uint64 // crews.id
	FirstName string // crews.first_name
	LastName  string // crews.last_name
}

// FullName renders the crew member's display name.
func (c Crew) FullName() string {
	return c.FirstName + " " + c.LastName
}
