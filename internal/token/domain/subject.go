package domain

import "time"

// Subject maps an external subject reference to a stable subject id. Used
// only when reconstructing a pair from an externally minted token.
type Subject struct {
	ID        string
	Email     string
	CreatedAt time.Time
}
