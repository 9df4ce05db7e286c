package domain

import "time"

// Identity is an authentication-layer account record owned by the external
// identity store. The store assigns the ID; this service never mutates an
// identity after requesting its creation.
type Identity struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
