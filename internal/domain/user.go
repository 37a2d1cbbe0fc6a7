package domain

import "time"

// User is the identity entity. The backend owns it; the portal holds a
// read-only cached copy resolved through the identity query.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}
