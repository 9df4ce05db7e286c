package domain

import "time"

// Roles an operator account may hold. Admins can manage operator accounts;
// both roles may submit provisioning requests.
const (
	RoleAdmin    = "admin"
	RoleOperator = "operator"
)

// Operator is a service account for a human who drives provisioning through
// the HTTP API. Operators are local to this service; they are unrelated to
// the identities it provisions.
type Operator struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
