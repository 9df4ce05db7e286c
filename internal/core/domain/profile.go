package domain

import "time"

// Action reports what the reconciler did to a profile.
type Action string

const (
	ActionCreated Action = "created"
	ActionUpdated Action = "updated"
)

// Profile is the application-layer record describing a user's entitlements
// and contact data. It is keyed by the owning Identity's ID, a 1:1
// relationship enforced by convention rather than a database constraint.
//
// ExpirationDate is only meaningful while IsPremium is true; the reconciler
// drops it otherwise. The remaining optional fields are nil when the caller
// left them unset.
type Profile struct {
	ID             string     `json:"id"               bson:"_id"`
	Name           string     `json:"name"             bson:"name"`
	Email          string     `json:"email"            bson:"email"`
	IsPremium      bool       `json:"is_premium"       bson:"is_premium"`
	ExpirationDate *time.Time `json:"expiration_date"  bson:"expiration_date,omitempty"`
	PhoneNumber    *string    `json:"phone_number"     bson:"phone_number,omitempty"`
	PhoneLocalCode *string    `json:"phone_local_code" bson:"phone_local_code,omitempty"`
	ExternalID     *string    `json:"external_id"      bson:"external_id,omitempty"`
	CreatedAt      time.Time  `json:"created_at"       bson:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"       bson:"updated_at"`
}
