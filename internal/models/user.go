package models

import "time"

// Role values gating access to mutation endpoints.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User is the persistent identity record. Email is stored normalized
// (lower-cased, trimmed) and is the uniqueness key. Password holds the
// bcrypt hash and is empty for OAuth-origin accounts; it is never
// serialized to JSON.
type User struct {
	ID        string    `bson:"_id,omitempty" json:"id"`
	Email     string    `bson:"email" json:"email"`
	Password  string    `bson:"password,omitempty" json:"-"`
	Role      string    `bson:"role" json:"role"`
	IsActive  bool      `bson:"isActive" json:"isActive"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// PublicUser is the subset of User returned by auth endpoints.
type PublicUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Public returns the caller-facing view of the user.
func (u *User) Public() PublicUser {
	return PublicUser{ID: u.ID, Email: u.Email, Role: u.Role}
}
