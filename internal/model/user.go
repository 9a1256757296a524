package model

import (
	"strings"
	"time"
)

// Collection names in the document store.
const (
	UsersCollection    = "users"
	ProjectsCollection = "projects"
)

// RoleUser is the role assigned to every new user. Roles are never
// client-settable.
const RoleUser = "user"

// User is a profile record keyed by the uid minted by the external auth
// system. An absent record means "not yet onboarded", not an error.
type User struct {
	ID              string    `bson:"_id" json:"id"`
	Email           string    `bson:"email" json:"email,omitempty"`
	DisplayName     string    `bson:"displayName" json:"displayName,omitempty"`
	PhotoURL        string    `bson:"photoURL" json:"photoURL,omitempty"`
	Role            string    `bson:"role" json:"role"`
	ActiveProjectID *string   `bson:"activeProjectId" json:"activeProjectId"`
	CreatedAt       time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time `bson:"updatedAt" json:"updatedAt"`
	LastLogin       time.Time `bson:"lastLogin" json:"lastLogin"`
}

// NewUser creates a first-contact user record with defaults. The display name
// falls back to the local part of the email when not supplied.
func NewUser(uid, email, displayName, photoURL string) User {
	if displayName == "" {
		displayName = EmailLocalPart(email)
	}
	now := time.Now().UTC()
	return User{
		ID:          uid,
		Email:       email,
		DisplayName: displayName,
		PhotoURL:    photoURL,
		Role:        RoleUser,
		CreatedAt:   now,
		UpdatedAt:   now,
		LastLogin:   now,
	}
}

// EmailLocalPart returns the part of an email address before the "@".
func EmailLocalPart(email string) string {
	if i := strings.Index(email, "@"); i >= 0 {
		return email[:i]
	}
	return email
}
