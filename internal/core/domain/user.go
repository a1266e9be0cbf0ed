package domain

import (
	"errors"
	"time"
)

var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrPendingApproval = errors.New("account pending approval")
var ErrUserNotFound = errors.New("user not found")
var ErrUserExists = errors.New("user already exists")

// User models a library member. Accounts are created unapproved via an invite
// registration and promoted to approved by an admin; they are never deleted
// in-app.
type User struct {
	ID           string    `json:"id" bson:"_id,omitempty"`
	Email        string    `json:"email" bson:"email"`
	Name         string    `json:"name" bson:"name"`
	PasswordHash string    `json:"-" bson:"password_hash"`
	Approved     bool      `json:"approved" bson:"approved"`
	Admin        bool      `json:"admin" bson:"admin"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
}

// CanSignIn reports whether a credential-matched account may open a session.
// Unapproved non-admin accounts are locked out until an admin approves them.
func (u *User) CanSignIn() bool {
	return u.Approved || u.Admin
}
