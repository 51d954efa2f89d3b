package models

import "time"

// User is a document in the "users" collection, keyed by the identity
// provider's UID. IsAdmin is derived once at account-creation time and is
// only re-read at sign-in/session-check time.
type User struct {
	ID          string    `json:"id" firestore:"-"`
	Email       string    `json:"email" firestore:"email"`
	FirstName   string    `json:"first_name,omitempty" firestore:"firstName,omitempty"`
	LastName    string    `json:"last_name,omitempty" firestore:"lastName,omitempty"`
	PhoneNumber string    `json:"phone_number,omitempty" firestore:"phoneNumber,omitempty"`
	IsAdmin     bool      `json:"is_admin" firestore:"isAdmin"`
	CreatedAt   time.Time `json:"created_at" firestore:"createdAt"`
}

// FullName joins first and last name, trimming when either is empty.
func (u User) FullName() string {
	switch {
	case u.FirstName == "" && u.LastName == "":
		return ""
	case u.FirstName == "":
		return u.LastName
	case u.LastName == "":
		return u.FirstName
	default:
		return u.FirstName + " " + u.LastName
	}
}
