package models

import "time"

// Student represents a roster entry. Passwords are stored in plaintext,
// the roster is a convenience gate and not a security boundary.
type Student struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`   // Arabic display name
	NameFr   string `json:"nameFr"` // French display name
	Username string `json:"username"`
	Password string `json:"password"`
}

// User represents the persisted session record of a logged in student
type User struct {
	ID        int       `json:"id"`
	Username  string    `json:"username"`
	Name      string    `json:"name"`
	NameFr    string    `json:"nameFr"`
	LoginTime time.Time `json:"loginTime"`
}

// NewUser builds a session record for a student
func NewUser(s Student, loginTime time.Time) *User {
	return &User{
		ID:        s.ID,
		Username:  s.Username,
		Name:      s.Name,
		NameFr:    s.NameFr,
		LoginTime: loginTime,
	}
}

// LoginRequest represents a login request
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// SessionResponse represents the current session state
type SessionResponse struct {
	Authenticated bool  `json:"authenticated"`
	User          *User `json:"user,omitempty"`
}
