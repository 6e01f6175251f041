package models

import "time"

// User is an account record returned by the auth API. Token is only
// populated on login and is an opaque bearer credential.
type User struct {
	ID        string    `json:"_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
	Token     string    `json:"token,omitempty"`
}

// Session is the single live authenticated-session record. Exactly one or
// zero instances exist process-wide, owned by the session manager and
// persisted as a serialized copy.
type Session struct {
	UserID    string    `json:"userId"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
	Token     string    `json:"token,omitempty"`
}

// NewSession builds a session record from an authenticated user.
func NewSession(u User) Session {
	return Session{
		UserID:    u.ID,
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
		Token:     u.Token,
	}
}
