package models

// User is the identity shown in the navbar and profile page.
// It is never persisted: it is resolved from the configured default user
// merged with the session credentials.
type User struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Avatar string `json:"avatar,omitempty"`
}

// Credentials is the session-scoped identity override written by sign-in and
// the profile editor. Password holds a bcrypt hash, never the plain text.
type Credentials struct {
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty"`
	Password string `json:"password,omitempty"`
}
