package auth

import (
	"strings"

	"github.com/thenoetrevino/taskpilot/internal/models"
)

// DefaultUser is the built-in identity used when nothing overrides it.
var DefaultUser = models.User{
	ID:     "1",
	Name:   "John Doe",
	Email:  "john@example.com",
	Avatar: "https://api.dicebear.com/7.x/avataaars/svg?seed=john",
}

// ResolveUser merges cached credentials over base. Only trimmed, non-empty
// values override; id and avatar always come from base.
func ResolveUser(base models.User, creds models.Credentials) models.User {
	user := base
	if name := strings.TrimSpace(creds.Name); name != "" {
		user.Name = name
	}
	if email := strings.TrimSpace(creds.Email); email != "" {
		user.Email = email
	}
	return user
}
