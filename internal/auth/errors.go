package auth

import "errors"

var (
	// ErrMissingFields is returned by SignIn when name, email or password is blank
	ErrMissingFields = errors.New("please fill in all fields before signing in")

	// ErrEmptyName is returned by SaveProfile for a blank name
	ErrEmptyName = errors.New("name cannot be empty")

	// ErrEmptyEmail is returned by SaveProfile for a blank email
	ErrEmptyEmail = errors.New("email cannot be empty")
)
