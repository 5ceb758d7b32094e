package shared

import "fmt"

var (
	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Account and session errors
	ErrDuplicateAccount   = fmt.Errorf("account already exists")
	ErrInvalidCredentials = fmt.Errorf("invalid credentials")
	ErrNotAuthenticated   = fmt.Errorf("not authenticated")

	// Domain errors
	ErrNotFound          = fmt.Errorf("not found")
	ErrTrackAlreadyAdded = fmt.Errorf("track already in collection")

	// Catalog errors
	ErrSearchUnavailable = fmt.Errorf("search unavailable")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
)
