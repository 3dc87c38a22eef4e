package shared

import "fmt"

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Session record errors
	ErrSessionNotFound = fmt.Errorf("session record not found")
	ErrInvalidSession  = fmt.Errorf("invalid session record")
	ErrShapeMismatch   = fmt.Errorf("matrix shape mismatch")

	// Export errors
	ErrNoChannels   = fmt.Errorf("no channels matched")
	ErrExportFailed = fmt.Errorf("export failed")

	// Persistence errors
	ErrDatabaseUnavailable = fmt.Errorf("database unavailable")
	ErrRunNotFound         = fmt.Errorf("export run not found")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidFlag     = fmt.Errorf("invalid flag value")
)
