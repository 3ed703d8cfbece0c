package shared

import "fmt"

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Storage errors
	ErrStorageUnavailable = fmt.Errorf("storage unavailable")
	ErrServiceUnavailable = fmt.Errorf("service unavailable")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
	ErrInvalidFlag     = fmt.Errorf("invalid flag value")
)
