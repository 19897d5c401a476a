package errors

import "errors"

// Sentinel errors shared by the service and API layers. The API layer maps
// them to HTTP status codes with errors.Is.

var (
	// ErrNotFound signifies that a requested thread or message could not be located.
	// This is mapped to a 404 Not Found HTTP status.
	ErrNotFound = errors.New("resource not found")

	// ErrValidation signifies that input data failed validation.
	// This is mapped to a 400 Bad Request HTTP status.
	ErrValidation = errors.New("validation failed")

	// ErrUnsupported signifies that a platform capability (speech recognition,
	// speech synthesis) is not available.
	// This is mapped to a 501 Not Implemented HTTP status.
	ErrUnsupported = errors.New("capability not supported")

	// ErrInternal signifies an unexpected error. It keeps implementation
	// details away from the client.
	// This is mapped to a 500 Internal Server Error HTTP status.
	ErrInternal = errors.New("internal server error")
)
