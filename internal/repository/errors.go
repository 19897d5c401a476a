package repository

import "errors"

// ErrMalformed is returned by Load when the stored blob cannot be decoded
// into a thread collection. There is no schema version, so shape drift
// between releases surfaces here.
var ErrMalformed = errors.New("repository: malformed snapshot")
