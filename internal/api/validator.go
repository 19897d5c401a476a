package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"

	app_errors "kenotrix/backend/internal/errors"

	"github.com/go-playground/validator/v10"
)

// This file holds the shared validation helpers for API request bodies.
// One validator instance serves every request, so the struct metadata it
// parses from tags is cached once instead of on each call.

var (
	// validate holds the single instance of the validator.
	validate *validator.Validate
	// once guards the lazy initialization of validate.
	once sync.Once
)

// getInstance initializes the validator on first use and returns it.
func getInstance() *validator.Validate {
	once.Do(func() {
		validate = validator.New()
	})
	return validate
}

// validateRequest checks a payload struct against the rules in its field tags
// (e.g. `validate:"required,min=1"`). On failure it returns a wrapped
// app_errors.ErrValidation whose message lists every failing field.
func validateRequest(payload interface{}) error {
	err := getInstance().Struct(payload)
	if err == nil {
		return nil
	}

	// Anything other than validator.ValidationErrors is not a rule violation
	// but a misuse, such as passing a non-struct payload.
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return fmt.Errorf("%w: an unexpected error occurred during validation: %s", app_errors.ErrValidation, err.Error())
	}

	// Each failing field becomes one readable message, e.g.
	// "Field 'Title' failed on the 'required' tag".
	errorMessages := make([]string, 0, len(validationErrors))
	for _, fieldErr := range validationErrors {
		errorMessages = append(errorMessages, fmt.Sprintf("Field '%s' failed on the '%s' tag", fieldErr.Field(), fieldErr.Tag()))
	}
	// The joined messages are safe to show to the user as they are.
	return fmt.Errorf("%w: %s", app_errors.ErrValidation, strings.Join(errorMessages, "; "))
}

// decodeAndValidate reads a JSON request body into payload and validates it.
// A body that is not valid JSON is reported as a validation error as well, so
// handlers answer both cases with 400 Bad Request.
func decodeAndValidate(r *http.Request, payload interface{}) error {
	// The decoder error is not echoed back; it can quote raw request bytes.
	if err := json.NewDecoder(r.Body).Decode(payload); err != nil {
		return fmt.Errorf("%w: invalid request body", app_errors.ErrValidation)
	}
	return validateRequest(payload)
}
