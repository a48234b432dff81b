package config

import (
	"fmt"
	"net/url"
	"strings"
)

// ValidationError represents a validation error with context
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

// Error implements the error interface
func (ve ValidationError) Error() string {
	if ve.Field == "" {
		return ve.Message
	}
	return fmt.Sprintf("field '%s': %s", ve.Field, ve.Message)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface for multiple validation errors
func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "no validation errors"
	}
	if len(ve) == 1 {
		return ve[0].Error()
	}

	var messages []string
	for _, err := range ve {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(messages, "; "))
}

// HasErrors returns true if there are any validation errors
func (ve ValidationErrors) HasErrors() bool {
	return len(ve) > 0
}

// Add adds a new validation error
func (ve *ValidationErrors) Add(field, message string, value ...interface{}) {
	var val interface{}
	if len(value) > 0 {
		val = value[0]
	}
	*ve = append(*ve, ValidationError{
		Field:   field,
		Value:   val,
		Message: message,
	})
}

// Validate checks that the configuration can be used to reach the client resource.
func (c ClientctlConfig) Validate() error {
	var errs ValidationErrors

	if strings.TrimSpace(c.Endpoint) == "" {
		errs.Add("endpoint", "is required")
	} else if u, err := url.Parse(c.Endpoint); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		errs.Add("endpoint", "must be an absolute http(s) URL", c.Endpoint)
	}
	if c.ActorID <= 0 {
		errs.Add("actorId", "must be a positive user id", c.ActorID)
	}
	if c.PageSize < 0 {
		errs.Add("pageSize", "must not be negative", c.PageSize)
	}
	if c.RequestTimeout < 0 {
		errs.Add("requestTimeout", "must not be negative", c.RequestTimeout)
	}
	if (c.CSRF.Header == "") != (c.CSRF.Token == "") {
		errs.Add("csrf", "header and token must be set together")
	}

	if errs.HasErrors() {
		return errs
	}
	return nil
}
