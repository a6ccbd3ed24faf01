package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput is returned when no input path is given or the
	// transaction list is empty.
	ErrInvalidInput = errors.New("invalid parameter")

	// ErrFileNotFound is returned when the transaction file does not exist.
	ErrFileNotFound = errors.New("file does not exist")
)

// ParseError means the transaction file is not a valid JSON array.
type ParseError struct {
	Source string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.Source, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ConfigFetchError means a fee configuration endpoint could not be read.
type ConfigFetchError struct {
	Endpoint string
	Err      error
}

func (e *ConfigFetchError) Error() string {
	return fmt.Sprintf("fetch config %s: %v", e.Endpoint, e.Err)
}

func (e *ConfigFetchError) Unwrap() error { return e.Err }

// ValidationError describes a malformed transaction record.
// Index is the position of the record in the input, or -1 when unknown.
type ValidationError struct {
	Index int
	Field string
	Rule  string
}

func (e *ValidationError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("invalid transaction: field %q failed %q", e.Field, e.Rule)
	}
	return fmt.Sprintf("invalid transaction %d: field %q failed %q", e.Index, e.Field, e.Rule)
}

// ConfigError describes a fee configuration that is missing a field the
// fee rules depend on.
type ConfigError struct {
	Section string
	Field   string
	Rule    string
}

func (e *ConfigError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("invalid fee config %s: %s", e.Section, e.Rule)
	}
	return fmt.Sprintf("invalid fee config %s: field %q failed %q", e.Section, e.Field, e.Rule)
}
