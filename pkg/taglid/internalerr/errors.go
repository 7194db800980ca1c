// Package internalerr defines the sentinel errors shared by taglid packages.
// Callers wrap them with fmt.Errorf("...: %w") and match with errors.Is.
package internalerr

import "errors"

var (
	// ErrNotFound: a stored run or record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrInvalidInput: text, tables or options the pipeline cannot accept.
	ErrInvalidInput = errors.New("invalid input")
	// ErrResourceLoad: a dictionary, frequency list or overlay failed to load.
	ErrResourceLoad = errors.New("resource load failed")
	// ErrStoreUnavailable: the run database could not be opened.
	ErrStoreUnavailable = errors.New("store unavailable")
	// ErrInvalidConfig: configuration failed to parse or validate.
	ErrInvalidConfig = errors.New("invalid configuration")
)
