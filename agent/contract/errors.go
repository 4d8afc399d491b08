package contract

import "errors"

var (
	ErrNotFound           = errors.New("not found")
	ErrValidation         = errors.New("validation failed")
	ErrNoValidFields      = errors.New("no valid fields to update")
	ErrClassificationMiss = errors.New("unable to determine query intent")
	ErrPatternMismatch    = errors.New("query pattern not recognized")
	ErrUpstream           = errors.New("data store operation failed")
)
