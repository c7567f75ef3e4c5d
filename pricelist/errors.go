package pricelist

import "errors"

// Conditions of the error taxonomy. None of them is fatal: components log the
// condition, degrade the affected result and keep going. They are exposed so
// callers can classify returned errors with errors.Is.
var (
	ErrSourceUnavailable = errors.New("source unavailable")
	ErrSchemaMismatch    = errors.New("schema mismatch")
	ErrNumericDegenerate = errors.New("numeric degenerate")
	ErrExportFailure     = errors.New("export failure")
)
