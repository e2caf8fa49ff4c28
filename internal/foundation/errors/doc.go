// Package errors provides the classified error type used across pagelocale.
//
// A ClassifiedError carries a category (what kind of failure), a severity
// (how far it propagates) and structured context for logging. Errors are
// constructed through a fluent builder:
//
//	err := errors.ConfigError("invalid language tag").
//		WithContext("language", code).
//		WithCause(parseErr).
//		Build()
//
// The CLI adapter maps categories to process exit codes.
package errors
