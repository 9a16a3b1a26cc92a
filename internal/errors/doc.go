// Package apperrors defines the structured error types of bigcalc and the
// process exit codes they map to.
//
// Errors are wrapped with fmt.Errorf and %w throughout; every type with a
// cause implements Unwrap so that errors.Is and errors.As see through it.
package apperrors
