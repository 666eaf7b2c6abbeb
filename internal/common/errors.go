// Package common defines shared constants and sentinel errors used across
// client-side layers of the console. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Input errors.
	ErrorInvalidID = errors.New("invalid id")
)
