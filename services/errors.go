package services

import "errors"

var (
	// ErrNotFound means a referenced user, pet or event does not exist.
	ErrNotFound = errors.New("not found")

	// ErrNotEligible means a completion was attempted without an active
	// join, or the participation was already completed.
	ErrNotEligible = errors.New("not eligible")
)
