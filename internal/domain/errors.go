package domain

import "errors"

var (
	// Structural edit targets outside the sequence. Callers re-prompt on these.
	ErrInvalidPosition = errors.New("invalid step position")
	ErrInvalidIndex    = errors.New("invalid step index")

	// Aggregating zero steps; the caller should delete the route instead.
	ErrEmptySequence = errors.New("empty step sequence")

	// The first step of a route needs both a start and an end building.
	ErrIncompleteLeg = errors.New("incomplete leg")

	// Collaborator failures, propagated unchanged.
	ErrNotFound = errors.New("not found")
	ErrProvider = errors.New("distance provider failure")
)
