package model

import "errors"

var (
	// ErrNotFound is returned when a resource is not found.
	ErrNotFound = errors.New("not found")
	// ErrNotValid is returned when a resource is not valid.
	ErrNotValid = errors.New("not valid")
	// ErrTransport is returned when the engine can't be reached or answers
	// outside its API contract at the HTTP level.
	ErrTransport = errors.New("engine transport failed")
	// ErrProtocol is returned when an engine response lacks an expected field
	// or a field has the wrong type.
	ErrProtocol = errors.New("unexpected engine response")
	// ErrVersionConflict is returned when the engine rejects a mutation
	// because the asserted revision is stale.
	ErrVersionConflict = errors.New("revision conflict")
)
