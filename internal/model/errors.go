package model

import "errors"

// Error taxonomy shared by services and handlers. Store- and transport-level
// failures are translated into these at the point of the call; handlers map
// them onto HTTP statuses.
var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUnauthenticated    = errors.New("authentication required")
	ErrForbidden          = errors.New("insufficient permissions")
	ErrNotFound           = errors.New("not found")
	ErrAlreadyExists      = errors.New("already exists")
	ErrVersionConflict    = errors.New("version conflict")
	ErrUpstream           = errors.New("upstream request failed")
	ErrUpstreamAuth       = errors.New("upstream authentication failed")
	ErrInvalidDocument    = errors.New("invalid document")
)
