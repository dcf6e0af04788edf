package domain

import "errors"

// Domain errors.
var (
	ErrCannotConnect     = errors.New("cannot reach the Lucid API")
	ErrInvalidAuth       = errors.New("invalid credentials")
	ErrSessionExpired    = errors.New("session expired")
	ErrVehicleNotFound   = errors.New("vehicle not found")
	ErrCommandRejected   = errors.New("command rejected for this vehicle")
	ErrUnknownRegion     = errors.New("unknown region")
	ErrAlreadyConfigured = errors.New("account is already configured")
)
