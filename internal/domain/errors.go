package domain

import "errors"

var (
	ErrAuthenticationLost = errors.New("authentication lost")
	ErrCheckpointFailed   = errors.New("checkpoint failed")
	ErrConfiguration      = errors.New("configuration error")
	ErrElementNotFound    = errors.New("element not found")
	ErrRunNotFound        = errors.New("run not found")
	ErrStaleReference     = errors.New("stale element reference")
)
