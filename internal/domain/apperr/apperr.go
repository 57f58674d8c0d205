// Package apperr holds the error taxonomy shared by every component.
// Domain packages wrap these with context; callers match with errors.Is.
package apperr

import "errors"

var (
	ErrNotFound         = errors.New("not found")
	ErrDuplicate        = errors.New("duplicate")
	ErrInvalidInvariant = errors.New("invalid invariant")
	ErrInsufficientFar  = errors.New("insufficient far")
	ErrInvalidBuyerList = errors.New("invalid buyer list")
	ErrUnauthorized     = errors.New("unauthorized")
)
