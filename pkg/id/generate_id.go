package id

import (
	"strings"

	"github.com/google/uuid"
)

// NewID32 returns a random (v4) uuid as 32 lowercase hex chars, the form
// outbox event ids and Ax-Request-Id share.
func NewID32() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}
