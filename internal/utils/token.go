package utils

import (
	"strings"

	"github.com/google/uuid"
)

// NewAccessToken mints the opaque capability credential embedded in the
// interview link sent to the candidate.
func NewAccessToken() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}
