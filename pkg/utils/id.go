package utils

import (
	"strings"

	"github.com/google/uuid"
)

// NewID returns a 32-char hex identifier for stored records.
func NewID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}
