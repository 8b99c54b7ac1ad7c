package utils

import (
	"strings"

	"github.com/google/uuid"
)

// CreateToken returns an opaque 64 hex character token built from two random UUIDs.
func CreateToken() string {
	return strings.ReplaceAll(uuid.NewString()+uuid.NewString(), "-", "")
}
