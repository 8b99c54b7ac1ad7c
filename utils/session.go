package utils

import (
	"strings"

	"github.com/google/uuid"
)

const sessionPrefix = "sess_"

func NewSessionID() string {
	return sessionPrefix + strings.ReplaceAll(uuid.NewString(), "-", "")
}

// ValidSessionID accepts ids minted by NewSessionID.
func ValidSessionID(id string) bool {
	raw, ok := strings.CutPrefix(id, sessionPrefix)
	if !ok || len(raw) != 32 {
		return false
	}
	for _, r := range raw {
		if !(r >= '0' && r <= '9' || r >= 'a' && r <= 'f') {
			return false
		}
	}
	return true
}
