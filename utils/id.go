package utils

import (
	"strings"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// idAlphabet matches the ids minted by earlier deployments: lowercase
// letters and digits only, so ids stay easy to read out and paste into URLs.
const idAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// DefaultIDLength is the id length used when none is configured.
const DefaultIDLength = 8

// NewID generates a random paste id of the given length.
func NewID(length int) (string, error) {
	if length < 4 || length > 32 {
		length = DefaultIDLength
	}
	return gonanoid.Generate(idAlphabet, length)
}

// IsValidID checks that an id contains only alphabet characters and has a
// plausible length. Used to reject junk path segments before touching storage.
func IsValidID(id string) bool {
	if len(id) < 4 || len(id) > 32 {
		return false
	}
	for _, char := range id {
		if !strings.ContainsRune(idAlphabet, char) {
			return false
		}
	}
	return true
}
