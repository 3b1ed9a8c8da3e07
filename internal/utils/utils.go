package utils

import (
	"math/rand"
	"strings"
	"unicode"
)

// =============================================================================
// UTILITY FUNCTIONS
// =============================================================================

// GenerateRoomCode returns a human-typeable numeric code of the given length.
// The first digit is never zero so codes keep a fixed width on screen.
func GenerateRoomCode(length int) string {
	if length <= 0 {
		length = 6
	}
	var b strings.Builder
	b.WriteByte(byte('1' + rand.Intn(9)))
	for i := 1; i < length; i++ {
		b.WriteByte(byte('0' + rand.Intn(10)))
	}
	return b.String()
}

// MaskWord hides every letter behind an underscore while keeping word
// boundaries: spaces, hyphens and other non-letters pass through unmasked.
func MaskWord(word string) string {
	masked := []rune(word)
	for i, r := range masked {
		if unicode.IsLetter(r) {
			masked[i] = '_'
		}
	}
	return string(masked)
}

// NormalizeGuess is the canonical form used for guess comparison.
func NormalizeGuess(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
