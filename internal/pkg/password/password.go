// internal/pkg/password/password.go
package password

import (
	"crypto/rand"
	"strings"
)

// Character sets drop look-alikes (I/l/1, O/0) so generated passwords can be
// read off a printed slip.
const (
	uppercase = "ABCDEFGHJKLMNPQRSTUVWXY"
	lowercase = "abcdefghijkmnopqrstuvwxyz"
	numbers   = "23456789"
	special   = "!@#$%^&*_-+="
)

const defaultLength = 10

// Generate returns a random password drawing from all character classes.
func Generate() string {
	return GenerateWithLength(defaultLength)
}

// GenerateWithLength returns a random password of the given length.
func GenerateWithLength(length int) string {
	if length <= 0 {
		length = defaultLength
	}
	chars := lowercase + uppercase + numbers + special

	b := make([]byte, length)
	rand.Read(b)

	out := make([]byte, length)
	for i := range out {
		out[i] = chars[int(b[i])%len(chars)]
	}
	return string(out)
}

// UniqueSuffix returns four random digits, appended to a generated username
// when the bare first_last form is already taken.
func UniqueSuffix() string {
	b := make([]byte, 4)
	rand.Read(b)

	out := make([]byte, 4)
	for i := range out {
		out[i] = '0' + b[i]%10
	}
	return string(out)
}

// Username derives a login name from a member's first and last name,
// e.g. "Ada", "Lovelace" -> "ada_lovelace".
func Username(firstName, lastName string) string {
	first := strings.ToLower(strings.TrimSpace(firstName))
	last := strings.ToLower(strings.TrimSpace(lastName))
	first = strings.ReplaceAll(first, " ", "")
	last = strings.ReplaceAll(last, " ", "")
	return first + "_" + last
}
