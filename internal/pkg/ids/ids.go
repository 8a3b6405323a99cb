// internal/pkg/ids/ids.go
package ids

import (
	"crypto/rand"

	"github.com/oklog/ulid/v2"
)

// Charset excludes 0/O/1/I to keep member codes readable on badges.
const codeCharset = "23456789ABCDEFGHJKLMNPQRSTUVWXYZ"

// NewIdentityID returns a ULID string for auth identity records.
func NewIdentityID() string {
	return ulid.Make().String()
}

// NewMemberCode returns a human-friendly club id like CC7K2M9F.
func NewMemberCode() string {
	return "CC" + randomFromCharset(6, codeCharset)
}

func randomFromCharset(length int, charset string) string {
	b := make([]byte, length)
	rand.Read(b)

	out := make([]byte, length)
	for i := range out {
		out[i] = charset[int(b[i])%len(charset)]
	}
	return string(out)
}
