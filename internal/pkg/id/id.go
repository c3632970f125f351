package id

import (
	"crypto/rand"

	"github.com/oklog/ulid/v2"
)

// New generates a new ULID string. Submissions are tagged with one so that
// log lines from a single request can be correlated.
func New() string {
	return ulid.MustNew(ulid.Now(), rand.Reader).String()
}
