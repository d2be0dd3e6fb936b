package service

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
)

// Username prefixes by role: fc- for foreign companies, ap- for applicants.
const (
	companyUserPrefix   = "fc"
	applicantUserPrefix = "ap"
)

const passwordLength = 8
const passwordAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// newID returns a fresh ULID string. ULIDs are lexicographically sortable, so
// iterating entities by id also yields creation order.
func newID() string {
	return ulid.Make().String()
}

// slugify lowercases the name and collapses every run of non-alphanumeric
// characters into a single hyphen, trimming leading and trailing hyphens.
func slugify(s string) string {
	var b strings.Builder
	lastHyphen := true // swallow leading separators
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			lastHyphen = false
			continue
		}
		if !lastHyphen {
			b.WriteByte('-')
			lastHyphen = true
		}
	}
	return strings.TrimRight(b.String(), "-")
}

// generateUsername derives a username from a role prefix, the slug of the
// display name, and a random 4-digit suffix. Collisions are possible: the
// suffix is not checked against existing usernames. That matches the original
// generation scheme and is left as-is deliberately.
func generateUsername(prefix, name string) string {
	return fmt.Sprintf("%s-%s-%04d", prefix, slugify(name), randomSuffix())
}

// randomSuffix returns a number in [1000, 9999].
func randomSuffix() int {
	n, err := rand.Int(rand.Reader, big.NewInt(9000))
	if err != nil {
		// fallback: derive from the clock
		return 1000 + int(time.Now().UnixNano()%9000)
	}
	return 1000 + int(n.Int64())
}

// randomPassword returns an 8-character lowercase alphanumeric password.
func randomPassword() string {
	b := make([]byte, passwordLength)
	if _, err := rand.Read(b); err != nil {
		// fallback: derive from the clock
		seed := time.Now().UnixNano()
		for i := range b {
			b[i] = passwordAlphabet[int(seed>>uint(i*4))%len(passwordAlphabet)]
		}
		return string(b)
	}
	for i := range b {
		b[i] = passwordAlphabet[int(b[i])%len(passwordAlphabet)]
	}
	return string(b)
}
