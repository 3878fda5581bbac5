// utils/creds.go - owner credential generation
package utils

import (
	"fmt"
	"math/rand"
	"strings"
	"unicode"
)

// GenerateOwnerUsername builds an owner login from the team name: the
// first three letters plus a random three-digit suffix, retried until
// taken reports it free. The password starts out equal to the
// username; owners are expected to be handed both on a card.
func GenerateOwnerUsername(teamName string, taken func(string) bool) string {
	base := usernameBase(teamName)
	for {
		username := fmt.Sprintf("%s%03d", base, rand.Intn(1000))
		if taken == nil || !taken(username) {
			return username
		}
	}
}

func usernameBase(teamName string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(teamName) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
		if b.Len() >= 3 {
			break
		}
	}
	base := b.String()
	// Very short team names still get a 3-char base
	for len(base) < 3 {
		base += "x"
	}
	return base
}
