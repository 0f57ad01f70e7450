// Package validators holds request checks that need more than a
// binding struct tag.
package validators

import (
	"net"
	"strings"
)

// IsEmailDomainValid reports whether the email's domain resolves to an
// MX or A record. Registration delegates the address itself to the
// auth provider; this only screens out typo domains before the
// provider round-trip.
func IsEmailDomainValid(email string) bool {
	at := strings.LastIndex(email, "@")
	if at < 0 || at == len(email)-1 {
		return false
	}

	domain := email[at+1:]

	if mx, err := net.LookupMX(domain); err == nil && len(mx) > 0 {
		return true
	}

	if ips, err := net.LookupIP(domain); err == nil && len(ips) > 0 {
		return true
	}

	return false
}
