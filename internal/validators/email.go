package validators

import (
	"net"
	"strings"
)

// IsEmailDomainValid checks that the address's domain actually receives
// mail before a customer or technician account is created with it. An
// MX record is the normal case; a bare A/AAAA record counts as the
// implicit-MX fallback.
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
