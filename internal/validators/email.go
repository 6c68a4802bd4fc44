package validators

import (
	"net"
	"strings"
)

// NormalizeEmail é a forma gravada e usada no login.
func NormalizeEmail(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// IsEmailWellFormed confere só a forma local@dominio.tld, sem rede.
func IsEmailWellFormed(email string) bool {
	if email == "" || strings.ContainsAny(email, " \t\r\n") {
		return false
	}

	at := strings.LastIndex(email, "@")
	if at <= 0 || at == len(email)-1 {
		return false
	}
	if strings.Contains(email[:at], "@") {
		return false
	}

	domain := email[at+1:]
	dot := strings.LastIndex(domain, ".")
	return dot > 0 && dot < len(domain)-1 && !strings.Contains(domain, "..")
}

// IsEmailDomainValid exige e-mail bem formado cujo domínio tenha MX ou A.
func IsEmailDomainValid(email string) bool {
	email = NormalizeEmail(email)
	if !IsEmailWellFormed(email) {
		return false
	}

	domain := email[strings.LastIndex(email, "@")+1:]

	if mx, err := net.LookupMX(domain); err == nil && len(mx) > 0 {
		return true
	}

	if ips, err := net.LookupIP(domain); err == nil && len(ips) > 0 {
		return true
	}

	return false
}
