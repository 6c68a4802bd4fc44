package validators

import "strings"

// NormalizePhone mantém só dígitos; o "+" inicial e máscaras somem.
// Números nacionais com 10 ou 11 dígitos ganham o DDI 55.
func NormalizePhone(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}

	digits := strings.TrimLeft(b.String(), "0")
	if len(digits) == 10 || len(digits) == 11 {
		digits = "55" + digits
	}
	return digits
}

// IsPhoneValid aceita de 10 a 15 dígitos após normalização (E.164).
func IsPhoneValid(normalized string) bool {
	return len(normalized) >= 10 && len(normalized) <= 15
}
