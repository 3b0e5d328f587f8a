package notify

import "strings"

// NormalizePhone deja solo dígitos, quita un cero inicial (formato local
// venezolano "0412...") y antepone el código de país si está configurado.
// "04121234567" sin código configurado → "4121234567".
func NormalizePhone(raw, countryCode string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}

	digits := b.String()
	if digits == "" {
		return ""
	}

	if strings.HasPrefix(digits, "0") {
		digits = digits[1:]
		if countryCode != "" {
			digits = countryCode + digits
		}
	}

	return digits
}
