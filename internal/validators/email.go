package validators

import (
	"net"
	"regexp"
	"strings"
)

var emailRe = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// IsWellFormedEmail valida solo el formato; suficiente para decidir si un
// recordatorio intenta el canal de correo.
func IsWellFormedEmail(email string) bool {
	return emailRe.MatchString(email)
}

// IsEmailDomainValid verifica que el dominio resuelva (MX o A). Se usa en
// el registro de pacientes, no en el job de recordatorios.
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
