package authz

import "strings"

// Los nombres históricos en español del portal se normalizan aquí una sola
// vez; todo caller trabaja con los enums canónicos.

var moduleAliases = map[string]string{
	"citas":          ModuleAppointments,
	"agenda":         ModuleAppointments,
	"disponibilidad": ModuleAvailability,
	"pacientes":      ModulePatients,
	"auditoria":      ModuleAudit,
	"recordatorios":  ModuleReminders,
}

var actionAliases = map[string]string{
	"ver":           ActionRead,
	"leer":          ActionRead,
	"crear":         ActionCreate,
	"editar":        ActionUpdate,
	"cancelar":      ActionCancel,
	"bloquear":      ActionBlockSlot,
	"bloquear_dia":  ActionBlockDay,
	"ejecutar":      ActionRun,
}

func CanonicalModule(name string) string {
	key := strings.ToLower(strings.TrimSpace(name))
	if canonical, ok := moduleAliases[key]; ok {
		return canonical
	}
	return key
}

func CanonicalAction(name string) string {
	key := strings.ToLower(strings.TrimSpace(name))
	if canonical, ok := actionAliases[key]; ok {
		return canonical
	}
	return key
}
