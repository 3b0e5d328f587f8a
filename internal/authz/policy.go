package authz

// ===============================
// Roles
// ===============================

const (
	RoleAdmin         = "admin"
	RoleBioanalista   = "bioanalista"
	RoleRecepcionista = "recepcionista"
)

// ===============================
// Módulos y acciones canónicos
// ===============================

const (
	ModuleAppointments = "appointments"
	ModuleAvailability = "availability"
	ModulePatients     = "patients"
	ModuleAudit        = "audit"
	ModuleReminders    = "reminders"
)

const (
	ActionRead       = "read"
	ActionCreate     = "create"
	ActionUpdate     = "update"
	ActionCancel     = "cancel"
	ActionBlockSlot  = "block_slot"
	ActionBlockDay   = "block_day"
	ActionRun        = "run"
)

// ===============================
// Tabla de permisos por defecto
// ===============================

// Una sola tabla autoritativa: rol → módulo → acción → permitido.
// Las tres superficies (admin, pública y servidor) consultan esta misma
// tabla; no se replica en callbacks de vista.
var defaults = map[string]map[string]map[string]bool{
	RoleAdmin: {
		ModuleAppointments: {ActionRead: true, ActionCreate: true, ActionUpdate: true, ActionCancel: true},
		ModuleAvailability: {ActionRead: true, ActionBlockSlot: true, ActionBlockDay: true},
		ModulePatients:     {ActionRead: true, ActionCreate: true, ActionUpdate: true},
		ModuleAudit:        {ActionRead: true},
		ModuleReminders:    {ActionRun: true},
	},
	RoleBioanalista: {
		ModuleAppointments: {ActionRead: true, ActionUpdate: true, ActionCancel: true},
		ModuleAvailability: {ActionRead: true, ActionBlockSlot: true},
		ModulePatients:     {ActionRead: true},
	},
	RoleRecepcionista: {
		ModuleAppointments: {ActionRead: true, ActionCreate: true, ActionUpdate: true, ActionCancel: true},
		ModuleAvailability: {ActionRead: true, ActionBlockSlot: true},
		ModulePatients:     {ActionRead: true, ActionCreate: true},
	},
}

// Overrides dispersos por usuario: módulo → acción → permitido.
// Tienen precedencia sobre la tabla de defaults.
type Overrides map[string]map[string]bool

// IsAllowed compone defaults + overrides. Función simple, sin herencia.
func IsAllowed(role string, overrides Overrides, module, action string) bool {
	module = CanonicalModule(module)
	action = CanonicalAction(action)

	if overrides != nil {
		if actions, ok := overrides[module]; ok {
			if allowed, ok := actions[action]; ok {
				return allowed
			}
		}
	}

	modules, ok := defaults[role]
	if !ok {
		return false
	}
	actions, ok := modules[module]
	if !ok {
		return false
	}
	return actions[action]
}

// IsLocationScoped indica si el rol está limitado a su sede asignada.
// Solo admin queda exento.
func IsLocationScoped(role string) bool {
	return role != RoleAdmin
}

// CanActOnLocation es la precondición de alcance por sede: se evalúa antes
// de cualquier mutación, nunca como filtro posterior.
func CanActOnLocation(role, homeLocation, target string) bool {
	if !IsLocationScoped(role) {
		return true
	}
	return homeLocation != "" && homeLocation == target
}
