package scheduling

// ===============================
// Sedes
// ===============================

// Las sedes son un catálogo cerrado; el servicio a domicilio se modela como
// una sede virtual con su propia plantilla de horario.
const (
	LocationMaracay   = "Sede Principal Maracay"
	LocationCagua     = "Sede Cagua"
	LocationDomicilio = "Servicio a Domicilio"
)

var locations = map[string]bool{
	LocationMaracay:   true,
	LocationCagua:     true,
	LocationDomicilio: true,
}

func IsValidLocation(loc string) bool {
	return locations[loc]
}

func Locations() []string {
	return []string{LocationMaracay, LocationCagua, LocationDomicilio}
}

// plantillas por sede; si una sede no aparece aquí aplica DefaultTemplate.
var locationTemplates = map[string]Template{
	LocationDomicilio: {Start: "07:00", End: "15:00", GranularityMin: 15},
}

// TemplateFor resuelve la plantilla de horario de una sede.
func TemplateFor(location string) Template {
	if tpl, ok := locationTemplates[location]; ok {
		return tpl
	}
	return DefaultTemplate
}
