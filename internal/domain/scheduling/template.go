package scheduling

import (
	"fmt"
	"time"
)

// ===============================
// Plantilla de horario + grilla
// ===============================

// Template define el horario operativo de una sede: inicio, fin y
// granularidad en minutos. Los horarios son HH:mm en 24h.
type Template struct {
	Start          string
	End            string
	GranularityMin int
}

// Horario estándar de laboratorio: 08:00 a 17:00, cupos cada 15 minutos.
var DefaultTemplate = Template{
	Start:          "08:00",
	End:            "17:00",
	GranularityMin: 15,
}

func NewTemplate(start, end string, granularityMin int) (Template, error) {
	tpl := Template{Start: start, End: end, GranularityMin: granularityMin}
	if err := tpl.Validate(); err != nil {
		return Template{}, err
	}
	return tpl, nil
}

func (t Template) Validate() error {
	start, err := time.Parse("15:04", t.Start)
	if err != nil {
		return fmt.Errorf("invalid start time %q", t.Start)
	}

	end, err := time.Parse("15:04", t.End)
	if err != nil {
		return fmt.Errorf("invalid end time %q", t.End)
	}

	if !start.Before(end) {
		return fmt.Errorf("start %q must be before end %q", t.Start, t.End)
	}

	if t.GranularityMin <= 0 {
		return fmt.Errorf("granularity must be positive, got %d", t.GranularityMin)
	}

	return nil
}

// Slots genera la grilla completa: cada marca entre Start (inclusive) y
// End (exclusivo), espaciada por la granularidad. Pura, sin I/O.
func (t Template) Slots() []string {
	start, err := time.Parse("15:04", t.Start)
	if err != nil {
		return nil
	}
	end, err := time.Parse("15:04", t.End)
	if err != nil {
		return nil
	}

	step := time.Duration(t.GranularityMin) * time.Minute

	var slots []string
	for cur := start; cur.Before(end); cur = cur.Add(step) {
		slots = append(slots, cur.Format("15:04"))
	}

	return slots
}

// IsValidSlotTime valida formato HH:mm de 24 horas.
func IsValidSlotTime(hm string) bool {
	if len(hm) != 5 {
		return false
	}
	_, err := time.Parse("15:04", hm)
	return err == nil
}

// IsValidDate valida formato YYYY-MM-DD.
func IsValidDate(date string) bool {
	if len(date) != 10 {
		return false
	}
	_, err := time.Parse("2006-01-02", date)
	return err == nil
}
