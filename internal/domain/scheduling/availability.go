package scheduling

type AvailabilityInput struct {
	Date     string // YYYY-MM-DD
	Location string
}

// Availability es una vista instantánea, no una reserva: particiona la
// grilla en disponibles y no disponibles para (fecha, sede).
type Availability struct {
	Date         string   `json:"date"`
	Location     string   `json:"location"`
	IsDayBlocked bool     `json:"isDayBlocked"`
	Available    []string `json:"available"`
	Unavailable  []string `json:"unavailable"`

	// Subdivisión de Unavailable para las pantallas administrativas.
	// El caller público solo necesita la unión.
	Blocked []string `json:"blocked,omitempty"`
	Booked  []string `json:"booked,omitempty"`
}
