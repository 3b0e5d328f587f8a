package models

import "time"

// DayBlock cierra una fecha completa, en todas las sedes.
type DayBlock struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Date string `gorm:"size:10;uniqueIndex;not null" json:"date"` // YYYY-MM-DD

	CreatedByID *uint     `json:"created_by_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// SlotBlock cierra un cupo puntual (fecha, hora, sede) sin cita que lo ocupe.
type SlotBlock struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Date     string `gorm:"size:10;not null;uniqueIndex:idx_slot_blocks_slot" json:"date"`
	Time     string `gorm:"size:5;not null;uniqueIndex:idx_slot_blocks_slot" json:"time"`
	Location string `gorm:"size:60;not null;uniqueIndex:idx_slot_blocks_slot" json:"location"`

	CreatedByID *uint     `json:"created_by_id"`
	CreatedAt   time.Time `json:"created_at"`
}
