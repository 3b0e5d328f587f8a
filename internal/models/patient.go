package models

import "time"

// Proyección de contacto del paciente. La gestión completa del expediente
// vive en el módulo de pacientes; el core solo lee estos campos para
// agendar y recordar.
type Patient struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name   string `gorm:"size:100;not null" json:"name"`
	Email  string `gorm:"size:100" json:"email"`
	Phone  string `gorm:"size:20" json:"phone"`
	Locale string `gorm:"size:10;default:'es-VE'" json:"locale"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
