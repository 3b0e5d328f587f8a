package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type Appointment struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	PublicID uuid.UUID `gorm:"type:uuid;uniqueIndex" json:"public_id"`

	PatientID uint    `json:"patient_id"`
	Patient   Patient `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"patient"`

	// Instante completo con offset de la sede, más las columnas derivadas
	// (date, time) sobre las que vive el índice único parcial.
	StartTime time.Time `json:"start_time"`
	Date      string    `gorm:"size:10;index" json:"date"` // YYYY-MM-DD
	Time      string    `gorm:"size:5" json:"time"`        // HH:mm
	Location  string    `gorm:"size:60" json:"location"`

	Studies pq.StringArray `gorm:"type:text[]" json:"studies"`

	Status string `gorm:"size:20;default:'pending'" json:"status"`

	Notes       string     `gorm:"size:255" json:"notes"`
	ConfirmedAt *time.Time `json:"confirmed_at"`
	CancelledAt *time.Time `json:"cancelled_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
