package models

import "time"

type User struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name         string `gorm:"size:100;not null" json:"name"`
	Email        string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	Role         string `gorm:"size:20;default:'recepcionista'" json:"role"`

	// Sede asignada. Vacía para el rol admin, que no tiene alcance por sede.
	HomeLocation string `gorm:"size:60" json:"home_location"`

	// Overrides dispersos de permisos: JSON módulo → acción → permitido.
	// Tienen precedencia sobre la tabla de defaults por rol.
	PermOverrides string `gorm:"type:text" json:"perm_overrides"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
