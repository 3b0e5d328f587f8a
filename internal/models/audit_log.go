package models

import "time"

type AuditLog struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UserID *uint  `json:"user_id"`
	Action string `gorm:"size:50;not null" json:"action"`
	Module string `gorm:"size:50" json:"module"`

	Entity   string `gorm:"size:50" json:"entity"`
	EntityID *uint  `json:"entity_id"`
	Metadata string `gorm:"type:text" json:"metadata"`
	Success  bool   `gorm:"default:true" json:"success"`

	CreatedAt time.Time `json:"created_at"`
}
