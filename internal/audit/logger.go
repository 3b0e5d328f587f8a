package audit

import (
	"encoding/json"

	"gorm.io/gorm"

	"github.com/OrinocoLabs01/lab-scheduler/internal/authz"
	"github.com/OrinocoLabs01/lab-scheduler/internal/models"
)

type Logger struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Logger {
	return &Logger{db: db}
}

func (l *Logger) Log(ev Event) error {

	if l == nil || l.db == nil {
		return nil
	}

	var metaJSON string
	if ev.Metadata != nil {
		if b, err := json.Marshal(ev.Metadata); err == nil {
			metaJSON = string(b)
		}
	}

	row := models.AuditLog{
		UserID:   ev.UserID,
		Action:   authz.CanonicalAction(ev.Action),
		Module:   authz.CanonicalModule(ev.Module),
		Entity:   ev.Entity,
		EntityID: ev.EntityID,
		Metadata: metaJSON,
		Success:  ev.Success,
	}

	return l.db.Create(&row).Error
}
