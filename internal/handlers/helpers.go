package handlers

import (
	"encoding/json"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/OrinocoLabs01/lab-scheduler/internal/authz"
	"github.com/OrinocoLabs01/lab-scheduler/internal/middleware"
	"github.com/OrinocoLabs01/lab-scheduler/internal/models"
	ucScheduling "github.com/OrinocoLabs01/lab-scheduler/internal/usecase/scheduling"
)

func actorFromContext(c *gin.Context) ucScheduling.Actor {
	return ucScheduling.Actor{
		ID:           c.MustGet(middleware.ContextUserID).(uint),
		Role:         c.MustGet(middleware.ContextUserRole).(string),
		HomeLocation: c.MustGet(middleware.ContextHomeLocation).(string),
	}
}

// overridesFor carga el mapa disperso de overrides del usuario; un JSON
// inválido o vacío simplemente no aporta overrides.
func overridesFor(db *gorm.DB, userID uint) authz.Overrides {
	var user models.User
	if err := db.Select("perm_overrides").First(&user, userID).Error; err != nil {
		return nil
	}

	if user.PermOverrides == "" {
		return nil
	}

	var ov authz.Overrides
	if err := json.Unmarshal([]byte(user.PermOverrides), &ov); err != nil {
		return nil
	}

	return ov
}
