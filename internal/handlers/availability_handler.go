package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/OrinocoLabs01/lab-scheduler/internal/cache"
	domain "github.com/OrinocoLabs01/lab-scheduler/internal/domain/scheduling"
	"github.com/OrinocoLabs01/lab-scheduler/internal/httperr"
	infraRepo "github.com/OrinocoLabs01/lab-scheduler/internal/infra/repository"
	"github.com/OrinocoLabs01/lab-scheduler/internal/usecase/scheduling"
)

// ======================================================
// HANDLER
// ======================================================

type AvailabilityHandler struct {
	db    *gorm.DB
	cache *cache.Availability
}

func NewAvailabilityHandler(db *gorm.DB, avCache *cache.Availability) *AvailabilityHandler {
	return &AvailabilityHandler{
		db:    db,
		cache: avCache,
	}
}

// ======================================================
// PUBLIC READ — página de agendamiento
// ======================================================

func (h *AvailabilityHandler) Slots(c *gin.Context) {
	av, ok := h.resolve(c)
	if !ok {
		return
	}

	// el caller público solo necesita la unión, sin el desglose admin
	c.JSON(http.StatusOK, gin.H{
		"available":    av.Available,
		"unavailable":  av.Unavailable,
		"isDayBlocked": av.IsDayBlocked,
	})
}

// ======================================================
// ADMIN READ — agrega el desglose bloqueado vs citado
// ======================================================

func (h *AvailabilityHandler) SlotsAdmin(c *gin.Context) {
	av, ok := h.resolve(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, av)
}

func (h *AvailabilityHandler) resolve(c *gin.Context) (*domain.Availability, bool) {
	date := c.Query("date")
	location := c.Query("location")

	if date == "" || location == "" {
		httperr.BadRequest(c, "missing_params", "Fecha y sede obligatorias.")
		return nil, false
	}

	// vista instantánea: cache-aside con TTL corto
	if av, hit := h.cache.Get(c.Request.Context(), date, location); hit {
		return av, true
	}

	repo := infraRepo.NewSchedulingGormRepository(h.db)
	uc := scheduling.NewGetAvailability(repo)

	av, err := uc.Execute(c.Request.Context(), domain.AvailabilityInput{
		Date:     date,
		Location: location,
	})

	if err != nil {
		switch httperr.BusinessCode(err) {
		case "invalid_date":
			httperr.BadRequest(c, "invalid_date", "Fecha inválida.")
		case "invalid_location":
			httperr.BadRequest(c, "invalid_location", "Sede inválida.")
		default:
			httperr.Internal(c, "availability_failed", "Error al calcular horarios.")
		}
		return nil, false
	}

	h.cache.Set(c.Request.Context(), av)

	return av, true
}
