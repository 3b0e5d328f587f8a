package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/OrinocoLabs01/lab-scheduler/internal/authz"
	"github.com/OrinocoLabs01/lab-scheduler/internal/cache"
	"github.com/OrinocoLabs01/lab-scheduler/internal/httperr"
	"github.com/OrinocoLabs01/lab-scheduler/internal/usecase/scheduling"
)

// ======================================================
// HANDLER — bloqueos de día y de cupo (solo panel admin)
// ======================================================

type BlockingHandler struct {
	db    *gorm.DB
	cache *cache.Availability

	blockDayUC    *scheduling.BlockDay
	unblockDayUC  *scheduling.UnblockDay
	blockSlotUC   *scheduling.BlockSlot
	unblockSlotUC *scheduling.UnblockSlot
}

func NewBlockingHandler(
	db *gorm.DB,
	avCache *cache.Availability,
	blockDayUC *scheduling.BlockDay,
	unblockDayUC *scheduling.UnblockDay,
	blockSlotUC *scheduling.BlockSlot,
	unblockSlotUC *scheduling.UnblockSlot,
) *BlockingHandler {
	return &BlockingHandler{
		db:            db,
		cache:         avCache,
		blockDayUC:    blockDayUC,
		unblockDayUC:  unblockDayUC,
		blockSlotUC:   blockSlotUC,
		unblockSlotUC: unblockSlotUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type DayBlockRequest struct {
	Date string `json:"date" binding:"required"` // YYYY-MM-DD
}

type SlotBlockRequest struct {
	Date     string `json:"date" binding:"required"`
	Slot     string `json:"slot" binding:"required"` // HH:mm
	Location string `json:"location" binding:"required"`
}

// ======================================================
// DÍA
// ======================================================

func (h *BlockingHandler) BlockDay(c *gin.Context) {
	actor := actorFromContext(c)

	if !authz.IsAllowed(actor.Role, overridesFor(h.db, actor.ID), authz.ModuleAvailability, authz.ActionBlockDay) {
		httperr.Forbidden(c, "forbidden", "Sin permiso para cerrar días.")
		return
	}

	var req DayBlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	if err := h.blockDayUC.Execute(c.Request.Context(), actor, req.Date); err != nil {
		h.mapBlockingError(c, err)
		return
	}

	h.cache.InvalidateDate(c.Request.Context(), req.Date)

	c.JSON(http.StatusOK, gin.H{"date": req.Date, "blocked": true})
}

func (h *BlockingHandler) UnblockDay(c *gin.Context) {
	actor := actorFromContext(c)

	if !authz.IsAllowed(actor.Role, overridesFor(h.db, actor.ID), authz.ModuleAvailability, authz.ActionBlockDay) {
		httperr.Forbidden(c, "forbidden", "Sin permiso para reabrir días.")
		return
	}

	var req DayBlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	if err := h.unblockDayUC.Execute(c.Request.Context(), actor, req.Date); err != nil {
		h.mapBlockingError(c, err)
		return
	}

	h.cache.InvalidateDate(c.Request.Context(), req.Date)

	c.JSON(http.StatusOK, gin.H{"date": req.Date, "blocked": false})
}

// ======================================================
// CUPO
// ======================================================

func (h *BlockingHandler) BlockSlot(c *gin.Context) {
	actor := actorFromContext(c)

	if !authz.IsAllowed(actor.Role, overridesFor(h.db, actor.ID), authz.ModuleAvailability, authz.ActionBlockSlot) {
		httperr.Forbidden(c, "forbidden", "Sin permiso para bloquear horarios.")
		return
	}

	var req SlotBlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	err := h.blockSlotUC.Execute(c.Request.Context(), actor, scheduling.SlotBlockInput{
		Date:     req.Date,
		Time:     req.Slot,
		Location: req.Location,
	})
	if err != nil {
		h.mapBlockingError(c, err)
		return
	}

	h.cache.Invalidate(c.Request.Context(), req.Date, req.Location)

	c.JSON(http.StatusOK, gin.H{
		"date":     req.Date,
		"slot":     req.Slot,
		"location": req.Location,
		"blocked":  true,
	})
}

func (h *BlockingHandler) UnblockSlot(c *gin.Context) {
	actor := actorFromContext(c)

	if !authz.IsAllowed(actor.Role, overridesFor(h.db, actor.ID), authz.ModuleAvailability, authz.ActionBlockSlot) {
		httperr.Forbidden(c, "forbidden", "Sin permiso para desbloquear horarios.")
		return
	}

	var req SlotBlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	err := h.unblockSlotUC.Execute(c.Request.Context(), actor, scheduling.SlotBlockInput{
		Date:     req.Date,
		Time:     req.Slot,
		Location: req.Location,
	})
	if err != nil {
		h.mapBlockingError(c, err)
		return
	}

	h.cache.Invalidate(c.Request.Context(), req.Date, req.Location)

	c.JSON(http.StatusOK, gin.H{
		"date":     req.Date,
		"slot":     req.Slot,
		"location": req.Location,
		"blocked":  false,
	})
}

func (h *BlockingHandler) mapBlockingError(c *gin.Context, err error) {
	switch httperr.BusinessCode(err) {
	case "invalid_date":
		httperr.BadRequest(c, "invalid_date", "Fecha inválida.")
	case "invalid_time":
		httperr.BadRequest(c, "invalid_time", "Hora inválida.")
	case "invalid_location":
		httperr.BadRequest(c, "invalid_location", "Sede inválida.")
	case httperr.CodeLocationForbidden:
		httperr.Forbidden(c, httperr.CodeLocationForbidden, "Fuera del alcance de su sede.")
	case httperr.CodeSlotOccupiedByBooking:
		// mensaje específico: el panel debe distinguirlo de un fallo genérico
		httperr.Conflict(c, httperr.CodeSlotOccupiedByBooking, "El horario está ocupado por una cita, no por un bloqueo.")
	default:
		httperr.Internal(c, "blocking_failed", "Error al actualizar bloqueos.")
	}
}
