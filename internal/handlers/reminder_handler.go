package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/OrinocoLabs01/lab-scheduler/internal/httperr"
	"github.com/OrinocoLabs01/lab-scheduler/internal/usecase/reminder"
)

// ======================================================
// HANDLER — job nocturno de recordatorios
// ======================================================

// El scheduler externo (cron) dispara este endpoint; el secreto compartido
// viaja como query param y se valida dentro del caso de uso.

type ReminderHandler struct {
	sendNextDayUC *reminder.SendNextDay
}

func NewReminderHandler(sendNextDayUC *reminder.SendNextDay) *ReminderHandler {
	return &ReminderHandler{sendNextDayUC: sendNextDayUC}
}

func (h *ReminderHandler) SendNextDay(c *gin.Context) {
	dryRun, _ := strconv.ParseBool(c.Query("dryRun"))

	limit := 0
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			limit = n
		}
	}

	report, err := h.sendNextDayUC.Execute(c.Request.Context(), reminder.SendNextDayInput{
		Token:  c.Query("token"),
		DryRun: dryRun,
		Limit:  limit,
	})

	if err != nil {
		httperr.Internal(c, "reminder_run_failed", "Error al ejecutar recordatorios.")
		return
	}

	c.JSON(http.StatusOK, report)
}
