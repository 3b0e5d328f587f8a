package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/OrinocoLabs01/lab-scheduler/internal/authz"
	"github.com/OrinocoLabs01/lab-scheduler/internal/cache"
	"github.com/OrinocoLabs01/lab-scheduler/internal/httperr"
	infraRepo "github.com/OrinocoLabs01/lab-scheduler/internal/infra/repository"
	"github.com/OrinocoLabs01/lab-scheduler/internal/usecase/scheduling"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	db    *gorm.DB
	cache *cache.Availability

	createUC     *scheduling.CreateAppointment
	confirmUC    *scheduling.ConfirmAppointment
	cancelUC     *scheduling.CancelAppointment
	rescheduleUC *scheduling.RescheduleAppointment
}

func NewAppointmentHandler(
	db *gorm.DB,
	avCache *cache.Availability,
	createUC *scheduling.CreateAppointment,
	confirmUC *scheduling.ConfirmAppointment,
	cancelUC *scheduling.CancelAppointment,
	rescheduleUC *scheduling.RescheduleAppointment,
) *AppointmentHandler {
	return &AppointmentHandler{
		db:           db,
		cache:        avCache,
		createUC:     createUC,
		confirmUC:    confirmUC,
		cancelUC:     cancelUC,
		rescheduleUC: rescheduleUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	PatientName  string   `json:"patient_name" binding:"required"`
	PatientPhone string   `json:"patient_phone" binding:"required"`
	PatientEmail string   `json:"patient_email"`
	Date         string   `json:"date" binding:"required"`     // YYYY-MM-DD
	Time         string   `json:"time" binding:"required"`     // HH:mm
	Location     string   `json:"location" binding:"required"`
	Studies      []string `json:"studies" binding:"required"`
	Notes        string   `json:"notes"`
}

type RescheduleRequest struct {
	Date     string `json:"date" binding:"required"`
	Time     string `json:"time" binding:"required"`
	Location string `json:"location"`
}

// ======================================================
// CREATE — reserva pública, pasa por el conflict guard
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	ap, err := h.createUC.Execute(c.Request.Context(), scheduling.CreateAppointmentInput{
		PatientName:  req.PatientName,
		PatientPhone: req.PatientPhone,
		PatientEmail: req.PatientEmail,
		Date:         req.Date,
		Time:         req.Time,
		Location:     req.Location,
		Studies:      req.Studies,
		Notes:        req.Notes,
	})

	if err != nil {
		h.mapCreateError(c, err)
		return
	}

	h.cache.Invalidate(c.Request.Context(), ap.Date, ap.Location)

	c.JSON(http.StatusCreated, ap)
}

func (h *AppointmentHandler) mapCreateError(c *gin.Context, err error) {
	switch httperr.BusinessCode(err) {
	case "invalid_date", "invalid_time", "invalid_date_or_time":
		httperr.BadRequest(c, "invalid_date_or_time", "Fecha u hora inválida.")
	case "invalid_location":
		httperr.BadRequest(c, "invalid_location", "Sede inválida.")
	case "missing_studies":
		httperr.BadRequest(c, "missing_studies", "Debe indicar al menos un estudio.")
	case httperr.CodeDayBlocked:
		httperr.Conflict(c, httperr.CodeDayBlocked, "El día está cerrado.")
	case httperr.CodeSlotBlocked:
		httperr.Conflict(c, httperr.CodeSlotBlocked, "El horario está bloqueado.")
	case httperr.CodeSlotTaken:
		httperr.Conflict(c, httperr.CodeSlotTaken, "El horario ya fue reservado.")
	default:
		httperr.Internal(c, "failed_to_create_appointment", "Error al crear la cita.")
	}
}

// ======================================================
// LIST (admin) — por fecha, con filtro opcional de sede
// ======================================================

func (h *AppointmentHandler) ListByDate(c *gin.Context) {
	actor := actorFromContext(c)

	if !authz.IsAllowed(actor.Role, overridesFor(h.db, actor.ID), authz.ModuleAppointments, authz.ActionRead) {
		httperr.Forbidden(c, "forbidden", "Sin permiso para ver citas.")
		return
	}

	date := c.Query("date")
	if date == "" {
		httperr.BadRequest(c, "missing_date", "Fecha obligatoria.")
		return
	}

	location := c.Query("location")
	if authz.IsLocationScoped(actor.Role) {
		// los roles con sede asignada solo ven su propia sede
		location = actor.HomeLocation
	}

	repo := infraRepo.NewSchedulingGormRepository(h.db)

	aps, err := repo.ListAppointmentsForDate(c.Request.Context(), date, location, 0)
	if err != nil {
		httperr.Internal(c, "failed_to_list_appointments", "Error al listar citas.")
		return
	}

	c.JSON(http.StatusOK, aps)
}

// ======================================================
// CONFIRM / CANCEL / RESCHEDULE (admin)
// ======================================================

func (h *AppointmentHandler) Confirm(c *gin.Context) {
	actor := actorFromContext(c)

	if !authz.IsAllowed(actor.Role, overridesFor(h.db, actor.ID), authz.ModuleAppointments, authz.ActionUpdate) {
		httperr.Forbidden(c, "forbidden", "Sin permiso para confirmar citas.")
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	ap, err := h.confirmUC.Execute(c.Request.Context(), actor, uint(id))
	if err != nil {
		h.mapStateError(c, err)
		return
	}

	c.JSON(http.StatusOK, ap)
}

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	actor := actorFromContext(c)

	if !authz.IsAllowed(actor.Role, overridesFor(h.db, actor.ID), authz.ModuleAppointments, authz.ActionCancel) {
		httperr.Forbidden(c, "forbidden", "Sin permiso para cancelar citas.")
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	ap, err := h.cancelUC.Execute(c.Request.Context(), actor, uint(id))
	if err != nil {
		h.mapStateError(c, err)
		return
	}

	// el cupo quedó libre
	h.cache.Invalidate(c.Request.Context(), ap.Date, ap.Location)

	c.JSON(http.StatusOK, ap)
}

func (h *AppointmentHandler) Reschedule(c *gin.Context) {
	actor := actorFromContext(c)

	if !authz.IsAllowed(actor.Role, overridesFor(h.db, actor.ID), authz.ModuleAppointments, authz.ActionUpdate) {
		httperr.Forbidden(c, "forbidden", "Sin permiso para reprogramar citas.")
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	var req RescheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	ap, err := h.rescheduleUC.Execute(c.Request.Context(), actor, scheduling.RescheduleAppointmentInput{
		AppointmentID: uint(id),
		Date:          req.Date,
		Time:          req.Time,
		Location:      req.Location,
	})

	if err != nil {
		if httperr.IsSlotUnavailable(err) {
			h.mapCreateError(c, err)
			return
		}
		h.mapStateError(c, err)
		return
	}

	// se invalida la vista del cupo nuevo; el viejo la recupera el TTL
	h.cache.Invalidate(c.Request.Context(), ap.Date, ap.Location)

	c.JSON(http.StatusOK, ap)
}

func (h *AppointmentHandler) mapStateError(c *gin.Context, err error) {
	switch httperr.BusinessCode(err) {
	case "appointment_not_found":
		httperr.NotFound(c, "appointment_not_found", "Cita no encontrada.")
	case "invalid_state":
		httperr.BadRequest(c, "invalid_state", "La cita no permite esa transición.")
	case httperr.CodeLocationForbidden:
		httperr.Forbidden(c, httperr.CodeLocationForbidden, "Fuera del alcance de su sede.")
	case "invalid_date", "invalid_time", "invalid_date_or_time":
		httperr.BadRequest(c, "invalid_date_or_time", "Fecha u hora inválida.")
	case "invalid_location":
		httperr.BadRequest(c, "invalid_location", "Sede inválida.")
	default:
		httperr.Internal(c, "appointment_update_failed", "Error al actualizar la cita.")
	}
}
