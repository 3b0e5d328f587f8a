package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/OrinocoLabs01/lab-scheduler/internal/httperr"
	"github.com/OrinocoLabs01/lab-scheduler/internal/models"
	"github.com/OrinocoLabs01/lab-scheduler/internal/validators"
)

// Proyección de contacto: el core solo registra y lee lo necesario para
// agendar y recordar. El expediente completo vive en otro módulo.

type PatientHandler struct {
	db *gorm.DB
}

func NewPatientHandler(db *gorm.DB) *PatientHandler {
	return &PatientHandler{db: db}
}

type CreatePatientRequest struct {
	Name   string `json:"name" binding:"required"`
	Email  string `json:"email"`
	Phone  string `json:"phone" binding:"required"`
	Locale string `json:"locale"`
}

func (h *PatientHandler) Create(c *gin.Context) {
	var req CreatePatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	if req.Email != "" && !validators.IsEmailDomainValid(req.Email) {
		httperr.BadRequest(c, "invalid_email_domain", "El dominio del correo no existe.")
		return
	}

	patient := models.Patient{
		Name:   req.Name,
		Email:  req.Email,
		Phone:  req.Phone,
		Locale: req.Locale,
	}

	if patient.Locale == "" {
		patient.Locale = "es-VE"
	}

	if err := h.db.Create(&patient).Error; err != nil {
		httperr.Internal(c, "patient_create_failed", "Error al registrar paciente.")
		return
	}

	c.JSON(http.StatusCreated, patient)
}

func (h *PatientHandler) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	var patient models.Patient
	if err := h.db.First(&patient, uint(id)).Error; err != nil {
		httperr.NotFound(c, "patient_not_found", "Paciente no encontrado.")
		return
	}

	c.JSON(http.StatusOK, patient)
}
