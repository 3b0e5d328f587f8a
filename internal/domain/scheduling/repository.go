package scheduling

import (
	"context"

	"github.com/OrinocoLabs01/lab-scheduler/internal/models"
)

type Repository interface {
	// -------- Bloqueos de día --------
	HasDayBlock(
		ctx context.Context,
		date string,
	) (bool, error)

	CreateDayBlock(
		ctx context.Context,
		block *models.DayBlock,
	) error

	DeleteDayBlock(
		ctx context.Context,
		date string,
	) (bool, error)

	// -------- Bloqueos de cupo --------
	ListSlotBlocks(
		ctx context.Context,
		date string,
		location string,
	) ([]models.SlotBlock, error)

	HasSlotBlock(
		ctx context.Context,
		date string,
		slot string,
		location string,
	) (bool, error)

	CreateSlotBlock(
		ctx context.Context,
		block *models.SlotBlock,
	) error

	DeleteSlotBlock(
		ctx context.Context,
		date string,
		slot string,
		location string,
	) (bool, error)

	// -------- Citas (lectura) --------
	ListBookedTimes(
		ctx context.Context,
		date string,
		location string,
	) ([]string, error)

	HasActiveAppointmentAt(
		ctx context.Context,
		date string,
		slot string,
		location string,
	) (bool, error)

	GetAppointmentByID(
		ctx context.Context,
		id uint,
	) (*models.Appointment, error)

	ListAppointmentsForDate(
		ctx context.Context,
		date string,
		location string,
		limit int,
	) ([]models.Appointment, error)

	// -------- Citas (escritura) --------
	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// -------- Pacientes (proyección de contacto) --------
	GetPatientByID(
		ctx context.Context,
		id uint,
	) (*models.Patient, error)

	GetOrCreatePatient(
		ctx context.Context,
		name string,
		phone string,
		email string,
	) (*models.Patient, error)
}
