package repository

import (
	"context"

	"gorm.io/gorm"

	domain "github.com/OrinocoLabs01/lab-scheduler/internal/domain/scheduling"
	"github.com/OrinocoLabs01/lab-scheduler/internal/models"
)

type SchedulingGormRepository struct {
	db *gorm.DB
}

func NewSchedulingGormRepository(db *gorm.DB) *SchedulingGormRepository {
	return &SchedulingGormRepository{db: db}
}

// --------------------------------------------------
// Bloqueos de día
// --------------------------------------------------

func (r *SchedulingGormRepository) HasDayBlock(
	ctx context.Context,
	date string,
) (bool, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.DayBlock{}).
		Where("date = ?", date).
		Count(&count).Error; err != nil {
		return false, err
	}

	return count > 0, nil
}

func (r *SchedulingGormRepository) CreateDayBlock(
	ctx context.Context,
	block *models.DayBlock,
) error {
	return r.db.WithContext(ctx).Create(block).Error
}

func (r *SchedulingGormRepository) DeleteDayBlock(
	ctx context.Context,
	date string,
) (bool, error) {

	res := r.db.WithContext(ctx).
		Where("date = ?", date).
		Delete(&models.DayBlock{})

	if res.Error != nil {
		return false, res.Error
	}

	return res.RowsAffected > 0, nil
}

// --------------------------------------------------
// Bloqueos de cupo
// --------------------------------------------------

func (r *SchedulingGormRepository) ListSlotBlocks(
	ctx context.Context,
	date string,
	location string,
) ([]models.SlotBlock, error) {

	var blocks []models.SlotBlock
	if err := r.db.WithContext(ctx).
		Where("date = ? AND location = ?", date, location).
		Order("time ASC").
		Find(&blocks).Error; err != nil {
		return nil, err
	}

	return blocks, nil
}

func (r *SchedulingGormRepository) HasSlotBlock(
	ctx context.Context,
	date string,
	slot string,
	location string,
) (bool, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.SlotBlock{}).
		Where("date = ? AND time = ? AND location = ?", date, slot, location).
		Count(&count).Error; err != nil {
		return false, err
	}

	return count > 0, nil
}

func (r *SchedulingGormRepository) CreateSlotBlock(
	ctx context.Context,
	block *models.SlotBlock,
) error {
	return r.db.WithContext(ctx).Create(block).Error
}

func (r *SchedulingGormRepository) DeleteSlotBlock(
	ctx context.Context,
	date string,
	slot string,
	location string,
) (bool, error) {

	res := r.db.WithContext(ctx).
		Where("date = ? AND time = ? AND location = ?", date, slot, location).
		Delete(&models.SlotBlock{})

	if res.Error != nil {
		return false, res.Error
	}

	return res.RowsAffected > 0, nil
}

// --------------------------------------------------
// Citas (lectura)
// --------------------------------------------------

func (r *SchedulingGormRepository) ListBookedTimes(
	ctx context.Context,
	date string,
	location string,
) ([]string, error) {

	var times []string
	if err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where(
			"date = ? AND location = ? AND status <> ?",
			date, location, string(domain.StatusCancelled),
		).
		Order("time ASC").
		Pluck("time", &times).Error; err != nil {
		return nil, err
	}

	return times, nil
}

func (r *SchedulingGormRepository) HasActiveAppointmentAt(
	ctx context.Context,
	date string,
	slot string,
	location string,
) (bool, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where(
			"date = ? AND time = ? AND location = ? AND status <> ?",
			date, slot, location, string(domain.StatusCancelled),
		).
		Count(&count).Error; err != nil {
		return false, err
	}

	return count > 0, nil
}

func (r *SchedulingGormRepository) GetAppointmentByID(
	ctx context.Context,
	id uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Patient").
		First(&ap, id).Error; err != nil {
		return nil, err
	}

	return &ap, nil
}

func (r *SchedulingGormRepository) ListAppointmentsForDate(
	ctx context.Context,
	date string,
	location string,
	limit int,
) ([]models.Appointment, error) {

	q := r.db.WithContext(ctx).
		Preload("Patient").
		Where("date = ? AND status <> ?", date, string(domain.StatusCancelled))

	if location != "" {
		q = q.Where("location = ?", location)
	}

	if limit > 0 {
		q = q.Limit(limit)
	}

	var aps []models.Appointment
	if err := q.Order("time ASC").Find(&aps).Error; err != nil {
		return nil, err
	}

	return aps, nil
}

// --------------------------------------------------
// Citas (escritura)
// --------------------------------------------------

func (r *SchedulingGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Create(ap).Error
}

func (r *SchedulingGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Save(ap).Error
}

// --------------------------------------------------
// Pacientes
// --------------------------------------------------

func (r *SchedulingGormRepository) GetPatientByID(
	ctx context.Context,
	id uint,
) (*models.Patient, error) {

	var p models.Patient
	if err := r.db.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, err
	}

	return &p, nil
}

func (r *SchedulingGormRepository) GetOrCreatePatient(
	ctx context.Context,
	name string,
	phone string,
	email string,
) (*models.Patient, error) {

	var patient models.Patient
	err := r.db.WithContext(ctx).
		Where("phone = ?", phone).
		First(&patient).Error

	if err == nil {
		return &patient, nil
	}

	patient = models.Patient{
		Name:  name,
		Phone: phone,
		Email: email,
	}

	if err := r.db.WithContext(ctx).Create(&patient).Error; err != nil {
		return nil, err
	}

	return &patient, nil
}

// Compile-time check
var _ domain.Repository = (*SchedulingGormRepository)(nil)
