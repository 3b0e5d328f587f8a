package scheduling

import (
	"context"
	"time"

	"github.com/OrinocoLabs01/lab-scheduler/internal/audit"
	"github.com/OrinocoLabs01/lab-scheduler/internal/authz"
	domain "github.com/OrinocoLabs01/lab-scheduler/internal/domain/scheduling"
	"github.com/OrinocoLabs01/lab-scheduler/internal/httperr"
	"github.com/OrinocoLabs01/lab-scheduler/internal/models"
	"github.com/OrinocoLabs01/lab-scheduler/internal/timezone"
)

type RescheduleAppointmentInput struct {
	AppointmentID uint
	Date          string // YYYY-MM-DD
	Time          string // HH:mm
	Location      string // vacío mantiene la sede actual
}

type RescheduleAppointment struct {
	repo  domain.Repository
	avail *GetAvailability
	audit *audit.Dispatcher
}

func NewRescheduleAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *RescheduleAppointment {
	return &RescheduleAppointment{
		repo:  repo,
		avail: NewGetAvailability(repo),
		audit: audit,
	}
}

func (uc *RescheduleAppointment) Execute(
	ctx context.Context,
	actor Actor,
	in RescheduleAppointmentInput,
) (*models.Appointment, error) {

	if !domain.IsValidDate(in.Date) {
		return nil, httperr.ErrBusiness("invalid_date")
	}
	if !domain.IsValidSlotTime(in.Time) {
		return nil, httperr.ErrBusiness("invalid_time")
	}

	ap, err := uc.repo.GetAppointmentByID(ctx, in.AppointmentID)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	location := in.Location
	if location == "" {
		location = ap.Location
	}
	if !domain.IsValidLocation(location) {
		return nil, httperr.ErrBusiness("invalid_location")
	}

	// precondición de sede sobre la sede origen y la destino
	if !authz.CanActOnLocation(actor.Role, actor.HomeLocation, ap.Location) ||
		!authz.CanActOnLocation(actor.Role, actor.HomeLocation, location) {
		return nil, httperr.ErrBusiness(httperr.CodeLocationForbidden)
	}

	if err := domain.CanReschedule(domain.Status(ap.Status)); err != nil {
		return nil, err
	}

	// mover al mismo cupo es un no-op
	if ap.Date == in.Date && ap.Time == in.Time && ap.Location == location {
		return ap, nil
	}

	// el nuevo cupo pasa por el mismo guard que una creación
	if err := assertSlotFree(ctx, uc.avail, in.Date, in.Time, location); err != nil {
		return nil, err
	}

	start, err := time.ParseInLocation(
		"2006-01-02 15:04",
		in.Date+" "+in.Time,
		timezone.Location(timezone.DefaultTimezone),
	)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}

	prev := map[string]any{
		"date":     ap.Date,
		"time":     ap.Time,
		"location": ap.Location,
	}

	ap.StartTime = start
	ap.Date = in.Date
	ap.Time = in.Time
	ap.Location = location

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		// la carrera lectura-escritura la cierra el índice único
		if httperr.IsUniqueViolation(err) {
			return nil, httperr.ErrBusiness(httperr.CodeSlotTaken)
		}
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &actor.ID,
		Action:   "appointment_rescheduled",
		Module:   authz.ModuleAppointments,
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]any{"from": prev, "to": map[string]any{
			"date":     in.Date,
			"time":     in.Time,
			"location": location,
		}},
		Success: true,
	})

	return ap, nil
}
