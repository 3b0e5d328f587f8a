package scheduling

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/OrinocoLabs01/lab-scheduler/internal/audit"
	"github.com/OrinocoLabs01/lab-scheduler/internal/authz"
	domain "github.com/OrinocoLabs01/lab-scheduler/internal/domain/scheduling"
	"github.com/OrinocoLabs01/lab-scheduler/internal/httperr"
	"github.com/OrinocoLabs01/lab-scheduler/internal/models"
	"github.com/OrinocoLabs01/lab-scheduler/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	PatientName  string
	PatientPhone string
	PatientEmail string

	Date     string // YYYY-MM-DD
	Time     string // HH:mm
	Location string

	Studies []string
	Notes   string

	// actor opcional (creación desde el panel); nil en la reserva pública
	ActorID *uint
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo  domain.Repository
	avail *GetAvailability
	audit *audit.Dispatcher
}

func NewCreateAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CreateAppointment {
	return &CreateAppointment{
		repo:  repo,
		avail: NewGetAvailability(repo),
		audit: audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	// --------------------------------------------------
	// 1️⃣ Validación de entrada
	// --------------------------------------------------
	if !domain.IsValidDate(in.Date) {
		return nil, httperr.ErrBusiness("invalid_date")
	}
	if !domain.IsValidSlotTime(in.Time) {
		return nil, httperr.ErrBusiness("invalid_time")
	}
	if !domain.IsValidLocation(in.Location) {
		return nil, httperr.ErrBusiness("invalid_location")
	}
	if len(in.Studies) == 0 {
		return nil, httperr.ErrBusiness("missing_studies")
	}

	// --------------------------------------------------
	// 2️⃣ Instante completo con el offset de la sede
	// --------------------------------------------------
	start, err := time.ParseInLocation(
		"2006-01-02 15:04",
		in.Date+" "+in.Time,
		timezone.Location(timezone.DefaultTimezone),
	)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}

	// --------------------------------------------------
	// 3️⃣ Disponibilidad fresca: nunca confiamos en una lectura previa
	//    del cliente, el tiempo pasó desde que la vio
	// --------------------------------------------------
	if err := uc.assertSlotFree(ctx, in.Date, in.Time, in.Location); err != nil {
		if httperr.IsSlotUnavailable(err) {
			uc.auditConflict(in, err)
		}
		return nil, err
	}

	// --------------------------------------------------
	// 4️⃣ Paciente (get or create por teléfono)
	// --------------------------------------------------
	patient, err := uc.repo.GetOrCreatePatient(
		ctx,
		in.PatientName,
		in.PatientPhone,
		in.PatientEmail,
	)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 5️⃣ Inserción. El índice único parcial es el árbitro final:
	//    dos peticiones casi simultáneas pueden pasar el chequeo de
	//    lectura, pero solo una inserta.
	// --------------------------------------------------
	ap := &models.Appointment{
		PublicID:  uuid.New(),
		PatientID: patient.ID,
		StartTime: start,
		Date:      in.Date,
		Time:      in.Time,
		Location:  in.Location,
		Studies:   in.Studies,
		Status:    string(domain.InitialStatus()),
		Notes:     in.Notes,
	}

	if err := uc.repo.CreateAppointment(ctx, ap); err != nil {
		if httperr.IsUniqueViolation(err) {
			conflictErr := httperr.ErrBusiness(httperr.CodeSlotTaken)
			uc.auditConflict(in, conflictErr)
			return nil, conflictErr
		}
		return nil, err
	}

	// --------------------------------------------------
	// 6️⃣ Auditoría
	// --------------------------------------------------
	uc.audit.Dispatch(audit.Event{
		UserID:   in.ActorID,
		Action:   "appointment_created",
		Module:   authz.ModuleAppointments,
		Entity:   "appointment",
		EntityID: &ap.ID,
		Success:  true,
	})

	return ap, nil
}

func (uc *CreateAppointment) assertSlotFree(
	ctx context.Context,
	date string,
	slot string,
	location string,
) error {
	return assertSlotFree(ctx, uc.avail, date, slot, location)
}

// assertSlotFree repite el resolver al momento de la llamada y nombra la
// causa exacta del rechazo. Compartido entre creación y reprogramación.
func assertSlotFree(
	ctx context.Context,
	avail *GetAvailability,
	date string,
	slot string,
	location string,
) error {

	av, err := avail.Execute(ctx, domain.AvailabilityInput{
		Date:     date,
		Location: location,
	})
	if err != nil {
		return err
	}

	if av.IsDayBlocked {
		return httperr.ErrBusiness(httperr.CodeDayBlocked)
	}

	for _, s := range av.Blocked {
		if s == slot {
			return httperr.ErrBusiness(httperr.CodeSlotBlocked)
		}
	}

	for _, s := range av.Booked {
		if s == slot {
			return httperr.ErrBusiness(httperr.CodeSlotTaken)
		}
	}

	for _, s := range av.Available {
		if s == slot {
			return nil
		}
	}

	// la hora no pertenece a la grilla de la sede
	return httperr.ErrBusiness("invalid_time")
}

func (uc *CreateAppointment) auditConflict(in CreateAppointmentInput, cause error) {
	uc.audit.Dispatch(audit.Event{
		UserID:  in.ActorID,
		Action:  "appointment_conflict",
		Module:  authz.ModuleAppointments,
		Entity:  "appointment",
		Success: false,
		Metadata: map[string]any{
			"date":     in.Date,
			"time":     in.Time,
			"location": in.Location,
			"cause":    httperr.BusinessCode(cause),
		},
	})
}
