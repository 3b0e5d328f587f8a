package scheduling

import (
	"context"

	"github.com/OrinocoLabs01/lab-scheduler/internal/audit"
	"github.com/OrinocoLabs01/lab-scheduler/internal/authz"
	domain "github.com/OrinocoLabs01/lab-scheduler/internal/domain/scheduling"
	"github.com/OrinocoLabs01/lab-scheduler/internal/httperr"
	"github.com/OrinocoLabs01/lab-scheduler/internal/models"
	"github.com/OrinocoLabs01/lab-scheduler/internal/timezone"
)

type CancelAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCancelAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CancelAppointment {
	return &CancelAppointment{
		repo:  repo,
		audit: audit,
	}
}

func (uc *CancelAppointment) Execute(
	ctx context.Context,
	actor Actor,
	appointmentID uint,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointmentByID(ctx, appointmentID)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	if !authz.CanActOnLocation(actor.Role, actor.HomeLocation, ap.Location) {
		return nil, httperr.ErrBusiness(httperr.CodeLocationForbidden)
	}

	now := timezone.Now()
	if err := domain.Cancel(ap, now); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &actor.ID,
		Action:   "appointment_cancelled",
		Module:   authz.ModuleAppointments,
		Entity:   "appointment",
		EntityID: &ap.ID,
		Success:  true,
	})

	return ap, nil
}
