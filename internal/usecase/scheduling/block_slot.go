package scheduling

import (
	"context"

	"github.com/OrinocoLabs01/lab-scheduler/internal/audit"
	"github.com/OrinocoLabs01/lab-scheduler/internal/authz"
	domain "github.com/OrinocoLabs01/lab-scheduler/internal/domain/scheduling"
	"github.com/OrinocoLabs01/lab-scheduler/internal/httperr"
	"github.com/OrinocoLabs01/lab-scheduler/internal/models"
)

type SlotBlockInput struct {
	Date     string // YYYY-MM-DD
	Time     string // HH:mm
	Location string
}

func (in SlotBlockInput) validate() error {
	if !domain.IsValidDate(in.Date) {
		return httperr.ErrBusiness("invalid_date")
	}
	if !domain.IsValidSlotTime(in.Time) {
		return httperr.ErrBusiness("invalid_time")
	}
	if !domain.IsValidLocation(in.Location) {
		return httperr.ErrBusiness("invalid_location")
	}
	return nil
}

// ======================================================
// BLOCK SLOT
// ======================================================

type BlockSlot struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewBlockSlot(repo domain.Repository, audit *audit.Dispatcher) *BlockSlot {
	return &BlockSlot{repo: repo, audit: audit}
}

func (uc *BlockSlot) Execute(
	ctx context.Context,
	actor Actor,
	in SlotBlockInput,
) error {

	if err := in.validate(); err != nil {
		return err
	}

	// precondición de sede, antes de cualquier mutación
	if !authz.CanActOnLocation(actor.Role, actor.HomeLocation, in.Location) {
		return httperr.ErrBusiness(httperr.CodeLocationForbidden)
	}

	exists, err := uc.repo.HasSlotBlock(ctx, in.Date, in.Time, in.Location)
	if err != nil {
		return err
	}

	// idempotente: bloquear lo ya bloqueado es éxito sin efecto
	if !exists {
		block := &models.SlotBlock{
			Date:        in.Date,
			Time:        in.Time,
			Location:    in.Location,
			CreatedByID: &actor.ID,
		}
		if err := uc.repo.CreateSlotBlock(ctx, block); err != nil {
			if !httperr.IsUniqueViolation(err) {
				return err
			}
		}
	}

	uc.audit.Dispatch(audit.Event{
		UserID: &actor.ID,
		Action: "slot_blocked",
		Module: authz.ModuleAvailability,
		Entity: "slot_block",
		Metadata: map[string]any{
			"date":     in.Date,
			"time":     in.Time,
			"location": in.Location,
			"noop":     exists,
		},
		Success: true,
	})

	return nil
}

// ======================================================
// UNBLOCK SLOT
// ======================================================

type UnblockSlot struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewUnblockSlot(repo domain.Repository, audit *audit.Dispatcher) *UnblockSlot {
	return &UnblockSlot{repo: repo, audit: audit}
}

func (uc *UnblockSlot) Execute(
	ctx context.Context,
	actor Actor,
	in SlotBlockInput,
) error {

	if err := in.validate(); err != nil {
		return err
	}

	if !authz.CanActOnLocation(actor.Role, actor.HomeLocation, in.Location) {
		return httperr.ErrBusiness(httperr.CodeLocationForbidden)
	}

	removed, err := uc.repo.DeleteSlotBlock(ctx, in.Date, in.Time, in.Location)
	if err != nil {
		return err
	}

	if !removed {
		// No había bloqueo administrativo. Si el cupo está ocupado por una
		// cita viva el desbloqueo NO la libera: es un error distinto para
		// que el panel lo explique.
		booked, err := uc.repo.HasActiveAppointmentAt(ctx, in.Date, in.Time, in.Location)
		if err != nil {
			return err
		}

		if booked {
			uc.audit.Dispatch(audit.Event{
				UserID: &actor.ID,
				Action: "slot_unblock_rejected",
				Module: authz.ModuleAvailability,
				Entity: "slot_block",
				Metadata: map[string]any{
					"date":     in.Date,
					"time":     in.Time,
					"location": in.Location,
					"cause":    httperr.CodeSlotOccupiedByBooking,
				},
				Success: false,
			})
			return httperr.ErrBusiness(httperr.CodeSlotOccupiedByBooking)
		}
	}

	uc.audit.Dispatch(audit.Event{
		UserID: &actor.ID,
		Action: "slot_unblocked",
		Module: authz.ModuleAvailability,
		Entity: "slot_block",
		Metadata: map[string]any{
			"date":     in.Date,
			"time":     in.Time,
			"location": in.Location,
			"noop":     !removed,
		},
		Success: true,
	})

	return nil
}
