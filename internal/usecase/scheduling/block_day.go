package scheduling

import (
	"context"

	"github.com/OrinocoLabs01/lab-scheduler/internal/audit"
	"github.com/OrinocoLabs01/lab-scheduler/internal/authz"
	domain "github.com/OrinocoLabs01/lab-scheduler/internal/domain/scheduling"
	"github.com/OrinocoLabs01/lab-scheduler/internal/httperr"
	"github.com/OrinocoLabs01/lab-scheduler/internal/models"
)

// Los cierres de día aplican a todas las sedes, así que solo el rol sin
// alcance de sede puede tocarlos.

type BlockDay struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewBlockDay(repo domain.Repository, audit *audit.Dispatcher) *BlockDay {
	return &BlockDay{repo: repo, audit: audit}
}

func (uc *BlockDay) Execute(
	ctx context.Context,
	actor Actor,
	date string,
) error {

	if !domain.IsValidDate(date) {
		return httperr.ErrBusiness("invalid_date")
	}

	if authz.IsLocationScoped(actor.Role) {
		return httperr.ErrBusiness(httperr.CodeLocationForbidden)
	}

	exists, err := uc.repo.HasDayBlock(ctx, date)
	if err != nil {
		return err
	}

	// bloquear un día ya bloqueado es un éxito sin efecto
	if !exists {
		block := &models.DayBlock{
			Date:        date,
			CreatedByID: &actor.ID,
		}
		if err := uc.repo.CreateDayBlock(ctx, block); err != nil {
			if !httperr.IsUniqueViolation(err) {
				return err
			}
		}
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &actor.ID,
		Action:   "day_blocked",
		Module:   authz.ModuleAvailability,
		Entity:   "day_block",
		Metadata: map[string]any{"date": date, "noop": exists},
		Success:  true,
	})

	return nil
}

type UnblockDay struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewUnblockDay(repo domain.Repository, audit *audit.Dispatcher) *UnblockDay {
	return &UnblockDay{repo: repo, audit: audit}
}

func (uc *UnblockDay) Execute(
	ctx context.Context,
	actor Actor,
	date string,
) error {

	if !domain.IsValidDate(date) {
		return httperr.ErrBusiness("invalid_date")
	}

	if authz.IsLocationScoped(actor.Role) {
		return httperr.ErrBusiness(httperr.CodeLocationForbidden)
	}

	// Los bloqueos de cupo registrados para la fecha NO se limpian:
	// persisten de forma independiente y reaparecen tal cual al reabrir.
	removed, err := uc.repo.DeleteDayBlock(ctx, date)
	if err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &actor.ID,
		Action:   "day_unblocked",
		Module:   authz.ModuleAvailability,
		Entity:   "day_block",
		Metadata: map[string]any{"date": date, "noop": !removed},
		Success:  true,
	})

	return nil
}
