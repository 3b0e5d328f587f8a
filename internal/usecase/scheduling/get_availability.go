package scheduling

import (
	"context"

	domain "github.com/OrinocoLabs01/lab-scheduler/internal/domain/scheduling"
	"github.com/OrinocoLabs01/lab-scheduler/internal/httperr"
)

type GetAvailability struct {
	repo domain.Repository
}

func NewGetAvailability(repo domain.Repository) *GetAvailability {
	return &GetAvailability{repo: repo}
}

func (uc *GetAvailability) Execute(
	ctx context.Context,
	in domain.AvailabilityInput,
) (*domain.Availability, error) {

	if !domain.IsValidDate(in.Date) {
		return nil, httperr.ErrBusiness("invalid_date")
	}
	if !domain.IsValidLocation(in.Location) {
		return nil, httperr.ErrBusiness("invalid_location")
	}

	grid := domain.TemplateFor(in.Location).Slots()

	av := &domain.Availability{
		Date:        in.Date,
		Location:    in.Location,
		Available:   []string{},
		Unavailable: []string{},
	}

	// 1️⃣ día cerrado → corto circuito: toda la grilla queda no disponible
	dayBlocked, err := uc.repo.HasDayBlock(ctx, in.Date)
	if err != nil {
		return nil, err
	}

	if dayBlocked {
		av.IsDayBlocked = true
		av.Unavailable = grid
		return av, nil
	}

	// 2️⃣ hechos externos: cupos bloqueados y cupos ya citados
	blocks, err := uc.repo.ListSlotBlocks(ctx, in.Date, in.Location)
	if err != nil {
		return nil, err
	}

	booked, err := uc.repo.ListBookedTimes(ctx, in.Date, in.Location)
	if err != nil {
		return nil, err
	}

	blockedSet := make(map[string]bool, len(blocks))
	for _, b := range blocks {
		blockedSet[b.Time] = true
	}

	bookedSet := make(map[string]bool, len(booked))
	for _, t := range booked {
		bookedSet[t] = true
	}

	// 3️⃣ partición: la grilla ya viene en orden cronológico
	for _, slot := range grid {
		switch {
		case bookedSet[slot]:
			av.Unavailable = append(av.Unavailable, slot)
			av.Booked = append(av.Booked, slot)
		case blockedSet[slot]:
			av.Unavailable = append(av.Unavailable, slot)
			av.Blocked = append(av.Blocked, slot)
		default:
			av.Available = append(av.Available, slot)
		}
	}

	return av, nil
}
