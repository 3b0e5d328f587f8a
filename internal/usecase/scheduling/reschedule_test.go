package scheduling

import (
	"context"
	"testing"

	domain "github.com/OrinocoLabs01/lab-scheduler/internal/domain/scheduling"
	"github.com/OrinocoLabs01/lab-scheduler/internal/httperr"
)

func TestReschedule_Exito(t *testing.T) {
	repo := newFakeRepo()
	ap := repo.addBooking("2025-07-17", "09:30", domain.LocationMaracay)

	uc := NewRescheduleAppointment(repo, testDispatcher())

	moved, err := uc.Execute(context.Background(), adminActor, RescheduleAppointmentInput{
		AppointmentID: ap.ID,
		Date:          "2025-07-18",
		Time:          "10:00",
	})
	if err != nil {
		t.Fatalf("error inesperado: %v", err)
	}

	if moved.Date != "2025-07-18" || moved.Time != "10:00" {
		t.Fatalf("cita en %s %s, se esperaba 2025-07-18 10:00", moved.Date, moved.Time)
	}
	// sede vacía mantiene la sede actual
	if moved.Location != domain.LocationMaracay {
		t.Fatalf("location = %s, debería conservar la sede original", moved.Location)
	}
}

func TestReschedule_MismoCupoEsNoop(t *testing.T) {
	repo := newFakeRepo()
	ap := repo.addBooking("2025-07-17", "09:30", domain.LocationMaracay)

	uc := NewRescheduleAppointment(repo, testDispatcher())

	same, err := uc.Execute(context.Background(), adminActor, RescheduleAppointmentInput{
		AppointmentID: ap.ID,
		Date:          "2025-07-17",
		Time:          "09:30",
	})
	if err != nil {
		t.Fatalf("mover al mismo cupo debe ser no-op, no conflicto: %v", err)
	}
	if same.Time != "09:30" {
		t.Fatalf("time = %s, no debería cambiar", same.Time)
	}
}

func TestReschedule_DestinoPasaPorElMismoGuard(t *testing.T) {
	cases := []struct {
		name  string
		setup func(r *fakeRepo)
		code  string
	}{
		{
			name:  "día destino cerrado",
			setup: func(r *fakeRepo) { r.dayBlocks["2025-07-18"] = true },
			code:  httperr.CodeDayBlocked,
		},
		{
			name: "cupo destino bloqueado",
			setup: func(r *fakeRepo) {
				r.slotBlocks[slotKey("2025-07-18", "10:00", domain.LocationMaracay)] = true
			},
			code: httperr.CodeSlotBlocked,
		},
		{
			name: "cupo destino citado",
			setup: func(r *fakeRepo) {
				r.addBooking("2025-07-18", "10:00", domain.LocationMaracay)
			},
			code: httperr.CodeSlotTaken,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := newFakeRepo()
			ap := repo.addBooking("2025-07-17", "09:30", domain.LocationMaracay)
			tc.setup(repo)

			uc := NewRescheduleAppointment(repo, testDispatcher())

			_, err := uc.Execute(context.Background(), adminActor, RescheduleAppointmentInput{
				AppointmentID: ap.ID,
				Date:          "2025-07-18",
				Time:          "10:00",
			})
			if httperr.BusinessCode(err) != tc.code {
				t.Fatalf("err = %v, se esperaba código %s", err, tc.code)
			}

			// la cita original no se mueve ante el rechazo
			got := repo.appointments[ap.ID]
			if got.Date != "2025-07-17" || got.Time != "09:30" {
				t.Fatalf("la cita se movió a %s %s pese al rechazo", got.Date, got.Time)
			}
		})
	}
}

func TestReschedule_CanceladaNoSeMueve(t *testing.T) {
	repo := newFakeRepo()
	ap := repo.addBooking("2025-07-17", "09:30", domain.LocationMaracay)
	ap.Status = string(domain.StatusCancelled)

	uc := NewRescheduleAppointment(repo, testDispatcher())

	_, err := uc.Execute(context.Background(), adminActor, RescheduleAppointmentInput{
		AppointmentID: ap.ID,
		Date:          "2025-07-18",
		Time:          "10:00",
	})
	if httperr.BusinessCode(err) != "invalid_state" {
		t.Fatalf("err = %v, una cita cancelada es terminal", err)
	}
}

func TestReschedule_AlcancePorSede(t *testing.T) {
	repo := newFakeRepo()
	ap := repo.addBooking("2025-07-17", "09:30", domain.LocationCagua)

	uc := NewRescheduleAppointment(repo, testDispatcher())

	// la cita vive en Cagua, fuera del alcance de la recepcionista de Maracay
	_, err := uc.Execute(context.Background(), recepActor, RescheduleAppointmentInput{
		AppointmentID: ap.ID,
		Date:          "2025-07-18",
		Time:          "10:00",
	})
	if httperr.BusinessCode(err) != httperr.CodeLocationForbidden {
		t.Fatalf("err = %v, se esperaba location_forbidden", err)
	}
}

func TestReschedule_NoExiste(t *testing.T) {
	repo := newFakeRepo()
	uc := NewRescheduleAppointment(repo, testDispatcher())

	_, err := uc.Execute(context.Background(), adminActor, RescheduleAppointmentInput{
		AppointmentID: 999,
		Date:          "2025-07-18",
		Time:          "10:00",
	})
	if httperr.BusinessCode(err) != "appointment_not_found" {
		t.Fatalf("err = %v, se esperaba appointment_not_found", err)
	}
}
