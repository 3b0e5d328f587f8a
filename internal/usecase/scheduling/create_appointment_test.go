package scheduling

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"

	domain "github.com/OrinocoLabs01/lab-scheduler/internal/domain/scheduling"
	"github.com/OrinocoLabs01/lab-scheduler/internal/httperr"
)

func validCreateInput() CreateAppointmentInput {
	return CreateAppointmentInput{
		PatientName:  "María Pérez",
		PatientPhone: "04121234567",
		PatientEmail: "maria@example.com",
		Date:         "2025-07-17",
		Time:         "09:30",
		Location:     domain.LocationMaracay,
		Studies:      []string{"Hematología completa"},
	}
}

func TestCreateAppointment_Exito(t *testing.T) {
	repo := newFakeRepo()
	uc := NewCreateAppointment(repo, testDispatcher())

	ap, err := uc.Execute(context.Background(), validCreateInput())
	if err != nil {
		t.Fatalf("error inesperado: %v", err)
	}

	if ap.ID == 0 {
		t.Fatal("la cita debería tener ID asignado")
	}
	if ap.Status != string(domain.StatusPending) {
		t.Fatalf("status = %s, se esperaba pending", ap.Status)
	}
	if ap.PatientID == 0 {
		t.Fatal("la cita debería quedar ligada a un paciente")
	}
	if ap.StartTime.IsZero() {
		t.Fatal("start_time no debería estar vacío")
	}
}

func TestCreateAppointment_ReusaPacientePorTelefono(t *testing.T) {
	repo := newFakeRepo()
	uc := NewCreateAppointment(repo, testDispatcher())

	first, err := uc.Execute(context.Background(), validCreateInput())
	if err != nil {
		t.Fatalf("primera cita: %v", err)
	}

	in := validCreateInput()
	in.Time = "10:00"
	second, err := uc.Execute(context.Background(), in)
	if err != nil {
		t.Fatalf("segunda cita: %v", err)
	}

	if first.PatientID != second.PatientID {
		t.Fatalf("mismo teléfono debería reusar el paciente: %d vs %d",
			first.PatientID, second.PatientID)
	}
	if len(repo.patients) != 1 {
		t.Fatalf("pacientes = %d, se esperaba 1", len(repo.patients))
	}
}

func TestCreateAppointment_CausasDeRechazo(t *testing.T) {
	cases := []struct {
		name  string
		setup func(r *fakeRepo)
		code  string
	}{
		{
			name:  "día cerrado",
			setup: func(r *fakeRepo) { r.dayBlocks["2025-07-17"] = true },
			code:  httperr.CodeDayBlocked,
		},
		{
			name: "cupo bloqueado",
			setup: func(r *fakeRepo) {
				r.slotBlocks[slotKey("2025-07-17", "09:30", domain.LocationMaracay)] = true
			},
			code: httperr.CodeSlotBlocked,
		},
		{
			name: "cupo ya citado",
			setup: func(r *fakeRepo) {
				r.addBooking("2025-07-17", "09:30", domain.LocationMaracay)
			},
			code: httperr.CodeSlotTaken,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := newFakeRepo()
			tc.setup(repo)

			uc := NewCreateAppointment(repo, testDispatcher())
			_, err := uc.Execute(context.Background(), validCreateInput())

			if httperr.BusinessCode(err) != tc.code {
				t.Fatalf("err = %v, se esperaba código %s", err, tc.code)
			}
			if !httperr.IsSlotUnavailable(err) {
				t.Fatalf("el código %s debería agruparse como cupo no disponible", tc.code)
			}
			if len(repo.appointments) != 0 {
				t.Fatal("el rechazo no debería dejar citas escritas")
			}
		})
	}
}

func TestCreateAppointment_CarreraResueltaPorIndiceUnico(t *testing.T) {
	repo := newFakeRepo()
	// la lectura de disponibilidad pasa limpia, pero la inserción choca
	// contra el índice único parcial
	repo.createErr = &pgconn.PgError{Code: "23505"}

	uc := NewCreateAppointment(repo, testDispatcher())

	_, err := uc.Execute(context.Background(), validCreateInput())
	if httperr.BusinessCode(err) != httperr.CodeSlotTaken {
		t.Fatalf("err = %v, la violación 23505 debe mapear a slot_taken", err)
	}
}

func TestCreateAppointment_HoraFueraDeGrilla(t *testing.T) {
	repo := newFakeRepo()
	uc := NewCreateAppointment(repo, testDispatcher())

	// 09:37 tiene formato válido pero no cae en la grilla de 15 minutos
	in := validCreateInput()
	in.Time = "09:37"

	_, err := uc.Execute(context.Background(), in)
	if httperr.BusinessCode(err) != "invalid_time" {
		t.Fatalf("err = %v, se esperaba invalid_time", err)
	}
}

func TestCreateAppointment_FueraDelHorarioDeLaSede(t *testing.T) {
	repo := newFakeRepo()
	uc := NewCreateAppointment(repo, testDispatcher())

	// 16:00 existe en las sedes físicas pero no en el horario a domicilio
	in := validCreateInput()
	in.Location = domain.LocationDomicilio
	in.Time = "16:00"

	_, err := uc.Execute(context.Background(), in)
	if httperr.BusinessCode(err) != "invalid_time" {
		t.Fatalf("err = %v, se esperaba invalid_time", err)
	}
}

func TestCreateAppointment_ValidacionDeEntrada(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(in *CreateAppointmentInput)
		code   string
	}{
		{"fecha mal formada", func(in *CreateAppointmentInput) { in.Date = "17-07-2025" }, "invalid_date"},
		{"hora mal formada", func(in *CreateAppointmentInput) { in.Time = "9:30am" }, "invalid_time"},
		{"sede desconocida", func(in *CreateAppointmentInput) { in.Location = "Sede Valencia" }, "invalid_location"},
		{"sin estudios", func(in *CreateAppointmentInput) { in.Studies = nil }, "missing_studies"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := newFakeRepo()
			uc := NewCreateAppointment(repo, testDispatcher())

			in := validCreateInput()
			tc.mutate(&in)

			_, err := uc.Execute(context.Background(), in)
			if httperr.BusinessCode(err) != tc.code {
				t.Fatalf("err = %v, se esperaba código %s", err, tc.code)
			}
		})
	}
}
