package reminder

import (
	"context"
	"errors"
	"testing"

	"github.com/OrinocoLabs01/lab-scheduler/internal/cache"
	"github.com/OrinocoLabs01/lab-scheduler/internal/config"
	"github.com/OrinocoLabs01/lab-scheduler/internal/models"
)

// ======================================================
// FAKES
// ======================================================

// fakeRepo ignora la fecha pedida: el job siempre apunta a "mañana" con el
// reloj real, así que las citas sembradas se devuelven tal cual.
type fakeRepo struct {
	appointments []models.Appointment
	patients     map[uint]*models.Patient
}

func (r *fakeRepo) ListAppointmentsForDate(_ context.Context, _ string, _ string, limit int) ([]models.Appointment, error) {
	if limit > 0 && limit < len(r.appointments) {
		return r.appointments[:limit], nil
	}
	return r.appointments, nil
}

func (r *fakeRepo) GetPatientByID(_ context.Context, id uint) (*models.Patient, error) {
	p, ok := r.patients[id]
	if !ok {
		return nil, errors.New("record not found")
	}
	return p, nil
}

type fakeEmail struct {
	sent []string
	err  error
}

func (f *fakeEmail) Send(_ context.Context, to, _, _ string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, to)
	return nil
}

type fakeChat struct {
	sent []string
	err  error
}

func (f *fakeChat) Send(_ context.Context, to, _ string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, to)
	return nil
}

func testConfig() *config.Config {
	return &config.Config{
		Env:              "production",
		ReminderToken:    "secreto",
		RemindersEnabled: true,
		ReminderMaxDaily: 200,
		CountryCode:      "",
	}
}

// guard sin redis: siempre concede la corrida
func noGuard() *cache.ReminderGuard {
	return cache.NewReminderGuard(nil)
}

func seedRepo() *fakeRepo {
	return &fakeRepo{
		appointments: []models.Appointment{
			{ID: 1, PatientID: 1, Date: "2025-07-17", Time: "09:30", Location: "Sede Principal Maracay"},
			{ID: 2, PatientID: 2, Date: "2025-07-17", Time: "10:00", Location: "Sede Cagua"},
		},
		patients: map[uint]*models.Patient{
			1: {ID: 1, Name: "María Pérez", Email: "maria@example.com", Phone: "04121234567"},
			2: {ID: 2, Name: "José Rojas", Email: "jose@example.com", Phone: "04149876543"},
		},
	}
}

// ======================================================
// PRECONDICIONES
// ======================================================

func TestSendNextDay_Precondiciones(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(cfg *config.Config, in *SendNextDayInput)
		reason string
	}{
		{
			name:   "token inválido",
			mutate: func(_ *config.Config, in *SendNextDayInput) { in.Token = "otro" },
			reason: "invalid_token",
		},
		{
			name:   "token no configurado",
			mutate: func(cfg *config.Config, in *SendNextDayInput) { cfg.ReminderToken = ""; in.Token = "" },
			reason: "invalid_token",
		},
		{
			name:   "fuera de producción",
			mutate: func(cfg *config.Config, _ *SendNextDayInput) { cfg.Env = "development" },
			reason: "not_production",
		},
		{
			name:   "feature apagado",
			mutate: func(cfg *config.Config, _ *SendNextDayInput) { cfg.RemindersEnabled = false },
			reason: "feature_disabled",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := testConfig()
			in := SendNextDayInput{Token: "secreto"}
			tc.mutate(cfg, &in)

			email := &fakeEmail{}
			chat := &fakeChat{}
			uc := NewSendNextDay(cfg, seedRepo(), email, chat, noGuard())

			report, err := uc.Execute(context.Background(), in)
			if err != nil {
				t.Fatalf("la precondición debe ser no-op, no error: %v", err)
			}
			if !report.OK || !report.Skipped || report.Reason != tc.reason {
				t.Fatalf("report = %+v, se esperaba skipped con reason %s", report, tc.reason)
			}
			if len(email.sent)+len(chat.sent) != 0 {
				t.Fatal("una corrida omitida no debe enviar nada")
			}
		})
	}
}

func TestSendNextDay_DryRunIgnoraProduccionYFeature(t *testing.T) {
	cfg := testConfig()
	cfg.Env = "development"
	cfg.RemindersEnabled = false

	email := &fakeEmail{}
	chat := &fakeChat{}
	uc := NewSendNextDay(cfg, seedRepo(), email, chat, noGuard())

	report, err := uc.Execute(context.Background(), SendNextDayInput{
		Token:  "secreto",
		DryRun: true,
	})
	if err != nil {
		t.Fatalf("error inesperado: %v", err)
	}
	if report.Skipped {
		t.Fatalf("dry-run debería correr igual: %+v", report)
	}
	if report.Count != 2 {
		t.Fatalf("count = %d, se esperaban 2 citas", report.Count)
	}
}

// ======================================================
// DRY RUN
// ======================================================

func TestSendNextDay_DryRunNoEnviaPeroReporta(t *testing.T) {
	email := &fakeEmail{}
	chat := &fakeChat{}
	uc := NewSendNextDay(testConfig(), seedRepo(), email, chat, noGuard())

	report, err := uc.Execute(context.Background(), SendNextDayInput{
		Token:  "secreto",
		DryRun: true,
	})
	if err != nil {
		t.Fatalf("error inesperado: %v", err)
	}

	if len(email.sent) != 0 || len(chat.sent) != 0 {
		t.Fatal("dry-run nunca toca los canales reales")
	}

	if len(report.Results) != 2 {
		t.Fatalf("results = %d, se esperaban 2", len(report.Results))
	}
	for _, r := range report.Results {
		if !r.EmailSent || !r.WhatsappSent {
			t.Fatalf("resultado %+v: dry-run reporta lo que habría enviado", r)
		}
		if r.Error != "" {
			t.Fatalf("resultado %+v: sin errores esperados", r)
		}
	}
}

// ======================================================
// CORRIDA EN VIVO
// ======================================================

func TestSendNextDay_EnvioEnVivo(t *testing.T) {
	email := &fakeEmail{}
	chat := &fakeChat{}
	uc := NewSendNextDay(testConfig(), seedRepo(), email, chat, noGuard())

	report, err := uc.Execute(context.Background(), SendNextDayInput{Token: "secreto"})
	if err != nil {
		t.Fatalf("error inesperado: %v", err)
	}

	if len(email.sent) != 2 {
		t.Fatalf("emails enviados = %d, se esperaban 2", len(email.sent))
	}
	if len(chat.sent) != 2 {
		t.Fatalf("mensajes enviados = %d, se esperaban 2", len(chat.sent))
	}

	// teléfono normalizado: cae el cero inicial
	if report.Results[0].WhatsappTo != "4121234567" {
		t.Fatalf("whatsappTo = %s, se esperaba 4121234567", report.Results[0].WhatsappTo)
	}
	if report.RunID == "" || report.TargetDate == "" {
		t.Fatalf("report sin runId/targetDate: %+v", report)
	}
}

func TestSendNextDay_FalloParcialNoAbortaLaCorrida(t *testing.T) {
	repo := seedRepo()
	// la paciente 1 pierde el email; queda solo su canal de chat
	repo.patients[1].Email = "sin-arroba"

	email := &fakeEmail{}
	chat := &fakeChat{err: errors.New("canal caído")}
	uc := NewSendNextDay(testConfig(), repo, email, chat, noGuard())

	report, err := uc.Execute(context.Background(), SendNextDayInput{Token: "secreto"})
	if err != nil {
		t.Fatalf("los fallos por cita no deben subir como error: %v", err)
	}

	if len(report.Results) != 2 {
		t.Fatalf("results = %d, se esperaban 2", len(report.Results))
	}

	first := report.Results[0]
	if first.Email != "" || first.EmailSent {
		t.Fatalf("resultado %+v: email mal formado no debe intentarse", first)
	}
	if first.WhatsappSent || first.Error == "" {
		t.Fatalf("resultado %+v: el fallo de chat debe quedar registrado", first)
	}

	second := report.Results[1]
	if !second.EmailSent {
		t.Fatalf("resultado %+v: el email del segundo paciente debió salir", second)
	}
	if second.WhatsappSent {
		t.Fatalf("resultado %+v: el canal de chat está caído para todos", second)
	}
}

func TestSendNextDay_PacientePerdido(t *testing.T) {
	repo := seedRepo()
	delete(repo.patients, 1)

	email := &fakeEmail{}
	uc := NewSendNextDay(testConfig(), repo, email, &fakeChat{}, noGuard())

	report, err := uc.Execute(context.Background(), SendNextDayInput{Token: "secreto"})
	if err != nil {
		t.Fatalf("error inesperado: %v", err)
	}

	if report.Results[0].Error != "patient_not_found" {
		t.Fatalf("resultado %+v, se esperaba patient_not_found", report.Results[0])
	}
	// la segunda cita sigue su curso
	if !report.Results[1].EmailSent {
		t.Fatalf("resultado %+v: la cita sana debió procesarse", report.Results[1])
	}
}

func TestSendNextDay_RespetaElLimite(t *testing.T) {
	repo := seedRepo()

	email := &fakeEmail{}
	uc := NewSendNextDay(testConfig(), repo, email, &fakeChat{}, noGuard())

	report, err := uc.Execute(context.Background(), SendNextDayInput{
		Token: "secreto",
		Limit: 1,
	})
	if err != nil {
		t.Fatalf("error inesperado: %v", err)
	}
	if report.Count != 1 || len(report.Results) != 1 {
		t.Fatalf("count = %d, el límite debe recortar la corrida", report.Count)
	}
}

func TestSendNextDay_SinCanalDeChat(t *testing.T) {
	email := &fakeEmail{}
	// chat nil: el canal simplemente no existe en este despliegue
	uc := NewSendNextDay(testConfig(), seedRepo(), email, nil, noGuard())

	report, err := uc.Execute(context.Background(), SendNextDayInput{Token: "secreto"})
	if err != nil {
		t.Fatalf("error inesperado: %v", err)
	}

	for _, r := range report.Results {
		if r.WhatsappSent || r.WhatsappTo != "" {
			t.Fatalf("resultado %+v: sin canal no hay intento de chat", r)
		}
		if !r.EmailSent {
			t.Fatalf("resultado %+v: el email sale igual", r)
		}
	}
}
