package reminder

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/OrinocoLabs01/lab-scheduler/internal/cache"
	"github.com/OrinocoLabs01/lab-scheduler/internal/config"
	"github.com/OrinocoLabs01/lab-scheduler/internal/models"
	"github.com/OrinocoLabs01/lab-scheduler/internal/notify"
	"github.com/OrinocoLabs01/lab-scheduler/internal/timezone"
	"github.com/OrinocoLabs01/lab-scheduler/internal/validators"
)

// timeout por envío: un destinatario inalcanzable no debe frenar la corrida
const sendTimeout = 10 * time.Second

// ======================================================
// INPUT / REPORT
// ======================================================

type SendNextDayInput struct {
	Token  string
	DryRun bool
	Limit  int
}

// Resultado por cita: cada canal reporta su desenlace por separado.
type AppointmentResult struct {
	AppointmentID uint   `json:"appointmentId"`
	Email         string `json:"email,omitempty"`
	EmailSent     bool   `json:"emailSent"`
	WhatsappTo    string `json:"whatsappTo,omitempty"`
	WhatsappSent  bool   `json:"whatsappSent"`
	Error         string `json:"error,omitempty"`
}

// Report es efímero: se devuelve al caller y no se persiste.
type Report struct {
	OK         bool                `json:"ok"`
	RunID      string              `json:"runId,omitempty"`
	TargetDate string              `json:"targetDate,omitempty"`
	DryRun     bool                `json:"dryRun"`
	Count      int                 `json:"count"`
	Results    []AppointmentResult `json:"results,omitempty"`

	Skipped bool   `json:"skipped,omitempty"`
	Reason  string `json:"reason,omitempty"`
}

func skipped(reason string) *Report {
	return &Report{OK: true, Skipped: true, Reason: reason}
}

// ======================================================
// USE CASE
// ======================================================

// Repository es la porción del repositorio de agenda que el job necesita.
type Repository interface {
	ListAppointmentsForDate(
		ctx context.Context,
		date string,
		location string,
		limit int,
	) ([]models.Appointment, error)

	GetPatientByID(
		ctx context.Context,
		id uint,
	) (*models.Patient, error)
}

type SendNextDay struct {
	cfg   *config.Config
	repo  Repository
	email notify.EmailSender
	chat  notify.ChatSender
	guard *cache.ReminderGuard
}

func NewSendNextDay(
	cfg *config.Config,
	repo Repository,
	email notify.EmailSender,
	chat notify.ChatSender,
	guard *cache.ReminderGuard,
) *SendNextDay {
	return &SendNextDay{
		cfg:   cfg,
		repo:  repo,
		email: email,
		chat:  chat,
		guard: guard,
	}
}

func (uc *SendNextDay) Execute(
	ctx context.Context,
	in SendNextDayInput,
) (*Report, error) {

	// --------------------------------------------------
	// 1️⃣ Precondiciones: fallar aquí es un no-op intencional, no un error
	// --------------------------------------------------
	if uc.cfg.ReminderToken == "" || in.Token != uc.cfg.ReminderToken {
		return skipped("invalid_token"), nil
	}

	if !uc.cfg.IsProduction() && !in.DryRun {
		return skipped("not_production"), nil
	}

	if !uc.cfg.RemindersEnabled && !in.DryRun {
		return skipped("feature_disabled"), nil
	}

	// --------------------------------------------------
	// 2️⃣ Mañana, en hora local de la sede
	// --------------------------------------------------
	targetDate := timezone.Now().AddDate(0, 0, 1).Format("2006-01-02")

	// corrida en vivo: una sola por día objetivo
	if !in.DryRun {
		acquired, err := uc.guard.TryAcquire(ctx, targetDate)
		if err != nil {
			log.Printf("reminder guard error: %v", err)
		} else if !acquired {
			return skipped("already_ran"), nil
		}
	}

	limit := in.Limit
	if limit <= 0 || limit > uc.cfg.ReminderMaxDaily {
		limit = uc.cfg.ReminderMaxDaily
	}

	aps, err := uc.repo.ListAppointmentsForDate(ctx, targetDate, "", limit)
	if err != nil {
		return nil, err
	}

	report := &Report{
		OK:         true,
		RunID:      uuid.NewString(),
		TargetDate: targetDate,
		DryRun:     in.DryRun,
		Count:      len(aps),
		Results:    make([]AppointmentResult, 0, len(aps)),
	}

	// --------------------------------------------------
	// 3️⃣ Fan-out con aislamiento: una cita que falla nunca aborta el resto
	// --------------------------------------------------
	for _, ap := range aps {
		report.Results = append(report.Results, uc.processOne(ctx, ap, in.DryRun))
	}

	return report, nil
}

// processOne resuelve los canales de contacto de una cita y reporta cada
// intento por separado. Cualquier pánico queda capturado en el resultado.
func (uc *SendNextDay) processOne(
	ctx context.Context,
	ap models.Appointment,
	dryRun bool,
) (res AppointmentResult) {

	res = AppointmentResult{AppointmentID: ap.ID}

	defer func() {
		if r := recover(); r != nil {
			res.Error = appendError(res.Error, fmt.Sprintf("panic: %v", r))
		}
	}()

	patient, err := uc.repo.GetPatientByID(ctx, ap.PatientID)
	if err != nil {
		res.Error = "patient_not_found"
		return res
	}

	// -------- canal email --------
	if validators.IsWellFormedEmail(patient.Email) {
		res.Email = patient.Email

		if dryRun {
			res.EmailSent = true // habría enviado
		} else {
			sendCtx, cancel := context.WithTimeout(ctx, sendTimeout)
			err := uc.email.Send(
				sendCtx,
				patient.Email,
				"Recordatorio de cita — Laboratorio Orinoco",
				uc.emailBody(patient, &ap),
			)
			cancel()

			if err != nil {
				res.Error = appendError(res.Error, "email: "+err.Error())
			} else {
				res.EmailSent = true
			}
		}
	}

	// -------- canal chat --------
	if patient.Phone != "" && uc.chat != nil {
		to := notify.NormalizePhone(patient.Phone, uc.cfg.CountryCode)
		if to != "" {
			res.WhatsappTo = to

			if dryRun {
				res.WhatsappSent = true // habría enviado
			} else {
				sendCtx, cancel := context.WithTimeout(ctx, sendTimeout)
				err := uc.chat.Send(sendCtx, to, uc.chatText(patient, &ap))
				cancel()

				if err != nil {
					res.Error = appendError(res.Error, "whatsapp: "+err.Error())
				} else {
					res.WhatsappSent = true
				}
			}
		}
	}

	return res
}

func (uc *SendNextDay) emailBody(p *models.Patient, ap *models.Appointment) string {
	return fmt.Sprintf(
		"Hola %s,\n\nLe recordamos su cita de mañana %s a las %s en %s.\nEstudios: %s.\n\nSi no puede asistir, por favor comuníquese con el laboratorio.",
		p.Name, ap.Date, ap.Time, ap.Location, strings.Join(ap.Studies, ", "),
	)
}

func (uc *SendNextDay) chatText(p *models.Patient, ap *models.Appointment) string {
	return fmt.Sprintf(
		"Hola %s 👋 Le recordamos su cita de mañana %s a las %s en %s.",
		p.Name, ap.Date, ap.Time, ap.Location,
	)
}

func appendError(existing, msg string) string {
	if existing == "" {
		return msg
	}
	return existing + "; " + msg
}
