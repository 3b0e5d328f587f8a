package scheduling

import (
	"testing"
	"time"

	"github.com/OrinocoLabs01/lab-scheduler/internal/models"
)

func TestStatusTransitions(t *testing.T) {
	now := time.Now()

	t.Run("pending confirms", func(t *testing.T) {
		ap := &models.Appointment{Status: string(StatusPending)}
		if err := Confirm(ap, now); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if ap.Status != string(StatusConfirmed) || ap.ConfirmedAt == nil {
			t.Errorf("appointment not confirmed: %+v", ap)
		}
	})

	t.Run("confirmed cancels", func(t *testing.T) {
		ap := &models.Appointment{Status: string(StatusConfirmed)}
		if err := Cancel(ap, now); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if ap.Status != string(StatusCancelled) || ap.CancelledAt == nil {
			t.Errorf("appointment not cancelled: %+v", ap)
		}
	})

	t.Run("cancelled is terminal", func(t *testing.T) {
		ap := &models.Appointment{Status: string(StatusCancelled)}
		if err := Confirm(ap, now); err == nil {
			t.Error("cancelled appointment confirmed")
		}
		if err := Cancel(ap, now); err == nil {
			t.Error("cancelled appointment cancelled again")
		}
		if err := CanReschedule(StatusCancelled); err == nil {
			t.Error("cancelled appointment reschedulable")
		}
	})
}
