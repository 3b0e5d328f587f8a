package scheduling

import (
	"context"
	"fmt"

	"github.com/OrinocoLabs01/lab-scheduler/internal/audit"
	domain "github.com/OrinocoLabs01/lab-scheduler/internal/domain/scheduling"
	"github.com/OrinocoLabs01/lab-scheduler/internal/models"
)

// fakeRepo implementa domain.Repository en memoria para los tests de los
// casos de uso.
type fakeRepo struct {
	dayBlocks  map[string]bool
	slotBlocks map[string]bool
	patients   map[uint]*models.Patient

	appointments map[uint]*models.Appointment
	nextID       uint

	createErr error
	updateErr error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		dayBlocks:    map[string]bool{},
		slotBlocks:   map[string]bool{},
		patients:     map[uint]*models.Patient{},
		appointments: map[uint]*models.Appointment{},
	}
}

func slotKey(date, slot, location string) string {
	return fmt.Sprintf("%s|%s|%s", date, slot, location)
}

func (r *fakeRepo) HasDayBlock(_ context.Context, date string) (bool, error) {
	return r.dayBlocks[date], nil
}

func (r *fakeRepo) CreateDayBlock(_ context.Context, block *models.DayBlock) error {
	r.dayBlocks[block.Date] = true
	return nil
}

func (r *fakeRepo) DeleteDayBlock(_ context.Context, date string) (bool, error) {
	if !r.dayBlocks[date] {
		return false, nil
	}
	delete(r.dayBlocks, date)
	return true, nil
}

func (r *fakeRepo) ListSlotBlocks(_ context.Context, date, location string) ([]models.SlotBlock, error) {
	var blocks []models.SlotBlock
	grid := domain.TemplateFor(location).Slots()
	for _, slot := range grid {
		if r.slotBlocks[slotKey(date, slot, location)] {
			blocks = append(blocks, models.SlotBlock{Date: date, Time: slot, Location: location})
		}
	}
	return blocks, nil
}

func (r *fakeRepo) HasSlotBlock(_ context.Context, date, slot, location string) (bool, error) {
	return r.slotBlocks[slotKey(date, slot, location)], nil
}

func (r *fakeRepo) CreateSlotBlock(_ context.Context, block *models.SlotBlock) error {
	r.slotBlocks[slotKey(block.Date, block.Time, block.Location)] = true
	return nil
}

func (r *fakeRepo) DeleteSlotBlock(_ context.Context, date, slot, location string) (bool, error) {
	key := slotKey(date, slot, location)
	if !r.slotBlocks[key] {
		return false, nil
	}
	delete(r.slotBlocks, key)
	return true, nil
}

func (r *fakeRepo) ListBookedTimes(_ context.Context, date, location string) ([]string, error) {
	var times []string
	grid := domain.TemplateFor(location).Slots()
	for _, slot := range grid {
		for _, ap := range r.appointments {
			if ap.Date == date && ap.Time == slot && ap.Location == location &&
				ap.Status != string(domain.StatusCancelled) {
				times = append(times, slot)
				break
			}
		}
	}
	return times, nil
}

func (r *fakeRepo) HasActiveAppointmentAt(_ context.Context, date, slot, location string) (bool, error) {
	for _, ap := range r.appointments {
		if ap.Date == date && ap.Time == slot && ap.Location == location &&
			ap.Status != string(domain.StatusCancelled) {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeRepo) GetAppointmentByID(_ context.Context, id uint) (*models.Appointment, error) {
	ap, ok := r.appointments[id]
	if !ok {
		return nil, fmt.Errorf("record not found")
	}
	cp := *ap
	return &cp, nil
}

func (r *fakeRepo) ListAppointmentsForDate(_ context.Context, date, location string, limit int) ([]models.Appointment, error) {
	var aps []models.Appointment
	for _, ap := range r.appointments {
		if ap.Date != date || ap.Status == string(domain.StatusCancelled) {
			continue
		}
		if location != "" && ap.Location != location {
			continue
		}
		aps = append(aps, *ap)
		if limit > 0 && len(aps) >= limit {
			break
		}
	}
	return aps, nil
}

func (r *fakeRepo) CreateAppointment(_ context.Context, ap *models.Appointment) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.nextID++
	ap.ID = r.nextID
	cp := *ap
	r.appointments[ap.ID] = &cp
	return nil
}

func (r *fakeRepo) UpdateAppointment(_ context.Context, ap *models.Appointment) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	cp := *ap
	r.appointments[ap.ID] = &cp
	return nil
}

func (r *fakeRepo) GetPatientByID(_ context.Context, id uint) (*models.Patient, error) {
	p, ok := r.patients[id]
	if !ok {
		return nil, fmt.Errorf("record not found")
	}
	return p, nil
}

func (r *fakeRepo) GetOrCreatePatient(_ context.Context, name, phone, email string) (*models.Patient, error) {
	for _, p := range r.patients {
		if p.Phone == phone {
			return p, nil
		}
	}
	id := uint(len(r.patients) + 1)
	p := &models.Patient{ID: id, Name: name, Phone: phone, Email: email}
	r.patients[id] = p
	return p, nil
}

// addBooking inserta una cita viva directamente, sin pasar por el guard.
func (r *fakeRepo) addBooking(date, slot, location string) *models.Appointment {
	r.nextID++
	ap := &models.Appointment{
		ID:       r.nextID,
		Date:     date,
		Time:     slot,
		Location: location,
		Status:   string(domain.StatusPending),
	}
	r.appointments[ap.ID] = ap
	return ap
}

var _ domain.Repository = (*fakeRepo)(nil)

func testDispatcher() *audit.Dispatcher {
	return audit.NewDispatcher(audit.New(nil))
}
