package httperr

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// ===============================
// Códigos de negocio
// ===============================

const (
	// Slot no disponible — la causa específica viaja en el código
	CodeDayBlocked  = "day_blocked"
	CodeSlotBlocked = "slot_blocked"
	CodeSlotTaken   = "slot_taken"

	// Desbloqueo inválido: el cupo está ocupado por una cita viva
	CodeSlotOccupiedByBooking = "slot_occupied_by_booking"

	// Autorización por sede
	CodeLocationForbidden = "location_forbidden"
)

type BusinessError struct {
	Code string
}

func (e BusinessError) Error() string {
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

func BusinessCode(err error) string {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code
	}
	return ""
}

// IsSlotUnavailable agrupa las tres causas de cupo no disponible.
func IsSlotUnavailable(err error) bool {
	switch BusinessCode(err) {
	case CodeDayBlocked, CodeSlotBlocked, CodeSlotTaken:
		return true
	}
	return false
}

// IsUniqueViolation detecta SQLSTATE 23505 (índice único parcial de citas).
// El datastore es el árbitro final del conflicto de reserva.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
