package booking

import (
	"time"

	"github.com/AshifurNahid/driving-school-api/internal/httperr"
	"github.com/AshifurNahid/driving-school-api/internal/models"
)

// ===============================
// Domain Actions
// ===============================

func Cancel(bk *models.AppointmentBooking, now time.Time) error {
	if err := CanCancel(Status(bk.Status)); err != nil {
		return err
	}

	bk.Status = string(StatusCancelled)
	bk.CancelledAt = &now
	return nil
}

func CanCancel(current Status) error {
	if current != StatusConfirmed {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}
