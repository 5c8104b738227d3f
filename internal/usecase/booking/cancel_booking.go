package booking

import (
	"context"

	"github.com/AshifurNahid/driving-school-api/internal/audit"
	domain "github.com/AshifurNahid/driving-school-api/internal/domain/booking"
	"github.com/AshifurNahid/driving-school-api/internal/httperr"
	"github.com/AshifurNahid/driving-school-api/internal/models"
	"github.com/AshifurNahid/driving-school-api/internal/timezone"
)

type CancelBooking struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	cache SlotCache
}

func NewCancelBooking(
	repo domain.Repository,
	audit *audit.Dispatcher,
	cache SlotCache,
) *CancelBooking {
	return &CancelBooking{
		repo:  repo,
		audit: audit,
		cache: cache,
	}
}

func (uc *CancelBooking) Execute(
	ctx context.Context,
	userID uint,
	bookingID uint,
) (*models.AppointmentBooking, error) {

	bk, err := uc.repo.GetBookingForUser(ctx, bookingID, userID)
	if err != nil {
		return nil, httperr.ErrBusiness("booking_not_found")
	}

	now := timezone.Now()
	if err := domain.Cancel(bk, now); err != nil {
		return nil, err
	}

	if err := uc.repo.CancelBooking(ctx, bk); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "booking_cancelled",
		Entity:   "appointment_booking",
		EntityID: &bk.ID,
	})

	uc.cache.Invalidate(ctx, bk.AppointmentSlot.Date)

	return bk, nil
}
