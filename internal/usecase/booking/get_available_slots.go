package booking

import (
	"context"
	"time"

	domain "github.com/AshifurNahid/driving-school-api/internal/domain/booking"
	"github.com/AshifurNahid/driving-school-api/internal/httperr"
	"github.com/AshifurNahid/driving-school-api/internal/models"
)

// SlotCache is the per-date listing cache.
type SlotCache interface {
	Get(ctx context.Context, date string) ([]models.AppointmentSlot, bool)
	Set(ctx context.Context, date string, slots []models.AppointmentSlot)
	Invalidate(ctx context.Context, date string)
}

type GetAvailableSlots struct {
	repo  domain.Repository
	cache SlotCache
}

func NewGetAvailableSlots(repo domain.Repository, cache SlotCache) *GetAvailableSlots {
	return &GetAvailableSlots{repo: repo, cache: cache}
}

// Execute returns the slots for one calendar date. Learner-facing callers
// get only selectable slots; the admin view keeps booked ones but never
// resurfaces soft-deleted slots.
func (uc *GetAvailableSlots) Execute(
	ctx context.Context,
	date string,
	includeBooked bool,
) ([]models.AppointmentSlot, error) {

	if _, err := time.Parse("2006-01-02", date); err != nil {
		return nil, httperr.ErrBusiness("invalid_date")
	}

	slots, hit := uc.cache.Get(ctx, date)
	if !hit {
		var err error
		slots, err = uc.repo.ListSlotsByDate(ctx, date)
		if err != nil {
			return nil, err
		}
		uc.cache.Set(ctx, date, slots)
	}

	if includeBooked {
		return domain.FilterVisible(slots), nil
	}
	return domain.FilterAvailable(slots), nil
}
