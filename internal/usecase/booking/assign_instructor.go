package booking

import (
	"context"

	"github.com/AshifurNahid/driving-school-api/internal/audit"
	domain "github.com/AshifurNahid/driving-school-api/internal/domain/booking"
	"github.com/AshifurNahid/driving-school-api/internal/httperr"
	"github.com/AshifurNahid/driving-school-api/internal/models"
)

type AssignInstructor struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	cache SlotCache
}

func NewAssignInstructor(
	repo domain.Repository,
	audit *audit.Dispatcher,
	cache SlotCache,
) *AssignInstructor {
	return &AssignInstructor{
		repo:  repo,
		audit: audit,
		cache: cache,
	}
}

func (uc *AssignInstructor) Execute(
	ctx context.Context,
	slotID uint,
	instructorID uint,
	adminID uint,
) (*models.AppointmentSlot, error) {

	slot, err := uc.repo.GetSlot(ctx, slotID)
	if err != nil {
		return nil, httperr.ErrBusiness("slot_not_found")
	}

	if !domain.SlotStatus(slot.Status).Visible() {
		return nil, httperr.ErrBusiness("slot_not_found")
	}

	if slot.InstructorID != nil {
		return nil, httperr.ErrBusiness("slot_already_assigned")
	}

	inst, err := uc.repo.GetInstructor(ctx, instructorID)
	if err != nil {
		return nil, httperr.ErrBusiness("instructor_not_found")
	}

	slot.InstructorID = &inst.ID
	slot.Instructor = inst

	if err := uc.repo.UpdateSlot(ctx, slot); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &adminID,
		Action:   "slot_instructor_assigned",
		Entity:   "appointment_slot",
		EntityID: &slot.ID,
		Metadata: map[string]any{"instructor_id": instructorID},
	})

	uc.cache.Invalidate(ctx, slot.Date)

	return slot, nil
}
