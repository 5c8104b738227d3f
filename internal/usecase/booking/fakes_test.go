package booking

import (
	"context"

	"gorm.io/gorm"

	domain "github.com/AshifurNahid/driving-school-api/internal/domain/booking"
	"github.com/AshifurNahid/driving-school-api/internal/httperr"
	"github.com/AshifurNahid/driving-school-api/internal/models"
)

// what the real repository returns when the row lock finds the slot gone
var errSlotTaken = httperr.ErrBusiness("slot_already_booked")

// ---------------------------------------------------
// in-memory repository
// ---------------------------------------------------

type fakeRepo struct {
	slots       map[uint]*models.AppointmentSlot
	users       map[uint]*models.User
	instructors map[uint]*models.Instructor
	enrollments map[uint]*models.CourseEnrollment
	bookings    []*models.AppointmentBooking

	nextID uint
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		slots:       make(map[uint]*models.AppointmentSlot),
		users:       make(map[uint]*models.User),
		instructors: make(map[uint]*models.Instructor),
		enrollments: make(map[uint]*models.CourseEnrollment),
		nextID:      100,
	}
}

func (r *fakeRepo) id() uint {
	r.nextID++
	return r.nextID
}

func (r *fakeRepo) GetSlot(_ context.Context, id uint) (*models.AppointmentSlot, error) {
	slot, ok := r.slots[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return slot, nil
}

func (r *fakeRepo) ListSlotsByDate(_ context.Context, date string) ([]models.AppointmentSlot, error) {
	var out []models.AppointmentSlot
	for _, s := range r.slots {
		if s.Date == date {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (r *fakeRepo) CreateSlot(_ context.Context, slot *models.AppointmentSlot) error {
	slot.ID = r.id()
	r.slots[slot.ID] = slot
	return nil
}

func (r *fakeRepo) CreateSlots(ctx context.Context, slots []models.AppointmentSlot) error {
	for i := range slots {
		s := slots[i]
		if err := r.CreateSlot(ctx, &s); err != nil {
			return err
		}
	}
	return nil
}

func (r *fakeRepo) UpdateSlot(_ context.Context, slot *models.AppointmentSlot) error {
	r.slots[slot.ID] = slot
	return nil
}

func (r *fakeRepo) GetInstructor(_ context.Context, id uint) (*models.Instructor, error) {
	inst, ok := r.instructors[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return inst, nil
}

func (r *fakeRepo) ListInstructors(_ context.Context) ([]models.Instructor, error) {
	var out []models.Instructor
	for _, inst := range r.instructors {
		out = append(out, *inst)
	}
	return out, nil
}

func (r *fakeRepo) FindUserByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeRepo) CreateUser(_ context.Context, user *models.User) error {
	user.ID = r.id()
	r.users[user.ID] = user
	return nil
}

func (r *fakeRepo) GetEnrollmentForUser(_ context.Context, enrollmentID, userID uint) (*models.CourseEnrollment, error) {
	enr, ok := r.enrollments[enrollmentID]
	if !ok || enr.UserID != userID {
		return nil, gorm.ErrRecordNotFound
	}
	return enr, nil
}

func (r *fakeRepo) GetBookingForUser(_ context.Context, bookingID, userID uint) (*models.AppointmentBooking, error) {
	for _, bk := range r.bookings {
		if bk.ID == bookingID && bk.UserID == userID {
			return bk, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeRepo) BookSlot(_ context.Context, bk *models.AppointmentBooking) error {
	slot, ok := r.slots[bk.AppointmentSlotID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if slot.Status != models.SlotStatusAvailable {
		return errSlotTaken
	}

	// the real repository re-checks the budget against the locked
	// enrollment row inside the transaction
	var enr *models.CourseEnrollment
	if bk.CourseEnrollmentID != nil {
		enr, ok = r.enrollments[*bk.CourseEnrollmentID]
		if !ok {
			return gorm.ErrRecordNotFound
		}
		if remaining := enr.RemainingOfflineHours(); bk.HoursToConsume > remaining {
			return domain.BudgetExceededError{
				SlotHours:      bk.HoursToConsume,
				RemainingHours: remaining,
			}
		}
	}

	slot.Status = models.SlotStatusBooked
	bk.ID = r.id()
	bk.AppointmentSlot = *slot
	r.bookings = append(r.bookings, bk)

	if enr != nil {
		enr.ConsumedOfflineHours += bk.HoursToConsume
	}
	return nil
}

func (r *fakeRepo) CancelBooking(_ context.Context, bk *models.AppointmentBooking) error {
	if slot, ok := r.slots[bk.AppointmentSlotID]; ok {
		slot.Status = models.SlotStatusAvailable
	}
	if bk.CourseEnrollmentID != nil {
		if enr, ok := r.enrollments[*bk.CourseEnrollmentID]; ok {
			enr.ConsumedOfflineHours -= bk.HoursToConsume
			if enr.ConsumedOfflineHours < 0 {
				enr.ConsumedOfflineHours = 0
			}
		}
	}
	return nil
}

// ---------------------------------------------------
// no-op cache with call tracking
// ---------------------------------------------------

type fakeCache struct {
	stored      map[string][]models.AppointmentSlot
	invalidated []string
}

func newFakeCache() *fakeCache {
	return &fakeCache{stored: make(map[string][]models.AppointmentSlot)}
}

func (c *fakeCache) Get(_ context.Context, date string) ([]models.AppointmentSlot, bool) {
	slots, ok := c.stored[date]
	return slots, ok
}

func (c *fakeCache) Set(_ context.Context, date string, slots []models.AppointmentSlot) {
	c.stored[date] = slots
}

func (c *fakeCache) Invalidate(_ context.Context, date string) {
	delete(c.stored, date)
	c.invalidated = append(c.invalidated, date)
}
