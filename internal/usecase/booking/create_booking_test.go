package booking

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/AshifurNahid/driving-school-api/internal/domain/booking"
	"github.com/AshifurNahid/driving-school-api/internal/httperr"
	"github.com/AshifurNahid/driving-school-api/internal/models"
)

const defaultPrice = 25.0

func seedSlot(repo *fakeRepo, id uint, start, end string, status int) *models.AppointmentSlot {
	slot := &models.AppointmentSlot{
		ID:        id,
		Date:      "2024-06-10",
		StartTime: start,
		EndTime:   end,
		Status:    status,
	}
	repo.slots[id] = slot
	return slot
}

func permitInfo(slotID uint) domain.AppointmentInfo {
	return domain.AppointmentInfo{
		AvailableAppointmentSlotID: slotID,
		PermitNumber:               "P-123",
		LearnerPermitIssueDate:     "2024-01-15",
		PermitExpirationDate:       "2026-01-15",
		DrivingExperience:          "none",
	}
}

func guestInfo() *domain.UserRegistrationInfo {
	return &domain.UserRegistrationInfo{
		FullName: "Jamie Doe",
		Email:    "jamie@example.com",
		Password: "secret1",
		Phone:    "555-0101",
	}
}

func TestCreateBooking_EndToEnd(t *testing.T) {
	repo := newFakeRepo()
	cache := newFakeCache()
	uc := NewCreateBooking(repo, nil, cache, defaultPrice)

	// learner with 2 remaining offline hours
	repo.users[1] = &models.User{ID: 1, Email: "learner@example.com"}
	repo.enrollments[10] = &models.CourseEnrollment{
		ID: 10, UserID: 1, TotalOfflineHours: 2, ConsumedOfflineHours: 0,
	}

	// one booked, one open slot on the selected date
	seedSlot(repo, 1, "08:00:00", "09:00:00", models.SlotStatusBooked)
	seedSlot(repo, 2, "10:00:00", "11:00:00", models.SlotStatusAvailable)

	// only the open slot is offered
	listUC := NewGetAvailableSlots(repo, cache)
	slots, err := listUC.Execute(context.Background(), "2024-06-10", false)
	require.NoError(t, err)
	require.Len(t, slots, 1)
	assert.Equal(t, uint(2), slots[0].ID)

	enrollmentID := uint(10)
	info := permitInfo(2)
	info.CourseEnrollmentID = &enrollmentID

	bk, err := uc.Execute(context.Background(), CreateBookingInput{
		UserID:     1,
		Submission: domain.Authenticated(info),
	})
	require.NoError(t, err)

	assert.Equal(t, 1.0, bk.HoursToConsume)
	assert.Equal(t, defaultPrice, bk.AmountPaid)
	assert.Equal(t, "confirmed", bk.Status)
	assert.NotEmpty(t, bk.Reference)

	// hour budget reflects the new consumption on reload
	enr, err := repo.GetEnrollmentForUser(context.Background(), 10, 1)
	require.NoError(t, err)
	assert.Equal(t, 1.0, enr.ConsumedOfflineHours)
	assert.Equal(t, 1.0, enr.RemainingOfflineHours())

	// the slot is gone from availability and the cache was invalidated
	assert.Equal(t, models.SlotStatusBooked, repo.slots[2].Status)
	assert.Contains(t, cache.invalidated, "2024-06-10")
}

func TestCreateBooking_BudgetExceeded(t *testing.T) {
	repo := newFakeRepo()
	uc := NewCreateBooking(repo, nil, newFakeCache(), defaultPrice)

	repo.users[1] = &models.User{ID: 1}
	repo.enrollments[10] = &models.CourseEnrollment{
		ID: 10, UserID: 1, TotalOfflineHours: 1, ConsumedOfflineHours: 0,
	}
	seedSlot(repo, 2, "09:00:00", "10:30:00", models.SlotStatusAvailable)

	enrollmentID := uint(10)
	info := permitInfo(2)
	info.CourseEnrollmentID = &enrollmentID

	_, err := uc.Execute(context.Background(), CreateBookingInput{
		UserID:     1,
		Submission: domain.Authenticated(info),
	})

	var budgetErr domain.BudgetExceededError
	require.ErrorAs(t, err, &budgetErr)
	assert.Equal(t, 1.5, budgetErr.SlotHours)
	assert.Equal(t, 1.0, budgetErr.RemainingHours)

	// nothing was written
	assert.Empty(t, repo.bookings)
	assert.Equal(t, models.SlotStatusAvailable, repo.slots[2].Status)
}

func TestCreateBooking_SlotNotSelectable(t *testing.T) {
	repo := newFakeRepo()
	uc := NewCreateBooking(repo, nil, newFakeCache(), defaultPrice)

	repo.users[1] = &models.User{ID: 1}
	seedSlot(repo, 2, "09:00:00", "10:00:00", models.SlotStatusBooked)
	seedSlot(repo, 3, "10:00:00", "11:00:00", models.SlotStatusDeleted)

	_, err := uc.Execute(context.Background(), CreateBookingInput{
		UserID:     1,
		Submission: domain.Authenticated(permitInfo(2)),
	})
	assert.True(t, httperr.IsBusiness(err, "slot_not_available"))

	_, err = uc.Execute(context.Background(), CreateBookingInput{
		UserID:     1,
		Submission: domain.Authenticated(permitInfo(3)),
	})
	assert.True(t, httperr.IsBusiness(err, "slot_not_available"))
}

func TestCreateBooking_GuestRegistersAccount(t *testing.T) {
	repo := newFakeRepo()
	uc := NewCreateBooking(repo, nil, newFakeCache(), defaultPrice)

	price := 40.0
	slot := seedSlot(repo, 2, "10:00:00", "11:30:00", models.SlotStatusAvailable)
	slot.PricePerSlot = &price

	bk, err := uc.Execute(context.Background(), CreateBookingInput{
		Submission:      domain.Submission{AppointmentInfo: permitInfo(2), UserInfo: guestInfo()},
		ConfirmPassword: "secret1",
	})
	require.NoError(t, err)

	assert.Equal(t, 1.5, bk.HoursToConsume)
	assert.Equal(t, 40.0, bk.AmountPaid)

	user, err := repo.FindUserByEmail(context.Background(), "jamie@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, bk.UserID)
	assert.Equal(t, "learner", user.Role)
	assert.NotEqual(t, "secret1", user.PasswordHash)

	// permit data lands on the new profile for future pre-fill
	assert.Equal(t, "P-123", user.PermitNumber)
}

func TestCreateBooking_GuestPasswordMismatch(t *testing.T) {
	repo := newFakeRepo()
	uc := NewCreateBooking(repo, nil, newFakeCache(), defaultPrice)

	seedSlot(repo, 2, "10:00:00", "11:00:00", models.SlotStatusAvailable)

	_, err := uc.Execute(context.Background(), CreateBookingInput{
		Submission:      domain.Submission{AppointmentInfo: permitInfo(2), UserInfo: guestInfo()},
		ConfirmPassword: "other",
	})

	assert.True(t, httperr.IsBusiness(err, "confirm_password_mismatch"))
	assert.Empty(t, repo.bookings)
}

func TestCreateBooking_GuestEmailTaken(t *testing.T) {
	repo := newFakeRepo()
	uc := NewCreateBooking(repo, nil, newFakeCache(), defaultPrice)

	repo.users[1] = &models.User{ID: 1, Email: "jamie@example.com"}
	seedSlot(repo, 2, "10:00:00", "11:00:00", models.SlotStatusAvailable)

	_, err := uc.Execute(context.Background(), CreateBookingInput{
		Submission:      domain.Submission{AppointmentInfo: permitInfo(2), UserInfo: guestInfo()},
		ConfirmPassword: "secret1",
	})

	assert.True(t, httperr.IsBusiness(err, "email_already_registered"))
}

func TestCreateBooking_FirstInvalidFieldWins(t *testing.T) {
	repo := newFakeRepo()
	uc := NewCreateBooking(repo, nil, newFakeCache(), defaultPrice)

	repo.users[1] = &models.User{ID: 1}
	seedSlot(repo, 2, "10:00:00", "11:00:00", models.SlotStatusAvailable)

	info := permitInfo(2)
	info.PermitNumber = ""
	info.DrivingExperience = ""

	_, err := uc.Execute(context.Background(), CreateBookingInput{
		UserID:     1,
		Submission: domain.Authenticated(info),
	})

	assert.True(t, httperr.IsBusiness(err, "permit_number_required"))
}

// staleEnrollmentRepo serves enrollment reads from before any consumption,
// the view a concurrent booking sees while another one is still committing.
type staleEnrollmentRepo struct {
	*fakeRepo
}

func (r *staleEnrollmentRepo) GetEnrollmentForUser(
	ctx context.Context,
	enrollmentID, userID uint,
) (*models.CourseEnrollment, error) {
	enr, err := r.fakeRepo.GetEnrollmentForUser(ctx, enrollmentID, userID)
	if err != nil {
		return nil, err
	}
	stale := *enr
	stale.ConsumedOfflineHours = 0
	return &stale, nil
}

func TestCreateBooking_BudgetEnforcedAtCommit(t *testing.T) {
	inner := newFakeRepo()
	repo := &staleEnrollmentRepo{fakeRepo: inner}
	uc := NewCreateBooking(repo, nil, newFakeCache(), defaultPrice)

	inner.users[1] = &models.User{ID: 1}
	inner.enrollments[10] = &models.CourseEnrollment{
		ID: 10, UserID: 1, TotalOfflineHours: 2, ConsumedOfflineHours: 0,
	}
	seedSlot(inner, 2, "09:00:00", "10:30:00", models.SlotStatusAvailable)
	seedSlot(inner, 3, "11:00:00", "12:30:00", models.SlotStatusAvailable)

	enrollmentID := uint(10)

	info := permitInfo(2)
	info.CourseEnrollmentID = &enrollmentID
	_, err := uc.Execute(context.Background(), CreateBookingInput{
		UserID:     1,
		Submission: domain.Authenticated(info),
	})
	require.NoError(t, err)

	// the stale read shows 2.0 h remaining, so pre-validation passes;
	// the booking write must still reject against the authoritative row
	info = permitInfo(3)
	info.CourseEnrollmentID = &enrollmentID
	_, err = uc.Execute(context.Background(), CreateBookingInput{
		UserID:     1,
		Submission: domain.Authenticated(info),
	})

	var budgetErr domain.BudgetExceededError
	require.ErrorAs(t, err, &budgetErr)
	assert.Equal(t, 1.5, budgetErr.SlotHours)
	assert.Equal(t, 0.5, budgetErr.RemainingHours)

	// never overdrawn, and the losing slot stays open
	assert.Equal(t, 1.5, inner.enrollments[10].ConsumedOfflineHours)
	assert.Equal(t, models.SlotStatusAvailable, inner.slots[3].Status)
	require.Len(t, inner.bookings, 1)
}

// loseSlotOnceRepo fails the first booking write the way a lost row-lock
// race does, then behaves normally.
type loseSlotOnceRepo struct {
	*fakeRepo
	lost bool
}

func (r *loseSlotOnceRepo) BookSlot(ctx context.Context, bk *models.AppointmentBooking) error {
	if !r.lost {
		r.lost = true
		return errSlotTaken
	}
	return r.fakeRepo.BookSlot(ctx, bk)
}

func TestCreateBooking_GuestRetryAfterLostRace(t *testing.T) {
	inner := newFakeRepo()
	repo := &loseSlotOnceRepo{fakeRepo: inner}
	uc := NewCreateBooking(repo, nil, newFakeCache(), defaultPrice)

	seedSlot(inner, 2, "10:00:00", "11:00:00", models.SlotStatusAvailable)
	seedSlot(inner, 3, "11:00:00", "12:00:00", models.SlotStatusAvailable)

	_, err := uc.Execute(context.Background(), CreateBookingInput{
		Submission:      domain.Submission{AppointmentInfo: permitInfo(2), UserInfo: guestInfo()},
		ConfirmPassword: "secret1",
	})
	require.True(t, httperr.IsBusiness(err, "slot_already_booked"))

	// the account was created before the write failed; the retry with
	// the same credentials must reuse it, not die on the email check
	bk, err := uc.Execute(context.Background(), CreateBookingInput{
		Submission:      domain.Submission{AppointmentInfo: permitInfo(3), UserInfo: guestInfo()},
		ConfirmPassword: "secret1",
	})
	require.NoError(t, err)

	user, err := inner.FindUserByEmail(context.Background(), "jamie@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, bk.UserID)
	assert.Len(t, inner.users, 1)
}

func TestCreateBooking_GuestRetryWrongPassword(t *testing.T) {
	repo := newFakeRepo()
	uc := NewCreateBooking(repo, nil, newFakeCache(), defaultPrice)

	seedSlot(repo, 2, "10:00:00", "11:00:00", models.SlotStatusAvailable)
	seedSlot(repo, 3, "11:00:00", "12:00:00", models.SlotStatusAvailable)

	_, err := uc.Execute(context.Background(), CreateBookingInput{
		Submission:      domain.Submission{AppointmentInfo: permitInfo(2), UserInfo: guestInfo()},
		ConfirmPassword: "secret1",
	})
	require.NoError(t, err)

	guest := guestInfo()
	guest.Password = "other-pass"
	_, err = uc.Execute(context.Background(), CreateBookingInput{
		Submission:      domain.Submission{AppointmentInfo: permitInfo(3), UserInfo: guest},
		ConfirmPassword: "other-pass",
	})
	assert.True(t, httperr.IsBusiness(err, "email_already_registered"))
}

func TestCreateBooking_RaceLosesGracefully(t *testing.T) {
	repo := newFakeRepo()
	uc := NewCreateBooking(repo, nil, newFakeCache(), defaultPrice)

	repo.users[1] = &models.User{ID: 1}
	repo.users[2] = &models.User{ID: 2}
	seedSlot(repo, 2, "10:00:00", "11:00:00", models.SlotStatusAvailable)

	_, err := uc.Execute(context.Background(), CreateBookingInput{
		UserID:     1,
		Submission: domain.Authenticated(permitInfo(2)),
	})
	require.NoError(t, err)

	_, err = uc.Execute(context.Background(), CreateBookingInput{
		UserID:     2,
		Submission: domain.Authenticated(permitInfo(2)),
	})
	assert.True(t, httperr.IsBusiness(err, "slot_already_booked"))
	require.Len(t, repo.bookings, 1)
}
