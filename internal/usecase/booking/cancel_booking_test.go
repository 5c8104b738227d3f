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

func bookFixture(t *testing.T, repo *fakeRepo, cache *fakeCache) *models.AppointmentBooking {
	t.Helper()

	repo.users[1] = &models.User{ID: 1}
	repo.enrollments[10] = &models.CourseEnrollment{
		ID: 10, UserID: 1, TotalOfflineHours: 2,
	}
	seedSlot(repo, 2, "10:00:00", "11:00:00", models.SlotStatusAvailable)

	enrollmentID := uint(10)
	info := permitInfo(2)
	info.CourseEnrollmentID = &enrollmentID

	uc := NewCreateBooking(repo, nil, cache, defaultPrice)
	bk, err := uc.Execute(context.Background(), CreateBookingInput{
		UserID:     1,
		Submission: domain.Authenticated(info),
	})
	require.NoError(t, err)
	return bk
}

func TestCancelBooking_ReleasesSlotAndHours(t *testing.T) {
	repo := newFakeRepo()
	cache := newFakeCache()
	bk := bookFixture(t, repo, cache)

	uc := NewCancelBooking(repo, nil, cache)
	cancelled, err := uc.Execute(context.Background(), 1, bk.ID)
	require.NoError(t, err)

	assert.Equal(t, "cancelled", cancelled.Status)
	require.NotNil(t, cancelled.CancelledAt)

	// slot is sellable again and the budget was refunded
	assert.Equal(t, models.SlotStatusAvailable, repo.slots[2].Status)
	assert.Equal(t, 0.0, repo.enrollments[10].ConsumedOfflineHours)
	assert.Contains(t, cache.invalidated, "2024-06-10")
}

func TestCancelBooking_AlreadyCancelled(t *testing.T) {
	repo := newFakeRepo()
	cache := newFakeCache()
	bk := bookFixture(t, repo, cache)

	uc := NewCancelBooking(repo, nil, cache)
	_, err := uc.Execute(context.Background(), 1, bk.ID)
	require.NoError(t, err)

	_, err = uc.Execute(context.Background(), 1, bk.ID)
	assert.True(t, httperr.IsBusiness(err, "invalid_state"))
}

func TestCancelBooking_NotOwner(t *testing.T) {
	repo := newFakeRepo()
	cache := newFakeCache()
	bk := bookFixture(t, repo, cache)

	uc := NewCancelBooking(repo, nil, cache)
	_, err := uc.Execute(context.Background(), 99, bk.ID)
	assert.True(t, httperr.IsBusiness(err, "booking_not_found"))
}
