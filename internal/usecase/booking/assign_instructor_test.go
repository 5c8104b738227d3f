package booking

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AshifurNahid/driving-school-api/internal/httperr"
	"github.com/AshifurNahid/driving-school-api/internal/models"
)

func TestAssignInstructor(t *testing.T) {
	repo := newFakeRepo()
	cache := newFakeCache()
	uc := NewAssignInstructor(repo, nil, cache)

	repo.instructors[5] = &models.Instructor{ID: 5, Name: "Pat Lee"}
	seedSlot(repo, 2, "10:00:00", "11:00:00", models.SlotStatusAvailable)

	slot, err := uc.Execute(context.Background(), 2, 5, 1)
	require.NoError(t, err)
	require.NotNil(t, slot.InstructorID)
	assert.Equal(t, uint(5), *slot.InstructorID)
	assert.Contains(t, cache.invalidated, "2024-06-10")
}

func TestAssignInstructor_Rejections(t *testing.T) {
	repo := newFakeRepo()
	uc := NewAssignInstructor(repo, nil, newFakeCache())

	repo.instructors[5] = &models.Instructor{ID: 5}

	taken := uint(5)
	assigned := seedSlot(repo, 1, "08:00:00", "09:00:00", models.SlotStatusAvailable)
	assigned.InstructorID = &taken

	seedSlot(repo, 2, "09:00:00", "10:00:00", models.SlotStatusDeleted)
	seedSlot(repo, 3, "10:00:00", "11:00:00", models.SlotStatusAvailable)

	_, err := uc.Execute(context.Background(), 1, 5, 1)
	assert.True(t, httperr.IsBusiness(err, "slot_already_assigned"))

	// soft-deleted slots are not assignable
	_, err = uc.Execute(context.Background(), 2, 5, 1)
	assert.True(t, httperr.IsBusiness(err, "slot_not_found"))

	_, err = uc.Execute(context.Background(), 404, 5, 1)
	assert.True(t, httperr.IsBusiness(err, "slot_not_found"))

	_, err = uc.Execute(context.Background(), 3, 99, 1)
	assert.True(t, httperr.IsBusiness(err, "instructor_not_found"))
}
