package booking

import (
	"fmt"

	"github.com/AshifurNahid/driving-school-api/internal/models"
)

// BudgetExceededError is a business rejection, not a transport failure:
// the slot runs longer than the learner's remaining offline hours.
type BudgetExceededError struct {
	SlotHours      float64
	RemainingHours float64
}

func (e BudgetExceededError) Error() string {
	return fmt.Sprintf(
		"slot duration %.2f h exceeds your remaining offline hours (%.2f h)",
		e.SlotHours, e.RemainingHours,
	)
}

// ValidateHourBudget computes the slot duration and accepts the selection
// iff it fits into remainingHours. Returns the duration on acceptance.
func ValidateHourBudget(slot *models.AppointmentSlot, remainingHours float64) (float64, error) {
	hours, err := ComputeHours(slot.StartTime, slot.EndTime)
	if err != nil {
		return 0, err
	}

	if hours > remainingHours {
		return 0, BudgetExceededError{
			SlotHours:      hours,
			RemainingHours: remainingHours,
		}
	}

	return hours, nil
}
