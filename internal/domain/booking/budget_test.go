package booking

import (
	"errors"
	"strings"
	"testing"

	"github.com/AshifurNahid/driving-school-api/internal/models"
)

func slot(start, end string) *models.AppointmentSlot {
	return &models.AppointmentSlot{
		Date:      "2024-06-10",
		StartTime: start,
		EndTime:   end,
		Status:    models.SlotStatusAvailable,
	}
}

func TestValidateHourBudget_Accepts(t *testing.T) {
	hours, err := ValidateHourBudget(slot("09:00", "10:00"), 1.0)
	if err != nil {
		t.Fatalf("expected acceptance, got %v", err)
	}
	if hours != 1.0 {
		t.Fatalf("hours = %v, want 1.0", hours)
	}
}

func TestValidateHourBudget_RejectsOverBudget(t *testing.T) {
	_, err := ValidateHourBudget(slot("09:00", "10:30"), 1.0)

	var budgetErr BudgetExceededError
	if !errors.As(err, &budgetErr) {
		t.Fatalf("expected BudgetExceededError, got %v", err)
	}
	if budgetErr.SlotHours != 1.5 || budgetErr.RemainingHours != 1.0 {
		t.Fatalf("unexpected error fields: %+v", budgetErr)
	}
	if !strings.Contains(budgetErr.Error(), "1.00") {
		t.Fatalf("message should state the remaining budget: %q", budgetErr.Error())
	}
}

func TestValidateHourBudget_ExactFit(t *testing.T) {
	// duration == remaining is an acceptance, not a rejection
	if _, err := ValidateHourBudget(slot("09:00", "10:30"), 1.5); err != nil {
		t.Fatalf("expected acceptance at exact fit, got %v", err)
	}
}

func TestValidateHourBudget_ZeroRemaining(t *testing.T) {
	if _, err := ValidateHourBudget(slot("09:00", "09:30"), 0); err == nil {
		t.Fatal("expected rejection with an exhausted budget")
	}
}
