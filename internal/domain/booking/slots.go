package booking

import "github.com/AshifurNahid/driving-school-api/internal/models"

// FilterAvailable keeps only slots a learner may select: deleted and
// already booked slots are dropped. Pure and idempotent.
func FilterAvailable(slots []models.AppointmentSlot) []models.AppointmentSlot {
	out := make([]models.AppointmentSlot, 0, len(slots))
	for _, s := range slots {
		if SlotStatus(s.Status).Selectable() {
			out = append(out, s)
		}
	}
	return out
}

// FilterVisible drops only soft-deleted slots. Used for admin listings,
// where booked slots must still show up.
func FilterVisible(slots []models.AppointmentSlot) []models.AppointmentSlot {
	out := make([]models.AppointmentSlot, 0, len(slots))
	for _, s := range slots {
		if SlotStatus(s.Status).Visible() {
			out = append(out, s)
		}
	}
	return out
}

// SlotPrice resolves the price of a slot, falling back to the configured
// default when the slot carries no explicit price.
func SlotPrice(slot *models.AppointmentSlot, fallback float64) float64 {
	if slot.PricePerSlot != nil {
		return *slot.PricePerSlot
	}
	return fallback
}
