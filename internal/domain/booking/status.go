package booking

// ===============================
// Slot Status
// ===============================

type SlotStatus int

const (
	SlotDeleted   SlotStatus = 0
	SlotAvailable SlotStatus = 1
	SlotBooked    SlotStatus = 2
)

// Selectable reports whether a learner may pick this slot.
// A deleted slot is never selectable, a booked one is taken.
func (s SlotStatus) Selectable() bool {
	return s == SlotAvailable
}

// Visible reports whether the slot may appear in any listing at all.
func (s SlotStatus) Visible() bool {
	return s != SlotDeleted
}

// ===============================
// Booking Status
// ===============================

type Status string

const (
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
)

func InitialStatus() Status {
	return StatusConfirmed
}
