package booking

import (
	"context"

	"github.com/AshifurNahid/driving-school-api/internal/models"
)

type Repository interface {
	// -------- Slots --------
	GetSlot(
		ctx context.Context,
		id uint,
	) (*models.AppointmentSlot, error)

	ListSlotsByDate(
		ctx context.Context,
		date string,
	) ([]models.AppointmentSlot, error)

	CreateSlot(
		ctx context.Context,
		slot *models.AppointmentSlot,
	) error

	CreateSlots(
		ctx context.Context,
		slots []models.AppointmentSlot,
	) error

	UpdateSlot(
		ctx context.Context,
		slot *models.AppointmentSlot,
	) error

	// -------- Instructors --------
	GetInstructor(
		ctx context.Context,
		id uint,
	) (*models.Instructor, error)

	ListInstructors(
		ctx context.Context,
	) ([]models.Instructor, error)

	// -------- Users --------
	FindUserByEmail(
		ctx context.Context,
		email string,
	) (*models.User, error)

	CreateUser(
		ctx context.Context,
		user *models.User,
	) error

	// -------- Enrollments --------
	GetEnrollmentForUser(
		ctx context.Context,
		enrollmentID uint,
		userID uint,
	) (*models.CourseEnrollment, error)

	// -------- Bookings --------
	GetBookingForUser(
		ctx context.Context,
		bookingID uint,
		userID uint,
	) (*models.AppointmentBooking, error)

	// CancelBooking persists the cancelled booking, reopens its slot and
	// hands consumed hours back to the enrollment, in one transaction.
	CancelBooking(
		ctx context.Context,
		bk *models.AppointmentBooking,
	) error

	// -------- Booking (transactional) --------
	// BookSlot locks the slot row, re-checks it is still available,
	// marks it booked and persists the booking. When an enrollment is
	// attached its row is locked too, the remaining hour budget is
	// re-checked (returning BudgetExceededError on overdraw) and the
	// hours are consumed. All in one transaction.
	BookSlot(
		ctx context.Context,
		bk *models.AppointmentBooking,
	) error
}
