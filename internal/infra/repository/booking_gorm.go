package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/AshifurNahid/driving-school-api/internal/domain/booking"
	"github.com/AshifurNahid/driving-school-api/internal/httperr"
	"github.com/AshifurNahid/driving-school-api/internal/models"
)

type BookingGormRepository struct {
	db *gorm.DB
}

func NewBookingGormRepository(db *gorm.DB) *BookingGormRepository {
	return &BookingGormRepository{db: db}
}

// --------------------------------------------------
// Slots
// --------------------------------------------------

func (r *BookingGormRepository) GetSlot(
	ctx context.Context,
	id uint,
) (*models.AppointmentSlot, error) {

	var slot models.AppointmentSlot
	if err := r.db.WithContext(ctx).
		Preload("Instructor").
		First(&slot, id).Error; err != nil {
		return nil, err
	}
	return &slot, nil
}

func (r *BookingGormRepository) ListSlotsByDate(
	ctx context.Context,
	date string,
) ([]models.AppointmentSlot, error) {

	var slots []models.AppointmentSlot
	if err := r.db.WithContext(ctx).
		Preload("Instructor").
		Where("date = ?", date).
		Order("start_time ASC").
		Find(&slots).Error; err != nil {
		return nil, err
	}
	return slots, nil
}

func (r *BookingGormRepository) CreateSlot(
	ctx context.Context,
	slot *models.AppointmentSlot,
) error {
	return r.db.WithContext(ctx).Create(slot).Error
}

func (r *BookingGormRepository) CreateSlots(
	ctx context.Context,
	slots []models.AppointmentSlot,
) error {
	if len(slots) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).CreateInBatches(slots, 100).Error
}

func (r *BookingGormRepository) UpdateSlot(
	ctx context.Context,
	slot *models.AppointmentSlot,
) error {
	return r.db.WithContext(ctx).Save(slot).Error
}

// --------------------------------------------------
// Instructors
// --------------------------------------------------

func (r *BookingGormRepository) GetInstructor(
	ctx context.Context,
	id uint,
) (*models.Instructor, error) {

	var inst models.Instructor
	if err := r.db.WithContext(ctx).First(&inst, id).Error; err != nil {
		return nil, err
	}
	return &inst, nil
}

func (r *BookingGormRepository) ListInstructors(
	ctx context.Context,
) ([]models.Instructor, error) {

	var insts []models.Instructor
	if err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Order("name ASC").
		Find(&insts).Error; err != nil {
		return nil, err
	}
	return insts, nil
}

// --------------------------------------------------
// Users
// --------------------------------------------------

func (r *BookingGormRepository) FindUserByEmail(
	ctx context.Context,
	email string,
) (*models.User, error) {

	var user models.User
	if err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *BookingGormRepository) CreateUser(
	ctx context.Context,
	user *models.User,
) error {
	return r.db.WithContext(ctx).Create(user).Error
}

// --------------------------------------------------
// Enrollments
// --------------------------------------------------

func (r *BookingGormRepository) GetEnrollmentForUser(
	ctx context.Context,
	enrollmentID uint,
	userID uint,
) (*models.CourseEnrollment, error) {

	var enr models.CourseEnrollment
	if err := r.db.WithContext(ctx).
		Preload("Course").
		Where("id = ? AND user_id = ?", enrollmentID, userID).
		First(&enr).Error; err != nil {
		return nil, err
	}
	return &enr, nil
}

// --------------------------------------------------
// Booking (transactional)
// --------------------------------------------------

func (r *BookingGormRepository) BookSlot(
	ctx context.Context,
	bk *models.AppointmentBooking,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		var slot models.AppointmentSlot
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&slot, bk.AppointmentSlotID).Error; err != nil {
			return err
		}

		if slot.Status != models.SlotStatusAvailable {
			return httperr.ErrBusiness("slot_already_booked")
		}

		// The budget was validated against an unlocked read before the
		// transaction; re-check against the locked row so two bookings
		// drawing on the same enrollment cannot both pass and overdraw.
		if bk.CourseEnrollmentID != nil {
			var enr models.CourseEnrollment
			if err := tx.
				Clauses(clause.Locking{Strength: "UPDATE"}).
				First(&enr, *bk.CourseEnrollmentID).Error; err != nil {
				return err
			}

			remaining := enr.RemainingOfflineHours()
			if bk.HoursToConsume > remaining {
				return domain.BudgetExceededError{
					SlotHours:      bk.HoursToConsume,
					RemainingHours: remaining,
				}
			}

			if err := tx.Model(&enr).
				Update(
					"consumed_offline_hours",
					gorm.Expr("consumed_offline_hours + ?", bk.HoursToConsume),
				).Error; err != nil {
				return err
			}
		}

		slot.Status = models.SlotStatusBooked
		if err := tx.Save(&slot).Error; err != nil {
			return err
		}

		return tx.Create(bk).Error
	})
}

func (r *BookingGormRepository) GetBookingForUser(
	ctx context.Context,
	bookingID uint,
	userID uint,
) (*models.AppointmentBooking, error) {

	var bk models.AppointmentBooking
	if err := r.db.WithContext(ctx).
		Preload("AppointmentSlot").
		Where("id = ? AND user_id = ?", bookingID, userID).
		First(&bk).Error; err != nil {
		return nil, err
	}
	return &bk, nil
}

func (r *BookingGormRepository) CancelBooking(
	ctx context.Context,
	bk *models.AppointmentBooking,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		if err := tx.Save(bk).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.AppointmentSlot{}).
			Where("id = ?", bk.AppointmentSlotID).
			Update("status", models.SlotStatusAvailable).Error; err != nil {
			return err
		}

		if bk.CourseEnrollmentID != nil {
			res := tx.Model(&models.CourseEnrollment{}).
				Where("id = ?", *bk.CourseEnrollmentID).
				Update(
					"consumed_offline_hours",
					gorm.Expr("GREATEST(consumed_offline_hours - ?, 0)", bk.HoursToConsume),
				)
			if res.Error != nil {
				return res.Error
			}
		}

		return nil
	})
}

// compile-time check
var _ domain.Repository = (*BookingGormRepository)(nil)
