package booking

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/AshifurNahid/driving-school-api/internal/audit"
	domain "github.com/AshifurNahid/driving-school-api/internal/domain/booking"
	"github.com/AshifurNahid/driving-school-api/internal/httperr"
	"github.com/AshifurNahid/driving-school-api/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type CreateBookingInput struct {
	// Zero for guest submissions; the guest account is created here.
	UserID uint

	// The wire payload. Submission.UserInfo set means the guest branch.
	// An enrollment id in AppointmentInfo means the booking draws on a
	// course hour budget; guests always pay per slot.
	Submission domain.Submission

	// The guest registration form's second password field. Compared, never
	// stored, and never part of the wire user_info shape.
	ConfirmPassword string
}

// ======================================================
// USE CASE
// ======================================================

type CreateBooking struct {
	repo         domain.Repository
	audit        *audit.Dispatcher
	cache        SlotCache
	defaultPrice float64
}

func NewCreateBooking(
	repo domain.Repository,
	audit *audit.Dispatcher,
	cache SlotCache,
	defaultPrice float64,
) *CreateBooking {
	return &CreateBooking{
		repo:         repo,
		audit:        audit,
		cache:        cache,
		defaultPrice: defaultPrice,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateBooking) Execute(
	ctx context.Context,
	in CreateBookingInput,
) (*models.AppointmentBooking, error) {

	if err := validateBookingInput(in); err != nil {
		return nil, err
	}

	info := in.Submission.AppointmentInfo

	slot, err := uc.repo.GetSlot(ctx, info.AvailableAppointmentSlotID)
	if err != nil {
		return nil, httperr.ErrBusiness("slot_not_found")
	}

	if !domain.SlotStatus(slot.Status).Selectable() {
		return nil, httperr.ErrBusiness("slot_not_available")
	}

	hours, err := domain.ComputeHours(slot.StartTime, slot.EndTime)
	if err != nil {
		return nil, err
	}

	userID := in.UserID

	// Guest branch: register the account as part of the booking
	if guest := in.Submission.UserInfo; guest != nil {
		email := strings.ToLower(strings.TrimSpace(guest.Email))

		if existing, err := uc.repo.FindUserByEmail(ctx, email); err == nil && existing != nil {
			// A retry after a lost slot race arrives with the account
			// already created. Accept it as the same guest when the
			// credentials match.
			if bcrypt.CompareHashAndPassword(
				[]byte(existing.PasswordHash), []byte(guest.Password),
			) != nil {
				return nil, httperr.ErrBusiness("email_already_registered")
			}
			userID = existing.ID
		} else {
			hashed, err := bcrypt.GenerateFromPassword([]byte(guest.Password), bcrypt.DefaultCost)
			if err != nil {
				return nil, err
			}

			user := &models.User{
				FullName:     guest.FullName,
				Email:        email,
				PasswordHash: string(hashed),
				Phone:        guest.Phone,
				Role:         "learner",

				PermitNumber:                info.PermitNumber,
				LearnerPermitIssueDate:      info.LearnerPermitIssueDate,
				PermitExpirationDate:        info.PermitExpirationDate,
				DrivingExperience:           info.DrivingExperience,
				IsLicenceFromAnotherCountry: info.IsLicenceFromAnotherCountry,
			}

			if err := uc.repo.CreateUser(ctx, user); err != nil {
				if httperr.IsUniqueViolation(err) {
					return nil, httperr.ErrBusiness("email_already_registered")
				}
				return nil, err
			}
			userID = user.ID
		}
	}

	// Hour budget fast path; BookSlot re-checks against the locked row
	if info.CourseEnrollmentID != nil {
		enr, err := uc.repo.GetEnrollmentForUser(ctx, *info.CourseEnrollmentID, userID)
		if err != nil {
			return nil, httperr.ErrBusiness("enrollment_not_found")
		}

		if _, err := domain.ValidateHourBudget(slot, enr.RemainingOfflineHours()); err != nil {
			return nil, err
		}
	}

	bk := &models.AppointmentBooking{
		Reference:          uuid.NewString(),
		AppointmentSlotID:  slot.ID,
		UserID:             userID,
		CourseEnrollmentID: info.CourseEnrollmentID,

		HoursToConsume: hours,
		AmountPaid:     domain.SlotPrice(slot, uc.defaultPrice),

		PermitNumber:                info.PermitNumber,
		LearnerPermitIssueDate:      info.LearnerPermitIssueDate,
		PermitExpirationDate:        info.PermitExpirationDate,
		DrivingExperience:           info.DrivingExperience,
		IsLicenceFromAnotherCountry: info.IsLicenceFromAnotherCountry,
		Note:                        info.Note,

		Status: string(domain.InitialStatus()),
	}

	if err := uc.repo.BookSlot(ctx, bk); err != nil {
		if httperr.IsUniqueViolation(err) || httperr.IsExclusionConflict(err) {
			return nil, httperr.ErrBusiness("slot_already_booked")
		}
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "booking_created",
		Entity:   "appointment_booking",
		EntityID: &bk.ID,
	})

	uc.cache.Invalidate(ctx, slot.Date)

	return bk, nil
}
