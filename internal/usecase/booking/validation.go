package booking

import (
	"strings"

	domain "github.com/AshifurNahid/driving-school-api/internal/domain/booking"
	"github.com/AshifurNahid/driving-school-api/internal/httperr"
	"github.com/AshifurNahid/driving-school-api/internal/validators"
)

// validateBookingInput mirrors the form rules: all permit fields are
// required on both branches, guests additionally complete registration.
// The first failing field wins, the same order the form shows them in.
func validateBookingInput(in CreateBookingInput) error {
	if guest := in.Submission.UserInfo; guest != nil {
		if err := validateGuestRegistration(*guest, in.ConfirmPassword); err != nil {
			return err
		}
	} else if in.UserID == 0 {
		return httperr.ErrBusiness("user_info_required")
	}

	info := in.Submission.AppointmentInfo

	if strings.TrimSpace(info.PermitNumber) == "" {
		return httperr.ErrBusiness("permit_number_required")
	}
	if strings.TrimSpace(info.LearnerPermitIssueDate) == "" {
		return httperr.ErrBusiness("learner_permit_issue_date_required")
	}
	if strings.TrimSpace(info.PermitExpirationDate) == "" {
		return httperr.ErrBusiness("permit_expiration_date_required")
	}
	if strings.TrimSpace(info.DrivingExperience) == "" {
		return httperr.ErrBusiness("driving_experience_required")
	}

	if info.AvailableAppointmentSlotID == 0 {
		return httperr.ErrBusiness("slot_required")
	}

	return nil
}

func validateGuestRegistration(g domain.UserRegistrationInfo, confirmPassword string) error {
	if strings.TrimSpace(g.FullName) == "" {
		return httperr.ErrBusiness("full_name_required")
	}
	if !validators.IsEmailFormatValid(strings.TrimSpace(g.Email)) {
		return httperr.ErrBusiness("invalid_email")
	}
	if strings.TrimSpace(g.Phone) == "" {
		return httperr.ErrBusiness("phone_required")
	}
	if len(g.Password) < 6 {
		return httperr.ErrBusiness("password_too_short")
	}
	if g.Password != confirmPassword {
		return httperr.ErrBusiness("confirm_password_mismatch")
	}
	return nil
}
