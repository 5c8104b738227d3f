package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	domain "github.com/AshifurNahid/driving-school-api/internal/domain/booking"
	"github.com/AshifurNahid/driving-school-api/internal/httperr"
)

// Readable messages for business codes. Codes without an entry are sent
// back as-is so the client can still key on them.
var businessMessages = map[string]string{
	"invalid_date":                       "Date must be YYYY-MM-DD.",
	"invalid_time":                       "Time must be HH:MM or HH:MM:SS.",
	"invalid_time_range":                 "End time must be after start time.",
	"slot_not_found":                     "Appointment slot not found.",
	"slot_not_available":                 "This slot is no longer available.",
	"slot_already_booked":                "This slot has just been booked by someone else.",
	"slot_already_assigned":              "This slot already has an instructor.",
	"instructor_not_found":               "Instructor not found.",
	"enrollment_not_found":               "Course enrollment not found.",
	"booking_not_found":                  "Booking not found.",
	"invalid_state":                      "This booking can no longer be changed.",
	"email_already_registered":           "An account with this email already exists.",
	"full_name_required":                 "Full name is required.",
	"invalid_email":                      "A valid email address is required.",
	"phone_required":                     "Phone number is required.",
	"password_too_short":                 "Password must be at least 6 characters.",
	"confirm_password_mismatch":          "Passwords do not match.",
	"permit_number_required":             "Permit number is required.",
	"learner_permit_issue_date_required": "Permit issue date is required.",
	"permit_expiration_date_required":    "Permit expiration date is required.",
	"driving_experience_required":        "Driving experience is required.",
	"user_info_required":                 "Registration details are required for guest bookings.",
	"slot_required":                      "An appointment slot must be selected.",
	"start_date_required":                "Start date is required.",
	"end_date_required":                  "End date is required.",
	"start_time_required":                "Start time is required.",
	"invalid_slot_duration":              "Slot duration must be greater than zero.",
	"invalid_slot_count":                 "Slot count must be greater than zero.",
	"invalid_slot_gap":                   "Slot gap cannot be negative.",
	"invalid_start_date":                 "Start date must be YYYY-MM-DD.",
	"invalid_end_date":                   "End date must be YYYY-MM-DD.",
	"invalid_date_range":                 "End date must not be before start date.",
	"no_slots_generated":                 "No slot of this run fits before midnight.",
	"payments_disabled":                  "Payments are not configured on this server.",
	"course_not_found":                   "Course not found.",
	"payment_not_approved":               "The payment was not approved.",
}

func writeBookingError(c *gin.Context, err error) {
	var budgetErr domain.BudgetExceededError
	if errors.As(err, &budgetErr) {
		httperr.BadRequest(c, "hour_budget_exceeded", budgetErr.Error())
		return
	}

	if code, ok := httperr.BusinessCode(err); ok {
		msg := businessMessages[code]
		if msg == "" {
			msg = code
		}
		switch code {
		case "slot_not_found", "booking_not_found", "instructor_not_found",
			"enrollment_not_found", "course_not_found":
			httperr.NotFound(c, code, msg)
		default:
			httperr.BadRequest(c, code, msg)
		}
		return
	}

	httperr.Internal(c, "internal_error", "Something went wrong.")
}
