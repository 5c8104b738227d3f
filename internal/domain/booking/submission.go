package booking

// ===============================
// Booking submission payloads
// ===============================

// AppointmentInfo is always present in a booking submission. Hours and
// amount are derived server-side from the slot; client-sent values are
// never trusted.
type AppointmentInfo struct {
	AvailableAppointmentSlotID uint    `json:"available_appointment_slot_id"`
	CourseEnrollmentID         *uint   `json:"course_enrollment_id,omitempty"`
	HoursToConsume             float64 `json:"hours_to_consume"`
	AmountPaid                 float64 `json:"amount_paid"`

	PermitNumber                string `json:"permit_number"`
	LearnerPermitIssueDate      string `json:"learner_permit_issue_date"`
	PermitExpirationDate        string `json:"permit_expiration_date"`
	DrivingExperience           string `json:"driving_experience"`
	IsLicenceFromAnotherCountry bool   `json:"is_licence_from_another_country"`
	Note                        string `json:"note,omitempty"`
}

// UserRegistrationInfo rides along only when the requester has no account yet.
type UserRegistrationInfo struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
}

// Submission is the tagged union of the two payload shapes: an
// authenticated booking carries no user_info key at all.
type Submission struct {
	AppointmentInfo AppointmentInfo       `json:"appointment_info"`
	UserInfo        *UserRegistrationInfo `json:"user_info,omitempty"`
}

func Authenticated(info AppointmentInfo) Submission {
	return Submission{AppointmentInfo: info}
}

func Guest(info AppointmentInfo, user UserRegistrationInfo) Submission {
	return Submission{AppointmentInfo: info, UserInfo: &user}
}

func (s Submission) IsGuest() bool {
	return s.UserInfo != nil
}
