package models

import "time"

type AppointmentBooking struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Reference string `gorm:"size:36;uniqueIndex" json:"reference"`

	// Partial unique index: a slot can be rebooked after a cancellation,
	// but never holds two confirmed bookings at once.
	AppointmentSlotID uint            `gorm:"not null;uniqueIndex:uniq_confirmed_slot,where:status = 'confirmed'" json:"appointment_slot_id"`
	AppointmentSlot   AppointmentSlot `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"appointment_slot"`

	UserID uint `gorm:"index" json:"user_id"`
	User   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"user"`

	// Set only when the booking consumes hours from a course enrollment
	CourseEnrollmentID *uint             `json:"course_enrollment_id"`
	CourseEnrollment   *CourseEnrollment `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"course_enrollment,omitempty"`

	HoursToConsume float64 `json:"hours_to_consume"`
	AmountPaid     float64 `json:"amount_paid"`

	PermitNumber                string `gorm:"size:50;not null" json:"permit_number"`
	LearnerPermitIssueDate      string `gorm:"size:10;not null" json:"learner_permit_issue_date"`
	PermitExpirationDate        string `gorm:"size:10;not null" json:"permit_expiration_date"`
	DrivingExperience           string `gorm:"size:50;not null" json:"driving_experience"`
	IsLicenceFromAnotherCountry bool   `json:"is_licence_from_another_country"`
	Note                        string `gorm:"size:255" json:"note"`

	Status string `gorm:"size:20;default:'confirmed'" json:"status"`

	CancelledAt *time.Time `json:"cancelled_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
