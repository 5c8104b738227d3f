package models

import "time"

type User struct {
	ID uint `gorm:"primaryKey" json:"id"`

	FullName     string `gorm:"size:100;not null" json:"full_name"`
	Email        string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	Phone        string `gorm:"size:20" json:"phone"`
	Role         string `gorm:"size:20;default:'learner'" json:"role"`

	// Permit profile, used to pre-fill the booking form
	PermitNumber                string `gorm:"size:50" json:"permit_number"`
	LearnerPermitIssueDate      string `gorm:"size:10" json:"learner_permit_issue_date"`
	PermitExpirationDate        string `gorm:"size:10" json:"permit_expiration_date"`
	DrivingExperience           string `gorm:"size:50" json:"driving_experience"`
	IsLicenceFromAnotherCountry bool   `json:"is_licence_from_another_country"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
