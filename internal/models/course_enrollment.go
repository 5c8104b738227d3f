package models

import "time"

type CourseEnrollment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UserID uint `gorm:"index" json:"user_id"`
	User   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"user"`

	CourseID uint   `gorm:"index" json:"course_id"`
	Course   Course `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"course"`

	TotalOfflineHours    float64 `json:"total_offline_hours"`
	ConsumedOfflineHours float64 `json:"consumed_offline_hours"`

	PaymentReference string `gorm:"size:100" json:"payment_reference"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RemainingOfflineHours is derived, never stored.
func (e *CourseEnrollment) RemainingOfflineHours() float64 {
	remaining := e.TotalOfflineHours - e.ConsumedOfflineHours
	if remaining < 0 {
		return 0
	}
	return remaining
}
