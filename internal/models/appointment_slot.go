package models

import "time"

// Slot status values, persisted as-is
const (
	SlotStatusDeleted   = 0
	SlotStatusAvailable = 1
	SlotStatusBooked    = 2
)

type AppointmentSlot struct {
	ID uint `gorm:"primaryKey" json:"id"`

	// Local calendar date, "2006-01-02"
	Date string `gorm:"size:10;index;not null" json:"date"`

	// Local times of day, "15:04" or "15:04:05"
	StartTime string `gorm:"size:8;not null" json:"start_time"`
	EndTime   string `gorm:"size:8;not null" json:"end_time"`

	InstructorID *uint       `json:"instructor_id"`
	Instructor   *Instructor `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"instructor,omitempty"`

	Location     string   `gorm:"size:255" json:"location"`
	PricePerSlot *float64 `json:"price_per_slot"`

	Status int `gorm:"default:1;index" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
