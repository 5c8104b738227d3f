package models

import "time"

type Course struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Title       string  `gorm:"size:150;not null" json:"title"`
	Description string  `gorm:"size:500" json:"description"`
	Price       float64 `json:"price"`

	// In-person instruction hours included with the course purchase.
	// Zero means a fully online course: no booking entry point is shown.
	OfflineHours float64 `json:"offline_hours"`

	ThumbnailURL string `gorm:"size:255" json:"thumbnail_url"`
	Active       bool   `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
