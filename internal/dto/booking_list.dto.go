package dto

import "time"

type BookingListDTO struct {
	ID             uint      `json:"id"`
	Reference      string    `json:"reference"`
	Date           string    `json:"date"`
	StartTime      string    `json:"start_time"`
	EndTime        string    `json:"end_time"`
	Status         string    `json:"status"`
	LearnerName    string    `json:"learner_name"`
	InstructorName string    `json:"instructor_name"`
	HoursToConsume float64   `json:"hours_to_consume"`
	AmountPaid     float64   `json:"amount_paid"`
	CreatedAt      time.Time `json:"created_at"`
}
