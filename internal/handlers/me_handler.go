package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/AshifurNahid/driving-school-api/internal/dto"
	"github.com/AshifurNahid/driving-school-api/internal/httperr"
	"github.com/AshifurNahid/driving-school-api/internal/httpresp"
	"github.com/AshifurNahid/driving-school-api/internal/middleware"
	"github.com/AshifurNahid/driving-school-api/internal/models"
)

type MeHandler struct {
	db *gorm.DB
}

func NewMeHandler(db *gorm.DB) *MeHandler {
	return &MeHandler{db: db}
}

// GetMe returns the profile including the permit fields the booking form
// pre-fills from.
func (h *MeHandler) GetMe(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var user models.User
	if err := h.db.First(&user, userID).Error; err != nil {
		httperr.NotFound(c, "user_not_found", "User not found.")
		return
	}

	httpresp.OK(c, user)
}

type UpdatePermitProfileRequest struct {
	PermitNumber                *string `json:"permit_number"`
	LearnerPermitIssueDate      *string `json:"learner_permit_issue_date"`
	PermitExpirationDate        *string `json:"permit_expiration_date"`
	DrivingExperience           *string `json:"driving_experience"`
	IsLicenceFromAnotherCountry *bool   `json:"is_licence_from_another_country"`
}

func (h *MeHandler) UpdatePermitProfile(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req UpdatePermitProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid payload.")
		return
	}

	var user models.User
	if err := h.db.First(&user, userID).Error; err != nil {
		httperr.NotFound(c, "user_not_found", "User not found.")
		return
	}

	if req.PermitNumber != nil {
		user.PermitNumber = *req.PermitNumber
	}
	if req.LearnerPermitIssueDate != nil {
		user.LearnerPermitIssueDate = *req.LearnerPermitIssueDate
	}
	if req.PermitExpirationDate != nil {
		user.PermitExpirationDate = *req.PermitExpirationDate
	}
	if req.DrivingExperience != nil {
		user.DrivingExperience = *req.DrivingExperience
	}
	if req.IsLicenceFromAnotherCountry != nil {
		user.IsLicenceFromAnotherCountry = *req.IsLicenceFromAnotherCountry
	}

	if err := h.db.Save(&user).Error; err != nil {
		httperr.Internal(c, "failed_to_update_profile", "Could not update profile.")
		return
	}

	httpresp.OK(c, user)
}

type EnrollmentView struct {
	models.CourseEnrollment
	RemainingOfflineHours float64 `json:"remaining_offline_hours"`
}

// ListEnrollments recomputes the remaining hour budget on every load, the
// client never mutates it directly.
func (h *MeHandler) ListEnrollments(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var enrollments []models.CourseEnrollment
	h.db.
		Preload("Course").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&enrollments)

	views := make([]EnrollmentView, 0, len(enrollments))
	for _, e := range enrollments {
		views = append(views, EnrollmentView{
			CourseEnrollment:      e,
			RemainingOfflineHours: e.RemainingOfflineHours(),
		})
	}

	httpresp.List(c, views)
}

func (h *MeHandler) ListBookings(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var bookings []models.AppointmentBooking
	h.db.
		Preload("AppointmentSlot").
		Preload("AppointmentSlot.Instructor").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&bookings)

	views := make([]dto.BookingListDTO, 0, len(bookings))
	for _, bk := range bookings {
		view := dto.BookingListDTO{
			ID:             bk.ID,
			Reference:      bk.Reference,
			Date:           bk.AppointmentSlot.Date,
			StartTime:      bk.AppointmentSlot.StartTime,
			EndTime:        bk.AppointmentSlot.EndTime,
			Status:         bk.Status,
			HoursToConsume: bk.HoursToConsume,
			AmountPaid:     bk.AmountPaid,
			CreatedAt:      bk.CreatedAt,
		}
		if bk.AppointmentSlot.Instructor != nil {
			view.InstructorName = bk.AppointmentSlot.Instructor.Name
		}
		views = append(views, view)
	}

	httpresp.List(c, views)
}
