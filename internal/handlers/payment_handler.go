package handlers

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/AshifurNahid/driving-school-api/internal/audit"
	"github.com/AshifurNahid/driving-school-api/internal/httperr"
	"github.com/AshifurNahid/driving-school-api/internal/httpresp"
	"github.com/AshifurNahid/driving-school-api/internal/middleware"
	"github.com/AshifurNahid/driving-school-api/internal/models"
	"github.com/AshifurNahid/driving-school-api/internal/payment"
)

type PaymentHandler struct {
	db       *gorm.DB
	audit    *audit.Dispatcher
	payments *payment.Client
}

func NewPaymentHandler(db *gorm.DB, auditDispatcher *audit.Dispatcher, payments *payment.Client) *PaymentHandler {
	return &PaymentHandler{
		db:       db,
		audit:    auditDispatcher,
		payments: payments,
	}
}

// --------- Checkout ---------

// Checkout creates a Mercado Pago preference for one course purchase.
// The external reference ties the approved payment back to the enrollment
// Confirm will create.
func (h *PaymentHandler) Checkout(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	courseID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid course id.")
		return
	}

	var course models.Course
	if err := h.db.Where("active = ?", true).First(&course, uint(courseID)).Error; err != nil {
		httperr.NotFound(c, "course_not_found", "Course not found.")
		return
	}

	externalRef := fmt.Sprintf("course-%d-user-%d", course.ID, userID)

	checkout, err := h.payments.CreateCourseCheckout(c.Request.Context(), &course, externalRef)
	if err != nil {
		writeBookingError(c, err)
		return
	}

	httpresp.OK(c, checkout)
}

// --------- Confirm ---------

type ConfirmPaymentRequest struct {
	PaymentID int `json:"payment_id" binding:"required"`
}

// Confirm verifies the payment with Mercado Pago and creates the course
// enrollment carrying the course's offline-hour allotment. Replaying the
// same payment id is a no-op.
func (h *PaymentHandler) Confirm(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req ConfirmPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Payment id is required.")
		return
	}

	result, err := h.payments.GetPayment(c.Request.Context(), req.PaymentID)
	if err != nil {
		writeBookingError(c, err)
		return
	}

	if result.Status != "approved" {
		httperr.BadRequest(c, "payment_not_approved", "The payment was not approved.")
		return
	}

	var courseID, refUserID uint
	if _, err := fmt.Sscanf(result.ExternalReference, "course-%d-user-%d", &courseID, &refUserID); err != nil {
		httperr.BadRequest(c, "invalid_payment_reference", "Payment does not match a course purchase.")
		return
	}
	if refUserID != userID {
		httperr.Forbidden(c, "payment_owner_mismatch", "This payment belongs to another account.")
		return
	}

	paymentRef := strconv.Itoa(req.PaymentID)

	var existing models.CourseEnrollment
	if err := h.db.
		Where("payment_reference = ?", paymentRef).
		First(&existing).Error; err == nil {
		httpresp.OK(c, existing)
		return
	}

	var course models.Course
	if err := h.db.First(&course, courseID).Error; err != nil {
		httperr.NotFound(c, "course_not_found", "Course not found.")
		return
	}

	enrollment := models.CourseEnrollment{
		UserID:            userID,
		CourseID:          course.ID,
		TotalOfflineHours: course.OfflineHours,
		PaymentReference:  paymentRef,
	}

	if err := h.db.Create(&enrollment).Error; err != nil {
		httperr.Internal(c, "failed_to_create_enrollment", "Could not create enrollment.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "course_purchased",
		Entity:   "course_enrollment",
		EntityID: &enrollment.ID,
		Metadata: map[string]any{
			"course_id":  course.ID,
			"payment_id": req.PaymentID,
			"amount":     result.TransactionAmount,
		},
	})

	c.JSON(201, enrollment)
}
