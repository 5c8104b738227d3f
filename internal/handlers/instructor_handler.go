package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/AshifurNahid/driving-school-api/internal/audit"
	"github.com/AshifurNahid/driving-school-api/internal/httperr"
	"github.com/AshifurNahid/driving-school-api/internal/httpresp"
	"github.com/AshifurNahid/driving-school-api/internal/middleware"
	"github.com/AshifurNahid/driving-school-api/internal/models"
)

type InstructorHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewInstructorHandler(db *gorm.DB, auditDispatcher *audit.Dispatcher) *InstructorHandler {
	return &InstructorHandler{db: db, audit: auditDispatcher}
}

type CreateInstructorRequest struct {
	Name          string `json:"name" binding:"required"`
	Phone         string `json:"phone"`
	Email         string `json:"email"`
	LicenceNumber string `json:"licence_number"`
}

func (h *InstructorHandler) List(c *gin.Context) {
	var instructors []models.Instructor
	h.db.
		Where("active = ?", true).
		Order("name ASC").
		Find(&instructors)

	httpresp.List(c, instructors)
}

func (h *InstructorHandler) Create(c *gin.Context) {
	adminID := c.MustGet(middleware.ContextUserID).(uint)

	var req CreateInstructorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Name is required.")
		return
	}

	inst := models.Instructor{
		Name:          req.Name,
		Phone:         req.Phone,
		Email:         req.Email,
		LicenceNumber: req.LicenceNumber,
		Active:        true,
	}

	if err := h.db.Create(&inst).Error; err != nil {
		httperr.Internal(c, "failed_to_create_instructor", "Could not create instructor.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &adminID,
		Action:   "instructor_created",
		Entity:   "instructor",
		EntityID: &inst.ID,
	})

	c.JSON(201, inst)
}
