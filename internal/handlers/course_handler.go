package handlers

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/AshifurNahid/driving-school-api/internal/audit"
	"github.com/AshifurNahid/driving-school-api/internal/httperr"
	"github.com/AshifurNahid/driving-school-api/internal/httpresp"
	"github.com/AshifurNahid/driving-school-api/internal/media"
	"github.com/AshifurNahid/driving-school-api/internal/middleware"
	"github.com/AshifurNahid/driving-school-api/internal/models"
	"github.com/AshifurNahid/driving-school-api/internal/storage"
)

const maxThumbnailBytes = 5 << 20

type CourseHandler struct {
	db       *gorm.DB
	audit    *audit.Dispatcher
	uploader *storage.Uploader
}

func NewCourseHandler(db *gorm.DB, auditDispatcher *audit.Dispatcher, uploader *storage.Uploader) *CourseHandler {
	return &CourseHandler{
		db:       db,
		audit:    auditDispatcher,
		uploader: uploader,
	}
}

// --------- Requests ---------

type CreateCourseRequest struct {
	Title        string  `json:"title" binding:"required"`
	Description  string  `json:"description"`
	Price        float64 `json:"price"`
	OfflineHours float64 `json:"offline_hours"`
}

type UpdateCourseRequest struct {
	Title        *string  `json:"title"`
	Description  *string  `json:"description"`
	Price        *float64 `json:"price"`
	OfflineHours *float64 `json:"offline_hours"`
	Active       *bool    `json:"active"`
}

// --------- Public catalog ---------

func (h *CourseHandler) List(c *gin.Context) {
	var courses []models.Course
	h.db.
		Where("active = ?", true).
		Order("created_at DESC").
		Find(&courses)

	httpresp.List(c, courses)
}

func (h *CourseHandler) Get(c *gin.Context) {
	id := c.Param("id")

	var course models.Course
	if err := h.db.Where("active = ?", true).First(&course, id).Error; err != nil {
		httperr.NotFound(c, "course_not_found", "Course not found.")
		return
	}

	httpresp.OK(c, course)
}

// --------- Admin ---------

func (h *CourseHandler) Create(c *gin.Context) {
	adminID := c.MustGet(middleware.ContextUserID).(uint)

	var req CreateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid payload.")
		return
	}

	course := models.Course{
		Title:        req.Title,
		Description:  req.Description,
		Price:        req.Price,
		OfflineHours: req.OfflineHours,
		Active:       true,
	}

	if err := h.db.Create(&course).Error; err != nil {
		httperr.Internal(c, "failed_to_create_course", "Could not create course.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &adminID,
		Action:   "course_created",
		Entity:   "course",
		EntityID: &course.ID,
	})

	c.JSON(201, course)
}

func (h *CourseHandler) Update(c *gin.Context) {
	adminID := c.MustGet(middleware.ContextUserID).(uint)

	var course models.Course
	if err := h.db.First(&course, c.Param("id")).Error; err != nil {
		httperr.NotFound(c, "course_not_found", "Course not found.")
		return
	}

	var req UpdateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid payload.")
		return
	}

	if req.Title != nil {
		course.Title = *req.Title
	}
	if req.Description != nil {
		course.Description = *req.Description
	}
	if req.Price != nil {
		course.Price = *req.Price
	}
	if req.OfflineHours != nil {
		course.OfflineHours = *req.OfflineHours
	}
	if req.Active != nil {
		course.Active = *req.Active
	}

	if err := h.db.Save(&course).Error; err != nil {
		httperr.Internal(c, "failed_to_update_course", "Could not update course.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &adminID,
		Action:   "course_updated",
		Entity:   "course",
		EntityID: &course.ID,
	})

	httpresp.OK(c, course)
}

// UploadThumbnail transcodes the uploaded jpeg/png to webp and stores it
// on S3. With no bucket configured the endpoint degrades, nothing else does.
func (h *CourseHandler) UploadThumbnail(c *gin.Context) {
	adminID := c.MustGet(middleware.ContextUserID).(uint)

	if !h.uploader.Enabled() {
		httperr.BadRequest(c, "storage_disabled", "File storage is not configured on this server.")
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid course id.")
		return
	}

	var course models.Course
	if err := h.db.First(&course, uint(id)).Error; err != nil {
		httperr.NotFound(c, "course_not_found", "Course not found.")
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		httperr.BadRequest(c, "missing_image", "An image file is required.")
		return
	}
	if fileHeader.Size > maxThumbnailBytes {
		httperr.BadRequest(c, "image_too_large", "Image must be at most 5 MB.")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		httperr.Internal(c, "failed_to_read_image", "Could not read upload.")
		return
	}
	defer file.Close()

	thumb, err := media.ThumbnailWebP(file)
	if err != nil {
		httperr.BadRequest(c, "invalid_image", "Image must be a valid JPEG or PNG.")
		return
	}

	key := fmt.Sprintf("courses/%d/thumb-%s.webp", course.ID, uuid.NewString())
	url, err := h.uploader.Upload(c.Request.Context(), key, thumb, "image/webp")
	if err != nil {
		httperr.Internal(c, "failed_to_upload_image", "Could not store the image.")
		return
	}

	course.ThumbnailURL = url
	if err := h.db.Save(&course).Error; err != nil {
		httperr.Internal(c, "failed_to_update_course", "Could not update course.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &adminID,
		Action:   "course_thumbnail_updated",
		Entity:   "course",
		EntityID: &course.ID,
	})

	httpresp.OK(c, course)
}
