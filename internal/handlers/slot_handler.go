package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/AshifurNahid/driving-school-api/internal/audit"
	domain "github.com/AshifurNahid/driving-school-api/internal/domain/booking"
	"github.com/AshifurNahid/driving-school-api/internal/httperr"
	"github.com/AshifurNahid/driving-school-api/internal/httpresp"
	"github.com/AshifurNahid/driving-school-api/internal/middleware"
	"github.com/AshifurNahid/driving-school-api/internal/models"
	ucBooking "github.com/AshifurNahid/driving-school-api/internal/usecase/booking"
)

// ======================================================
// HANDLER (admin slot management)
// ======================================================

type SlotHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
	cache ucBooking.SlotCache

	listSlotsUC  *ucBooking.GetAvailableSlots
	bulkCreateUC *ucBooking.BulkCreateSlots
	assignUC     *ucBooking.AssignInstructor
}

func NewSlotHandler(
	db *gorm.DB,
	auditDispatcher *audit.Dispatcher,
	cache ucBooking.SlotCache,
	listSlotsUC *ucBooking.GetAvailableSlots,
	bulkCreateUC *ucBooking.BulkCreateSlots,
	assignUC *ucBooking.AssignInstructor,
) *SlotHandler {
	return &SlotHandler{
		db:           db,
		audit:        auditDispatcher,
		cache:        cache,
		listSlotsUC:  listSlotsUC,
		bulkCreateUC: bulkCreateUC,
		assignUC:     assignUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateSlotRequest struct {
	Date         string   `json:"date" binding:"required"`
	StartTime    string   `json:"start_time" binding:"required"`
	EndTime      string   `json:"end_time" binding:"required"`
	InstructorID *uint    `json:"instructor_id"`
	Location     string   `json:"location"`
	PricePerSlot *float64 `json:"price_per_slot"`
}

type UpdateSlotRequest struct {
	Date         *string  `json:"date"`
	StartTime    *string  `json:"start_time"`
	EndTime      *string  `json:"end_time"`
	InstructorID *uint    `json:"instructor_id"`
	Location     *string  `json:"location"`
	PricePerSlot *float64 `json:"price_per_slot"`
}

type BulkCreateSlotsRequest struct {
	StartDate       string   `json:"start_date"`
	EndDate         string   `json:"end_date"`
	StartTime       string   `json:"start_time"`
	SlotDurationMin int      `json:"slot_duration_min"`
	SlotsPerDay     int      `json:"slots_per_day"`
	GapMin          int      `json:"gap_min"`
	InstructorID    *uint    `json:"instructor_id"`
	Location        string   `json:"location"`
	PricePerSlot    *float64 `json:"price_per_slot"`
}

type AssignInstructorRequest struct {
	InstructorID uint `json:"instructor_id" binding:"required"`
}

// ======================================================
// LIST (admin view keeps booked slots, hides deleted)
// ======================================================

func (h *SlotHandler) ListByDate(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		httperr.BadRequest(c, "missing_date", "Date is required.")
		return
	}

	slots, err := h.listSlotsUC.Execute(c.Request.Context(), date, true)
	if err != nil {
		writeBookingError(c, err)
		return
	}

	httpresp.DatedList(c, date, slots)
}

// ======================================================
// CREATE
// ======================================================

func (h *SlotHandler) Create(c *gin.Context) {
	adminID := c.MustGet(middleware.ContextUserID).(uint)

	var req CreateSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid payload.")
		return
	}

	startTime, err := domain.NormalizeTimeOfDay(req.StartTime)
	if err != nil {
		httperr.BadRequest(c, "invalid_time", "Invalid start time.")
		return
	}
	endTime, err := domain.NormalizeTimeOfDay(req.EndTime)
	if err != nil {
		httperr.BadRequest(c, "invalid_time", "Invalid end time.")
		return
	}
	if _, err := domain.ComputeHours(startTime, endTime); err != nil {
		httperr.BadRequest(c, "invalid_time_range", "End time must be after start time.")
		return
	}

	slot := models.AppointmentSlot{
		Date:         req.Date,
		StartTime:    startTime,
		EndTime:      endTime,
		InstructorID: req.InstructorID,
		Location:     req.Location,
		PricePerSlot: req.PricePerSlot,
		Status:       models.SlotStatusAvailable,
	}

	if err := h.db.Create(&slot).Error; err != nil {
		httperr.Internal(c, "failed_to_create_slot", "Could not create slot.")
		return
	}

	h.cache.Invalidate(c.Request.Context(), slot.Date)

	h.audit.Dispatch(audit.Event{
		UserID:   &adminID,
		Action:   "slot_created",
		Entity:   "appointment_slot",
		EntityID: &slot.ID,
	})

	c.JSON(201, slot)
}

// ======================================================
// BULK CREATE
// ======================================================

func (h *SlotHandler) BulkCreate(c *gin.Context) {
	adminID := c.MustGet(middleware.ContextUserID).(uint)

	var req BulkCreateSlotsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid payload.")
		return
	}

	slots, err := h.bulkCreateUC.Execute(c.Request.Context(), ucBooking.BulkCreateSlotsInput{
		AdminID:         adminID,
		StartDate:       req.StartDate,
		EndDate:         req.EndDate,
		StartTime:       req.StartTime,
		SlotDurationMin: req.SlotDurationMin,
		SlotsPerDay:     req.SlotsPerDay,
		GapMin:          req.GapMin,
		InstructorID:    req.InstructorID,
		Location:        req.Location,
		PricePerSlot:    req.PricePerSlot,
	})
	if err != nil {
		writeBookingError(c, err)
		return
	}

	c.JSON(201, gin.H{
		"created": len(slots),
		"slots":   slots,
	})
}

// ======================================================
// UPDATE
// ======================================================

func (h *SlotHandler) Update(c *gin.Context) {
	adminID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid slot id.")
		return
	}

	var slot models.AppointmentSlot
	if err := h.db.First(&slot, uint(id)).Error; err != nil {
		httperr.NotFound(c, "slot_not_found", "Slot not found.")
		return
	}
	if slot.Status == models.SlotStatusDeleted {
		httperr.NotFound(c, "slot_not_found", "Slot not found.")
		return
	}

	var req UpdateSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid payload.")
		return
	}

	oldDate := slot.Date

	if req.Date != nil {
		slot.Date = *req.Date
	}
	if req.StartTime != nil {
		normalized, err := domain.NormalizeTimeOfDay(*req.StartTime)
		if err != nil {
			httperr.BadRequest(c, "invalid_time", "Invalid start time.")
			return
		}
		slot.StartTime = normalized
	}
	if req.EndTime != nil {
		normalized, err := domain.NormalizeTimeOfDay(*req.EndTime)
		if err != nil {
			httperr.BadRequest(c, "invalid_time", "Invalid end time.")
			return
		}
		slot.EndTime = normalized
	}
	if req.InstructorID != nil {
		slot.InstructorID = req.InstructorID
	}
	if req.Location != nil {
		slot.Location = *req.Location
	}
	if req.PricePerSlot != nil {
		slot.PricePerSlot = req.PricePerSlot
	}

	if _, err := domain.ComputeHours(slot.StartTime, slot.EndTime); err != nil {
		httperr.BadRequest(c, "invalid_time_range", "End time must be after start time.")
		return
	}

	if err := h.db.Save(&slot).Error; err != nil {
		httperr.Internal(c, "failed_to_update_slot", "Could not update slot.")
		return
	}

	h.cache.Invalidate(c.Request.Context(), oldDate)
	if slot.Date != oldDate {
		h.cache.Invalidate(c.Request.Context(), slot.Date)
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &adminID,
		Action:   "slot_updated",
		Entity:   "appointment_slot",
		EntityID: &slot.ID,
	})

	httpresp.OK(c, slot)
}

// ======================================================
// SOFT DELETE (status -> 0)
// ======================================================

func (h *SlotHandler) SoftDelete(c *gin.Context) {
	adminID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid slot id.")
		return
	}

	var slot models.AppointmentSlot
	if err := h.db.First(&slot, uint(id)).Error; err != nil {
		httperr.NotFound(c, "slot_not_found", "Slot not found.")
		return
	}

	if slot.Status == models.SlotStatusBooked {
		httperr.BadRequest(c, "slot_booked", "Cancel the booking before deleting the slot.")
		return
	}

	slot.Status = models.SlotStatusDeleted
	if err := h.db.Save(&slot).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_slot", "Could not delete slot.")
		return
	}

	h.cache.Invalidate(c.Request.Context(), slot.Date)

	h.audit.Dispatch(audit.Event{
		UserID:   &adminID,
		Action:   "slot_deleted",
		Entity:   "appointment_slot",
		EntityID: &slot.ID,
	})

	httpresp.OK(c, slot)
}

// ======================================================
// ASSIGN INSTRUCTOR
// ======================================================

func (h *SlotHandler) AssignInstructor(c *gin.Context) {
	adminID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid slot id.")
		return
	}

	var req AssignInstructorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Instructor id is required.")
		return
	}

	slot, err := h.assignUC.Execute(c.Request.Context(), uint(id), req.InstructorID, adminID)
	if err != nil {
		writeBookingError(c, err)
		return
	}

	httpresp.OK(c, slot)
}
