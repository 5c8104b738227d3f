package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	domain "github.com/AshifurNahid/driving-school-api/internal/domain/booking"
	"github.com/AshifurNahid/driving-school-api/internal/httperr"
	"github.com/AshifurNahid/driving-school-api/internal/httpresp"
	"github.com/AshifurNahid/driving-school-api/internal/middleware"
	ucBooking "github.com/AshifurNahid/driving-school-api/internal/usecase/booking"
)

// ======================================================
// HANDLER (learner / guest booking surface)
// ======================================================

type BookingHandler struct {
	listSlotsUC *ucBooking.GetAvailableSlots
	createUC    *ucBooking.CreateBooking
	cancelUC    *ucBooking.CancelBooking
}

func NewBookingHandler(
	listSlotsUC *ucBooking.GetAvailableSlots,
	createUC *ucBooking.CreateBooking,
	cancelUC *ucBooking.CancelBooking,
) *BookingHandler {
	return &BookingHandler{
		listSlotsUC: listSlotsUC,
		createUC:    createUC,
		cancelUC:    cancelUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

// CreateBookingRequest is domain.Submission plus the form-only
// confirm_password field, which is compared and dropped here.
type CreateBookingRequest struct {
	AppointmentInfo domain.AppointmentInfo `json:"appointment_info" binding:"required"`
	UserInfo        *struct {
		domain.UserRegistrationInfo
		ConfirmPassword string `json:"confirm_password"`
	} `json:"user_info"`
}

func (r *CreateBookingRequest) toInput(userID uint) ucBooking.CreateBookingInput {
	in := ucBooking.CreateBookingInput{
		UserID: userID,
		Submission: domain.Submission{
			AppointmentInfo: r.AppointmentInfo,
		},
	}
	if r.UserInfo != nil {
		info := r.UserInfo.UserRegistrationInfo
		in.Submission.UserInfo = &info
		in.ConfirmPassword = r.UserInfo.ConfirmPassword
	}
	return in
}

// ======================================================
// AVAILABILITY (public, learner-facing)
// ======================================================

func (h *BookingHandler) ListAvailableSlots(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		httperr.BadRequest(c, "missing_date", "Date is required.")
		return
	}

	slots, err := h.listSlotsUC.Execute(c.Request.Context(), date, false)
	if err != nil {
		writeBookingError(c, err)
		return
	}

	httpresp.DatedList(c, date, slots)
}

// ======================================================
// CREATE — guest branch (registers the account too)
// ======================================================

func (h *BookingHandler) CreateGuest(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid payload.")
		return
	}

	if req.UserInfo == nil {
		writeBookingError(c, httperr.ErrBusiness("user_info_required"))
		return
	}

	bk, err := h.createUC.Execute(c.Request.Context(), req.toInput(0))
	if err != nil {
		writeBookingError(c, err)
		return
	}

	c.JSON(201, bk)
}

// ======================================================
// CREATE — authenticated branch (no user_info accepted)
// ======================================================

func (h *BookingHandler) Create(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid payload.")
		return
	}

	// an authenticated submission must not carry registration data
	req.UserInfo = nil

	bk, err := h.createUC.Execute(c.Request.Context(), req.toInput(userID))
	if err != nil {
		writeBookingError(c, err)
		return
	}

	c.JSON(201, bk)
}

// ======================================================
// CANCEL
// ======================================================

func (h *BookingHandler) Cancel(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid booking id.")
		return
	}

	bk, err := h.cancelUC.Execute(c.Request.Context(), userID, uint(id))
	if err != nil {
		writeBookingError(c, err)
		return
	}

	httpresp.OK(c, bk)
}
