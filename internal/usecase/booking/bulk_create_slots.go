package booking

import (
	"context"
	"strings"
	"time"

	"github.com/AshifurNahid/driving-school-api/internal/audit"
	domain "github.com/AshifurNahid/driving-school-api/internal/domain/booking"
	"github.com/AshifurNahid/driving-school-api/internal/httperr"
	"github.com/AshifurNahid/driving-school-api/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type BulkCreateSlotsInput struct {
	AdminID uint

	StartDate string // "2006-01-02"
	EndDate   string
	StartTime string // "15:04" or "15:04:05"

	SlotDurationMin int
	SlotsPerDay     int
	GapMin          int

	InstructorID *uint
	Location     string
	PricePerSlot *float64
}

// ======================================================
// USE CASE
// ======================================================

type BulkCreateSlots struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	cache SlotCache
}

func NewBulkCreateSlots(
	repo domain.Repository,
	audit *audit.Dispatcher,
	cache SlotCache,
) *BulkCreateSlots {
	return &BulkCreateSlots{
		repo:  repo,
		audit: audit,
		cache: cache,
	}
}

// Execute generates a run of identical slots for every day between
// StartDate and EndDate inclusive: SlotsPerDay slots starting at
// StartTime, each SlotDurationMin long, GapMin apart.
func (uc *BulkCreateSlots) Execute(
	ctx context.Context,
	in BulkCreateSlotsInput,
) ([]models.AppointmentSlot, error) {

	if strings.TrimSpace(in.StartDate) == "" {
		return nil, httperr.ErrBusiness("start_date_required")
	}
	if strings.TrimSpace(in.EndDate) == "" {
		return nil, httperr.ErrBusiness("end_date_required")
	}
	if strings.TrimSpace(in.StartTime) == "" {
		return nil, httperr.ErrBusiness("start_time_required")
	}
	if in.SlotDurationMin <= 0 {
		return nil, httperr.ErrBusiness("invalid_slot_duration")
	}
	if in.SlotsPerDay <= 0 {
		return nil, httperr.ErrBusiness("invalid_slot_count")
	}
	if in.GapMin < 0 {
		return nil, httperr.ErrBusiness("invalid_slot_gap")
	}

	startDate, err := time.Parse("2006-01-02", in.StartDate)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_start_date")
	}
	endDate, err := time.Parse("2006-01-02", in.EndDate)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_end_date")
	}
	if endDate.Before(startDate) {
		return nil, httperr.ErrBusiness("invalid_date_range")
	}

	firstStart, err := domain.ParseTimeOfDay(in.StartTime)
	if err != nil {
		return nil, err
	}

	if in.InstructorID != nil {
		if _, err := uc.repo.GetInstructor(ctx, *in.InstructorID); err != nil {
			return nil, httperr.ErrBusiness("instructor_not_found")
		}
	}

	duration := time.Duration(in.SlotDurationMin) * time.Minute
	gap := time.Duration(in.GapMin) * time.Minute

	var slots []models.AppointmentSlot
	for day := startDate; !day.After(endDate); day = day.AddDate(0, 0, 1) {

		cur := firstStart
		for i := 0; i < in.SlotsPerDay; i++ {
			end := cur.Add(duration)

			// never let a run wrap past midnight
			if end.Day() != cur.Day() {
				break
			}

			slots = append(slots, models.AppointmentSlot{
				Date:         day.Format("2006-01-02"),
				StartTime:    cur.Format("15:04:05"),
				EndTime:      end.Format("15:04:05"),
				InstructorID: in.InstructorID,
				Location:     in.Location,
				PricePerSlot: in.PricePerSlot,
				Status:       models.SlotStatusAvailable,
			})

			cur = end.Add(gap)
		}
	}

	// every slot of the run wrapped past midnight
	if len(slots) == 0 {
		return nil, httperr.ErrBusiness("no_slots_generated")
	}

	if err := uc.repo.CreateSlots(ctx, slots); err != nil {
		return nil, err
	}

	for day := startDate; !day.After(endDate); day = day.AddDate(0, 0, 1) {
		uc.cache.Invalidate(ctx, day.Format("2006-01-02"))
	}

	uc.audit.Dispatch(audit.Event{
		UserID: &in.AdminID,
		Action: "slots_bulk_created",
		Entity: "appointment_slot",
		Metadata: map[string]any{
			"start_date": in.StartDate,
			"end_date":   in.EndDate,
			"count":      len(slots),
		},
	})

	return slots, nil
}
