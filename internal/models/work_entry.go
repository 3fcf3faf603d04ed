package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// WorkEntry is one day of work for a company.
//
// GrossCents is derived from the company rates at creation time and
// stored. It is never recomputed: when rates change later, historical
// entries keep the value they were created with, which is what makes
// closed months auditable.
type WorkEntry struct {
	DefaultModel
	UserID        uuid.UUID `gorm:"index:idx_work_entries_user_date"`
	CompanyID     uuid.UUID `gorm:"index"`
	Company       Company   `json:"-"`
	Date          time.Time `gorm:"index:idx_work_entries_user_date"`
	ClockIn       string    // optional HH:MM
	ClockOut      string    // optional HH:MM
	BreakMinutes  int
	DayHours      float64
	NightHours    float64
	BonusCents    int64
	PlusesCents   int64
	AdvancesCents int64
	GrossCents    int64
}

// ComputeGrossCents calculates the gross pay for a day of work, rounding
// each rate multiplication to the nearest cent, half up. It is used both
// to populate the stored value at creation time and for ad-hoc salary
// simulation.
func ComputeGrossCents(dayHours, nightHours float64, dayRateCents, nightRateCents, bonusCents, plusesCents int64) int64 {
	day := decimal.NewFromFloat(dayHours).Mul(decimal.NewFromInt(dayRateCents)).Round(0).IntPart()
	night := decimal.NewFromFloat(nightHours).Mul(decimal.NewFromInt(nightRateCents)).Round(0).IntPart()

	return day + night + bonusCents + plusesCents
}

// BeforeCreate validates the entry, checks that its period is still open
// and stores the derived gross. Running inside the insert transaction
// means no concurrent closure can slip between the check and the write.
func (w *WorkEntry) BeforeCreate(tx *gorm.DB) error {
	_ = w.DefaultModel.BeforeCreate(tx)

	if w.ClockIn != "" && w.ClockOut != "" && w.ClockIn >= w.ClockOut {
		return ErrClockOrder
	}

	if w.BreakMinutes < 0 {
		return ErrBreakNegative
	}

	if w.DayHours < 0 || w.NightHours < 0 {
		return ErrHoursNegative
	}

	company, err := CompanyOf(tx, w.UserID, w.CompanyID)
	if err != nil {
		return err
	}

	err = EnsureMonthOpen(tx, w.UserID, w.Date)
	if err != nil {
		return err
	}

	w.GrossCents = ComputeGrossCents(w.DayHours, w.NightHours, company.DayRateCents, company.NightRateCents, w.BonusCents, w.PlusesCents)
	return nil
}
