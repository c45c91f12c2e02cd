package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProgressRating is the self-assessed answer to "did today move you forward".
type ProgressRating string

const (
	ProgressYes   ProgressRating = "Yes"
	ProgressMaybe ProgressRating = "Maybe"
	ProgressNo    ProgressRating = "No"
)

func (r ProgressRating) Valid() bool {
	switch r {
	case ProgressYes, ProgressMaybe, ProgressNo:
		return true
	}
	return false
}

// DayLog is a once-per-day reflection. At most one row exists per user and
// date; the remote write path upserts on that pair.
type DayLog struct {
	ID                 uuid.UUID      `json:"-" gorm:"type:uuid;primaryKey"`
	UserID             uuid.UUID      `json:"-" gorm:"type:uuid;uniqueIndex:idx_day_logs_user_date"`
	Date               string         `json:"date" gorm:"uniqueIndex:idx_day_logs_user_date"` // YYYY-MM-DD
	EnergyLevel        int            `json:"energyLevel" gorm:"column:energy_level"`         // 1-5
	FocusLevel         int            `json:"focusLevel" gorm:"column:focus_level"`           // 1-5
	ProgressRating     ProgressRating `json:"progressRating" gorm:"column:progress_rating"`
	Notes              string         `json:"notes"`
	Mood               *string        `json:"mood,omitempty"`
	CompletedTaskCount int            `json:"completedTaskCount" gorm:"column:completed_task_count"`
}

func (l *DayLog) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}
