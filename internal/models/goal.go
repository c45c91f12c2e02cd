package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Goal is a measurable milestone under a vision. Progress runs 0-100 and
// IsCompleted must equal progress == 100 on every mutation path; the store
// derives one from the other so callers cannot drift the pair.
type Goal struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	UserID       uuid.UUID `json:"-" gorm:"type:uuid;index"`
	VisionID     uuid.UUID `json:"visionId" gorm:"column:vision_id;type:uuid;index"`
	Title        string    `json:"title"`
	Deadline     string    `json:"deadline"` // YYYY-MM-DD
	Progress     int       `json:"progress"`
	IsCompleted  bool      `json:"isCompleted" gorm:"column:is_completed"`
	TargetValue  *float64  `json:"targetValue,omitempty" gorm:"column:target_value"`
	CurrentValue *float64  `json:"currentValue,omitempty" gorm:"column:current_value"`
	Unit         *string   `json:"unit,omitempty"`
}

func (g *Goal) BeforeCreate(tx *gorm.DB) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	return nil
}

type CreateGoalRequest struct {
	VisionID     uuid.UUID `json:"visionId"`
	Title        string    `json:"title"`
	Deadline     string    `json:"deadline"`
	TargetValue  *float64  `json:"targetValue"`
	CurrentValue *float64  `json:"currentValue"`
	Unit         *string   `json:"unit"`
}

type GoalPatch struct {
	VisionID     *uuid.UUID `json:"visionId"`
	Title        *string    `json:"title"`
	Deadline     *string    `json:"deadline"`
	Progress     *int       `json:"progress"`
	IsCompleted  *bool      `json:"isCompleted"`
	TargetValue  *float64   `json:"targetValue"`
	CurrentValue *float64   `json:"currentValue"`
	Unit         *string    `json:"unit"`
}

func (p GoalPatch) Apply(g *Goal) {
	if p.VisionID != nil {
		g.VisionID = *p.VisionID
	}
	if p.Title != nil {
		g.Title = *p.Title
	}
	if p.Deadline != nil {
		g.Deadline = *p.Deadline
	}
	if p.Progress != nil {
		g.Progress = *p.Progress
	}
	if p.IsCompleted != nil {
		g.IsCompleted = *p.IsCompleted
	}
	if p.TargetValue != nil {
		g.TargetValue = p.TargetValue
	}
	if p.CurrentValue != nil {
		g.CurrentValue = p.CurrentValue
	}
	if p.Unit != nil {
		g.Unit = p.Unit
	}
}

func (p GoalPatch) Changes() map[string]any {
	changes := map[string]any{}
	if p.VisionID != nil {
		changes["vision_id"] = *p.VisionID
	}
	if p.Title != nil {
		changes["title"] = *p.Title
	}
	if p.Deadline != nil {
		changes["deadline"] = *p.Deadline
	}
	if p.Progress != nil {
		changes["progress"] = *p.Progress
	}
	if p.IsCompleted != nil {
		changes["is_completed"] = *p.IsCompleted
	}
	if p.TargetValue != nil {
		changes["target_value"] = *p.TargetValue
	}
	if p.CurrentValue != nil {
		changes["current_value"] = *p.CurrentValue
	}
	if p.Unit != nil {
		changes["unit"] = *p.Unit
	}
	return changes
}
