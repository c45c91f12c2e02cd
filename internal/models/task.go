package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Task is a single day's actionable item, optionally linked to a goal or
// directly to a vision. Order is the global task count at creation time and
// is never renumbered on deletion.
type Task struct {
	ID          uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	UserID      uuid.UUID  `json:"-" gorm:"type:uuid;index"`
	GoalID      *uuid.UUID `json:"goalId,omitempty" gorm:"column:goal_id;type:uuid"`
	VisionID    *uuid.UUID `json:"visionId,omitempty" gorm:"column:vision_id;type:uuid"`
	Title       string     `json:"title"`
	Date        string     `json:"date"` // YYYY-MM-DD
	IsCompleted bool       `json:"isCompleted" gorm:"column:is_completed"`
	Order       int        `json:"order" gorm:"column:order"`
}

func (t *Task) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// EffectiveVisionID resolves the vision a task belongs to: its own direct
// link if set, else the vision of its linked goal. Dangling goal references
// resolve to nil rather than failing.
func (t Task) EffectiveVisionID(goals []Goal) *uuid.UUID {
	if t.VisionID != nil {
		return t.VisionID
	}
	if t.GoalID == nil {
		return nil
	}
	for i := range goals {
		if goals[i].ID == *t.GoalID {
			id := goals[i].VisionID
			return &id
		}
	}
	return nil
}

type CreateTaskRequest struct {
	GoalID   *uuid.UUID `json:"goalId"`
	VisionID *uuid.UUID `json:"visionId"`
	Title    string     `json:"title"`
	Date     string     `json:"date"`
}

type TaskPatch struct {
	GoalID      *uuid.UUID `json:"goalId"`
	VisionID    *uuid.UUID `json:"visionId"`
	Title       *string    `json:"title"`
	Date        *string    `json:"date"`
	IsCompleted *bool      `json:"isCompleted"`
	Order       *int       `json:"order"`
}

func (p TaskPatch) Apply(t *Task) {
	if p.GoalID != nil {
		t.GoalID = p.GoalID
	}
	if p.VisionID != nil {
		t.VisionID = p.VisionID
	}
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Date != nil {
		t.Date = *p.Date
	}
	if p.IsCompleted != nil {
		t.IsCompleted = *p.IsCompleted
	}
	if p.Order != nil {
		t.Order = *p.Order
	}
}

func (p TaskPatch) Changes() map[string]any {
	changes := map[string]any{}
	if p.GoalID != nil {
		changes["goal_id"] = *p.GoalID
	}
	if p.VisionID != nil {
		changes["vision_id"] = *p.VisionID
	}
	if p.Title != nil {
		changes["title"] = *p.Title
	}
	if p.Date != nil {
		changes["date"] = *p.Date
	}
	if p.IsCompleted != nil {
		changes["is_completed"] = *p.IsCompleted
	}
	if p.Order != nil {
		changes["order"] = *p.Order
	}
	return changes
}
