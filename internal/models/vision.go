package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Timeframe is the horizon a vision is set against.
type Timeframe string

const (
	TimeframeSixMonths  Timeframe = "6 months"
	TimeframeOneYear    Timeframe = "1 year"
	TimeframeThreeYears Timeframe = "3 years"
	TimeframeLife       Timeframe = "Life"
)

func (t Timeframe) Valid() bool {
	switch t {
	case TimeframeSixMonths, TimeframeOneYear, TimeframeThreeYears, TimeframeLife:
		return true
	}
	return false
}

// Vision is a top-level long-term aspiration. Order is a dense 0-based
// per-user display sequence; reordering renumbers the whole set.
type Vision struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	UserID      uuid.UUID `json:"-" gorm:"type:uuid;index"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	ImageURL    *string   `json:"imageUrl,omitempty" gorm:"column:image_url"`
	Timeframe   Timeframe `json:"timeframe"`
	Color       *string   `json:"color,omitempty"`
	Order       int       `json:"order" gorm:"column:order"`
}

func (v *Vision) BeforeCreate(tx *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}

type CreateVisionRequest struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	ImageURL    *string   `json:"imageUrl"`
	Timeframe   Timeframe `json:"timeframe"`
	Color       *string   `json:"color"`
}

// VisionPatch is a partial update; nil fields are left untouched.
type VisionPatch struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	ImageURL    *string    `json:"imageUrl"`
	Timeframe   *Timeframe `json:"timeframe"`
	Color       *string    `json:"color"`
}

func (p VisionPatch) Apply(v *Vision) {
	if p.Title != nil {
		v.Title = *p.Title
	}
	if p.Description != nil {
		v.Description = *p.Description
	}
	if p.ImageURL != nil {
		v.ImageURL = p.ImageURL
	}
	if p.Timeframe != nil {
		v.Timeframe = *p.Timeframe
	}
	if p.Color != nil {
		v.Color = p.Color
	}
}

// Changes returns the remote column assignments for the set fields.
func (p VisionPatch) Changes() map[string]any {
	changes := map[string]any{}
	if p.Title != nil {
		changes["title"] = *p.Title
	}
	if p.Description != nil {
		changes["description"] = *p.Description
	}
	if p.ImageURL != nil {
		changes["image_url"] = *p.ImageURL
	}
	if p.Timeframe != nil {
		changes["timeframe"] = *p.Timeframe
	}
	if p.Color != nil {
		changes["color"] = *p.Color
	}
	return changes
}
