// Package insights computes chart data from a store snapshot: straight-line
// goal projections, the momentum heatmap, and activity streaks. Everything
// here is a pure function; the store is never mutated.
package insights

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/alvaro/align-api/internal/models"
)

const dateLayout = "2006-01-02"

// projectionHorizonWeeks caps how far the curve extends.
const projectionHorizonWeeks = 12

var ErrInvalidPace = errors.New("insights: pace must be positive")

// ProjectionPoint is one week on the projected-vs-required curve, clamped
// at 100.
type ProjectionPoint struct {
	Week      string  `json:"week"`
	Projected float64 `json:"projected"`
	Target    float64 `json:"target"`
}

type Projection struct {
	GoalID          string            `json:"goalId"`
	Progress        int               `json:"progress"`
	Remaining       int               `json:"remaining"`
	Pace            float64           `json:"pace"` // % per week
	WeeksToComplete float64           `json:"weeksToComplete"`
	ProjectedFinish string            `json:"projectedFinish"` // YYYY-MM-DD
	RequiredPace    float64           `json:"requiredPace"`    // % per week to hit deadline
	OnTrack         bool              `json:"onTrack"`
	Curve           []ProjectionPoint `json:"curve"`
}

// Project extrapolates a goal's completion at a constant pace and compares
// it against the pace the deadline demands.
func Project(goal models.Goal, pace float64, now time.Time) (Projection, error) {
	if pace <= 0 {
		return Projection{}, ErrInvalidPace
	}

	remaining := 100 - goal.Progress
	weeksToComplete := float64(remaining) / pace
	finish := now.AddDate(0, 0, int(math.Round(weeksToComplete*7)))

	requiredPace := 100.0
	onTrack := false
	if deadline, err := time.Parse(dateLayout, goal.Deadline); err == nil {
		weeksToDeadline := deadline.Sub(now).Hours() / (24 * 7)
		if weeksToDeadline > 0 {
			requiredPace = float64(remaining) / weeksToDeadline
		}
		onTrack = !finish.After(deadline)
	}

	curve := []ProjectionPoint{{
		Week:      "Now",
		Projected: float64(goal.Progress),
		Target:    float64(goal.Progress),
	}}
	projected := float64(goal.Progress)
	for week := 1; projected < 100 && week <= projectionHorizonWeeks; week++ {
		projected += pace
		curve = append(curve, ProjectionPoint{
			Week:      fmt.Sprintf("+%dw", week),
			Projected: math.Min(100, projected),
			Target:    math.Min(100, float64(goal.Progress)+requiredPace*float64(week)),
		})
	}

	return Projection{
		GoalID:          goal.ID.String(),
		Progress:        goal.Progress,
		Remaining:       remaining,
		Pace:            pace,
		WeeksToComplete: weeksToComplete,
		ProjectedFinish: finish.Format(dateLayout),
		RequiredPace:    requiredPace,
		OnTrack:         onTrack,
		Curve:           curve,
	}, nil
}

// DayIntensity scores a calendar date 0-4 for the heatmap: one point for
// any completed task, another past two, one for a check-in, and one for
// energy above 3.
func DayIntensity(tasks []models.Task, logs []models.DayLog, date string) int {
	completed := 0
	for _, t := range tasks {
		if t.Date == date && t.IsCompleted {
			completed++
		}
	}

	score := 0
	if completed > 0 {
		score++
	}
	if completed > 2 {
		score++
	}
	for _, l := range logs {
		if l.Date == date {
			score++
			if l.EnergyLevel > 3 {
				score++
			}
			break
		}
	}
	if score > 4 {
		score = 4
	}
	return score
}

// Streak counts consecutive days with activity, walking back from today.
// A quiet today does not break the streak; it just does not count yet.
func Streak(tasks []models.Task, logs []models.DayLog, today time.Time) int {
	active := make(map[string]bool)
	for _, t := range tasks {
		if t.IsCompleted {
			active[t.Date] = true
		}
	}
	for _, l := range logs {
		active[l.Date] = true
	}

	streak := 0
	d := today
	for streak <= 365 {
		if active[d.Format(dateLayout)] {
			streak++
		} else if !sameDay(d, today) {
			break
		}
		d = d.AddDate(0, 0, -1)
	}
	return streak
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}

// MomentumDay is one heatmap cell.
type MomentumDay struct {
	Date      string `json:"date"`
	Intensity int    `json:"intensity"`
}

// Momentum builds the heatmap cells for a YYYY-MM month plus the current
// streak.
func Momentum(tasks []models.Task, logs []models.DayLog, month string, today time.Time) ([]MomentumDay, int, error) {
	start, err := time.Parse("2006-01", month)
	if err != nil {
		return nil, 0, fmt.Errorf("insights: invalid month %q: %w", month, err)
	}

	var days []MomentumDay
	for d := start; d.Month() == start.Month(); d = d.AddDate(0, 0, 1) {
		date := d.Format(dateLayout)
		days = append(days, MomentumDay{
			Date:      date,
			Intensity: DayIntensity(tasks, logs, date),
		})
	}
	return days, Streak(tasks, logs, today), nil
}
