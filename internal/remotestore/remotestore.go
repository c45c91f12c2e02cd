// Package remotestore is the CRUD surface over the remote backend's four
// collections. Every query is scoped to the owning user; multi-row
// operations issue one call per row (no batching).
package remotestore

import (
	"fmt"

	"github.com/alvaro/align-api/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Visions

// ListVisions returns the user's visions in display order.
func (s *Store) ListVisions(userID uuid.UUID) ([]models.Vision, error) {
	var visions []models.Vision
	err := s.db.Where("user_id = ?", userID).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "order"}}).
		Find(&visions).Error
	if err != nil {
		return nil, fmt.Errorf("list visions: %w", err)
	}
	return visions, nil
}

func (s *Store) InsertVision(v *models.Vision) error {
	if err := s.db.Create(v).Error; err != nil {
		return fmt.Errorf("insert vision: %w", err)
	}
	return nil
}

func (s *Store) UpdateVision(userID, id uuid.UUID, changes map[string]any) error {
	if len(changes) == 0 {
		return nil
	}
	err := s.db.Model(&models.Vision{}).
		Where("user_id = ? AND id = ?", userID, id).
		Updates(changes).Error
	if err != nil {
		return fmt.Errorf("update vision: %w", err)
	}
	return nil
}

func (s *Store) DeleteVision(userID, id uuid.UUID) error {
	err := s.db.Where("user_id = ?", userID).Delete(&models.Vision{}, "id = ?", id).Error
	if err != nil {
		return fmt.Errorf("delete vision: %w", err)
	}
	return nil
}

// Goals

func (s *Store) ListGoals(userID uuid.UUID) ([]models.Goal, error) {
	var goals []models.Goal
	if err := s.db.Where("user_id = ?", userID).Find(&goals).Error; err != nil {
		return nil, fmt.Errorf("list goals: %w", err)
	}
	return goals, nil
}

func (s *Store) InsertGoal(g *models.Goal) error {
	if err := s.db.Create(g).Error; err != nil {
		return fmt.Errorf("insert goal: %w", err)
	}
	return nil
}

func (s *Store) UpdateGoal(userID, id uuid.UUID, changes map[string]any) error {
	if len(changes) == 0 {
		return nil
	}
	err := s.db.Model(&models.Goal{}).
		Where("user_id = ? AND id = ?", userID, id).
		Updates(changes).Error
	if err != nil {
		return fmt.Errorf("update goal: %w", err)
	}
	return nil
}

func (s *Store) DeleteGoal(userID, id uuid.UUID) error {
	err := s.db.Where("user_id = ?", userID).Delete(&models.Goal{}, "id = ?", id).Error
	if err != nil {
		return fmt.Errorf("delete goal: %w", err)
	}
	return nil
}

// Tasks

func (s *Store) ListTasks(userID uuid.UUID) ([]models.Task, error) {
	var tasks []models.Task
	if err := s.db.Where("user_id = ?", userID).Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

func (s *Store) InsertTask(t *models.Task) error {
	if err := s.db.Create(t).Error; err != nil {
		return fmt.Errorf("insert task: %w", err)
	}
	return nil
}

func (s *Store) UpdateTask(userID, id uuid.UUID, changes map[string]any) error {
	if len(changes) == 0 {
		return nil
	}
	err := s.db.Model(&models.Task{}).
		Where("user_id = ? AND id = ?", userID, id).
		Updates(changes).Error
	if err != nil {
		return fmt.Errorf("update task: %w", err)
	}
	return nil
}

func (s *Store) DeleteTask(userID, id uuid.UUID) error {
	err := s.db.Where("user_id = ?", userID).Delete(&models.Task{}, "id = ?", id).Error
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	return nil
}

// Day logs

func (s *Store) ListLogs(userID uuid.UUID) ([]models.DayLog, error) {
	var logs []models.DayLog
	if err := s.db.Where("user_id = ?", userID).Find(&logs).Error; err != nil {
		return nil, fmt.Errorf("list day logs: %w", err)
	}
	return logs, nil
}

// UpsertLog writes the day's log, replacing any existing row for the same
// user and date. This keeps the one-log-per-date invariant on the remote
// side instead of piling up duplicate rows.
func (s *Store) UpsertLog(l *models.DayLog) error {
	err := s.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"energy_level", "focus_level", "progress_rating",
			"notes", "mood", "completed_task_count",
		}),
	}).Create(l).Error
	if err != nil {
		return fmt.Errorf("upsert day log: %w", err)
	}
	return nil
}
