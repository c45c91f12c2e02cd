package store

import (
	"encoding/json"
	"errors"

	"github.com/alvaro/align-api/internal/models"
)

// ErrInvalidBackup is returned for files that are not a backup object. An
// invalid file aborts the import before any slot is written.
var ErrInvalidBackup = errors.New("store: invalid backup file")

// Backup is the human-downloadable export: each key holds the same JSON
// shape as the corresponding local storage slot.
type Backup struct {
	Visions  []models.Vision `json:"visions"`
	Goals    []models.Goal   `json:"goals"`
	Tasks    []models.Task   `json:"tasks"`
	Logs     []models.DayLog `json:"logs"`
	Settings models.Settings `json:"settings"`
}

// ExportBackup reads the local slots, which in guest mode mirror memory
// exactly.
func (c *Coordinator) ExportBackup() Backup {
	b := Backup{
		Visions:  []models.Vision{},
		Goals:    []models.Goal{},
		Tasks:    []models.Task{},
		Logs:     []models.DayLog{},
		Settings: models.DefaultSettings(),
	}
	c.local.Get(keyVisions, &b.Visions)
	c.local.Get(keyGoals, &b.Goals)
	c.local.Get(keyTasks, &b.Tasks)
	c.local.Get(keyLogs, &b.Logs)
	c.local.Get(keySettings, &b.Settings)
	return b
}

// ImportBackup overwrites the local slots for exactly the keys present in
// the file, then reloads. Every present key must decode before anything is
// written, so a malformed file leaves no partial state behind.
func (c *Coordinator) ImportBackup(raw []byte) error {
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(raw, &keys); err != nil {
		return ErrInvalidBackup
	}

	writes := make(map[string]any)

	if data, ok := keys["visions"]; ok {
		var visions []models.Vision
		if err := json.Unmarshal(data, &visions); err != nil {
			return ErrInvalidBackup
		}
		writes[keyVisions] = visions
	}
	if data, ok := keys["goals"]; ok {
		var goals []models.Goal
		if err := json.Unmarshal(data, &goals); err != nil {
			return ErrInvalidBackup
		}
		writes[keyGoals] = goals
	}
	if data, ok := keys["tasks"]; ok {
		var tasks []models.Task
		if err := json.Unmarshal(data, &tasks); err != nil {
			return ErrInvalidBackup
		}
		writes[keyTasks] = tasks
	}
	if data, ok := keys["logs"]; ok {
		var logs []models.DayLog
		if err := json.Unmarshal(data, &logs); err != nil {
			return ErrInvalidBackup
		}
		writes[keyLogs] = logs
	}
	if data, ok := keys["settings"]; ok {
		var settings models.Settings
		if err := json.Unmarshal(data, &settings); err != nil {
			return ErrInvalidBackup
		}
		writes[keySettings] = settings
	}

	for key, v := range writes {
		if err := c.local.Set(key, v); err != nil {
			return err
		}
	}

	c.Reload()
	return nil
}
