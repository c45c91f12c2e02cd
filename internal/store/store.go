// Package store owns the in-memory collections and decides, per operation,
// whether persistence goes to the local slots or the remote backend.
//
// Every mutation is optimistic: memory changes first, persistence is
// best-effort afterwards. Remote failures are logged and swallowed and the
// in-memory state is not rolled back; see DESIGN.md for why that gap is
// kept.
package store

import (
	"sync"

	"github.com/alvaro/align-api/internal/localstore"
	"github.com/alvaro/align-api/internal/models"
	"github.com/alvaro/align-api/internal/remotestore"
	"github.com/alvaro/align-api/internal/session"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Local slot keys. The same keys appear in exported backups.
const (
	keyVisions  = "align_visions"
	keyGoals    = "align_goals"
	keyTasks    = "align_tasks"
	keyLogs     = "align_logs"
	keySettings = "align_settings"
)

type Coordinator struct {
	local   *localstore.Store
	remote  *remotestore.Store // nil when the remote backend is not configured
	session *session.Provider
	log     *logrus.Logger

	mu       sync.RWMutex
	visions  []models.Vision
	goals    []models.Goal
	tasks    []models.Task
	logs     []models.DayLog
	settings models.Settings
	loading  bool
}

// New builds the coordinator, subscribes to session changes, and performs
// the initial load from whichever source applies.
func New(local *localstore.Store, remote *remotestore.Store, sess *session.Provider, log *logrus.Logger) *Coordinator {
	c := &Coordinator{
		local:    local,
		remote:   remote,
		session:  sess,
		log:      log,
		settings: models.DefaultSettings(),
		loading:  true,
	}
	sess.OnChange(c.Reload)
	c.Reload()
	return c
}

// Reload discards all in-memory collections and re-fetches them from the
// applicable source. This is the only read path; individual actions never
// re-fetch. It also re-reads settings, which always come from local
// storage.
func (c *Coordinator) Reload() {
	c.mu.Lock()
	c.loading = true
	c.mu.Unlock()

	var (
		visions []models.Vision
		goals   []models.Goal
		tasks   []models.Task
		logs    []models.DayLog
	)

	if identity, ok := c.cloudIdentity(); ok {
		var err error
		if visions, err = c.remote.ListVisions(identity.UserID); err != nil {
			c.log.WithError(err).Warn("loading visions from remote failed")
		}
		if goals, err = c.remote.ListGoals(identity.UserID); err != nil {
			c.log.WithError(err).Warn("loading goals from remote failed")
		}
		if tasks, err = c.remote.ListTasks(identity.UserID); err != nil {
			c.log.WithError(err).Warn("loading tasks from remote failed")
		}
		if logs, err = c.remote.ListLogs(identity.UserID); err != nil {
			c.log.WithError(err).Warn("loading day logs from remote failed")
		}
		c.log.WithField("email", identity.Email).Info("loaded collections from remote")
	} else {
		c.local.Get(keyVisions, &visions)
		c.local.Get(keyGoals, &goals)
		c.local.Get(keyTasks, &tasks)
		c.local.Get(keyLogs, &logs)
		c.log.Info("loaded collections from local storage")
	}

	settings := models.DefaultSettings()
	c.local.Get(keySettings, &settings)

	c.mu.Lock()
	c.visions, c.goals, c.tasks, c.logs = visions, goals, tasks, logs
	c.settings = settings
	c.loading = false
	c.mu.Unlock()
}

// Loading is true while a full reload is in flight; it is the only
// operation the presentation layer blocks on.
func (c *Coordinator) Loading() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loading
}

// Snapshot returns copies of the current collections and settings.
func (c *Coordinator) Snapshot() models.AppState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return models.AppState{
		Visions:  append([]models.Vision(nil), c.visions...),
		Goals:    append([]models.Goal(nil), c.goals...),
		Tasks:    append([]models.Task(nil), c.tasks...),
		Logs:     append([]models.DayLog(nil), c.logs...),
		Settings: c.settings,
	}
}

// cloudIdentity reports the signed-in identity when remote persistence
// applies.
func (c *Coordinator) cloudIdentity() (session.Identity, bool) {
	if c.remote == nil {
		return session.Identity{}, false
	}
	return c.session.Current()
}

// persist runs a best-effort remote write. Failures are logged, never
// surfaced, and the optimistic in-memory state stands.
func (c *Coordinator) persist(what string, op func(*remotestore.Store) error) {
	if _, ok := c.cloudIdentity(); !ok {
		return
	}
	if err := op(c.remote); err != nil {
		c.log.WithError(err).Warnf("remote %s failed; keeping optimistic state", what)
	}
}

// saveLocalLocked rewrites a collection's slot wholesale. Guest mode only;
// with a session active the local slots are left untouched.
func (c *Coordinator) saveLocalLocked(key string, v any) {
	if _, ok := c.cloudIdentity(); ok {
		return
	}
	if err := c.local.Set(key, v); err != nil {
		c.log.WithError(err).Warnf("saving %s locally failed", key)
	}
}

// Visions

func (c *Coordinator) AddVision(req models.CreateVisionRequest) models.Vision {
	identity, _ := c.cloudIdentity()

	c.mu.Lock()
	vision := models.Vision{
		ID:          uuid.New(),
		UserID:      identity.UserID,
		Title:       req.Title,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		Timeframe:   req.Timeframe,
		Color:       req.Color,
		Order:       len(c.visions),
	}
	c.visions = append(c.visions, vision)
	c.saveLocalLocked(keyVisions, c.visions)
	c.mu.Unlock()

	c.persist("insert vision", func(r *remotestore.Store) error {
		return r.InsertVision(&vision)
	})
	return vision
}

func (c *Coordinator) UpdateVision(id uuid.UUID, patch models.VisionPatch) {
	c.mu.Lock()
	found := false
	for i := range c.visions {
		if c.visions[i].ID == id {
			patch.Apply(&c.visions[i])
			found = true
			break
		}
	}
	if found {
		c.saveLocalLocked(keyVisions, c.visions)
	}
	c.mu.Unlock()
	if !found {
		return
	}

	c.persist("update vision", func(r *remotestore.Store) error {
		identity, _ := c.session.Current()
		return r.UpdateVision(identity.UserID, id, patch.Changes())
	})
}

// DeleteVision removes the vision only. Goals and tasks that reference it
// keep their now-dangling ids; lookups resolve them to none.
func (c *Coordinator) DeleteVision(id uuid.UUID) {
	c.mu.Lock()
	kept := c.visions[:0]
	for _, v := range c.visions {
		if v.ID != id {
			kept = append(kept, v)
		}
	}
	c.visions = kept
	c.saveLocalLocked(keyVisions, c.visions)
	c.mu.Unlock()

	c.persist("delete vision", func(r *remotestore.Store) error {
		identity, _ := c.session.Current()
		return r.DeleteVision(identity.UserID, id)
	})
}

// ReorderVisions renumbers the set to match the given id sequence, 0-based
// and dense. Ids not present are ignored; visions missing from the sequence
// keep their relative order after the listed ones. One remote update is
// issued per vision.
func (c *Coordinator) ReorderVisions(ids []uuid.UUID) {
	c.mu.Lock()
	byID := make(map[uuid.UUID]int, len(c.visions))
	for i, v := range c.visions {
		byID[v.ID] = i
	}

	ordered := make([]models.Vision, 0, len(c.visions))
	seen := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		if i, ok := byID[id]; ok && !seen[id] {
			ordered = append(ordered, c.visions[i])
			seen[id] = true
		}
	}
	for _, v := range c.visions {
		if !seen[v.ID] {
			ordered = append(ordered, v)
		}
	}
	for i := range ordered {
		ordered[i].Order = i
	}
	c.visions = ordered
	c.saveLocalLocked(keyVisions, c.visions)
	snapshot := append([]models.Vision(nil), ordered...)
	c.mu.Unlock()

	c.persist("reorder visions", func(r *remotestore.Store) error {
		identity, _ := c.session.Current()
		for _, v := range snapshot {
			if err := r.UpdateVision(identity.UserID, v.ID, map[string]any{"order": v.Order}); err != nil {
				return err
			}
		}
		return nil
	})
}

// Goals

// AddGoal starts every goal at zero progress. The vision reference is the
// caller's responsibility and is not validated here.
func (c *Coordinator) AddGoal(req models.CreateGoalRequest) models.Goal {
	identity, _ := c.cloudIdentity()

	c.mu.Lock()
	goal := models.Goal{
		ID:           uuid.New(),
		UserID:       identity.UserID,
		VisionID:     req.VisionID,
		Title:        req.Title,
		Deadline:     req.Deadline,
		Progress:     0,
		IsCompleted:  false,
		TargetValue:  req.TargetValue,
		CurrentValue: req.CurrentValue,
		Unit:         req.Unit,
	}
	c.goals = append(c.goals, goal)
	c.saveLocalLocked(keyGoals, c.goals)
	c.mu.Unlock()

	c.persist("insert goal", func(r *remotestore.Store) error {
		return r.InsertGoal(&goal)
	})
	return goal
}

// UpdateGoal merges the patch and then re-couples progress and completion:
// progress is authoritative, an explicit isCompleted=true pulls progress to
// 100, and isCompleted always ends up equal to progress == 100.
func (c *Coordinator) UpdateGoal(id uuid.UUID, patch models.GoalPatch) {
	c.mu.Lock()
	found := false
	changes := patch.Changes()
	for i := range c.goals {
		if c.goals[i].ID != id {
			continue
		}
		g := &c.goals[i]
		patch.Apply(g)
		if patch.IsCompleted != nil && *patch.IsCompleted && patch.Progress == nil {
			g.Progress = 100
		}
		g.IsCompleted = g.Progress == 100
		if patch.Progress != nil || patch.IsCompleted != nil {
			changes["progress"] = g.Progress
			changes["is_completed"] = g.IsCompleted
		}
		found = true
		break
	}
	if found {
		c.saveLocalLocked(keyGoals, c.goals)
	}
	c.mu.Unlock()
	if !found {
		return
	}

	c.persist("update goal", func(r *remotestore.Store) error {
		identity, _ := c.session.Current()
		return r.UpdateGoal(identity.UserID, id, changes)
	})
}

// DeleteGoal does not cascade to tasks referencing the goal.
func (c *Coordinator) DeleteGoal(id uuid.UUID) {
	c.mu.Lock()
	kept := c.goals[:0]
	for _, g := range c.goals {
		if g.ID != id {
			kept = append(kept, g)
		}
	}
	c.goals = kept
	c.saveLocalLocked(keyGoals, c.goals)
	c.mu.Unlock()

	c.persist("delete goal", func(r *remotestore.Store) error {
		identity, _ := c.session.Current()
		return r.DeleteGoal(identity.UserID, id)
	})
}

// Tasks

func (c *Coordinator) AddTask(req models.CreateTaskRequest) models.Task {
	identity, _ := c.cloudIdentity()

	c.mu.Lock()
	task := models.Task{
		ID:          uuid.New(),
		UserID:      identity.UserID,
		GoalID:      req.GoalID,
		VisionID:    req.VisionID,
		Title:       req.Title,
		Date:        req.Date,
		IsCompleted: false,
		Order:       len(c.tasks),
	}
	c.tasks = append(c.tasks, task)
	c.saveLocalLocked(keyTasks, c.tasks)
	c.mu.Unlock()

	c.persist("insert task", func(r *remotestore.Store) error {
		return r.InsertTask(&task)
	})
	return task
}

// ToggleTask flips completion; a no-op for unknown ids.
func (c *Coordinator) ToggleTask(id uuid.UUID) {
	c.mu.Lock()
	found := false
	var newValue bool
	for i := range c.tasks {
		if c.tasks[i].ID == id {
			newValue = !c.tasks[i].IsCompleted
			c.tasks[i].IsCompleted = newValue
			found = true
			break
		}
	}
	if found {
		c.saveLocalLocked(keyTasks, c.tasks)
	}
	c.mu.Unlock()
	if !found {
		return
	}

	c.persist("toggle task", func(r *remotestore.Store) error {
		identity, _ := c.session.Current()
		return r.UpdateTask(identity.UserID, id, map[string]any{"is_completed": newValue})
	})
}

func (c *Coordinator) UpdateTask(id uuid.UUID, patch models.TaskPatch) {
	c.mu.Lock()
	found := false
	for i := range c.tasks {
		if c.tasks[i].ID == id {
			patch.Apply(&c.tasks[i])
			found = true
			break
		}
	}
	if found {
		c.saveLocalLocked(keyTasks, c.tasks)
	}
	c.mu.Unlock()
	if !found {
		return
	}

	c.persist("update task", func(r *remotestore.Store) error {
		identity, _ := c.session.Current()
		return r.UpdateTask(identity.UserID, id, patch.Changes())
	})
}

func (c *Coordinator) DeleteTask(id uuid.UUID) {
	c.mu.Lock()
	kept := c.tasks[:0]
	for _, t := range c.tasks {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	c.tasks = kept
	c.saveLocalLocked(keyTasks, c.tasks)
	c.mu.Unlock()

	c.persist("delete task", func(r *remotestore.Store) error {
		identity, _ := c.session.Current()
		return r.DeleteTask(identity.UserID, id)
	})
}

// Day logs

// AddLog writes the day's reflection. If a log for the same date already
// exists it is replaced in place; the remote path upserts on (user, date)
// so repeated check-ins never pile up rows.
func (c *Coordinator) AddLog(log models.DayLog) models.DayLog {
	if identity, ok := c.cloudIdentity(); ok {
		log.ID = uuid.New()
		log.UserID = identity.UserID
	}

	c.mu.Lock()
	replaced := false
	for i := range c.logs {
		if c.logs[i].Date == log.Date {
			c.logs[i] = log
			replaced = true
			break
		}
	}
	if !replaced {
		c.logs = append(c.logs, log)
	}
	c.saveLocalLocked(keyLogs, c.logs)
	c.mu.Unlock()

	c.persist("upsert day log", func(r *remotestore.Store) error {
		return r.UpsertLog(&log)
	})
	return log
}

// Settings

// UpdateSettings merges the patch and writes local storage synchronously,
// regardless of session state. Settings never touch the remote backend.
func (c *Coordinator) UpdateSettings(patch models.SettingsPatch) models.Settings {
	c.mu.Lock()
	patch.Apply(&c.settings)
	settings := c.settings
	c.mu.Unlock()

	if err := c.local.Set(keySettings, settings); err != nil {
		c.log.WithError(err).Warn("saving settings failed")
	}
	return settings
}

// ResetData clears the four in-memory collections. In guest mode the local
// slots are removed as well; with a session active the remote rows are left
// alone and will reappear on the next reload. Settings survive a reset.
func (c *Coordinator) ResetData() {
	_, signedIn := c.cloudIdentity()

	c.mu.Lock()
	c.visions, c.goals, c.tasks, c.logs = nil, nil, nil, nil
	c.mu.Unlock()

	if !signedIn {
		for _, key := range []string{keyVisions, keyGoals, keyTasks, keyLogs} {
			if err := c.local.Remove(key); err != nil {
				c.log.WithError(err).Warnf("removing %s failed", key)
			}
		}
	}
}
