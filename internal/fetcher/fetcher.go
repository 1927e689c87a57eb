package fetcher

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/clintrovert/nudgebot/internal/clickup"
	"github.com/clintrovert/nudgebot/internal/config"
	"github.com/clintrovert/nudgebot/pkg/types"
)

// ErrNoLists indicates that neither a config file nor a legacy list id
// yielded anything to fetch.
var ErrNoLists = errors.New("no clickup lists configured")

// FetchError is a per-list tracking-API failure. One failing list is
// skipped; the run only dies when every list fails.
type FetchError struct {
	ListID   string
	ListName string
	Err      error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("failed to fetch list %q (%s): %v", e.ListName, e.ListID, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Fetcher resolves the tracked list set and produces classified tasks.
type Fetcher struct {
	client *clickup.Client
	cfg    config.Config
	logger *zap.Logger
	now    func() time.Time
}

// New creates a new Fetcher.
func New(client *clickup.Client, cfg config.Config, logger *zap.Logger) *Fetcher {
	return &Fetcher{
		client: client,
		cfg:    cfg,
		logger: logger,
		now:    time.Now,
	}
}

// ResolveLists returns the enabled tracked lists for this run. The
// multi-list config file takes precedence; a bare CLICKUP_LIST_ID is
// the legacy single-list mode. When a team id is configured, sprint
// auto-discovery runs first and merges its findings into the file.
func (f *Fetcher) ResolveLists(ctx context.Context) ([]types.TrackedList, error) {
	if f.cfg.ClickUpTeamID != "" {
		if err := f.discoverAndMerge(ctx); err != nil {
			// Discovery failures never block the run; configured
			// lists still get their reminders.
			f.logger.Warn("sprint discovery failed", zap.Error(err))
		}
	}

	listCfg, err := config.LoadListConfig(f.cfg.ListConfigFile)
	if err != nil {
		return nil, err
	}

	if len(listCfg.Lists) > 0 {
		enabled := make([]types.TrackedList, 0, len(listCfg.Lists))
		for _, l := range listCfg.Lists {
			if l.Enabled {
				enabled = append(enabled, l)
			}
		}
		f.logger.Info("resolved lists from config file",
			zap.String("file", f.cfg.ListConfigFile),
			zap.Int("configured", len(listCfg.Lists)),
			zap.Int("enabled", len(enabled)),
		)
		return enabled, nil
	}

	if f.cfg.ClickUpListID != "" {
		f.logger.Info("using single list from environment",
			zap.String("list_id", f.cfg.ClickUpListID),
		)
		return []types.TrackedList{{
			ID:      f.cfg.ClickUpListID,
			Name:    "Default List",
			Type:    types.ListTypeGeneral,
			Enabled: true,
		}}, nil
	}

	return nil, ErrNoLists
}

// FetchAll retrieves and classifies tasks from every list. Lists that
// fail are skipped; the error is non-nil only when all of them fail.
func (f *Fetcher) FetchAll(ctx context.Context, lists []types.TrackedList) ([]*types.Task, error) {
	if len(lists) == 0 {
		f.logger.Warn("no enabled lists to fetch")
		return nil, nil
	}

	var (
		all    []*types.Task
		failed []error
	)
	for _, list := range lists {
		tasks, err := f.fetchList(ctx, list)
		if err != nil {
			ferr := &FetchError{ListID: list.ID, ListName: list.Name, Err: err}
			f.logger.Error("skipping list after fetch failure",
				zap.String("list", list.Name),
				zap.String("list_id", list.ID),
				zap.Error(err),
			)
			failed = append(failed, ferr)
			continue
		}
		all = append(all, tasks...)
	}

	if len(failed) == len(lists) {
		return nil, fmt.Errorf("all %d lists failed to fetch: %w", len(lists), errors.Join(failed...))
	}

	f.logger.Info("fetched tasks across all lists",
		zap.Int("lists", len(lists)),
		zap.Int("failed_lists", len(failed)),
		zap.Int("tasks", len(all)),
	)
	return all, nil
}

// fetchList retrieves one list's tasks and classifies each into its
// bucket, dropping the ones not worth mentioning.
func (f *Fetcher) fetchList(ctx context.Context, list types.TrackedList) ([]*types.Task, error) {
	raw, err := f.client.ListTasks(ctx, list.ID)
	if err != nil {
		return nil, err
	}

	now := f.now()
	counts := map[types.Bucket]int{}
	skipped := 0

	tasks := make([]*types.Task, 0, len(raw))
	for i := range raw {
		task := normalize(&raw[i], list)
		bucket, ok := Classify(task, now)
		if !ok {
			skipped++
			continue
		}
		task.Bucket = bucket
		counts[bucket]++
		tasks = append(tasks, task)
	}

	f.logger.Info("classified list",
		zap.String("list", list.Name),
		zap.String("type", string(list.Type)),
		zap.Int("completed", counts[types.BucketCompleted]),
		zap.Int("due_today", counts[types.BucketDueToday]),
		zap.Int("overdue", counts[types.BucketOverdue]),
		zap.Int("unassigned", counts[types.BucketUnassigned]),
		zap.Int("no_due_date", counts[types.BucketNoDueDate]),
		zap.Int("skipped", skipped),
	)
	return tasks, nil
}

// normalize converts a raw ClickUp task into the domain task.
func normalize(raw *clickup.Task, list types.TrackedList) *types.Task {
	task := &types.Task{
		ID:        raw.ID,
		Title:     raw.Name,
		Assignees: raw.AssigneeNames(),
		Completed: raw.Completed(),
		ListID:    list.ID,
		ListName:  list.Name,
		ListType:  list.Type,
	}
	if task.Title == "" {
		task.Title = "Unnamed Task"
	}
	if raw.DueDate != nil {
		due := raw.DueDate.Time()
		task.DueDate = &due
	}
	return task
}
