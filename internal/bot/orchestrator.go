package bot

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/clintrovert/nudgebot/pkg/types"
)

// taskSource resolves the tracked lists and fetches classified tasks.
type taskSource interface {
	ResolveLists(ctx context.Context) ([]types.TrackedList, error)
	FetchAll(ctx context.Context, lists []types.TrackedList) ([]*types.Task, error)
}

// messageGenerator produces the chat text for one classified task.
type messageGenerator interface {
	Generate(ctx context.Context, task *types.Task) types.GeneratedMessage
}

// messageSender delivers one message to the chat channel.
type messageSender interface {
	Send(ctx context.Context, text string) error
}

// Orchestrator runs one fetch-generate-post cycle. Scheduling lives
// outside the process (cron); there is no loop here.
type Orchestrator struct {
	fetcher      taskSource
	generator    messageGenerator
	sender       messageSender
	logger       *zap.Logger
	postDelay    time.Duration
	skipWeekends bool

	now   func() time.Time
	sleep func(time.Duration)
}

// NewOrchestrator creates a new Orchestrator.
func NewOrchestrator(
	fetcher taskSource,
	generator messageGenerator,
	sender messageSender,
	postDelay time.Duration,
	skipWeekends bool,
	logger *zap.Logger,
) *Orchestrator {
	return &Orchestrator{
		fetcher:      fetcher,
		generator:    generator,
		sender:       sender,
		logger:       logger,
		postDelay:    postDelay,
		skipWeekends: skipWeekends,
		now:          time.Now,
		sleep:        time.Sleep,
	}
}

// Run executes a single reminder cycle. It returns an error only when
// nothing could be delivered at all: bad configuration or every list
// failing to fetch. Individual generation fallbacks and failed posts
// are logged and counted, not fatal.
func (o *Orchestrator) Run(ctx context.Context) error {
	now := o.now()
	if o.skipWeekends && (now.Weekday() == time.Saturday || now.Weekday() == time.Sunday) {
		o.logger.Info("weekend, skipping reminder run",
			zap.String("day", now.Weekday().String()),
		)
		return nil
	}

	lists, err := o.fetcher.ResolveLists(ctx)
	if err != nil {
		return err
	}

	tasks, err := o.fetcher.FetchAll(ctx, lists)
	if err != nil {
		return err
	}
	if len(tasks) == 0 {
		o.logger.Info("no tasks to remind about today")
		return nil
	}

	var sent, failed, fellBack int
	for i, task := range tasks {
		o.logger.Info("processing task",
			zap.Int("index", i+1),
			zap.Int("total", len(tasks)),
			zap.String("task_id", task.ID),
			zap.String("title", task.Title),
			zap.String("bucket", string(task.Bucket)),
			zap.String("list", task.ListName),
		)

		msg := o.generator.Generate(ctx, task)
		if msg.FromFallback() {
			fellBack++
		}

		if err := o.sender.Send(ctx, msg.Text); err != nil {
			failed++
			o.logger.Error("failed to post message",
				zap.String("task_id", task.ID),
				zap.Error(err),
			)
		} else {
			sent++
		}

		// Space posts out so the channel is not flooded.
		if o.postDelay > 0 && i < len(tasks)-1 {
			o.sleep(o.postDelay)
		}
	}

	o.logger.Info("reminder run complete",
		zap.Int("tasks", len(tasks)),
		zap.Int("sent", sent),
		zap.Int("failed_posts", failed),
		zap.Int("fallback_messages", fellBack),
	)
	return nil
}
