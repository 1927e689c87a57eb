package fetcher

import (
	"time"

	"github.com/clintrovert/nudgebot/pkg/types"
)

// Classify derives the status bucket for a task. The second return is
// false when the task is not worth a reminder (incomplete, assigned,
// due in the future).
//
// Due dates are compared as calendar dates in now's time zone: a task
// is overdue when its due date falls on an earlier calendar day than
// now, and due today when both fall on the same day. Completion wins
// over everything else.
func Classify(task *types.Task, now time.Time) (types.Bucket, bool) {
	switch {
	case task.Completed:
		return types.BucketCompleted, true
	case task.DueDate == nil:
		return types.BucketNoDueDate, true
	}

	today := dateOnly(now, now.Location())
	due := dateOnly(*task.DueDate, now.Location())

	switch {
	case due.Before(today):
		task.DaysOverdue = int(today.Sub(due).Hours() / 24)
		return types.BucketOverdue, true
	case due.Equal(today):
		return types.BucketDueToday, true
	case len(task.Assignees) == 0:
		return types.BucketUnassigned, true
	default:
		// In progress, on schedule, assigned. Nothing to say.
		return "", false
	}
}

func dateOnly(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
