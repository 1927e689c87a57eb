package fetcher

import (
	"testing"
	"time"

	"github.com/clintrovert/nudgebot/pkg/types"
)

var classifyNow = time.Date(2024, 8, 14, 10, 30, 0, 0, time.UTC)

func datePtr(t time.Time) *time.Time { return &t }

func TestClassify(t *testing.T) {
	yesterday := classifyNow.AddDate(0, 0, -1)
	tomorrow := classifyNow.AddDate(0, 0, 1)

	tests := []struct {
		name       string
		task       types.Task
		wantBucket types.Bucket
		wantOK     bool
	}{
		{
			name:       "completed wins over overdue and unassigned",
			task:       types.Task{Completed: true, DueDate: datePtr(yesterday)},
			wantBucket: types.BucketCompleted,
			wantOK:     true,
		},
		{
			name:       "completed wins with future due date",
			task:       types.Task{Completed: true, DueDate: datePtr(tomorrow), Assignees: []string{"mike"}},
			wantBucket: types.BucketCompleted,
			wantOK:     true,
		},
		{
			name:       "no due date",
			task:       types.Task{Assignees: []string{"mike"}},
			wantBucket: types.BucketNoDueDate,
			wantOK:     true,
		},
		{
			name:       "no due date even when unassigned",
			task:       types.Task{},
			wantBucket: types.BucketNoDueDate,
			wantOK:     true,
		},
		{
			name:       "overdue",
			task:       types.Task{DueDate: datePtr(yesterday), Assignees: []string{"mike"}},
			wantBucket: types.BucketOverdue,
			wantOK:     true,
		},
		{
			name:       "overdue takes precedence over unassigned",
			task:       types.Task{DueDate: datePtr(yesterday)},
			wantBucket: types.BucketOverdue,
			wantOK:     true,
		},
		{
			name:       "due today",
			task:       types.Task{DueDate: datePtr(classifyNow.Add(5 * time.Hour)), Assignees: []string{"mike"}},
			wantBucket: types.BucketDueToday,
			wantOK:     true,
		},
		{
			name:       "due earlier today is still due today, not overdue",
			task:       types.Task{DueDate: datePtr(classifyNow.Add(-3 * time.Hour)), Assignees: []string{"mike"}},
			wantBucket: types.BucketDueToday,
			wantOK:     true,
		},
		{
			name:       "unassigned with future due date",
			task:       types.Task{DueDate: datePtr(tomorrow)},
			wantBucket: types.BucketUnassigned,
			wantOK:     true,
		},
		{
			name:   "assigned and on schedule is excluded",
			task:   types.Task{DueDate: datePtr(tomorrow), Assignees: []string{"mike"}},
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task := tt.task
			bucket, ok := Classify(&task, classifyNow)
			if ok != tt.wantOK {
				t.Fatalf("Classify() ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && bucket != tt.wantBucket {
				t.Errorf("Classify() bucket = %q, want %q", bucket, tt.wantBucket)
			}
		})
	}
}

func TestClassifyDaysOverdue(t *testing.T) {
	tests := []struct {
		daysAgo int
		want    int
	}{
		{1, 1},
		{4, 4},
		{30, 30},
	}

	for _, tt := range tests {
		task := types.Task{
			DueDate:   datePtr(classifyNow.AddDate(0, 0, -tt.daysAgo)),
			Assignees: []string{"mike"},
		}
		bucket, ok := Classify(&task, classifyNow)
		if !ok || bucket != types.BucketOverdue {
			t.Fatalf("expected overdue bucket, got %q ok=%v", bucket, ok)
		}
		if task.DaysOverdue != tt.want {
			t.Errorf("DaysOverdue = %d, want %d", task.DaysOverdue, tt.want)
		}
	}
}
