package types

import (
	"time"
)

// ListType influences the tone of generated messages, never bucket assignment.
type ListType string

const (
	ListTypeSprint  ListType = "sprint"
	ListTypeFeature ListType = "feature"
	ListTypeBug     ListType = "bug"
	ListTypeGeneral ListType = "general"
)

// ListTypes enumerates every valid list type.
var ListTypes = []ListType{ListTypeSprint, ListTypeFeature, ListTypeBug, ListTypeGeneral}

// ParseListType normalizes a configured type tag, defaulting to general.
func ParseListType(s string) ListType {
	switch ListType(s) {
	case ListTypeSprint, ListTypeFeature, ListTypeBug:
		return ListType(s)
	default:
		return ListTypeGeneral
	}
}

// Bucket is the reminder category derived for a task.
type Bucket string

const (
	BucketCompleted  Bucket = "completed"
	BucketDueToday   Bucket = "due_today"
	BucketOverdue    Bucket = "overdue"
	BucketUnassigned Bucket = "unassigned"
	BucketNoDueDate  Bucket = "no_due_date"
)

// Buckets enumerates every bucket a task can land in.
var Buckets = []Bucket{BucketCompleted, BucketDueToday, BucketOverdue, BucketUnassigned, BucketNoDueDate}

// Task is a normalized ClickUp task together with its derived bucket and
// the list it came from.
type Task struct {
	ID          string
	Title       string
	Assignees   []string
	DueDate     *time.Time
	Completed   bool
	Bucket      Bucket
	DaysOverdue int
	ListID      string
	ListName    string
	ListType    ListType
}
