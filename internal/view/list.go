// Package view holds the pure client-side derivations of the task set: the
// grouped list, the kanban board, and the calendar. Every function here is a
// pure transform over tasks plus a reference date.
package view

import (
	"time"

	"github.com/solodesk/solodesk/internal/model"
)

type BucketKey string

const (
	BucketOverdue   BucketKey = "overdue"
	BucketToday     BucketKey = "today"
	BucketTomorrow  BucketKey = "tomorrow"
	BucketThisWeek  BucketKey = "this_week"
	BucketLater     BucketKey = "later"
	BucketNoDate    BucketKey = "no_date"
	BucketCompleted BucketKey = "completed"
)

type ListBucket struct {
	Key           BucketKey           `json:"key"`
	Title         string              `json:"title"`
	Tasks         []*model.TaskRecord `json:"tasks"`
	OpenByDefault bool                `json:"open_by_default"`
}

var bucketMeta = []struct {
	key   BucketKey
	title string
	open  bool
}{
	{BucketOverdue, "Overdue", true},
	{BucketToday, "Today", true},
	{BucketTomorrow, "Tomorrow", true},
	{BucketThisWeek, "This Week", true},
	{BucketLater, "Later", false},
	{BucketNoDate, "No Date", false},
	{BucketCompleted, "Completed", false},
}

// GroupList partitions tasks into mutually exclusive date buckets. Active
// (non-done) tasks fall into exactly one of overdue/today/tomorrow/this-week/
// later/no-date; completed tasks form their own trailing bucket. Buckets with
// no tasks are omitted.
func GroupList(tasks []*model.TaskRecord, today time.Time) []ListBucket {
	byKey := map[BucketKey][]*model.TaskRecord{}
	for _, t := range tasks {
		if t.Status == model.StatusDone {
			byKey[BucketCompleted] = append(byKey[BucketCompleted], t)
			continue
		}
		k := dateBucket(t.DueDate, today)
		byKey[k] = append(byKey[k], t)
	}
	out := make([]ListBucket, 0, len(bucketMeta))
	for _, meta := range bucketMeta {
		ts := byKey[meta.key]
		if len(ts) == 0 {
			continue
		}
		out = append(out, ListBucket{Key: meta.key, Title: meta.title, Tasks: ts, OpenByDefault: meta.open})
	}
	return out
}

// dateBucket applies the precedence order: overdue, today, tomorrow, rest of
// this week, later, no date.
func dateBucket(due *time.Time, today time.Time) BucketKey {
	if due == nil {
		return BucketNoDate
	}
	d := model.DateOnly(*due)
	todayISO := model.DateOnly(today)
	switch {
	case d < todayISO:
		return BucketOverdue
	case d == todayISO:
		return BucketToday
	case d == model.DateOnly(today.AddDate(0, 0, 1)):
		return BucketTomorrow
	case d <= model.DateOnly(model.EndOfWeek(today)):
		return BucketThisWeek
	default:
		return BucketLater
	}
}
