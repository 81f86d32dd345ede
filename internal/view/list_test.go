package view

import (
	"testing"
	"time"

	"github.com/solodesk/solodesk/internal/model"
)

func rec(title string, status model.TaskStatus, due *time.Time) *model.TaskRecord {
	return &model.TaskRecord{Task: model.Task{Title: title, Status: status, DueDate: due}}
}

func onDay(today time.Time, offset int) *time.Time {
	d := today.AddDate(0, 0, offset)
	return &d
}

func TestGroupListPartition(t *testing.T) {
	// Monday, so +4 days is still inside the Sunday-ending week
	today := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	tasks := []*model.TaskRecord{
		rec("late", model.StatusTodo, onDay(today, -1)),
		rec("now", model.StatusInProgress, onDay(today, 0)),
		rec("next", model.StatusTodo, onDay(today, 1)),
		rec("week", model.StatusTodo, onDay(today, 4)),
		rec("future", model.StatusTodo, onDay(today, 30)),
		rec("floating", model.StatusTodo, nil),
		rec("finished", model.StatusDone, onDay(today, -3)),
	}
	buckets := GroupList(tasks, today)

	wantOrder := []BucketKey{BucketOverdue, BucketToday, BucketTomorrow, BucketThisWeek, BucketLater, BucketNoDate, BucketCompleted}
	if len(buckets) != len(wantOrder) {
		t.Fatalf("bucket count = %d, want %d", len(buckets), len(wantOrder))
	}
	total := 0
	for i, b := range buckets {
		if b.Key != wantOrder[i] {
			t.Fatalf("bucket %d = %s, want %s", i, b.Key, wantOrder[i])
		}
		if len(b.Tasks) != 1 {
			t.Fatalf("bucket %s holds %d tasks, want 1", b.Key, len(b.Tasks))
		}
		total += len(b.Tasks)
	}
	if total != len(tasks) {
		t.Fatalf("buckets hold %d tasks, want all %d", total, len(tasks))
	}
}

func TestGroupListDoneTrumpsDate(t *testing.T) {
	today := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	// overdue by date, but DONE goes to Completed regardless
	buckets := GroupList([]*model.TaskRecord{rec("old done", model.StatusDone, onDay(today, -5))}, today)
	if len(buckets) != 1 || buckets[0].Key != BucketCompleted {
		t.Fatalf("done task landed in %v", buckets)
	}
}

func TestGroupListOmitsEmptyBuckets(t *testing.T) {
	today := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	buckets := GroupList([]*model.TaskRecord{rec("now", model.StatusTodo, onDay(today, 0))}, today)
	if len(buckets) != 1 || buckets[0].Key != BucketToday {
		t.Fatalf("buckets = %v", buckets)
	}
	if !buckets[0].OpenByDefault {
		t.Fatal("today bucket should be open by default")
	}
}

func TestGroupListSundayWeekEdge(t *testing.T) {
	// on a Sunday the week ends today, so tomorrow is already "later"
	today := time.Date(2025, 3, 16, 9, 0, 0, 0, time.UTC)
	buckets := GroupList([]*model.TaskRecord{rec("in two days", model.StatusTodo, onDay(today, 2))}, today)
	if len(buckets) != 1 || buckets[0].Key != BucketLater {
		t.Fatalf("got %v, want later bucket", buckets)
	}
}
