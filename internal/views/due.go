package views

import (
	"time"

	"github.com/adanyl0v/go-taskboard/internal/models"
)

type DueClass string

const (
	DueNone     DueClass = "none"
	DueToday    DueClass = "dueToday"
	DueUpcoming DueClass = "upcoming"
	DueOverdue  DueClass = "overdue"
)

// ClassifyDueDate compares the task's due day with the calendar day of
// today, ignoring time of day. Completed tasks are always DueNone: they
// are never overdue and no longer count as due.
func ClassifyDueDate(task models.Task, today time.Time) DueClass {
	if task.DueDate == nil || task.IsCompleted() {
		return DueNone
	}

	switch task.DueDate.Compare(models.DateOf(today)) {
	case 0:
		return DueToday
	case 1:
		return DueUpcoming
	default:
		return DueOverdue
	}
}

type Counts struct {
	All       int `json:"all" yaml:"all"`
	Today     int `json:"today" yaml:"today"`
	Upcoming  int `json:"upcoming" yaml:"upcoming"`
	Overdue   int `json:"overdue" yaml:"overdue"`
	Completed int `json:"completed" yaml:"completed"`
}

func CountByCategory(tasks []models.Task, today time.Time) Counts {
	counts := Counts{All: len(tasks)}
	for _, t := range tasks {
		if t.IsCompleted() {
			counts.Completed++
		}

		switch ClassifyDueDate(t, today) {
		case DueToday:
			counts.Today++
		case DueUpcoming:
			counts.Upcoming++
		case DueOverdue:
			counts.Overdue++
		}
	}
	return counts
}

type Notice struct {
	TaskID string   `json:"taskId"`
	Title  string   `json:"title"`
	Kind   DueClass `json:"kind"`
}

// DueNotices lists pending tasks that are due today or overdue, in
// collection order.
func DueNotices(tasks []models.Task, today time.Time) []Notice {
	notices := make([]Notice, 0)
	for _, t := range tasks {
		class := ClassifyDueDate(t, today)
		if class != DueToday && class != DueOverdue {
			continue
		}
		notices = append(notices, Notice{
			TaskID: t.ID,
			Title:  t.Title,
			Kind:   class,
		})
	}
	return notices
}
