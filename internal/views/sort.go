package views

import (
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/adanyl0v/go-taskboard/internal/models"
)

type SortKey string

const (
	SortNone     SortKey = ""
	SortTitle    SortKey = "title"
	SortDueDate  SortKey = "dueDate"
	SortPriority SortKey = "priority"
	SortStatus   SortKey = "status"
	SortRepeat   SortKey = "repeat"
)

func ParseSortKey(s string) (SortKey, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return SortNone, nil
	case "title":
		return SortTitle, nil
	case "duedate", "due_date", "due":
		return SortDueDate, nil
	case "priority":
		return SortPriority, nil
	case "status":
		return SortStatus, nil
	case "repeat":
		return SortRepeat, nil
	default:
		return "", fmt.Errorf("unknown sort key %q", s)
	}
}

type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// ParseDirection maps an empty string to Asc.
func ParseDirection(s string) (Direction, error) {
	switch d := Direction(strings.ToLower(strings.TrimSpace(s))); d {
	case "":
		return Asc, nil
	case Asc, Desc:
		return d, nil
	default:
		return "", fmt.Errorf("unknown sort direction %q", s)
	}
}

// SortTasks returns a stably sorted copy of tasks. Equal keys keep their
// relative order. For SortDueDate, tasks without a due date always come
// last whatever the direction. SortNone returns the input order.
func SortTasks(tasks []models.Task, key SortKey, dir Direction) []models.Task {
	out := slices.Clone(tasks)
	if out == nil {
		out = []models.Task{}
	}
	if key == SortNone {
		return out
	}

	sign := 1
	if dir == Desc {
		sign = -1
	}

	var cmp func(a, b models.Task) int
	switch key {
	case SortTitle:
		c := collate.New(language.Und)
		cmp = func(a, b models.Task) int {
			return sign * c.CompareString(a.Title, b.Title)
		}
	case SortRepeat:
		c := collate.New(language.Und)
		cmp = func(a, b models.Task) int {
			return sign * c.CompareString(string(a.Repeat), string(b.Repeat))
		}
	case SortPriority:
		cmp = func(a, b models.Task) int {
			return sign * (a.Priority.Rank() - b.Priority.Rank())
		}
	case SortStatus:
		cmp = func(a, b models.Task) int {
			return sign * (a.Status.Rank() - b.Status.Rank())
		}
	case SortDueDate:
		cmp = func(a, b models.Task) int {
			switch {
			case a.DueDate == nil && b.DueDate == nil:
				return 0
			case a.DueDate == nil:
				return 1
			case b.DueDate == nil:
				return -1
			default:
				return sign * a.DueDate.Compare(*b.DueDate)
			}
		}
	default:
		return out
	}

	slices.SortStableFunc(out, cmp)
	return out
}
