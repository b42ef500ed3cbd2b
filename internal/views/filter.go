// Package views derives read-only projections of a task collection:
// filtered, searched and sorted lists, due date classes and badge counts.
// Every function works on the slice it is given and returns a new one;
// none of them mutate their input.
package views

import (
	"fmt"
	"strings"

	"github.com/adanyl0v/go-taskboard/internal/models"
)

type StatusFilter string

const (
	FilterAll       StatusFilter = "all"
	FilterActive    StatusFilter = "active"
	FilterCompleted StatusFilter = "completed"
)

// ParseStatusFilter maps an empty string to FilterAll.
func ParseStatusFilter(s string) (StatusFilter, error) {
	switch f := StatusFilter(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FilterAll, nil
	case FilterAll, FilterActive, FilterCompleted:
		return f, nil
	default:
		return "", fmt.Errorf("unknown status filter %q", s)
	}
}

func FilterByStatus(tasks []models.Task, filter StatusFilter) []models.Task {
	out := make([]models.Task, 0, len(tasks))
	for _, t := range tasks {
		switch filter {
		case FilterActive:
			if t.Status != models.StatusPending {
				continue
			}
		case FilterCompleted:
			if t.Status != models.StatusCompleted {
				continue
			}
		}
		out = append(out, t)
	}
	return out
}

// FilterBySearch keeps tasks whose title contains term, ignoring case.
// The term is trimmed first; a blank term keeps everything.
func FilterBySearch(tasks []models.Task, term string) []models.Task {
	term = strings.ToLower(strings.TrimSpace(term))

	out := make([]models.Task, 0, len(tasks))
	for _, t := range tasks {
		if term != "" && !strings.Contains(strings.ToLower(t.Title), term) {
			continue
		}
		out = append(out, t)
	}
	return out
}
