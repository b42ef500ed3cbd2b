package views

import "github.com/adanyl0v/go-taskboard/internal/models"

// Query bundles the view parameters a task list is rendered with.
type Query struct {
	Status    StatusFilter
	Search    string
	SortKey   SortKey
	Direction Direction
}

func ParseQuery(status, search, sortKey, direction string) (Query, error) {
	var q Query
	var err error

	q.Status, err = ParseStatusFilter(status)
	if err != nil {
		return Query{}, err
	}
	q.SortKey, err = ParseSortKey(sortKey)
	if err != nil {
		return Query{}, err
	}
	q.Direction, err = ParseDirection(direction)
	if err != nil {
		return Query{}, err
	}
	q.Search = search
	return q, nil
}

// Apply filters by status, then by search term, then sorts.
func Apply(tasks []models.Task, q Query) []models.Task {
	out := FilterByStatus(tasks, q.Status)
	out = FilterBySearch(out, q.Search)
	return SortTasks(out, q.SortKey, q.Direction)
}
