package views

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adanyl0v/go-taskboard/internal/models"
)

var testToday = time.Date(2024, time.March, 10, 15, 0, 0, 0, time.UTC)

func date(s string) *models.Date {
	d, err := models.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return &d
}

func task(id, title string, opts ...func(*models.Task)) models.Task {
	t := models.Task{ID: id, Title: title}
	for _, opt := range opts {
		opt(&t)
	}
	t.Normalize()
	return t
}

func due(s string) func(*models.Task) {
	return func(t *models.Task) { t.DueDate = date(s) }
}

func priority(p models.Priority) func(*models.Task) {
	return func(t *models.Task) { t.Priority = p }
}

func completed(t *models.Task) {
	t.Status = models.StatusCompleted
}

func ids(tasks []models.Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.ID
	}
	return out
}

func TestFilterByStatus(t *testing.T) {
	tasks := []models.Task{
		task("a", "a"),
		task("b", "b", completed),
		task("c", "c"),
	}

	assert.Equal(t, []string{"a", "b", "c"}, ids(FilterByStatus(tasks, FilterAll)))
	assert.Equal(t, []string{"a", "c"}, ids(FilterByStatus(tasks, FilterActive)))
	assert.Equal(t, []string{"b"}, ids(FilterByStatus(tasks, FilterCompleted)))
}

func TestFilterBySearch(t *testing.T) {
	tasks := []models.Task{
		task("a", "Buy MILK"),
		task("b", "Call mom"),
		task("c", "milkshake recipe"),
	}

	assert.Equal(t, []string{"a", "c"}, ids(FilterBySearch(tasks, "  Milk ")))
	assert.Equal(t, []string{"a", "b", "c"}, ids(FilterBySearch(tasks, "   ")))
	assert.Empty(t, FilterBySearch(tasks, "bread"))
}

func TestSortByDueDateNullsLastBothDirections(t *testing.T) {
	tasks := []models.Task{
		task("none1", "x"),
		task("late", "x", due("2024-05-01")),
		task("none2", "x"),
		task("early", "x", due("2024-01-01")),
	}

	asc := SortTasks(tasks, SortDueDate, Asc)
	assert.Equal(t, []string{"early", "late", "none1", "none2"}, ids(asc))

	desc := SortTasks(tasks, SortDueDate, Desc)
	assert.Equal(t, []string{"late", "early", "none1", "none2"}, ids(desc))
}

func TestSortIsStable(t *testing.T) {
	tasks := []models.Task{
		task("a", "x", priority(models.PriorityHigh)),
		task("b", "x", priority(models.PriorityLow)),
		task("c", "x", priority(models.PriorityHigh)),
		task("d", "x", priority(models.PriorityLow)),
	}

	assert.Equal(t, []string{"b", "d", "a", "c"}, ids(SortTasks(tasks, SortPriority, Asc)))
	assert.Equal(t, []string{"a", "c", "b", "d"}, ids(SortTasks(tasks, SortPriority, Desc)))
}

func TestSortByTitleIgnoresCase(t *testing.T) {
	tasks := []models.Task{
		task("1", "banana"),
		task("2", "Apple"),
		task("3", "cherry"),
	}

	assert.Equal(t, []string{"2", "1", "3"}, ids(SortTasks(tasks, SortTitle, Asc)))
	assert.Equal(t, []string{"3", "1", "2"}, ids(SortTasks(tasks, SortTitle, Desc)))
}

func TestSortByStatusPutsPendingFirst(t *testing.T) {
	tasks := []models.Task{
		task("done", "x", completed),
		task("open", "x"),
	}

	assert.Equal(t, []string{"open", "done"}, ids(SortTasks(tasks, SortStatus, Asc)))
}

func TestSortDoesNotMutateInput(t *testing.T) {
	tasks := []models.Task{
		task("b", "b"),
		task("a", "a"),
	}

	_ = SortTasks(tasks, SortTitle, Asc)
	assert.Equal(t, []string{"b", "a"}, ids(tasks))

	assert.Equal(t, []string{"b", "a"}, ids(SortTasks(tasks, SortNone, Asc)))
}

func TestParseSortKeyAndDirection(t *testing.T) {
	key, err := ParseSortKey("due_date")
	require.NoError(t, err)
	assert.Equal(t, SortDueDate, key)

	_, err = ParseSortKey("color")
	assert.Error(t, err)

	dir, err := ParseDirection("")
	require.NoError(t, err)
	assert.Equal(t, Asc, dir)

	_, err = ParseDirection("sideways")
	assert.Error(t, err)
}

func TestClassifyDueDate(t *testing.T) {
	tests := []struct {
		name string
		task models.Task
		want DueClass
	}{
		{"no due date", task("a", "x"), DueNone},
		{"due today", task("a", "x", due("2024-03-10")), DueToday},
		{"due tomorrow", task("a", "x", due("2024-03-11")), DueUpcoming},
		{"due yesterday", task("a", "x", due("2024-03-09")), DueOverdue},
		{"completed and past", task("a", "x", due("2024-03-01"), completed), DueNone},
		{"completed and today", task("a", "x", due("2024-03-10"), completed), DueNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyDueDate(tt.task, testToday))
		})
	}
}

func TestClassifyDueDateIgnoresTimeOfDay(t *testing.T) {
	tk := task("a", "x", due("2024-03-10"))

	morning := time.Date(2024, time.March, 10, 0, 0, 1, 0, time.UTC)
	night := time.Date(2024, time.March, 10, 23, 59, 59, 0, time.UTC)
	assert.Equal(t, DueToday, ClassifyDueDate(tk, morning))
	assert.Equal(t, DueToday, ClassifyDueDate(tk, night))
}

func TestCountByCategory(t *testing.T) {
	tasks := []models.Task{
		task("today", "x", due("2024-03-10")),
		task("today-done", "x", due("2024-03-10"), completed),
		task("soon", "x", due("2024-03-20")),
		task("late", "x", due("2024-02-01")),
		task("undated", "x"),
		task("undated-done", "x", completed),
	}

	assert.Equal(t, Counts{
		All:       6,
		Today:     1,
		Upcoming:  1,
		Overdue:   1,
		Completed: 2,
	}, CountByCategory(tasks, testToday))

	assert.Equal(t, Counts{}, CountByCategory(nil, testToday))
}

func TestDueNotices(t *testing.T) {
	tasks := []models.Task{
		task("soon", "Soon", due("2024-03-20")),
		task("late", "Late", due("2024-02-01")),
		task("today", "Today", due("2024-03-10")),
		task("done", "Done", due("2024-03-10"), completed),
	}

	assert.Equal(t, []Notice{
		{TaskID: "late", Title: "Late", Kind: DueOverdue},
		{TaskID: "today", Title: "Today", Kind: DueToday},
	}, DueNotices(tasks, testToday))

	assert.NotNil(t, DueNotices(nil, testToday))
}

func TestApplyComposesFilterSearchSort(t *testing.T) {
	tasks := []models.Task{
		task("1", "report draft", due("2024-04-01")),
		task("2", "report final", due("2024-03-15")),
		task("3", "report archive", due("2024-03-01"), completed),
		task("4", "groceries", due("2024-03-12")),
	}

	q, err := ParseQuery("active", "REPORT", "dueDate", "asc")
	require.NoError(t, err)
	assert.Equal(t, []string{"2", "1"}, ids(Apply(tasks, q)))

	_, err = ParseQuery("archived", "", "", "")
	assert.Error(t, err)
}
