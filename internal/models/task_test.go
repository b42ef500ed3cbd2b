package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-03-01")
	require.NoError(t, err)
	assert.Equal(t, Date{Year: 2024, Month: time.March, Day: 1}, d)
	assert.Equal(t, "2024-03-01", d.String())

	d, err = ParseDate("2024-03-01T23:30:00Z")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-01", d.String())

	_, err = ParseDate("03/01/2024")
	assert.ErrorIs(t, err, ErrInvalidDueDate)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestDateCompare(t *testing.T) {
	a := Date{Year: 2024, Month: time.January, Day: 31}
	b := Date{Year: 2024, Month: time.February, Day: 1}

	assert.Equal(t, -1, a.Compare(b))
	assert.Equal(t, 1, b.Compare(a))
	assert.Equal(t, 0, a.Compare(a))
	assert.True(t, a.Before(b))
	assert.True(t, b.After(a))
}

func TestDateOfIgnoresTimeOfDay(t *testing.T) {
	late := time.Date(2024, time.May, 10, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, "2024-05-10", DateOf(late).String())
}

func TestTaskJSON(t *testing.T) {
	due := Date{Year: 2024, Month: time.June, Day: 2}
	task := Task{
		ID:       "t1",
		Title:    "Write report",
		DueDate:  &due,
		Priority: PriorityHigh,
		Status:   StatusPending,
		Subtasks: []Subtask{{ID: "s1", Text: "outline"}},
		Repeat:   RepeatWeekly,
	}

	b, err := json.Marshal(task)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"id": "t1",
		"title": "Write report",
		"dueDate": "2024-06-02",
		"priority": "high",
		"status": "pending",
		"subtasks": [{"id": "s1", "text": "outline", "completed": false}],
		"repeat": "weekly"
	}`, string(b))

	task.DueDate = nil
	b, err = json.Marshal(task)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"dueDate":null`)
}

func TestTaskUnmarshalLegacyRecord(t *testing.T) {
	var task Task
	err := json.Unmarshal([]byte(`{"id":"t1","title":"x","dueDate":"","status":"completed"}`), &task)
	require.NoError(t, err)

	task.Normalize()
	assert.Nil(t, task.DueDate)
	assert.Equal(t, PriorityMedium, task.Priority)
	assert.Equal(t, StatusCompleted, task.Status)
	assert.Equal(t, RepeatNone, task.Repeat)
	assert.NotNil(t, task.Subtasks)
	assert.Empty(t, task.Subtasks)
	require.NoError(t, task.Validate())
}

func TestTaskUnmarshalInvalidDate(t *testing.T) {
	var task Task
	err := json.Unmarshal([]byte(`{"id":"t1","dueDate":"tomorrow"}`), &task)
	assert.ErrorIs(t, err, ErrInvalidDueDate)
}

func TestTaskClone(t *testing.T) {
	due := Date{Year: 2024, Month: time.June, Day: 2}
	task := Task{
		ID:       "t1",
		DueDate:  &due,
		Subtasks: []Subtask{{ID: "s1", Text: "a"}},
	}

	c := task.Clone()
	c.DueDate.Day = 9
	c.Subtasks[0].Completed = true

	assert.Equal(t, 2, task.DueDate.Day)
	assert.False(t, task.Subtasks[0].Completed)
}

func TestTaskValidate(t *testing.T) {
	valid := Task{
		ID:       "t1",
		Priority: PriorityLow,
		Status:   StatusPending,
		Repeat:   RepeatNone,
		Subtasks: []Subtask{},
	}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*Task)
		want   error
	}{
		{"missing id", func(t *Task) { t.ID = " " }, ErrTaskIDRequired},
		{"bad priority", func(t *Task) { t.Priority = "urgent" }, ErrInvalidPriority},
		{"bad status", func(t *Task) { t.Status = "archived" }, ErrInvalidStatus},
		{"bad repeat", func(t *Task) { t.Repeat = "yearly" }, ErrInvalidRepeat},
		{"subtask without id", func(t *Task) { t.Subtasks = []Subtask{{Text: "a"}} }, ErrSubtaskIDRequired},
		{"duplicate subtask", func(t *Task) {
			t.Subtasks = []Subtask{{ID: "s", Text: "a"}, {ID: "s", Text: "b"}}
		}, ErrDuplicateSubtaskID},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task := valid.Clone()
			tt.mutate(&task)

			err := task.Validate()
			assert.ErrorIs(t, err, tt.want)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestValidateCollectionRejectsDuplicateIDs(t *testing.T) {
	a := Task{ID: "t1"}
	a.Normalize()

	err := ValidateCollection([]Task{a, a})
	assert.ErrorIs(t, err, ErrDuplicateTaskID)
}

func TestStatusAndPriority(t *testing.T) {
	assert.Equal(t, StatusCompleted, StatusPending.Toggled())
	assert.Equal(t, StatusPending, StatusCompleted.Toggled())
	assert.Less(t, StatusPending.Rank(), StatusCompleted.Rank())

	assert.Less(t, PriorityLow.Rank(), PriorityMedium.Rank())
	assert.Less(t, PriorityMedium.Rank(), PriorityHigh.Rank())

	p, err := ParsePriority(" HIGH ")
	require.NoError(t, err)
	assert.Equal(t, PriorityHigh, p)

	_, err = ParsePriority("urgent")
	assert.ErrorIs(t, err, ErrInvalidPriority)
}

func TestParseTheme(t *testing.T) {
	theme, err := ParseTheme("Light")
	require.NoError(t, err)
	assert.Equal(t, ThemeLight, theme)
	assert.Equal(t, ThemeDark, theme.Toggled())
	assert.Equal(t, ThemeDark, DefaultTheme)

	_, err = ParseTheme("sepia")
	assert.ErrorIs(t, err, ErrInvalidTheme)
}
