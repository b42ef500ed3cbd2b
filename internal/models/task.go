package models

import (
	"fmt"
	"strings"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

func ParsePriority(s string) (Priority, error) {
	p := Priority(strings.ToLower(strings.TrimSpace(s)))
	if !p.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidPriority, s)
	}
	return p, nil
}

func (p Priority) Valid() bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}

// Rank orders priorities numerically: high=3, medium=2, low=1.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	default:
		return 0
	}
}

type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
)

func (s Status) Valid() bool {
	return s == StatusPending || s == StatusCompleted
}

// Toggled returns the opposite status.
func (s Status) Toggled() Status {
	if s == StatusCompleted {
		return StatusPending
	}
	return StatusCompleted
}

// Rank puts pending before completed.
func (s Status) Rank() int {
	if s == StatusCompleted {
		return 2
	}
	return 1
}

// Repeat is descriptive metadata only; no next occurrence is ever generated.
type Repeat string

const (
	RepeatNone    Repeat = "none"
	RepeatDaily   Repeat = "daily"
	RepeatWeekly  Repeat = "weekly"
	RepeatMonthly Repeat = "monthly"
)

func ParseRepeat(s string) (Repeat, error) {
	r := Repeat(strings.ToLower(strings.TrimSpace(s)))
	if !r.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidRepeat, s)
	}
	return r, nil
}

func (r Repeat) Valid() bool {
	switch r {
	case RepeatNone, RepeatDaily, RepeatWeekly, RepeatMonthly:
		return true
	default:
		return false
	}
}

type Subtask struct {
	ID        string `json:"id" yaml:"id"`
	Text      string `json:"text" yaml:"text"`
	Completed bool   `json:"completed" yaml:"completed"`
}

type Task struct {
	ID       string    `json:"id" yaml:"id"`
	Title    string    `json:"title" yaml:"title"`
	DueDate  *Date     `json:"dueDate" yaml:"dueDate"`
	Priority Priority  `json:"priority" yaml:"priority"`
	Status   Status    `json:"status" yaml:"status"`
	Notes    string    `json:"notes,omitempty" yaml:"notes,omitempty"`
	Subtasks []Subtask `json:"subtasks" yaml:"subtasks"`
	Repeat   Repeat    `json:"repeat" yaml:"repeat"`
}

// Clone returns a deep copy so that callers never share the due date or
// the subtask slice with the original.
func (t Task) Clone() Task {
	c := t
	if t.DueDate != nil {
		d := *t.DueDate
		c.DueDate = &d
	}
	if t.Subtasks != nil {
		c.Subtasks = make([]Subtask, len(t.Subtasks))
		copy(c.Subtasks, t.Subtasks)
	}
	return c
}

// Normalize fills the defaults of fields older payloads may lack.
func (t *Task) Normalize() {
	if t.Priority == "" {
		t.Priority = PriorityMedium
	}
	if t.Status == "" {
		t.Status = StatusPending
	}
	if t.Repeat == "" {
		t.Repeat = RepeatNone
	}
	if t.Subtasks == nil {
		t.Subtasks = []Subtask{}
	}
	if t.DueDate != nil && t.DueDate.IsZero() {
		t.DueDate = nil
	}
}

// Validate checks a stored task. It accepts a blank title because stored
// and legacy records may carry one; creation and UpdateTask reject it.
func (t Task) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return ErrTaskIDRequired
	}
	if !t.Priority.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidPriority, t.Priority)
	}
	if !t.Status.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, t.Status)
	}
	if !t.Repeat.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidRepeat, t.Repeat)
	}
	return ValidateSubtasks(t.Subtasks)
}

func ValidateSubtasks(subtasks []Subtask) error {
	seen := make(map[string]struct{}, len(subtasks))
	for _, s := range subtasks {
		if strings.TrimSpace(s.ID) == "" {
			return ErrSubtaskIDRequired
		}
		if _, ok := seen[s.ID]; ok {
			return fmt.Errorf("%w: %q", ErrDuplicateSubtaskID, s.ID)
		}
		seen[s.ID] = struct{}{}
	}
	return nil
}

// ValidateCollection checks every task and the uniqueness of task ids.
func ValidateCollection(tasks []Task) error {
	seen := make(map[string]struct{}, len(tasks))
	for _, t := range tasks {
		err := t.Validate()
		if err != nil {
			return fmt.Errorf("task %q: %w", t.ID, err)
		}
		if _, ok := seen[t.ID]; ok {
			return fmt.Errorf("%w: %q", ErrDuplicateTaskID, t.ID)
		}
		seen[t.ID] = struct{}{}
	}
	return nil
}

func (t Task) IsCompleted() bool {
	return t.Status == StatusCompleted
}

// SubtaskIndex returns the position of the subtask with the given id or -1.
func (t Task) SubtaskIndex(id string) int {
	for i, s := range t.Subtasks {
		if s.ID == id {
			return i
		}
	}
	return -1
}
