package services

import (
	"sync"
	"time"
)

type Op string

const (
	OpLoad            Op = "load"
	OpAddTask         Op = "add_task"
	OpUpdateTask      Op = "update_task"
	OpDeleteTask      Op = "delete_task"
	OpToggleStatus    Op = "toggle_status"
	OpSetPriority     Op = "set_priority"
	OpAddSubtask      Op = "add_subtask"
	OpToggleSubtask   Op = "toggle_subtask"
	OpDeleteSubtask   Op = "delete_subtask"
	OpSetTasks        Op = "set_tasks"
	OpReorder         Op = "reorder"
	OpSelection       Op = "selection"
	OpBulkComplete    Op = "bulk_complete"
	OpBulkPriority    Op = "bulk_priority"
	OpBulkDelete      Op = "bulk_delete"
	OpBulkToggleState Op = "bulk_toggle_status"
)

// Event announces a state change. TaskIDs names the tasks the operation
// touched; it is empty for collection-wide changes.
type Event struct {
	Op      Op        `json:"op"`
	TaskIDs []string  `json:"taskIds,omitempty"`
	At      time.Time `json:"at"`
}

// bus fans events out to subscriber channels.
type bus struct {
	mu   sync.RWMutex
	subs map[chan Event]struct{}
}

func newBus() *bus {
	return &bus{subs: make(map[chan Event]struct{})}
}

func (b *bus) publish(e Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for ch := range b.subs {
		select {
		case ch <- e:
		default:
			// subscriber is behind; drop rather than block the store
		}
	}
}

func (b *bus) subscribe() chan Event {
	ch := make(chan Event, 64)
	b.mu.Lock()
	b.subs[ch] = struct{}{}
	b.mu.Unlock()
	return ch
}

func (b *bus) unsubscribe(ch chan Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.subs[ch]; !ok {
		return
	}
	delete(b.subs, ch)
	close(ch)
}
