package reorder

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/adanyl0v/go-taskboard/internal/models"
)

func collection(ids ...string) []models.Task {
	tasks := make([]models.Task, len(ids))
	for i, id := range ids {
		tasks[i] = models.Task{ID: id, Title: id}
	}
	return tasks
}

func ids(tasks []models.Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.ID
	}
	return out
}

func TestReconcile(t *testing.T) {
	tests := []struct {
		name    string
		ordered []string
		want    []string
	}{
		{"filtered view keeps hidden tasks in place", []string{"A", "C"}, []string{"A", "C", "B", "D"}},
		{"swap within view", []string{"C", "A"}, []string{"C", "A", "B", "D"}},
		{"full reorder", []string{"D", "C", "B", "A"}, []string{"D", "C", "B", "A"}},
		{"empty order keeps collection", nil, []string{"A", "B", "C", "D"}},
		{"stale ids are ignored", []string{"X", "B", "Y"}, []string{"B", "A", "C", "D"}},
		{"duplicates are placed once", []string{"B", "B", "A"}, []string{"B", "A", "C", "D"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			canonical := collection("A", "B", "C", "D")
			got := Reconcile(canonical, tt.ordered)

			assert.Equal(t, tt.want, ids(got))
			assert.Equal(t, []string{"A", "B", "C", "D"}, ids(canonical))
		})
	}
}

func TestReconcileIsPermutation(t *testing.T) {
	canonical := collection("A", "B", "C", "D", "E")
	got := Reconcile(canonical, []string{"E", "nope", "C", "E"})

	assert.ElementsMatch(t, ids(canonical), ids(got))
}

func TestStale(t *testing.T) {
	canonical := collection("A", "B")

	assert.Equal(t, []string{"X"}, Stale(canonical, []string{"A", "X", "B"}))
	assert.Empty(t, Stale(canonical, []string{"B", "A"}))
}
