package storage

import (
	"context"
	"errors"
)

var ErrSlotEmpty = errors.New("slot is empty")

// Slot is a durable key-value cell holding one serialized payload per key.
type Slot interface {
	// Get returns the payload stored under key or ErrSlotEmpty
	// if nothing has been stored yet.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set replaces the payload stored under key.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	Close() error
}

const (
	tasksKeySuffix    = "tasks"
	themeKeySuffix    = "theme"
	notifiedKeySuffix = "notified"
)

// Keys holds the namespaced slot keys used by the repositories.
type Keys struct {
	Tasks    string
	Theme    string
	Notified string
}

func NewKeys(namespace string) Keys {
	if namespace == "" {
		namespace = "taskboard"
	}
	return Keys{
		Tasks:    namespace + ":" + tasksKeySuffix,
		Theme:    namespace + ":" + themeKeySuffix,
		Notified: namespace + ":" + notifiedKeySuffix,
	}
}
