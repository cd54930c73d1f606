package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/sma-schedule-editor/internal/models"
)

func TestConfirmationStoreTakeOnce(t *testing.T) {
	store := newConfirmationStore(time.Minute)
	now := time.Date(2025, 2, 10, 8, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	n := store.Save(pendingConfirmation{WorkspaceID: "ws-1", Confirmation: models.Confirmation{ID: "c1", CreatedAt: now}})
	assert.Equal(t, 1, n)

	_, ok := store.Get("c1")
	assert.True(t, ok)
	_, ok = store.Take("c1")
	assert.True(t, ok)
	_, ok = store.Take("c1")
	assert.False(t, ok)
}

func TestConfirmationStoreExpiry(t *testing.T) {
	store := newConfirmationStore(time.Minute)
	now := time.Date(2025, 2, 10, 8, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }
	store.Save(pendingConfirmation{WorkspaceID: "ws-1", Confirmation: models.Confirmation{ID: "old", CreatedAt: now}})

	now = now.Add(2 * time.Minute)
	_, ok := store.Get("old")
	assert.False(t, ok)

	store.Save(pendingConfirmation{WorkspaceID: "ws-1", Confirmation: models.Confirmation{ID: "a", CreatedAt: now.Add(-2 * time.Minute)}})
	n := store.Save(pendingConfirmation{WorkspaceID: "ws-1", Confirmation: models.Confirmation{ID: "b", CreatedAt: now}})
	assert.Equal(t, 1, n, "expired entries are swept on save")
	assert.Equal(t, 1, store.Len())
}

func TestConfirmationStoreGetKeepsAndDeleteRemoves(t *testing.T) {
	store := newConfirmationStore(time.Minute)
	now := time.Date(2025, 2, 10, 8, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }
	store.Save(pendingConfirmation{WorkspaceID: "ws-1", Confirmation: models.Confirmation{ID: "c1", CreatedAt: now}})

	pending, ok := store.Get("c1")
	assert.True(t, ok)
	assert.Equal(t, "ws-1", pending.WorkspaceID)
	assert.Equal(t, 1, store.Len(), "get leaves the entry in place")

	now = now.Add(2 * time.Minute)
	assert.Equal(t, 1, store.Len(), "expired entries count until evicted")
	_, ok = store.Get("c1")
	assert.False(t, ok)
	assert.Zero(t, store.Len())

	store.Save(pendingConfirmation{WorkspaceID: "ws-1", Confirmation: models.Confirmation{ID: "c2", CreatedAt: now}})
	store.Delete("c2")
	store.Delete("missing")
	assert.Zero(t, store.Len())
}
