package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tubegrabbot/internal/core/domain"
)

func TestPendingStoreOverwrite(t *testing.T) {
	store := NewPendingStore()

	_, ok := store.Get(1)
	assert.False(t, ok)

	store.Put(domain.PendingJob{URL: "https://youtu.be/first", UserID: 1})
	store.Put(domain.PendingJob{URL: "https://youtu.be/second", UserID: 1})

	job, ok := store.Get(1)
	require.True(t, ok)
	assert.Equal(t, "https://youtu.be/second", job.URL)
}

func TestPendingStorePerUserIsolation(t *testing.T) {
	store := NewPendingStore()
	store.Put(domain.PendingJob{URL: "https://youtu.be/a", UserID: 1})
	store.Put(domain.PendingJob{URL: "https://youtu.be/b", UserID: 2})

	jobA, ok := store.Get(1)
	require.True(t, ok)
	jobB, ok := store.Get(2)
	require.True(t, ok)

	assert.Equal(t, "https://youtu.be/a", jobA.URL)
	assert.Equal(t, "https://youtu.be/b", jobB.URL)
}
