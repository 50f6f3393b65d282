package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordTrimsOldestFirst(t *testing.T) {
	repo := NewSessionRepository(5)
	ctx := context.Background()

	for i := 0; i < 6; i++ {
		err := repo.Record(ctx, "sess-1", fmt.Sprintf("input %d", i), "reply")
		require.NoError(t, err)
	}

	history, err := repo.History(ctx, "sess-1")
	require.NoError(t, err)
	require.Len(t, history, 5)
	assert.Equal(t, "input 1", history[0].UserInput, "oldest turn dropped first")
	assert.Equal(t, "input 5", history[4].UserInput)
}

func TestHistoryUnknownSessionIsEmpty(t *testing.T) {
	repo := NewSessionRepository(5)

	history, err := repo.History(context.Background(), "never-seen")
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestHistoryReturnsSnapshot(t *testing.T) {
	repo := NewSessionRepository(5)
	ctx := context.Background()

	require.NoError(t, repo.Record(ctx, "sess-2", "first", "reply"))

	history, err := repo.History(ctx, "sess-2")
	require.NoError(t, err)
	require.Len(t, history, 1)

	require.NoError(t, repo.Record(ctx, "sess-2", "second", "reply"))
	assert.Len(t, history, 1, "snapshot unaffected by later writes")
}

func TestConcurrentRecordsDoNotInterleave(t *testing.T) {
	repo := NewSessionRepository(100)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_ = repo.Record(ctx, "sess-3", fmt.Sprintf("input %d", n), "reply")
		}(i)
	}
	wg.Wait()

	history, err := repo.History(ctx, "sess-3")
	require.NoError(t, err)
	assert.Len(t, history, 20)
}
