package memory

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m-v-r/docqa/history"
)

func TestAppendAndRecent(t *testing.T) {
	h := NewHistory()
	ctx := context.Background()

	require.NoError(t, h.Append(ctx, "s1", "user", "What is pgvector?"))
	require.NoError(t, h.Append(ctx, "s1", "assistant", "A Postgres extension."))
	require.NoError(t, h.Append(ctx, "s2", "user", "unrelated session"))

	turns, err := h.Recent(ctx, "s1", 10)
	require.NoError(t, err)
	require.Len(t, turns, 2)
	assert.Equal(t, "user", turns[0].Role)
	assert.Equal(t, "A Postgres extension.", turns[1].Text)
}

func TestRecentHonorsLimit(t *testing.T) {
	h := NewHistory()
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		require.NoError(t, h.Append(ctx, "s1", "user", fmt.Sprintf("message %d", i)))
	}

	turns, err := h.Recent(ctx, "s1", 2)
	require.NoError(t, err)
	require.Len(t, turns, 2)
	assert.Equal(t, "message 3", turns[0].Text)
	assert.Equal(t, "message 4", turns[1].Text)
}

func TestWindowEviction(t *testing.T) {
	h := NewHistory(history.WithWindow(3))
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		require.NoError(t, h.Append(ctx, "s1", "user", fmt.Sprintf("message %d", i)))
	}

	turns, err := h.Recent(ctx, "s1", 0)
	require.NoError(t, err)
	require.Len(t, turns, 3)
	assert.Equal(t, "message 2", turns[0].Text)
}

func TestAppendSkipsBlankText(t *testing.T) {
	h := NewHistory()
	ctx := context.Background()

	require.NoError(t, h.Append(ctx, "s1", "user", "   "))

	turns, err := h.Recent(ctx, "s1", 10)
	require.NoError(t, err)
	assert.Empty(t, turns)
}

func TestSearchMatchesSubstring(t *testing.T) {
	h := NewHistory()
	ctx := context.Background()

	require.NoError(t, h.Append(ctx, "s1", "assistant", "Use an HNSW index for performance."))
	require.NoError(t, h.Append(ctx, "s1", "user", "What about ivfflat?"))

	turns, err := h.Search(ctx, "hnsw", 5)
	require.NoError(t, err)
	require.Len(t, turns, 1)
	assert.Contains(t, turns[0].Text, "HNSW")

	turns, err = h.Search(ctx, "", 5)
	require.NoError(t, err)
	assert.Empty(t, turns)
}
