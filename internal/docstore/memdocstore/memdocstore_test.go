package memdocstore

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/discochess/enginemetrics/internal/docstore"
)

func doc(dataType string, at time.Time) *docstore.Document {
	return &docstore.Document{
		Collection:  docstore.KnowledgeBase,
		DataType:    dataType,
		Payload:     json.RawMessage(`{}`),
		ProcessedAt: at,
	}
}

func TestStore_AddAssignsID(t *testing.T) {
	s := New()
	ctx := context.Background()

	id, err := s.Add(ctx, doc(docstore.PGNAnalysis, time.Now()))
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	id, err = s.Add(ctx, &docstore.Document{ID: "fixed", Collection: docstore.Queries})
	require.NoError(t, err)
	assert.Equal(t, "fixed", id)
	assert.Equal(t, 2, s.Len())
}

func TestStore_FindNewestFirst(t *testing.T) {
	s := New()
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	for i, at := range []time.Time{base.Add(time.Hour), base, base.Add(2 * time.Hour)} {
		d := doc(docstore.PGNAnalysis, at)
		d.SourceFile = string(rune('a' + i))
		_, err := s.Add(ctx, d)
		require.NoError(t, err)
	}

	got, err := s.Find(ctx, docstore.Query{Collection: docstore.KnowledgeBase})
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "c", got[0].SourceFile)
	assert.Equal(t, "a", got[1].SourceFile)
	assert.Equal(t, "b", got[2].SourceFile)
}

func TestStore_FindFilters(t *testing.T) {
	s := New()
	ctx := context.Background()
	now := time.Now()

	_, _ = s.Add(ctx, doc(docstore.PGNAnalysis, now))
	_, _ = s.Add(ctx, doc(docstore.JSONAnalysis, now))
	_, _ = s.Add(ctx, doc(docstore.PGNAnalysis, now))
	_, _ = s.Add(ctx, &docstore.Document{Collection: docstore.Queries, DataType: docstore.QueryLog, ProcessedAt: now})

	got, err := s.Find(ctx, docstore.Query{Collection: docstore.KnowledgeBase, DataType: docstore.PGNAnalysis})
	require.NoError(t, err)
	assert.Len(t, got, 2)

	got, err = s.Find(ctx, docstore.Query{Collection: docstore.KnowledgeBase, Limit: 1})
	require.NoError(t, err)
	assert.Len(t, got, 1)

	got, err = s.Find(ctx, docstore.Query{Collection: "missing"})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestStore_ReturnsCopies(t *testing.T) {
	s := New()
	ctx := context.Background()

	d := doc(docstore.PGNAnalysis, time.Now())
	_, err := s.Add(ctx, d)
	require.NoError(t, err)
	d.Payload[0] = 'X'

	got, err := s.Find(ctx, docstore.Query{Collection: docstore.KnowledgeBase})
	require.NoError(t, err)
	assert.JSONEq(t, `{}`, string(got[0].Payload))
}

func TestStore_Closed(t *testing.T) {
	s := New()
	require.NoError(t, s.Close())

	_, err := s.Add(context.Background(), doc(docstore.PGNAnalysis, time.Now()))
	assert.ErrorIs(t, err, docstore.ErrClosed)

	_, err = s.Find(context.Background(), docstore.Query{Collection: docstore.KnowledgeBase})
	assert.ErrorIs(t, err, docstore.ErrClosed)
}

func TestStore_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New().Add(ctx, doc(docstore.PGNAnalysis, time.Now()))
	assert.ErrorIs(t, err, context.Canceled)
}
