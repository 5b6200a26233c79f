package knowledge

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yashp/portfolio-assistant/internal/model"
)

type memorySource map[string]string

func (m memorySource) Open(_ context.Context, key string) (io.ReadCloser, error) {
	body, ok := m[key]
	if !ok {
		return nil, fmt.Errorf("no such key: %s", key)
	}
	return io.NopCloser(strings.NewReader(body)), nil
}

func testChunks(t *testing.T) string {
	t.Helper()
	chunks := []model.KnowledgeChunk{
		{
			ID:   "skills-frontend",
			Text: "Yash builds frontend interfaces with React and TypeScript.",
			Metadata: model.ChunkMetadata{
				Type: model.ChunkTypeSkill,
				Tags: []string{"react", "typescript", "frontend"},
			},
		},
		{
			ID:   "skills-backend",
			Text: "Backend services in Go and Node with PostgreSQL storage.",
			Metadata: model.ChunkMetadata{
				Type: model.ChunkTypeSkill,
				Tags: []string{"golang", "postgresql", "backend"},
			},
		},
		{
			ID:   "project-devfeed",
			Text: "DevFeed is a developer news aggregator with personalized ranking.",
			Metadata: model.ChunkMetadata{
				Type: model.ChunkTypeProject,
				Tags: []string{"devfeed", "aggregator"},
			},
		},
	}
	raw, err := json.Marshal(chunks)
	require.NoError(t, err)
	return string(raw)
}

func newLoadedStore(t *testing.T) *Store {
	t.Helper()
	source := memorySource{"chunks.json": testChunks(t)}
	store := NewStore(source, "chunks.json", 16, time.Minute)
	require.NoError(t, store.Load(context.Background()))
	return store
}

func TestStoreLoadEmbedsMissingVectors(t *testing.T) {
	store := newLoadedStore(t)
	require.Equal(t, 3, store.Len())
	for _, chunk := range store.List() {
		require.Len(t, chunk.Embedding, EmbeddingDim)
	}
}

func TestStoreLoadFailures(t *testing.T) {
	ctx := context.Background()
	cases := []struct {
		name string
		body string
	}{
		{"malformed", `{not json`},
		{"empty", `[]`},
		{"missing id", `[{"text":"no id here","metadata":{"type":"skill"}}]`},
		{"duplicate id", `[{"id":"a","text":"one","metadata":{"type":"skill"}},{"id":"a","text":"two","metadata":{"type":"skill"}}]`},
		{"invalid type", `[{"id":"a","text":"one","metadata":{"type":"recipe"}}]`},
		{"wrong dims", `[{"id":"a","text":"one","metadata":{"type":"skill"},"embedding":[0.5,0.5]}]`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := NewStore(memorySource{"chunks.json": tc.body}, "chunks.json", 0, 0)
			require.Error(t, store.Load(ctx))
		})
	}

	t.Run("missing key", func(t *testing.T) {
		store := NewStore(memorySource{}, "chunks.json", 0, 0)
		require.Error(t, store.Load(ctx))
	})
}

func TestStoreSearchRanking(t *testing.T) {
	store := newLoadedStore(t)

	results := store.Search("react typescript frontend work", 3)
	require.Len(t, results, 3)
	require.Equal(t, "skills-frontend", results[0].Chunk.ID)
	for i := 1; i < len(results); i++ {
		require.LessOrEqual(t, results[i].Score, results[i-1].Score)
	}
}

func TestStoreSearchTopKClamp(t *testing.T) {
	store := newLoadedStore(t)
	require.Len(t, store.Search("devfeed", 10), 3)
	// topK <= 0 falls back to the default of 3.
	require.Len(t, store.Search("devfeed", 0), 3)
	require.Len(t, store.Search("devfeed", 1), 1)
}

func TestStoreSearchTieOrderIsStable(t *testing.T) {
	store := newLoadedStore(t)
	// A query with no usable tokens scores zero everywhere, so the
	// result order must be insertion order.
	results := store.Search("?? !!", 3)
	require.Equal(t, "skills-frontend", results[0].Chunk.ID)
	require.Equal(t, "skills-backend", results[1].Chunk.ID)
	require.Equal(t, "project-devfeed", results[2].Chunk.ID)
}

func TestStoreQueryCache(t *testing.T) {
	store := newLoadedStore(t)
	require.Zero(t, store.QueryCacheLen())
	store.Search("what does yash do", 3)
	store.Search("what does yash do", 3)
	require.Equal(t, 1, store.QueryCacheLen())
}

func TestStoreGet(t *testing.T) {
	store := newLoadedStore(t)
	chunk, ok := store.Get("project-devfeed")
	require.True(t, ok)
	require.Equal(t, model.ChunkTypeProject, chunk.Metadata.Type)
	_, ok = store.Get("nope")
	require.False(t, ok)
}
