package knowledge

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/yashp/portfolio-assistant/internal/model"
)

// Source is where the knowledge-base file comes from. The filestore
// package provides local and s3 implementations.
type Source interface {
	Open(ctx context.Context, key string) (io.ReadCloser, error)
}

type SearchResult struct {
	Chunk model.KnowledgeChunk
	Score float32
}

// Store holds the knowledge base in memory. Chunks are loaded once at
// startup (and on explicit admin reload) and are read-only in between,
// so searches run without locking beyond the swap guard. Query vectors
// are memoized in a small expirable LRU since visitors tend to repeat
// the same handful of questions.
type Store struct {
	source Source
	key    string

	mu     sync.RWMutex
	chunks []model.KnowledgeChunk

	queryCache *expirable.LRU[string, []float32]
}

func NewStore(source Source, key string, cacheSize int, cacheTTL time.Duration) *Store {
	s := &Store{
		source: source,
		key:    key,
	}
	if cacheSize > 0 && cacheTTL > 0 {
		s.queryCache = expirable.NewLRU[string, []float32](cacheSize, nil, cacheTTL)
	}
	return s
}

// Load reads and validates the knowledge-base file. A missing or
// malformed file is a startup failure, not a silent empty store. Chunks
// shipped without an embedding are embedded here with the same procedure
// the query path uses.
func (s *Store) Load(ctx context.Context) error {
	reader, err := s.source.Open(ctx, s.key)
	if err != nil {
		return fmt.Errorf("open knowledge base %q: %w", s.key, err)
	}
	defer reader.Close()

	var chunks []model.KnowledgeChunk
	if err := json.NewDecoder(reader).Decode(&chunks); err != nil {
		return fmt.Errorf("decode knowledge base %q: %w", s.key, err)
	}
	if len(chunks) == 0 {
		return fmt.Errorf("knowledge base %q has no chunks", s.key)
	}
	seen := make(map[string]bool, len(chunks))
	embedded := 0
	for i := range chunks {
		chunk := &chunks[i]
		if chunk.ID == "" {
			return fmt.Errorf("knowledge base %q: chunk %d has no id", s.key, i)
		}
		if seen[chunk.ID] {
			return fmt.Errorf("knowledge base %q: duplicate chunk id %q", s.key, chunk.ID)
		}
		seen[chunk.ID] = true
		if !chunk.Metadata.Type.Valid() {
			return fmt.Errorf("knowledge base %q: chunk %q has invalid type %q", s.key, chunk.ID, chunk.Metadata.Type)
		}
		if len(chunk.Embedding) == 0 {
			chunk.Embedding = Embed(chunk.Text, chunk.Metadata.Tags)
			embedded++
			continue
		}
		if len(chunk.Embedding) != EmbeddingDim {
			return fmt.Errorf("knowledge base %q: chunk %q embedding has %d dims, want %d",
				s.key, chunk.ID, len(chunk.Embedding), EmbeddingDim)
		}
	}

	s.mu.Lock()
	s.chunks = chunks
	s.mu.Unlock()
	if s.queryCache != nil {
		s.queryCache.Purge()
	}
	logutil.GetLogger(ctx).Info("knowledge base loaded",
		zap.String("key", s.key),
		zap.Int("chunks", len(chunks)),
		zap.Int("embedded_at_load", embedded),
	)
	return nil
}

// Search ranks all chunks by cosine similarity to the query, descending,
// with insertion order breaking ties. topK <= 0 falls back to 3.
func (s *Store) Search(query string, topK int) []SearchResult {
	if topK <= 0 {
		topK = 3
	}
	queryVec := s.queryEmbedding(query)

	s.mu.RLock()
	chunks := s.chunks
	s.mu.RUnlock()

	results := make([]SearchResult, 0, len(chunks))
	for _, chunk := range chunks {
		results = append(results, SearchResult{
			Chunk: chunk,
			Score: CosineSimilarity(queryVec, chunk.Embedding),
		})
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if topK > len(results) {
		topK = len(results)
	}
	return results[:topK]
}

func (s *Store) Get(id string) (model.KnowledgeChunk, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, chunk := range s.chunks {
		if chunk.ID == id {
			return chunk, true
		}
	}
	return model.KnowledgeChunk{}, false
}

// List returns the chunks in insertion order. Callers must not mutate.
func (s *Store) List() []model.KnowledgeChunk {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.chunks
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.chunks)
}

func (s *Store) QueryCacheLen() int {
	if s.queryCache == nil {
		return 0
	}
	return s.queryCache.Len()
}

func (s *Store) queryEmbedding(query string) []float32 {
	if s.queryCache == nil {
		return Embed(query, nil)
	}
	if cached, ok := s.queryCache.Get(query); ok {
		return cached
	}
	vec := Embed(query, nil)
	s.queryCache.Add(query, vec)
	return vec
}
