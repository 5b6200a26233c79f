package handler

import (
	"bytes"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yuin/goldmark"

	"github.com/yashp/portfolio-assistant/internal/knowledge"
	"github.com/yashp/portfolio-assistant/internal/model"
	"github.com/yashp/portfolio-assistant/internal/pkg/errcode"
	"github.com/yashp/portfolio-assistant/internal/pkg/response"
)

// KnowledgeHandler serves the same content the assistant answers from,
// so the portfolio pages and the chat stay in sync.
type KnowledgeHandler struct {
	store *knowledge.Store
}

func NewKnowledgeHandler(store *knowledge.Store) *KnowledgeHandler {
	return &KnowledgeHandler{store: store}
}

type chunkSummary struct {
	ID    string          `json:"id"`
	Type  model.ChunkType `json:"type"`
	Title string          `json:"title,omitempty"`
	Tags  []string        `json:"tags,omitempty"`
}

func (h *KnowledgeHandler) List(c *gin.Context) {
	chunks := h.store.List()
	items := make([]chunkSummary, 0, len(chunks))
	for _, chunk := range chunks {
		items = append(items, chunkSummary{
			ID:    chunk.ID,
			Type:  chunk.Metadata.Type,
			Title: chunk.Metadata.Title,
			Tags:  chunk.Metadata.Tags,
		})
	}
	response.Success(c, gin.H{"items": items})
}

func (h *KnowledgeHandler) Get(c *gin.Context) {
	chunk, ok := h.store.Get(c.Param("id"))
	if !ok {
		response.Error(c, errcode.ErrNotFound, "chunk not found")
		return
	}
	var html bytes.Buffer
	if err := goldmark.Convert([]byte(chunk.Text), &html); err != nil {
		response.Error(c, errcode.ErrInternal, "render failed")
		return
	}
	response.Success(c, gin.H{
		"id":       chunk.ID,
		"metadata": chunk.Metadata,
		"text":     chunk.Text,
		"html":     html.String(),
	})
}

type searchItem struct {
	ID    string          `json:"id"`
	Type  model.ChunkType `json:"type"`
	Title string          `json:"title,omitempty"`
	Text  string          `json:"text"`
	Score float32         `json:"score"`
}

func (h *KnowledgeHandler) Search(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		response.Error(c, errcode.ErrInvalid, "query required")
		return
	}
	topK, _ := strconv.Atoi(c.DefaultQuery("k", "3"))
	if topK > 10 {
		topK = 10
	}
	results := h.store.Search(query, topK)
	items := make([]searchItem, 0, len(results))
	for _, result := range results {
		items = append(items, searchItem{
			ID:    result.Chunk.ID,
			Type:  result.Chunk.Metadata.Type,
			Title: result.Chunk.Metadata.Title,
			Text:  result.Chunk.Text,
			Score: result.Score,
		})
	}
	response.Success(c, gin.H{"items": items})
}
