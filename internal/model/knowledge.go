package model

// ChunkType is the closed category tag carried by every knowledge chunk.
type ChunkType string

const (
	ChunkTypeProject    ChunkType = "project"
	ChunkTypeExperience ChunkType = "experience"
	ChunkTypeSkill      ChunkType = "skill"
	ChunkTypeEducation  ChunkType = "education"
	ChunkTypePersonal   ChunkType = "personal"
)

func (t ChunkType) Valid() bool {
	switch t {
	case ChunkTypeProject, ChunkTypeExperience, ChunkTypeSkill, ChunkTypeEducation, ChunkTypePersonal:
		return true
	}
	return false
}

type ChunkMetadata struct {
	Type  ChunkType `json:"type"`
	Title string    `json:"title,omitempty"`
	Tags  []string  `json:"tags,omitempty"`
}

// KnowledgeChunk is one retrievable unit of portfolio content. The
// embedding is produced by the offline embed batch (or at load time when
// absent) and is immutable afterwards.
type KnowledgeChunk struct {
	ID        string        `json:"id"`
	Text      string        `json:"text"`
	Metadata  ChunkMetadata `json:"metadata"`
	Embedding []float32     `json:"embedding,omitempty"`
}
