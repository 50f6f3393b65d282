package mapper

import (
	"encoding/json"

	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"

	"medical-triage-be/internal/model"
	"medical-triage-be/pkg/knowledge"
)

type KnowledgeChunkMapper struct{}

func NewKnowledgeChunkMapper() *KnowledgeChunkMapper {
	return &KnowledgeChunkMapper{}
}

func (m *KnowledgeChunkMapper) ToChunk(mod *model.KnowledgeChunk, score float64) knowledge.Chunk {
	var tags []string
	if len(mod.Tags) > 0 {
		// Malformed tags lose the tag list, not the chunk.
		_ = json.Unmarshal(mod.Tags, &tags)
	}

	return knowledge.Chunk{
		ID:         mod.Id,
		Text:       mod.Text,
		SourceName: mod.SourceName,
		SourceURL:  mod.SourceURL,
		Category:   mod.Category,
		Tags:       tags,
		Score:      score,
	}
}

func (m *KnowledgeChunkMapper) ToModel(c knowledge.Chunk, embedding []float32) (*model.KnowledgeChunk, error) {
	tags, err := json.Marshal(c.Tags)
	if err != nil {
		return nil, err
	}

	return &model.KnowledgeChunk{
		Id:         c.ID,
		Text:       c.Text,
		SourceName: c.SourceName,
		SourceURL:  c.SourceURL,
		Category:   c.Category,
		Tags:       datatypes.JSON(tags),
		Embedding:  pgvector.NewVector(embedding),
	}, nil
}
