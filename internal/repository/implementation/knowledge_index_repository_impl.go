package implementation

import (
	"context"
	"fmt"

	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"

	"medical-triage-be/internal/mapper"
	"medical-triage-be/internal/model"
	"medical-triage-be/internal/repository/contract"
	"medical-triage-be/pkg/knowledge"
)

type KnowledgeIndexRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.KnowledgeChunkMapper
}

func NewKnowledgeIndexRepository(db *gorm.DB) contract.KnowledgeIndexRepository {
	return &KnowledgeIndexRepositoryImpl{
		db:     db,
		mapper: mapper.NewKnowledgeChunkMapper(),
	}
}

// Search returns the topK most similar chunks with their cosine
// similarity as the score. pgvector's <=> operator is cosine distance,
// so similarity is 1 - distance.
func (r *KnowledgeIndexRepositoryImpl) Search(ctx context.Context, queryVector []float32, topK int) ([]knowledge.Chunk, error) {
	if topK <= 0 {
		topK = 5
	}

	type result struct {
		model.KnowledgeChunk
		Similarity float64
	}
	var results []result

	query := pgvector.NewVector(queryVector)
	err := r.db.WithContext(ctx).
		Table("knowledge_chunks").
		Select("knowledge_chunks.*, 1 - (embedding <=> ?) as similarity", query).
		Order("similarity DESC").
		Limit(topK).
		Scan(&results).Error
	if err != nil {
		return nil, fmt.Errorf("search knowledge index: %w", err)
	}

	chunks := make([]knowledge.Chunk, len(results))
	for i, res := range results {
		chunks[i] = r.mapper.ToChunk(&res.KnowledgeChunk, res.Similarity)
	}
	return chunks, nil
}

func (r *KnowledgeIndexRepositoryImpl) Len() int {
	count, err := r.Count(context.Background())
	if err != nil {
		return 0
	}
	return int(count)
}

func (r *KnowledgeIndexRepositoryImpl) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.KnowledgeChunk{}).Count(&count).Error
	return count, err
}

// Rebuild replaces the stored corpus in one transaction so readers
// never observe a half-built index.
func (r *KnowledgeIndexRepositoryImpl) Rebuild(ctx context.Context, chunks []knowledge.Chunk, embeddings [][]float32) error {
	if len(chunks) != len(embeddings) {
		return fmt.Errorf("rebuild: %d chunks but %d embeddings", len(chunks), len(embeddings))
	}

	models := make([]*model.KnowledgeChunk, len(chunks))
	for i, c := range chunks {
		m, err := r.mapper.ToModel(c, embeddings[i])
		if err != nil {
			return fmt.Errorf("map chunk %s: %w", c.ID, err)
		}
		models[i] = m
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&model.KnowledgeChunk{}).Error; err != nil {
			return fmt.Errorf("clear index: %w", err)
		}
		if len(models) == 0 {
			return nil
		}
		if err := tx.Create(models).Error; err != nil {
			return fmt.Errorf("insert chunks: %w", err)
		}
		return nil
	})
}
