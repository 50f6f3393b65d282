package model

import (
	"time"

	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"
)

type KnowledgeChunk struct {
	Id         string          `gorm:"type:text;primaryKey"`
	Text       string          `gorm:"type:text;not null"`
	SourceName string          `gorm:"type:text"`
	SourceURL  string          `gorm:"type:text"`
	Category   string          `gorm:"type:text;index"`
	Tags       datatypes.JSON  `gorm:"type:jsonb"`
	Embedding  pgvector.Vector `gorm:"type:vector(384)"` // hash embedding provider dimensions
	CreatedAt  time.Time       `gorm:"autoCreateTime"`
	UpdatedAt  time.Time       `gorm:"autoUpdateTime"`
}

func (KnowledgeChunk) TableName() string {
	return "knowledge_chunks"
}
