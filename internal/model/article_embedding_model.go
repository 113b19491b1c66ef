package model

import (
	"time"

	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

type ArticleEmbedding struct {
	Id            string `gorm:"type:varchar(64);primaryKey"` // sha1 of feed guid or link
	Title         string `gorm:"type:text;not null"`
	Content       string `gorm:"type:text"`
	Link          string `gorm:"type:text"`
	Source        string `gorm:"type:varchar(128);index"`
	Category      string `gorm:"type:varchar(64);index"`
	PubDate       time.Time
	Embedding     pgvector.Vector `gorm:"type:vector(768)"`                // text-embedding-004 / jina-v3 use 768 dimensions
	EmbeddingPath string          `gorm:"type:varchar(16);not null;index"` // "provider" or "fallback"
	CreatedAt     time.Time       `gorm:"autoCreateTime"`
	UpdatedAt     time.Time       `gorm:"autoUpdateTime"`
	DeletedAt     gorm.DeletedAt  `gorm:"index"`
}

func (ArticleEmbedding) TableName() string {
	return "article_embeddings"
}
