package models

import (
	"time"

	"github.com/lib/pq"
	"github.com/pgvector/pgvector-go"
)

// EmbeddingDim is the fixed dimension of the tag-text embedding column.
const EmbeddingDim = 768

// Photo is the sole entity: a stored image with its model-generated tags
// and an optional embedding of the comma-joined tag text. Rows are created
// only by a fully-succeeded upload and never mutated afterwards; the
// pipeline guarantees tags are never empty.
type Photo struct {
	PhotoID   int              `gorm:"column:photo_id;primaryKey;autoIncrement" json:"photo_id"`
	FileName  string           `gorm:"not null" json:"file_name"`
	FilePath  string           `gorm:"not null" json:"file_path"`
	Tags      pq.StringArray   `gorm:"type:text[];not null" json:"tags"`
	Embedding *pgvector.Vector `gorm:"column:tag_embedding;type:vector(768)" json:"-"`
	CreatedAt time.Time        `json:"created_at"`
}

func (Photo) TableName() string {
	return "photos"
}

// PhotoMatch pairs a photo with its cosine distance from a query vector.
type PhotoMatch struct {
	Photo
	Distance float32 `gorm:"column:dist" json:"-"`
}
