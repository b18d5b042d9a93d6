package photo

import (
	"context"

	"github.com/pgvector/pgvector-go"

	"github.com/arvane/photodex/database/models"
)

// Repository is the slice of the photo store the services use.
type Repository interface {
	Insert(ctx context.Context, photo *models.Photo) (*models.Photo, error)
	ListAll(ctx context.Context) ([]models.Photo, error)
	SearchByTags(ctx context.Context, searchTags []string) ([]models.Photo, error)
	SearchByEmbedding(ctx context.Context, vec pgvector.Vector, limit int, maxDistance *float32) ([]models.PhotoMatch, error)
}
