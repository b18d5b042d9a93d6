package photos

import (
	"context"
	"fmt"

	"github.com/lib/pq"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"

	"github.com/arvane/photodex/database/models"
)

// Repository is the photo store. All queries run against the shared
// connection pool; vector searches run inside a short-lived transaction so
// the approximate-search tuning parameters never leak across requests.
type Repository struct {
	db            *gorm.DB
	hnswEfSearch  int
	ivfflatProbes int
}

// NewRepository creates a photo repository with the given approximate
// nearest-neighbor tuning values.
func NewRepository(db *gorm.DB, hnswEfSearch, ivfflatProbes int) *Repository {
	return &Repository{
		db:            db,
		hnswEfSearch:  hnswEfSearch,
		ivfflatProbes: ivfflatProbes,
	}
}

// Insert persists a photo row and returns it with the assigned id and
// creation timestamp.
func (r *Repository) Insert(ctx context.Context, photo *models.Photo) (*models.Photo, error) {
	if err := r.db.WithContext(ctx).Create(photo).Error; err != nil {
		return nil, err
	}
	return photo, nil
}

// ListAll returns every photo, newest first.
func (r *Repository) ListAll(ctx context.Context) ([]models.Photo, error) {
	var result []models.Photo
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&result).Error
	return result, err
}

// SearchByTags returns photos whose tag array overlaps searchTags, newest
// first. An empty filter means no filter and lists everything; the
// semantic-search fallback applies its own stricter empty-list policy
// before calling here.
func (r *Repository) SearchByTags(ctx context.Context, searchTags []string) ([]models.Photo, error) {
	if len(searchTags) == 0 {
		return r.ListAll(ctx)
	}

	var result []models.Photo
	err := r.db.WithContext(ctx).
		Where("tags && ?::text[]", pq.StringArray(searchTags)).
		Order("created_at DESC").
		Find(&result).Error
	return result, err
}

// SearchByEmbedding returns up to limit photos with a non-null embedding,
// ordered ascending by cosine distance from vec. When maxDistance is
// non-nil it is applied as a hard cutoff in SQL; adaptive filtering is the
// caller's policy.
func (r *Repository) SearchByEmbedding(
	ctx context.Context,
	vec pgvector.Vector,
	limit int,
	maxDistance *float32,
) ([]models.PhotoMatch, error) {
	var matches []models.PhotoMatch

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Prefer HNSW if present; ivfflat probes is a no-op safeguard when
		// only an ivfflat index exists.
		if err := tx.Exec(fmt.Sprintf("SET LOCAL hnsw.ef_search = %d", r.hnswEfSearch)).Error; err != nil {
			return err
		}
		if err := tx.Exec(fmt.Sprintf("SET LOCAL ivfflat.probes = %d", r.ivfflatProbes)).Error; err != nil {
			return err
		}

		query := tx.Model(&models.Photo{}).
			Select("photo_id, file_name, file_path, tags, created_at, tag_embedding <=> ? AS dist", vec).
			Where("tag_embedding IS NOT NULL").
			Order("dist").
			Limit(limit)
		if maxDistance != nil {
			query = query.Where("(tag_embedding <=> ?) <= ?", vec, *maxDistance)
		}
		return query.Find(&matches).Error
	})
	if err != nil {
		return nil, err
	}
	return matches, nil
}
