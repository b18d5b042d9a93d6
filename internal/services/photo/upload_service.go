package photo

import (
	"context"
	"encoding/base64"
	"strings"
	"time"

	"github.com/lib/pq"
	"github.com/pgvector/pgvector-go"
	"go.uber.org/zap"

	"github.com/arvane/photodex/config"
	"github.com/arvane/photodex/database/models"
	"github.com/arvane/photodex/internal/apperr"
	"github.com/arvane/photodex/internal/services/modelsvc"
	"github.com/arvane/photodex/storage"
	"github.com/arvane/photodex/utils/imagefile"
	"github.com/arvane/photodex/utils/tags"
)

// UploadInput is the raw upload request after JSON binding.
type UploadInput struct {
	FileName    string
	ImageBase64 string
	MimeType    string
}

// UploadService turns raw image bytes into a tagged, optionally-embedded
// photo record. Tagging is mandatory; embedding degrades to a record
// without a vector; a failed insert triggers a best-effort delete of the
// bytes written just before it.
type UploadService struct {
	repo         Repository
	store        storage.Provider
	capability   modelsvc.Capability
	embedTimeout time.Duration
	logger       *zap.Logger
}

// NewUploadService creates the upload pipeline.
func NewUploadService(
	repo Repository,
	store storage.Provider,
	capability modelsvc.Capability,
	cfg *config.Config,
	logger *zap.Logger,
) *UploadService {
	return &UploadService{
		repo:         repo,
		store:        store,
		capability:   capability,
		embedTimeout: cfg.EmbedTimeout,
		logger:       logger,
	}
}

// Upload runs the pipeline: validate, sanitize, decode, resolve mime, tag,
// persist bytes, embed, insert. Every step before the byte write is a hard
// stop; after it, an insert failure compensates by removing the bytes.
func (s *UploadService) Upload(ctx context.Context, in UploadInput) (*models.Photo, error) {
	if strings.TrimSpace(in.FileName) == "" {
		return nil, apperr.Validation("file_name cannot be empty")
	}
	if strings.TrimSpace(in.ImageBase64) == "" {
		return nil, apperr.Validation("image_base64 cannot be empty")
	}

	fileName := imagefile.SanitizeFileName(in.FileName)
	if fileName == "" {
		return nil, apperr.Validation("file_name must contain a usable base name")
	}

	raw, err := decodeImage(in.ImageBase64)
	if err != nil {
		return nil, err
	}

	mimeType := in.MimeType
	if mimeType == "" {
		mimeType = imagefile.InferMimeType(fileName)
	}
	if mimeType == "" {
		return nil, apperr.Validation("unknown file extension; provide mime_type")
	}

	// Mandatory step: an untagged photo is policy-rejected, so a tagging
	// failure fails the upload rather than degrading.
	canonical := base64.StdEncoding.EncodeToString(raw)
	tagList, err := s.capability.TagImage(ctx, canonical, mimeType)
	if err != nil {
		return nil, err
	}
	if len(tagList) == 0 {
		return nil, apperr.Validation("tagging service returned no tags")
	}

	savedPath, err := s.store.Save(ctx, fileName, raw)
	if err != nil {
		return nil, apperr.Storage("failed to save image bytes", err)
	}

	embedding := s.embedTags(ctx, tagList)

	photo := &models.Photo{
		FileName:  fileName,
		FilePath:  savedPath,
		Tags:      pq.StringArray(tagList),
		Embedding: embedding,
	}

	created, err := s.repo.Insert(ctx, photo)
	if err != nil {
		s.removeOrphan(savedPath)
		return nil, apperr.Storage("failed to insert photo record", err)
	}

	s.logger.Info("photo uploaded",
		zap.Int("photo_id", created.PhotoID),
		zap.String("file_name", created.FileName),
		zap.Int("tag_count", len(created.Tags)),
		zap.Bool("embedded", created.Embedding != nil),
	)
	return created, nil
}

// embedTags computes the embedding of the comma-joined tag text under the
// embed timeout. Any failure here is non-fatal: the photo is stored
// without a vector and the reason is logged.
func (s *UploadService) embedTags(ctx context.Context, tagList []string) *pgvector.Vector {
	embedCtx, cancel := context.WithTimeout(ctx, s.embedTimeout)
	defer cancel()

	vectors, err := s.capability.EmbedTexts(embedCtx, []string{tags.Join(tagList)})
	if err != nil {
		s.logger.Warn("embedding degraded, storing photo without vector", zap.Error(err))
		return nil
	}
	if len(vectors) == 0 || len(vectors[0]) != models.EmbeddingDim {
		s.logger.Warn("embedding degraded, unexpected vector shape",
			zap.Int("vectors", len(vectors)))
		return nil
	}

	v := pgvector.NewVector(vectors[0])
	return &v
}

// removeOrphan is the compensating action after a failed insert. Failure
// to delete (including an already missing file) is swallowed.
func (s *UploadService) removeOrphan(path string) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.store.Delete(ctx, path); err != nil {
		s.logger.Warn("failed to remove orphaned file", zap.String("path", path), zap.Error(err))
	}
}

// decodeImage decodes the base64 payload, tolerating embedded newlines.
func decodeImage(encoded string) ([]byte, error) {
	cleaned := strings.NewReplacer("\n", "", "\r", "").Replace(encoded)
	raw, err := base64.StdEncoding.DecodeString(cleaned)
	if err != nil {
		return nil, apperr.Validation("image_base64 must be valid base64")
	}
	return raw, nil
}
