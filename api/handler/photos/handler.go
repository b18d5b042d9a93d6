// Package photos holds the HTTP handlers for the photo API: upload,
// listing, tag search, and semantic search.
package photos

import (
	photoSvc "github.com/arvane/photodex/internal/services/photo"
)

// Handler bundles the photo services behind the HTTP surface.
type Handler struct {
	uploadService *photoSvc.UploadService
	searchService *photoSvc.SearchService
}

// NewHandler creates a photo handler.
func NewHandler(uploadService *photoSvc.UploadService, searchService *photoSvc.SearchService) *Handler {
	return &Handler{
		uploadService: uploadService,
		searchService: searchService,
	}
}
