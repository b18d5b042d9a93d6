package modelsvc

import "context"

// Capability is the narrow contract the pipelines hold on the model
// service: tag an image, tag a query, embed texts. Implementations must be
// stateless and safe for concurrent use; none of them retry, callers
// decide whether to degrade or propagate.
type Capability interface {
	// TagImage asks the vision model for tags describing the image, given
	// as base64 payload plus mime type.
	TagImage(ctx context.Context, base64Image, mimeType string) ([]string, error)

	// TagsFromQuery extracts search tags from free text.
	TagsFromQuery(ctx context.Context, query string) ([]string, error)

	// EmbedTexts returns one vector per input, in input order. A count
	// mismatch from the service is an error, never truncated.
	EmbedTexts(ctx context.Context, inputs []string) ([][]float32, error)
}
