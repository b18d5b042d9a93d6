package photos

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pgvector/pgvector-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/arvane/photodex/config"
	"github.com/arvane/photodex/database/models"
	photoSvc "github.com/arvane/photodex/internal/services/photo"
)

type stubRepo struct {
	vectorResult []models.PhotoMatch
	tagsResult   []models.Photo
}

func (s *stubRepo) Insert(_ context.Context, photo *models.Photo) (*models.Photo, error) {
	photo.PhotoID = 1
	return photo, nil
}

func (s *stubRepo) ListAll(_ context.Context) ([]models.Photo, error) {
	return s.tagsResult, nil
}

func (s *stubRepo) SearchByTags(_ context.Context, _ []string) ([]models.Photo, error) {
	return s.tagsResult, nil
}

func (s *stubRepo) SearchByEmbedding(
	_ context.Context, _ pgvector.Vector, _ int, _ *float32,
) ([]models.PhotoMatch, error) {
	return s.vectorResult, nil
}

type stubCapability struct {
	imageTags []string
	queryTags []string
	queryErr  error
	embedErr  error
}

func (s *stubCapability) TagImage(_ context.Context, _, _ string) ([]string, error) {
	return s.imageTags, nil
}

func (s *stubCapability) TagsFromQuery(_ context.Context, _ string) ([]string, error) {
	return s.queryTags, s.queryErr
}

func (s *stubCapability) EmbedTexts(_ context.Context, inputs []string) ([][]float32, error) {
	if s.embedErr != nil {
		return nil, s.embedErr
	}
	vectors := make([][]float32, len(inputs))
	for i := range vectors {
		vectors[i] = make([]float32, models.EmbeddingDim)
	}
	return vectors, nil
}

type stubStore struct{}

func (stubStore) Save(_ context.Context, fileName string, _ []byte) (string, error) {
	return "/data/images/" + fileName, nil
}
func (stubStore) Delete(_ context.Context, _ string) error         { return nil }
func (stubStore) Exists(_ context.Context, _ string) (bool, error) { return true, nil }
func (stubStore) Health(_ context.Context) error                   { return nil }
func (stubStore) Name() string                                     { return "stub" }

func newTestRouter(repo *stubRepo, capability *stubCapability) *gin.Engine {
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		EmbedTimeout:        5 * time.Second,
		FallbackTimeout:     2 * time.Second,
		SearchDefaultLimit:  24,
		SearchMaxLimit:      200,
		SearchAdaptiveDelta: 0.05,
		SearchAdaptiveCap:   0.60,
	}
	logger := zap.NewNop()
	handler := NewHandler(
		photoSvc.NewUploadService(repo, stubStore{}, capability, cfg, logger),
		photoSvc.NewSearchService(repo, capability, cfg, logger),
	)

	router := gin.New()
	router.POST("/images", handler.UploadImage)
	router.GET("/images", handler.ListImages)
	router.POST("/images/search", handler.SearchImages)
	router.POST("/images/semantic-search", handler.SemanticSearchImages)
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestUploadImage_Success(t *testing.T) {
	router := newTestRouter(&stubRepo{}, &stubCapability{imageTags: []string{"beach"}})

	w := doJSON(t, router, http.MethodPost, "/images",
		`{"file_name":"beach.png","image_base64":"aGVsbG8="}`)

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Status string `json:"status"`
		Data   struct {
			Photo models.Photo `json:"photo"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "success", resp.Status)
	assert.Equal(t, 1, resp.Data.Photo.PhotoID)
	assert.Equal(t, []string{"beach"}, []string(resp.Data.Photo.Tags))
}

func TestUploadImage_ValidationMapsTo400(t *testing.T) {
	router := newTestRouter(&stubRepo{}, &stubCapability{imageTags: []string{"beach"}})

	w := doJSON(t, router, http.MethodPost, "/images",
		`{"file_name":"","image_base64":"aGVsbG8="}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"error"`)
}

func TestUploadImage_MalformedBody(t *testing.T) {
	router := newTestRouter(&stubRepo{}, &stubCapability{})

	w := doJSON(t, router, http.MethodPost, "/images", `{"file_name":`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSemanticSearch_VectorPathTagsAreNull(t *testing.T) {
	repo := &stubRepo{vectorResult: []models.PhotoMatch{
		{Photo: models.Photo{PhotoID: 2, FileName: "b.png"}, Distance: 0.1},
	}}
	router := newTestRouter(repo, &stubCapability{})

	w := doJSON(t, router, http.MethodPost, "/images/semantic-search", `{"query":"a beach"}`)

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Data struct {
			Tags   json.RawMessage `json:"tags"`
			Photos []models.Photo  `json:"photos"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "null", string(resp.Data.Tags))
	require.Len(t, resp.Data.Photos, 1)
	assert.Equal(t, 2, resp.Data.Photos[0].PhotoID)
}

func TestSemanticSearch_FallbackTagsAreEmptyList(t *testing.T) {
	capability := &stubCapability{
		embedErr:  assert.AnError,
		queryTags: []string{},
	}
	router := newTestRouter(&stubRepo{}, capability)

	w := doJSON(t, router, http.MethodPost, "/images/semantic-search", `{"query":"gibberish"}`)

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Data struct {
			Tags   json.RawMessage `json:"tags"`
			Photos json.RawMessage `json:"photos"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "[]", string(resp.Data.Tags))
	assert.Equal(t, "[]", string(resp.Data.Photos))
}

func TestSearchImages_ReturnsTagsAndPhotos(t *testing.T) {
	repo := &stubRepo{tagsResult: []models.Photo{{PhotoID: 5, FileName: "e.png"}}}
	router := newTestRouter(repo, &stubCapability{queryTags: []string{"sunset"}})

	w := doJSON(t, router, http.MethodPost, "/images/search", `{"query":"a sunset"}`)

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Data struct {
			Query  string         `json:"query"`
			Tags   []string       `json:"tags"`
			Photos []models.Photo `json:"photos"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "a sunset", resp.Data.Query)
	assert.Equal(t, []string{"sunset"}, resp.Data.Tags)
	require.Len(t, resp.Data.Photos, 1)
}

func TestSearchImages_ServiceErrorMapsTo500(t *testing.T) {
	router := newTestRouter(&stubRepo{}, &stubCapability{queryErr: assert.AnError})

	w := doJSON(t, router, http.MethodPost, "/images/search", `{"query":"cats"}`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestListImages(t *testing.T) {
	repo := &stubRepo{tagsResult: []models.Photo{{PhotoID: 8, FileName: "h.png"}}}
	router := newTestRouter(repo, &stubCapability{})

	req := httptest.NewRequest(http.MethodGet, "/images?tags=beach,sand", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"h.png"`)
}
