package photo

import (
	"context"

	"github.com/pgvector/pgvector-go"

	"github.com/arvane/photodex/database/models"
)

// --- Mocks ---

type mockRepo struct {
	insertErr     error
	inserted      *models.Photo
	listResult    []models.Photo
	listErr       error
	tagsResult    []models.Photo
	tagsErr       error
	lastTags      []string
	tagsCalled    bool
	vectorResult  []models.PhotoMatch
	vectorErr     error
	vectorCalled  bool
	lastLimit     int
	lastMaxDist   *float32
	nextPhotoID   int
}

func (m *mockRepo) Insert(_ context.Context, photo *models.Photo) (*models.Photo, error) {
	if m.insertErr != nil {
		return nil, m.insertErr
	}
	m.nextPhotoID++
	photo.PhotoID = m.nextPhotoID
	m.inserted = photo
	return photo, nil
}

func (m *mockRepo) ListAll(_ context.Context) ([]models.Photo, error) {
	return m.listResult, m.listErr
}

func (m *mockRepo) SearchByTags(_ context.Context, searchTags []string) ([]models.Photo, error) {
	m.tagsCalled = true
	m.lastTags = searchTags
	return m.tagsResult, m.tagsErr
}

func (m *mockRepo) SearchByEmbedding(
	_ context.Context, _ pgvector.Vector, limit int, maxDistance *float32,
) ([]models.PhotoMatch, error) {
	m.vectorCalled = true
	m.lastLimit = limit
	m.lastMaxDist = maxDistance
	return m.vectorResult, m.vectorErr
}

type mockCapability struct {
	imageTags     []string
	imageErr      error
	imageCalled   bool
	lastMime      string
	queryTags     []string
	queryErr      error
	queryCalled   bool
	embedVectors  [][]float32
	embedErr      error
	embedCalled   bool
	lastEmbedIn   []string
}

func (m *mockCapability) TagImage(_ context.Context, _, mimeType string) ([]string, error) {
	m.imageCalled = true
	m.lastMime = mimeType
	return m.imageTags, m.imageErr
}

func (m *mockCapability) TagsFromQuery(_ context.Context, _ string) ([]string, error) {
	m.queryCalled = true
	return m.queryTags, m.queryErr
}

func (m *mockCapability) EmbedTexts(_ context.Context, inputs []string) ([][]float32, error) {
	m.embedCalled = true
	m.lastEmbedIn = inputs
	return m.embedVectors, m.embedErr
}

type mockStore struct {
	savedPath    string
	saveErr      error
	saveCalled   bool
	lastSaved    []byte
	deleteErr    error
	deleteCalled bool
	lastDeleted  string
}

func (m *mockStore) Save(_ context.Context, fileName string, data []byte) (string, error) {
	m.saveCalled = true
	m.lastSaved = data
	if m.saveErr != nil {
		return "", m.saveErr
	}
	if m.savedPath != "" {
		return m.savedPath, nil
	}
	return "/data/images/" + fileName, nil
}

func (m *mockStore) Delete(_ context.Context, path string) error {
	m.deleteCalled = true
	m.lastDeleted = path
	return m.deleteErr
}

func (m *mockStore) Exists(_ context.Context, _ string) (bool, error) { return true, nil }
func (m *mockStore) Health(_ context.Context) error                   { return nil }
func (m *mockStore) Name() string                                     { return "mock" }
