package imagefile

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeFileName_StripsPathComponents(t *testing.T) {
	assert.Equal(t, "photo.png", SanitizeFileName("/tmp/uploads/photo.png"))
	assert.Equal(t, "photo.png", SanitizeFileName(`C:\Users\me\photo.png`))
	assert.Equal(t, "photo.png", SanitizeFileName("../../photo.png"))
}

func TestSanitizeFileName_ReplacesSpaces(t *testing.T) {
	assert.Equal(t, "my_beach_photo.jpg", SanitizeFileName("my beach photo.jpg"))
}

func TestSanitizeFileName_RejectsUnusableNames(t *testing.T) {
	assert.Equal(t, "", SanitizeFileName(""))
	assert.Equal(t, "", SanitizeFileName("   "))
	assert.Equal(t, "", SanitizeFileName("/"))
	assert.Equal(t, "", SanitizeFileName("path/to/"))
	assert.Equal(t, "", SanitizeFileName(".."))
}

func TestInferMimeType_KnownExtensions(t *testing.T) {
	assert.Equal(t, "image/png", InferMimeType("a.png"))
	assert.Equal(t, "image/jpeg", InferMimeType("a.jpg"))
	assert.Equal(t, "image/jpeg", InferMimeType("a.JPEG"))
	assert.Equal(t, "image/gif", InferMimeType("a.gif"))
	assert.Equal(t, "image/bmp", InferMimeType("a.bmp"))
}

func TestInferMimeType_UnknownExtension(t *testing.T) {
	assert.Equal(t, "", InferMimeType("archive.tar.gz"))
	assert.Equal(t, "", InferMimeType("noextension"))
	assert.Equal(t, "", InferMimeType("a.webp"))
}
