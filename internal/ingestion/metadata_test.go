package ingestion

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetadata_JSONMarshaling(t *testing.T) {
	metadata := &Metadata{
		Path:      "resume.pdf",
		Format:    FormatPDF,
		Timestamp: "2024-01-01T00:00:00Z",
		Hash:      "abcd1234",
		WordCount: 412,
	}

	jsonBytes, err := metadata.ToJSON()
	require.NoError(t, err)

	var raw map[string]interface{}
	require.NoError(t, json.Unmarshal(jsonBytes, &raw))
	assert.Equal(t, "resume.pdf", raw["path"])
	assert.Equal(t, "pdf", raw["format"])
	assert.Equal(t, float64(412), raw["word_count"])
}

func TestComputeHash(t *testing.T) {
	hash1 := computeHash("test content")
	hash2 := computeHash("different content")

	// Hash should be 64 hex characters (SHA256)
	assert.Len(t, hash1, 64)
	assert.NotEqual(t, hash1, hash2)
	assert.Equal(t, hash1, computeHash("test content"))
}

func TestNewMetadata(t *testing.T) {
	content := "Senior engineer with ten years of experience"

	metadata := NewMetadata(content, "resume.md", FormatMarkdown)

	assert.Equal(t, "resume.md", metadata.Path)
	assert.Equal(t, FormatMarkdown, metadata.Format)
	assert.Equal(t, 7, metadata.WordCount)
	assert.Equal(t, computeHash(content), metadata.Hash)

	_, err := time.Parse(time.RFC3339, metadata.Timestamp)
	assert.NoError(t, err)
}
