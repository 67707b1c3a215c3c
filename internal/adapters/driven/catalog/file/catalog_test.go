package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/tgarchive/internal/core/domain"
)

func writeCatalogue(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "topics.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoadCatalogue(t *testing.T) {
	path := writeCatalogue(t, `
[[topics]]
name = "work"
hashtag = "#work"
description = "Work documents"
folder_id = "folder-work"

[[topics]]
name = "family"
folder_id = "folder-family"
`)

	topics, err := LoadCatalogue(path)
	require.NoError(t, err)
	require.Len(t, topics, 2)

	assert.Equal(t, domain.Topic{
		Name:        "work",
		Hashtag:     "#work",
		Description: "Work documents",
		FolderID:    "folder-work",
	}, topics[0])

	// Optional fields stay empty; the Directory fills in defaults
	assert.Equal(t, "family", topics[1].Name)
	assert.Empty(t, topics[1].Hashtag)
}

func TestLoadCatalogue_Empty(t *testing.T) {
	path := writeCatalogue(t, "")

	topics, err := LoadCatalogue(path)
	require.NoError(t, err)
	assert.Empty(t, topics)
}

func TestLoadCatalogue_MissingFile(t *testing.T) {
	_, err := LoadCatalogue(filepath.Join(t.TempDir(), "absent.toml"))
	require.Error(t, err)
}

func TestLoadCatalogue_Malformed(t *testing.T) {
	path := writeCatalogue(t, "[[topics]\nname = ")

	_, err := LoadCatalogue(path)
	require.ErrorIs(t, err, domain.ErrInvalidCatalog)
}
