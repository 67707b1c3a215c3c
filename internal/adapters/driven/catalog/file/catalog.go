// Package file loads the topic catalogue from a TOML file.
//
// The catalogue is read once at startup; adding a topic means editing the
// file and restarting the bot. Example:
//
//	[[topics]]
//	name = "work"
//	hashtag = "#work"
//	description = "Work documents and receipts"
//	folder_id = "1AbCdEfGh"
package file

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/custodia-labs/tgarchive/internal/core/domain"
)

// catalogue is the on-disk shape of the topics file.
type catalogue struct {
	Topics []topicEntry `toml:"topics"`
}

type topicEntry struct {
	Name        string `toml:"name"`
	Hashtag     string `toml:"hashtag"`
	Description string `toml:"description"`
	FolderID    string `toml:"folder_id"`
}

// LoadCatalogue reads and parses the topic catalogue at path. Structural
// validation (duplicates, missing fields) happens in the Directory, not here.
func LoadCatalogue(path string) ([]domain.Topic, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading topics file: %w", err)
	}

	var cat catalogue
	if err := toml.Unmarshal(data, &cat); err != nil {
		return nil, fmt.Errorf("%w: parsing %s: %v", domain.ErrInvalidCatalog, path, err)
	}

	topics := make([]domain.Topic, 0, len(cat.Topics))
	for _, e := range cat.Topics {
		topics = append(topics, domain.Topic{
			Name:        e.Name,
			Hashtag:     e.Hashtag,
			Description: e.Description,
			FolderID:    e.FolderID,
		})
	}
	return topics, nil
}
