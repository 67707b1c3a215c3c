package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/tgarchive/internal/adapters/driven/catalog/file"
	"github.com/custodia-labs/tgarchive/internal/config"
	"github.com/custodia-labs/tgarchive/internal/core/services"
)

var (
	topicNameStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	hashtagStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	folderStyle    = lipgloss.NewStyle().Faint(true)
)

var topicsCmd = &cobra.Command{
	Use:   "topics",
	Short: "List the configured topic catalogue",
	Long: `Validates and prints the topic catalogue the bot would serve.
Useful for checking a catalogue edit before restarting the bot.`,
	RunE: runTopics,
}

func init() {
	rootCmd.AddCommand(topicsCmd)
}

func runTopics(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}

	topics, err := file.LoadCatalogue(cfg.Topics.CatalogueFile)
	if err != nil {
		return fmt.Errorf("loading topic catalogue: %w", err)
	}
	directory, err := services.NewDirectory(topics)
	if err != nil {
		return fmt.Errorf("validating topic catalogue: %w", err)
	}

	all := directory.All()
	if len(all) == 0 {
		cmd.Println("No topics configured.")
		return nil
	}

	for _, t := range all {
		line := topicNameStyle.Render(t.Name) + "  " + hashtagStyle.Render(t.Hashtag)
		if t.Description != "" {
			line += "  " + t.Description
		}
		cmd.Println(line)
		cmd.Println("  " + folderStyle.Render("folder: "+t.FolderID))
	}

	return nil
}
