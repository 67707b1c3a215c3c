package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/tgarchive/internal/adapters/driven/catalog/file"
	statesqlite "github.com/custodia-labs/tgarchive/internal/adapters/driven/state/sqlite"
	"github.com/custodia-labs/tgarchive/internal/adapters/driven/storage/drive"
	"github.com/custodia-labs/tgarchive/internal/adapters/driven/storage/dropbox"
	"github.com/custodia-labs/tgarchive/internal/adapters/driving/telegram"
	"github.com/custodia-labs/tgarchive/internal/config"
	"github.com/custodia-labs/tgarchive/internal/core/domain"
	"github.com/custodia-labs/tgarchive/internal/core/ports/driven"
	"github.com/custodia-labs/tgarchive/internal/core/services"
)

// runBot wires the full pipeline and blocks until SIGINT or SIGTERM.
func runBot(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}

	log, err := buildLogger(cfg.Log.Level)
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

	stateStore, err := statesqlite.NewStore(cfg.Topics.StateDB)
	if err != nil {
		return fmt.Errorf("opening state store: %w", err)
	}
	defer stateStore.Close()

	store, err := buildStore(cmd.Context(), cfg, log)
	if err != nil {
		return err
	}

	userTopics := services.NewUserTopics(directory, stateStore, log)
	grouper := services.NewGrouper(store, cfg.Batching.Window, log)
	archiver := services.NewArchiver(userTopics, grouper, store, services.ArchiverConfig{
		DefaultFolderID: cfg.Storage.DefaultFolderID,
		CallTimeout:     cfg.Storage.CallTimeout,
	}, log)

	bot, err := telegram.NewBot(telegram.Config{
		Token:              cfg.Telegram.BotToken,
		SendDetailedErrors: cfg.Telegram.SendDetailedErrors,
	}, archiver, userTopics, log)
	if err != nil {
		return err
	}

	grouper.Start()
	defer grouper.Stop()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		log.Info().Msg("shutting down")
		bot.Stop()
	}()

	log.Info().
		Str("backend", cfg.Storage.Backend).
		Int("topics", len(topics)).
		Msg("bot starting")
	bot.Start()

	return nil
}

// buildStore constructs the configured archive backend.
func buildStore(ctx context.Context, cfg *config.Config, log zerolog.Logger) (driven.ArchiveStore, error) {
	policy := domain.UploadPolicy{
		MaxFileSize:      cfg.Storage.MaxFileSize,
		AllowedMIMETypes: cfg.Storage.AllowedMIMEs,
	}

	switch cfg.Storage.Backend {
	case "drive":
		return drive.NewClient(ctx, drive.Config{
			Credentials: cfg.Storage.GoogleCredentials,
			Policy:      policy,
			TextMode:    drive.TextMode(cfg.Storage.TextFormat),
			MaxAttempts: cfg.Storage.MaxAttempts,
		}, log)
	case "dropbox":
		return dropbox.NewClient(dropbox.Config{
			Token:       cfg.Storage.DropboxToken,
			Policy:      policy,
			MaxAttempts: cfg.Storage.MaxAttempts,
		}, log)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}

// buildLogger creates the process logger. The --log-level flag overrides
// the configured level.
func buildLogger(level string) (zerolog.Logger, error) {
	if flagLogLevel != "" {
		level = flagLogLevel
	}
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Logger{}, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	out := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	return zerolog.New(out).Level(lvl).With().Timestamp().Logger(), nil
}
