// Package config loads runtime configuration from a TOML file and
// environment variables. Priority: ENV > file > defaults.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds the complete bot configuration.
type Config struct {
	Telegram Telegram `toml:"telegram"`
	Storage  Storage  `toml:"storage"`
	Topics   Topics   `toml:"topics"`
	Batching Batching `toml:"batching"`
	Log      Log      `toml:"log"`
}

// Telegram configures the bot transport.
type Telegram struct {
	BotToken string `toml:"bot_token" env:"TELEGRAM_BOT_TOKEN" env-required:"true"`

	// SendDetailedErrors attaches a short failure explanation as a reply
	// in addition to the failure reaction.
	SendDetailedErrors bool `toml:"send_detailed_errors" env:"SEND_DETAILED_ERRORS"`
}

// Storage configures the archive backend and upload policy.
type Storage struct {
	// Backend selects the archive destination: "drive" or "dropbox".
	Backend string `toml:"backend" env:"STORAGE_BACKEND" env-default:"drive"`

	// GoogleCredentials is a path to a service account key file, or the
	// key JSON itself.
	GoogleCredentials string `toml:"google_credentials" env:"GOOGLE_SERVICE_ACCOUNT_JSON"`

	// DefaultFolderID receives items from users with no topic selected.
	DefaultFolderID string `toml:"default_folder_id" env:"DEFAULT_DRIVE_FOLDER_ID"`

	DropboxToken string `toml:"dropbox_token" env:"DROPBOX_ACCESS_TOKEN"`

	MaxFileSize  int64    `toml:"max_file_size" env:"MAX_FILE_SIZE_BYTES" env-default:"20971520"`
	AllowedMIMEs []string `toml:"allowed_mime_types" env:"ALLOWED_MIME_TYPES"`

	// TextFormat selects how text notes are rendered: "txt" or "doc".
	TextFormat string `toml:"text_format" env:"TEXT_FORMAT" env-default:"txt"`

	CallTimeout time.Duration `toml:"call_timeout" env:"STORAGE_CALL_TIMEOUT" env-default:"2m"`
	MaxAttempts uint64        `toml:"max_attempts" env:"STORAGE_MAX_ATTEMPTS" env-default:"4"`
}

// Topics configures the topic catalogue and selection state.
type Topics struct {
	CatalogueFile string `toml:"catalogue_file" env:"TOPICS_FILE" env-default:"./topics.toml"`
	StateDB       string `toml:"state_db" env:"USER_STATE_DB"`
}

// Batching configures media group handling.
type Batching struct {
	Window time.Duration `toml:"window" env:"BATCH_WINDOW" env-default:"90s"`
}

// Log configures logging output.
type Log struct {
	Level string `toml:"level" env:"LOG_LEVEL" env-default:"info"`
}

// Load reads configuration from the TOML file at path (when non-empty) and
// the environment. With an empty path only ENV and defaults apply.
func Load(path string) (*Config, error) {
	var cfg Config

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("config: file %s: %w", path, err)
		}
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	} else {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("config: read env: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}

	return &cfg, nil
}

// Validate checks cross-field constraints that tags cannot express.
func (c *Config) Validate() error {
	if c.Storage.DefaultFolderID == "" {
		return fmt.Errorf("default folder id is required")
	}

	switch c.Storage.Backend {
	case "drive":
		if c.Storage.GoogleCredentials == "" {
			return fmt.Errorf("drive backend requires google credentials")
		}
	case "dropbox":
		if c.Storage.DropboxToken == "" {
			return fmt.Errorf("dropbox backend requires an access token")
		}
	default:
		return fmt.Errorf("unknown storage backend %q", c.Storage.Backend)
	}

	switch c.Storage.TextFormat {
	case "txt", "doc":
	default:
		return fmt.Errorf("unknown text format %q", c.Storage.TextFormat)
	}

	if c.Storage.MaxFileSize <= 0 {
		return fmt.Errorf("max file size must be positive")
	}
	if c.Batching.Window <= 0 {
		return fmt.Errorf("batch window must be positive")
	}
	return nil
}
