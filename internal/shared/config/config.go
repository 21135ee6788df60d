package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/samber/lo"
	"github.com/samber/oops"
	"github.com/teleflux/teleflux/internal/modules/sync/domain"
	sharederrors "github.com/teleflux/teleflux/internal/shared/errors"
)

// FolderMapping binds one Telegram folder to its target Miniflux
// category. Order matters: when a channel appears in folders mapped to
// different categories, the earliest mapping wins.
type FolderMapping struct {
	Folder   string
	Category string
}

type TelegramConfig struct {
	APIID       int    `koanf:"api_id"`
	APIHash     string `koanf:"api_hash"`
	SessionFile string `koanf:"session_file"`
}

type MinifluxConfig struct {
	URL      string `koanf:"url"`
	Username string `koanf:"username"`
	Password string `koanf:"password"`
	Token    string `koanf:"token"`
}

type RSSHubConfig struct {
	BaseURL string `koanf:"base_url"`
}

type SyncConfig struct {
	Folders             []FolderMapping        `koanf:"-"`
	RemoveAbsentFeeds   bool                   `koanf:"remove_absent_feeds"`
	PrivateFeedMode     domain.PrivateFeedMode `koanf:"private_feed_mode"`
	ValidateFeeds       bool                   `koanf:"validate_feeds"`
	NotifyNoChanges     bool                   `koanf:"notify_no_changes"`
	KeepEmojisInTitles  bool                   `koanf:"keep_emojis_in_titles"`
	DisableTitleUpdates bool                   `koanf:"disable_title_updates"`
}

type LoggingConfig struct {
	Level string `koanf:"level"`
	Quiet bool   `koanf:"quiet"`
}

type NotificationsConfig struct {
	Enabled  bool   `koanf:"enabled"`
	BotToken string `koanf:"bot_token"`
	ChatID   string `koanf:"chat_id"`
}

type Config struct {
	Telegram      TelegramConfig      `koanf:"telegram"`
	Miniflux      MinifluxConfig      `koanf:"miniflux"`
	RSSHub        RSSHubConfig        `koanf:"rsshub"`
	Sync          SyncConfig          `koanf:"sync"`
	Logging       LoggingConfig       `koanf:"logging"`
	Notifications NotificationsConfig `koanf:"notifications"`
}

// Load reads configuration from path, or from the first of
// config.yaml/.yml/.json/.toml in the working directory when path is
// empty. Environment variables override file values, with "__" as the
// section separator (e.g. MINIFLUX__TOKEN).
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	configFile := path
	if configFile == "" {
		candidates := []string{"config.yaml", "config.yml", "config.json", "config.toml"}
		found, ok := lo.Find(candidates, func(name string) bool {
			_, err := os.Stat(name)
			return err == nil
		})
		if !ok {
			return nil, oops.Wrapf(os.ErrNotExist, "no configuration file found")
		}
		configFile = found
	} else if _, err := os.Stat(configFile); err != nil {
		return nil, oops.With("config_file", configFile).Wrap(err)
	}

	parser, err := parserFor(configFile)
	if err != nil {
		return nil, err
	}
	if err := k.Load(file.Provider(configFile), parser); err != nil {
		return nil, oops.With("config_file", configFile).Wrap(err)
	}

	if err := k.Load(env.Provider("", ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(s), "__", ".")
	}), nil); err != nil {
		return nil, oops.With("context", "loading environment variables").Wrap(err)
	}

	setDefaults(k)

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, oops.With("context", "unmarshaling config").Wrap(err)
	}

	folders, err := parseFolders(k.Get("sync.folders"))
	if err != nil {
		return nil, err
	}
	cfg.Sync.Folders = folders

	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func parserFor(configFile string) (koanf.Parser, error) {
	switch filepath.Ext(configFile) {
	case ".yaml", ".yml":
		return yaml.Parser(), nil
	case ".json":
		return json.Parser(), nil
	case ".toml":
		return toml.Parser(), nil
	default:
		return nil, oops.Errorf("unsupported config file extension: %s", filepath.Ext(configFile))
	}
}

func setDefaults(k *koanf.Koanf) {
	if !k.Exists("telegram.session_file") {
		k.Set("telegram.session_file", "data/teleflux.session")
	}
	if !k.Exists("sync.remove_absent_feeds") {
		k.Set("sync.remove_absent_feeds", true)
	}
	if !k.Exists("sync.private_feed_mode") {
		k.Set("sync.private_feed_mode", string(domain.PrivateFeedModeSkip))
	}
	if !k.Exists("sync.validate_feeds") {
		k.Set("sync.validate_feeds", true)
	}
	if !k.Exists("logging.level") {
		k.Set("logging.level", "INFO")
	}
	if !k.Exists("notifications.enabled") {
		k.Set("notifications.enabled", true)
	}
}

// parseFolders accepts the two shapes the folders section may take: a
// mapping of folder name to category name, or a plain list of folder
// names where the category is the folder itself. Both normalize into
// an ordered slice; map keys are sorted since the parser does not
// preserve their file order.
func parseFolders(raw any) ([]FolderMapping, error) {
	switch v := raw.(type) {
	case []any:
		mappings := make([]FolderMapping, 0, len(v))
		for _, item := range v {
			name, ok := item.(string)
			if !ok {
				return nil, oops.With("item", item).Errorf("sync.folders list entries must be strings")
			}
			mappings = append(mappings, FolderMapping{Folder: name, Category: name})
		}
		return mappings, nil
	case map[string]any:
		names := lo.Keys(v)
		sort.Strings(names)
		mappings := make([]FolderMapping, 0, len(names))
		for _, name := range names {
			category, ok := v[name].(string)
			if !ok {
				return nil, oops.With("folder", name).Errorf("sync.folders values must be category names")
			}
			mappings = append(mappings, FolderMapping{Folder: name, Category: category})
		}
		return mappings, nil
	case nil:
		return nil, sharederrors.ErrEmptyMapping
	default:
		return nil, oops.Errorf("sync.folders must be a mapping or a list, got %T", raw)
	}
}

func validate(cfg *Config) error {
	if cfg.Telegram.APIID == 0 || cfg.Telegram.APIHash == "" {
		return oops.Errorf("telegram.api_id and telegram.api_hash are required")
	}
	if cfg.Miniflux.URL == "" {
		return oops.Errorf("miniflux.url is required")
	}
	if cfg.Miniflux.Token == "" && (cfg.Miniflux.Username == "" || cfg.Miniflux.Password == "") {
		return oops.Errorf("miniflux requires either a token or username/password")
	}
	if cfg.RSSHub.BaseURL == "" {
		return oops.Errorf("rsshub.base_url is required")
	}
	if len(cfg.Sync.Folders) == 0 {
		return sharederrors.ErrEmptyMapping
	}
	if !cfg.Sync.PrivateFeedMode.IsValid() {
		return oops.With("private_feed_mode", cfg.Sync.PrivateFeedMode).
			Errorf("sync.private_feed_mode must be one of [%s]", strings.Join(domain.PrivateFeedModeNames(), ", "))
	}
	switch strings.ToUpper(cfg.Logging.Level) {
	case "DEBUG", "INFO", "WARNING", "WARN", "ERROR":
	default:
		return oops.Errorf("logging.level must be one of: DEBUG, INFO, WARNING, ERROR")
	}
	if cfg.Notifications.Enabled && cfg.Notifications.BotToken != "" && cfg.Notifications.ChatID == "" {
		return oops.Errorf("notifications.chat_id is required when a bot token is set")
	}
	cfg.Miniflux.URL = strings.TrimRight(cfg.Miniflux.URL, "/")
	cfg.RSSHub.BaseURL = strings.TrimRight(cfg.RSSHub.BaseURL, "/")
	return nil
}

// SlogLevel maps the configured level onto slog, honoring quiet mode.
func (c LoggingConfig) SlogLevel() slog.Level {
	if c.Quiet {
		return slog.LevelError
	}
	switch strings.ToUpper(c.Level) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// String implements fmt.Stringer without leaking credentials.
func (c MinifluxConfig) String() string {
	return fmt.Sprintf("miniflux{url: %s, token: %t}", c.URL, c.Token != "")
}
