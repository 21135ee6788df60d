package config

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/teleflux/teleflux/internal/modules/sync/domain"
	sharederrors "github.com/teleflux/teleflux/internal/shared/errors"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

const validYAML = `
telegram:
  api_id: 12345
  api_hash: abcdef
miniflux:
  url: https://miniflux.example.com/
  token: secret-token
rsshub:
  base_url: https://rsshub.example.com/
sync:
  folders:
    News: Reader News
    Tech: Tech
`

func TestLoadValidConfig(t *testing.T) {
	cfg, err := Load(writeConfig(t, "config.yaml", validYAML))
	require.NoError(t, err)

	assert.Equal(t, 12345, cfg.Telegram.APIID)
	assert.Equal(t, "abcdef", cfg.Telegram.APIHash)
	assert.Equal(t, "secret-token", cfg.Miniflux.Token)

	assert.Equal(t, "https://miniflux.example.com", cfg.Miniflux.URL, "trailing slash trimmed")
	assert.Equal(t, "https://rsshub.example.com", cfg.RSSHub.BaseURL)

	require.Len(t, cfg.Sync.Folders, 2)
	assert.Equal(t, FolderMapping{Folder: "News", Category: "Reader News"}, cfg.Sync.Folders[0])
	assert.Equal(t, FolderMapping{Folder: "Tech", Category: "Tech"}, cfg.Sync.Folders[1])
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "config.yaml", validYAML))
	require.NoError(t, err)

	assert.Equal(t, "data/teleflux.session", cfg.Telegram.SessionFile)
	assert.True(t, cfg.Sync.RemoveAbsentFeeds)
	assert.Equal(t, domain.PrivateFeedModeSkip, cfg.Sync.PrivateFeedMode)
	assert.True(t, cfg.Sync.ValidateFeeds)
	assert.False(t, cfg.Sync.NotifyNoChanges)
	assert.Equal(t, "INFO", cfg.Logging.Level)
	assert.True(t, cfg.Notifications.Enabled)
}

func TestLoadFolderList(t *testing.T) {
	cfg, err := Load(writeConfig(t, "config.yaml", `
telegram: {api_id: 1, api_hash: h}
miniflux: {url: https://m.example.com, token: tok}
rsshub: {base_url: https://r.example.com}
sync:
  folders:
    - News
    - Tech
`))
	require.NoError(t, err)

	require.Len(t, cfg.Sync.Folders, 2)
	assert.Equal(t, FolderMapping{Folder: "News", Category: "News"}, cfg.Sync.Folders[0], "list form maps folders onto themselves")
	assert.Equal(t, FolderMapping{Folder: "Tech", Category: "Tech"}, cfg.Sync.Folders[1])
}

func TestLoadMissingFolders(t *testing.T) {
	_, err := Load(writeConfig(t, "config.yaml", `
telegram: {api_id: 1, api_hash: h}
miniflux: {url: https://m.example.com, token: tok}
rsshub: {base_url: https://r.example.com}
`))
	assert.True(t, errors.Is(err, sharederrors.ErrEmptyMapping))
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestLoadUnsupportedExtension(t *testing.T) {
	_, err := Load(writeConfig(t, "config.ini", "a=b"))
	assert.Error(t, err)
}

func TestLoadJSON(t *testing.T) {
	cfg, err := Load(writeConfig(t, "config.json", `{
  "telegram": {"api_id": 1, "api_hash": "h"},
  "miniflux": {"url": "https://m.example.com", "token": "tok"},
  "rsshub": {"base_url": "https://r.example.com"},
  "sync": {"folders": ["News"]}
}`))
	require.NoError(t, err)
	assert.Len(t, cfg.Sync.Folders, 1)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("MINIFLUX__TOKEN", "env-token")

	cfg, err := Load(writeConfig(t, "config.yaml", validYAML))
	require.NoError(t, err)
	assert.Equal(t, "env-token", cfg.Miniflux.Token)
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{
			name: "missing telegram credentials",
			yaml: `
miniflux: {url: https://m.example.com, token: tok}
rsshub: {base_url: https://r.example.com}
sync: {folders: [News]}
`,
		},
		{
			name: "missing miniflux url",
			yaml: `
telegram: {api_id: 1, api_hash: h}
rsshub: {base_url: https://r.example.com}
sync: {folders: [News]}
`,
		},
		{
			name: "missing miniflux credentials",
			yaml: `
telegram: {api_id: 1, api_hash: h}
miniflux: {url: https://m.example.com, username: u}
rsshub: {base_url: https://r.example.com}
sync: {folders: [News]}
`,
		},
		{
			name: "missing rsshub base url",
			yaml: `
telegram: {api_id: 1, api_hash: h}
miniflux: {url: https://m.example.com, token: tok}
sync: {folders: [News]}
`,
		},
		{
			name: "bad private feed mode",
			yaml: `
telegram: {api_id: 1, api_hash: h}
miniflux: {url: https://m.example.com, token: tok}
rsshub: {base_url: https://r.example.com}
sync: {folders: [News], private_feed_mode: banana}
`,
		},
		{
			name: "bad logging level",
			yaml: `
telegram: {api_id: 1, api_hash: h}
miniflux: {url: https://m.example.com, token: tok}
rsshub: {base_url: https://r.example.com}
sync: {folders: [News]}
logging: {level: LOUD}
`,
		},
		{
			name: "bot token without chat id",
			yaml: `
telegram: {api_id: 1, api_hash: h}
miniflux: {url: https://m.example.com, token: tok}
rsshub: {base_url: https://r.example.com}
sync: {folders: [News]}
notifications: {bot_token: "123:abc"}
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, "config.yaml", tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestSlogLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, LoggingConfig{Level: "DEBUG"}.SlogLevel())
	assert.Equal(t, slog.LevelInfo, LoggingConfig{Level: "INFO"}.SlogLevel())
	assert.Equal(t, slog.LevelWarn, LoggingConfig{Level: "warning"}.SlogLevel())
	assert.Equal(t, slog.LevelError, LoggingConfig{Level: "ERROR"}.SlogLevel())
	assert.Equal(t, slog.LevelError, LoggingConfig{Level: "DEBUG", Quiet: true}.SlogLevel(), "quiet overrides the level")
}

func TestMinifluxConfigStringHidesSecrets(t *testing.T) {
	s := MinifluxConfig{URL: "https://m.example.com", Token: "secret"}.String()
	assert.NotContains(t, s, "secret")
}
