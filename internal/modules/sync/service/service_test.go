package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/teleflux/teleflux/internal/modules/sync/domain"
	"github.com/teleflux/teleflux/internal/shared/config"
)

type fakeFolderSource struct {
	folders map[string][]domain.Channel
}

func (f *fakeFolderSource) ListFolders(ctx context.Context) ([]domain.Folder, error) {
	out := make([]domain.Folder, 0, len(f.folders))
	for title := range f.folders {
		out = append(out, domain.Folder{Title: title})
	}
	return out, nil
}

func (f *fakeFolderSource) ListChannels(ctx context.Context, folder domain.Folder) ([]domain.Channel, error) {
	return f.folders[folder.Title], nil
}

func syncTestConfig(mappings ...config.FolderMapping) *config.Config {
	return &config.Config{
		Sync: config.SyncConfig{
			Folders:           mappings,
			RemoveAbsentFeeds: true,
			PrivateFeedMode:   domain.PrivateFeedModeSkip,
		},
	}
}

func TestServiceRunFirstSync(t *testing.T) {
	folders := &fakeFolderSource{folders: map[string][]domain.Channel{
		"News": {
			{ID: 1, Username: "tech", Title: "Tech"},
			{ID: 2, Title: "Hidden", Private: true},
		},
	}}
	reader := newFakeReader()
	svc := New(syncTestConfig(config.FolderMapping{Folder: "News", Category: "News"}),
		folders, reader, &fakeValidator{}, testURLBuilder())

	summary, err := svc.Run(context.Background(), false)
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Created)
	assert.Equal(t, 1, summary.Skipped, "private channel skipped under skip mode")
	assert.Zero(t, summary.Failed)
	assert.Equal(t, []string{
		"create_category:News",
		"create_feed:101:https://rsshub.example.com/telegram/channel/tech",
	}, reader.calls)
}

func TestServiceRunConverged(t *testing.T) {
	folders := &fakeFolderSource{folders: map[string][]domain.Channel{
		"News": {{ID: 1, Username: "tech", Title: "Tech"}},
	}}
	reader := newFakeReader()
	reader.categories = []domain.ExistingCategory{{ID: 10, Title: "News"}}
	reader.feeds = []domain.ExistingFeed{
		{ID: 1, CategoryID: 10, Category: "News", Title: "Tech", URL: "https://rsshub.example.com/telegram/channel/tech"},
	}
	svc := New(syncTestConfig(config.FolderMapping{Folder: "News", Category: "News"}),
		folders, reader, &fakeValidator{}, testURLBuilder())

	summary, err := svc.Run(context.Background(), false)
	require.NoError(t, err)

	assert.False(t, summary.HasChanges())
	assert.Equal(t, 1, summary.InSync)
	assert.Empty(t, reader.calls, "converged state means no mutating calls")
}

func TestServiceRunLeavesUnmappedCategoriesAlone(t *testing.T) {
	folders := &fakeFolderSource{folders: map[string][]domain.Channel{
		"News": {{ID: 1, Username: "tech", Title: "Tech"}},
	}}
	reader := newFakeReader()
	reader.categories = []domain.ExistingCategory{
		{ID: 10, Title: "News"},
		{ID: 11, Title: "Personal"},
	}
	reader.feeds = []domain.ExistingFeed{
		{ID: 1, CategoryID: 10, Category: "News", Title: "Tech", URL: "https://rsshub.example.com/telegram/channel/tech"},
		// Managed-looking feed, but in a category outside the mapping.
		{ID: 2, CategoryID: 11, Category: "Personal", Title: "Mine", URL: "https://rsshub.example.com/telegram/channel/mine"},
	}
	svc := New(syncTestConfig(config.FolderMapping{Folder: "News", Category: "News"}),
		folders, reader, &fakeValidator{}, testURLBuilder())

	summary, err := svc.Run(context.Background(), false)
	require.NoError(t, err)

	assert.Empty(t, reader.calls, "feeds in unmapped categories must not be removed")
	assert.Zero(t, summary.Removed)
}

func TestServiceRunReportsUnmanagedFeeds(t *testing.T) {
	folders := &fakeFolderSource{folders: map[string][]domain.Channel{
		"News": {{ID: 1, Username: "tech", Title: "Tech"}},
	}}
	reader := newFakeReader()
	reader.categories = []domain.ExistingCategory{{ID: 10, Title: "News"}}
	reader.feeds = []domain.ExistingFeed{
		{ID: 1, CategoryID: 10, Category: "News", Title: "Tech", URL: "https://rsshub.example.com/telegram/channel/tech"},
		{ID: 2, CategoryID: 10, Category: "News", Title: "Blog", URL: "https://blog.example.com/rss.xml"},
	}
	svc := New(syncTestConfig(config.FolderMapping{Folder: "News", Category: "News"}),
		folders, reader, &fakeValidator{}, testURLBuilder())

	summary, err := svc.Run(context.Background(), false)
	require.NoError(t, err)

	require.Len(t, summary.UnmanagedFeeds, 1)
	assert.Equal(t, int64(2), summary.UnmanagedFeeds[0].ID)
	assert.Empty(t, reader.calls, "foreign feeds are reported, never touched")
}

func TestServiceRunDryRun(t *testing.T) {
	folders := &fakeFolderSource{folders: map[string][]domain.Channel{
		"News": {{ID: 1, Username: "tech", Title: "Tech"}},
	}}
	reader := newFakeReader()
	svc := New(syncTestConfig(config.FolderMapping{Folder: "News", Category: "News"}),
		folders, reader, &fakeValidator{}, testURLBuilder())

	summary, err := svc.Run(context.Background(), true)
	require.NoError(t, err)

	assert.True(t, summary.DryRun)
	assert.Equal(t, 1, summary.Created, "dry run counts what would happen")
	assert.Empty(t, reader.calls)
}

func TestServiceRunEmptyMappingFails(t *testing.T) {
	svc := New(syncTestConfig(), &fakeFolderSource{}, newFakeReader(), &fakeValidator{}, testURLBuilder())

	_, err := svc.Run(context.Background(), false)
	assert.Error(t, err)
}
