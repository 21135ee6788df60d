package service

import (
	"context"

	"github.com/teleflux/teleflux/internal/modules/sync/domain"
)

// FolderSource lists Telegram folders and their channel membership.
// Implementations own the session handle; the engine never sees it.
type FolderSource interface {
	ListFolders(ctx context.Context) ([]domain.Folder, error)
	ListChannels(ctx context.Context, folder domain.Folder) ([]domain.Channel, error)
}

// ReaderClient is the reader-application collaborator. Every call may
// fail with errors.ErrServiceUnavailable or errors.ErrRejected wrapped
// into the returned error.
type ReaderClient interface {
	Categories(ctx context.Context) ([]domain.ExistingCategory, error)
	Feeds(ctx context.Context) ([]domain.ExistingFeed, error)
	CreateCategory(ctx context.Context, title string) (int64, error)
	CreateFeed(ctx context.Context, categoryID int64, feedURL, title string) (int64, error)
	UpdateFeedTitle(ctx context.Context, feedID int64, title string) error
	RemoveFeed(ctx context.Context, feedID int64) error
	RemoveCategory(ctx context.Context, categoryID int64) error
}

// FeedValidator probes whether a feed URL serves anything. Best
// effort: any probe failure counts as unreachable.
type FeedValidator interface {
	IsReachable(ctx context.Context, feedURL string) bool
}

// FeedURLBuilder is the feed-URL collaborator injected into the
// desired-state builder and the current-state reader.
type FeedURLBuilder interface {
	ChannelURL(ch domain.Channel) (string, error)
	IsManaged(feedURL string) bool
	JoinKey(feedURL string) (string, error)
}
