// Package miniflux adapts the official Miniflux API client to the
// collaborator ports the sync engine consumes. Transient failures are
// retried here with a small backoff; the engine only ever sees the
// final outcome.
package miniflux

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/samber/lo"
	"github.com/samber/oops"
	"github.com/teleflux/teleflux/internal/modules/sync/domain"
	"github.com/teleflux/teleflux/internal/shared/config"
	sharederrors "github.com/teleflux/teleflux/internal/shared/errors"
	miniflux "miniflux.app/v2/client"
)

const (
	defaultAttempts = 3
	defaultBackoff  = 2 * time.Second
	probeTimeout    = 10 * time.Second
)

type Client struct {
	api      *miniflux.Client
	probe    *http.Client
	attempts int
	backoff  time.Duration
}

func New(cfg config.MinifluxConfig) *Client {
	var api *miniflux.Client
	if cfg.Token != "" {
		api = miniflux.NewClient(cfg.URL, cfg.Token)
	} else {
		api = miniflux.NewClient(cfg.URL, cfg.Username, cfg.Password)
	}
	return &Client{
		api:      api,
		probe:    &http.Client{Timeout: probeTimeout},
		attempts: defaultAttempts,
		backoff:  defaultBackoff,
	}
}

func (c *Client) Categories(ctx context.Context) ([]domain.ExistingCategory, error) {
	var categories miniflux.Categories
	err := c.withRetry(func() error {
		var err error
		categories, err = c.api.Categories()
		return classify(err)
	})
	if err != nil {
		return nil, oops.With("op", "categories").Wrap(err)
	}
	return lo.Map(categories, func(cat *miniflux.Category, _ int) domain.ExistingCategory {
		return domain.ExistingCategory{ID: cat.ID, Title: cat.Title}
	}), nil
}

func (c *Client) Feeds(ctx context.Context) ([]domain.ExistingFeed, error) {
	var feeds miniflux.Feeds
	err := c.withRetry(func() error {
		var err error
		feeds, err = c.api.Feeds()
		return classify(err)
	})
	if err != nil {
		return nil, oops.With("op", "feeds").Wrap(err)
	}
	return lo.Map(feeds, func(feed *miniflux.Feed, _ int) domain.ExistingFeed {
		existing := domain.ExistingFeed{
			ID:    feed.ID,
			Title: feed.Title,
			URL:   feed.FeedURL,
		}
		if feed.Category != nil {
			existing.CategoryID = feed.Category.ID
			existing.Category = feed.Category.Title
		}
		return existing
	}), nil
}

func (c *Client) CreateCategory(ctx context.Context, title string) (int64, error) {
	var category *miniflux.Category
	err := c.withRetry(func() error {
		var err error
		category, err = c.api.CreateCategory(title)
		return classify(err)
	})
	if err != nil {
		return 0, oops.With("op", "create_category", "title", title).Wrap(err)
	}
	return category.ID, nil
}

func (c *Client) CreateFeed(ctx context.Context, categoryID int64, feedURL, title string) (int64, error) {
	var feedID int64
	err := c.withRetry(func() error {
		var err error
		feedID, err = c.api.CreateFeed(&miniflux.FeedCreationRequest{
			FeedURL:    feedURL,
			CategoryID: categoryID,
		})
		return classify(err)
	})
	if err != nil {
		return 0, oops.With("op", "create_feed", "url", feedURL).Wrap(err)
	}
	// The create endpoint ignores titles, so set ours afterwards. A
	// failure here leaves a working feed with the autodetected title;
	// the next run repairs it as a title update.
	if title != "" {
		if err := c.UpdateFeedTitle(ctx, feedID, title); err != nil {
			return feedID, nil
		}
	}
	return feedID, nil
}

func (c *Client) UpdateFeedTitle(ctx context.Context, feedID int64, title string) error {
	err := c.withRetry(func() error {
		_, err := c.api.UpdateFeed(feedID, &miniflux.FeedModificationRequest{Title: &title})
		return classify(err)
	})
	if err != nil {
		return oops.With("op", "update_feed_title", "feed_id", feedID).Wrap(err)
	}
	return nil
}

func (c *Client) RemoveFeed(ctx context.Context, feedID int64) error {
	err := c.withRetry(func() error {
		return classify(c.api.DeleteFeed(feedID))
	})
	if err != nil {
		return oops.With("op", "remove_feed", "feed_id", feedID).Wrap(err)
	}
	return nil
}

func (c *Client) RemoveCategory(ctx context.Context, categoryID int64) error {
	err := c.withRetry(func() error {
		return classify(c.api.DeleteCategory(categoryID))
	})
	if err != nil {
		return oops.With("op", "remove_category", "category_id", categoryID).Wrap(err)
	}
	return nil
}

// IsReachable probes a feed URL with a HEAD request. Best effort: any
// error or non-200 status counts as unreachable.
func (c *Client) IsReachable(ctx context.Context, feedURL string) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, feedURL, nil)
	if err != nil {
		return false
	}
	req.Header.Set("User-Agent", "teleflux")
	resp, err := c.probe.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

// withRetry retries transient failures only. Rejections are final:
// retrying a duplicate-URL error cannot succeed within the same run.
func (c *Client) withRetry(op func() error) error {
	var final error
	_, _, _ = lo.AttemptWithDelay(c.attempts, c.backoff, func(_ int, _ time.Duration) error {
		final = op()
		if final != nil && errors.Is(final, sharederrors.ErrServiceUnavailable) {
			return final
		}
		return nil
	})
	return final
}

// classify sorts an API error into the shared taxonomy: a refusal the
// server understood is a rejection, everything else means the service
// could not serve us.
func classify(err error) error {
	if err == nil {
		return nil
	}
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "already exists") ||
		strings.Contains(msg, "bad request") ||
		strings.Contains(msg, "invalid") ||
		strings.Contains(msg, "duplicated") {
		return fmt.Errorf("%w: %w", sharederrors.ErrRejected, err)
	}
	return fmt.Errorf("%w: %w", sharederrors.ErrServiceUnavailable, err)
}
