// Package telegram implements the messaging-client collaborator: an
// MTProto session that lists dialog filters ("folders") and resolves
// their channel membership, plus a Bot API sender for notifications.
package telegram

import (
	"context"
	"log/slog"

	"github.com/gotd/contrib/bg"
	"github.com/gotd/td/session"
	"github.com/gotd/td/telegram"
	"github.com/gotd/td/tg"
	"github.com/samber/lo"
	"github.com/samber/oops"
	"github.com/teleflux/teleflux/internal/modules/sync/domain"
	"github.com/teleflux/teleflux/internal/shared/config"
	sharederrors "github.com/teleflux/teleflux/internal/shared/errors"
)

// channelsPerRequest caps channels.getChannels batches.
const channelsPerRequest = 100

// Client owns the MTProto session handle. The sync engine only sees
// the FolderSource interface; connection lifetime is managed by the
// DI container (Connect on first use, Close on shutdown).
type Client struct {
	cfg    config.TelegramConfig
	client *telegram.Client
	api    *tg.Client
	stop   bg.StopFunc

	// folder title -> included peers, cached per connection. A run is
	// a point-in-time snapshot, so staleness within one run is fine.
	peers map[string][]tg.InputPeerClass
}

func New(cfg config.TelegramConfig) *Client {
	return &Client{cfg: cfg}
}

// Connect dials Telegram using the persisted session file. The
// session must already be authorized; a batch tool cannot run an
// interactive login.
func (c *Client) Connect(ctx context.Context) error {
	c.client = telegram.NewClient(c.cfg.APIID, c.cfg.APIHash, telegram.Options{
		SessionStorage: &session.FileStorage{Path: c.cfg.SessionFile},
	})

	stop, err := bg.Connect(c.client)
	if err != nil {
		return oops.With("session_file", c.cfg.SessionFile).
			Wrapf(sharederrors.ErrServiceUnavailable, "connecting to telegram: %v", err)
	}
	c.stop = stop

	status, err := c.client.Auth().Status(ctx)
	if err != nil {
		_ = c.Close()
		return oops.Wrapf(sharederrors.ErrServiceUnavailable, "checking auth status: %v", err)
	}
	if !status.Authorized {
		_ = c.Close()
		return oops.With("session_file", c.cfg.SessionFile).Wrap(sharederrors.ErrNotAuthorized)
	}

	c.api = c.client.API()
	c.peers = nil
	return nil
}

// Close terminates the session. Safe to call when never connected.
func (c *Client) Close() error {
	if c.stop == nil {
		return nil
	}
	stop := c.stop
	c.stop = nil
	return stop()
}

// ListFolders returns the user's dialog filters by visible title.
func (c *Client) ListFolders(ctx context.Context) ([]domain.Folder, error) {
	if err := c.loadFilters(ctx); err != nil {
		return nil, err
	}
	folders := make([]domain.Folder, 0, len(c.peers))
	for title := range c.peers {
		folders = append(folders, domain.Folder{Title: title})
	}
	return folders, nil
}

// ListChannels resolves a folder's included peers to broadcast
// channels. Groups, supergroups and users in the folder are skipped:
// only broadcast channels carry an RSSHub route.
func (c *Client) ListChannels(ctx context.Context, folder domain.Folder) ([]domain.Channel, error) {
	if err := c.loadFilters(ctx); err != nil {
		return nil, err
	}
	peers, ok := c.peers[folder.Title]
	if !ok {
		return nil, nil
	}

	inputs := lo.FilterMap(peers, func(peer tg.InputPeerClass, _ int) (tg.InputChannelClass, bool) {
		ch, ok := peer.(*tg.InputPeerChannel)
		if !ok {
			return nil, false
		}
		return &tg.InputChannel{ChannelID: ch.ChannelID, AccessHash: ch.AccessHash}, true
	})

	var channels []domain.Channel
	for _, batch := range lo.Chunk(inputs, channelsPerRequest) {
		result, err := c.api.ChannelsGetChannels(ctx, batch)
		if err != nil {
			return nil, oops.With("folder", folder.Title).
				Wrapf(sharederrors.ErrServiceUnavailable, "resolving channels: %v", err)
		}
		for _, chat := range result.GetChats() {
			channel, ok := chat.(*tg.Channel)
			if !ok {
				continue
			}
			if !channel.Broadcast {
				slog.Info("Skipping non-broadcast chat", "title", channel.Title, "folder", folder.Title)
				continue
			}
			channels = append(channels, domain.Channel{
				ID:       channel.ID,
				Username: channel.Username,
				Title:    channel.Title,
				Private:  channel.Username == "",
			})
		}
	}
	return channels, nil
}

func (c *Client) loadFilters(ctx context.Context) error {
	if c.peers != nil {
		return nil
	}
	if c.api == nil {
		return oops.Wrapf(sharederrors.ErrServiceUnavailable, "telegram client is not connected")
	}

	filters, err := c.api.MessagesGetDialogFilters(ctx)
	if err != nil {
		return oops.Wrapf(sharederrors.ErrServiceUnavailable, "listing dialog filters: %v", err)
	}

	c.peers = make(map[string][]tg.InputPeerClass)
	for _, filter := range filters.Filters {
		switch f := filter.(type) {
		case *tg.DialogFilter:
			c.peers[f.Title] = append(f.PinnedPeers, f.IncludePeers...)
		case *tg.DialogFilterChatlist:
			c.peers[f.Title] = append(f.PinnedPeers, f.IncludePeers...)
		default:
			// DialogFilterDefault: the main list, not a folder.
		}
	}
	return nil
}
