// Package service builds RSSHub feed URLs for Telegram channels and
// owns the join-key rules used to match desired feeds against feeds
// already present in the reader application.
package service

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"net/url"
	"strings"

	"github.com/samber/oops"
	"github.com/teleflux/teleflux/internal/modules/sync/domain"
	sharederrors "github.com/teleflux/teleflux/internal/shared/errors"
)

const channelPath = "/telegram/channel/"

// Builder constructs deterministic feed URLs. The same channel under
// the same private-feed mode always yields the same URL, which is what
// makes the URL usable as a join key across runs.
type Builder struct {
	baseURL string
	apiHash string
}

func New(baseURL, apiHash string) *Builder {
	return &Builder{baseURL: strings.TrimRight(baseURL, "/"), apiHash: apiHash}
}

// ChannelURL returns the RSSHub URL for a channel. Public channels use
// their lowercased handle; private channels use the positive numeric ID
// plus a secret parameter. A public channel without a handle cannot be
// addressed and returns ErrNoHandle semantics via a wrapped error.
func (b *Builder) ChannelURL(ch domain.Channel) (string, error) {
	if ch.Private {
		u := fmt.Sprintf("%s%s%d", b.baseURL, channelPath, abs(ch.ID))
		params := url.Values{"secret": {b.SecretHash(ch.ID)}}
		return u + "?" + params.Encode(), nil
	}
	if ch.Username == "" {
		return "", oops.With("channel", ch.Title).Errorf("public channel has no username")
	}
	return b.baseURL + channelPath + strings.ToLower(ch.Username), nil
}

// SecretHash derives the secret used by RSSHub to serve private
// channels. It must stay stable across runs for the join key to hold.
func (b *Builder) SecretHash(channelID int64) string {
	sum := md5.Sum([]byte(fmt.Sprintf("%d_%s", channelID, b.apiHash)))
	return hex.EncodeToString(sum[:])[:16]
}

// IsManaged reports whether a feed URL was produced by this system:
// it points at our RSSHub instance and at the Telegram channel route.
// Everything else in the reader application is left untouched.
func (b *Builder) IsManaged(feedURL string) bool {
	return strings.HasPrefix(feedURL, b.baseURL) && strings.Contains(feedURL, channelPath)
}

// JoinKey normalizes a feed URL for matching. Comparison is
// case-insensitive because handles may be cased differently between
// Telegram and whatever created the existing feed.
func (b *Builder) JoinKey(feedURL string) (string, error) {
	parsed, err := url.Parse(feedURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return "", oops.With("url", feedURL).Wrap(sharederrors.ErrMalformedState)
	}
	return strings.ToLower(feedURL), nil
}

func abs(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
