package service

import (
	"log/slog"

	"github.com/samber/oops"
	"github.com/teleflux/teleflux/internal/modules/sync/domain"
	"github.com/teleflux/teleflux/internal/shared/config"
	sharederrors "github.com/teleflux/teleflux/internal/shared/errors"
)

// BuildPolicy carries the configuration bits the desired-state builder
// depends on. Desired state is a pure function of its inputs plus this
// policy; nothing carries over between runs.
type BuildPolicy struct {
	PrivateMode domain.PrivateFeedMode
	KeepEmojis  bool
}

// BuildDesiredState converts folder membership into the feed layout
// the reader application should converge to.
//
// Mappings are processed in order. The first mapping that claims a
// channel wins: a channel repeated under two folders mapped to the
// same category collapses silently into one feed, while a channel
// claimed by folders mapped to different categories is recorded as a
// conflict skip for the losing folder.
func BuildDesiredState(
	folders map[string][]domain.Channel,
	mapping []config.FolderMapping,
	policy BuildPolicy,
	urls FeedURLBuilder,
) ([]domain.DesiredFeed, []domain.SkippedChannel, error) {
	if len(mapping) == 0 {
		return nil, nil, sharederrors.ErrEmptyMapping
	}

	var (
		desired  []domain.DesiredFeed
		skipped  []domain.SkippedChannel
		assigned = map[string]string{} // join key -> winning category
		usable   int
	)

	for _, m := range mapping {
		channels, ok := folders[m.Folder]
		if !ok {
			slog.Debug("Configured folder not present in Telegram", "folder", m.Folder)
			continue
		}
		usable++

		for _, ch := range channels {
			if ch.Private && policy.PrivateMode == domain.PrivateFeedModeSkip {
				skipped = append(skipped, domain.SkippedChannel{
					ChannelTitle: ch.Title,
					Folder:       m.Folder,
					Reason:       domain.SkipReasonPrivateChannel,
				})
				continue
			}

			feedURL, err := urls.ChannelURL(ch)
			if err != nil {
				slog.Warn("Cannot build feed URL for channel", "channel", ch.Title, "folder", m.Folder, "error", err)
				skipped = append(skipped, domain.SkippedChannel{
					ChannelTitle: ch.Title,
					Folder:       m.Folder,
					Reason:       domain.SkipReasonNoPublicHandle,
				})
				continue
			}
			key, err := urls.JoinKey(feedURL)
			if err != nil {
				return nil, nil, oops.With("channel", ch.Title).Wrap(err)
			}

			if winner, taken := assigned[key]; taken {
				if winner != m.Category {
					skipped = append(skipped, domain.SkippedChannel{
						ChannelTitle: ch.Title,
						Folder:       m.Folder,
						Reason:       domain.SkipReasonConflict,
						Detail:       winner,
					})
				}
				continue
			}
			assigned[key] = m.Category

			desired = append(desired, domain.DesiredFeed{
				Category:     m.Category,
				ChannelID:    ch.ID,
				ChannelTitle: ch.Title,
				Title:        NormalizeTitle(ch.Title, policy.KeepEmojis),
				URL:          feedURL,
				Key:          key,
			})
		}
	}

	if usable == 0 {
		return nil, nil, oops.Wrapf(sharederrors.ErrEmptyMapping, "none of the configured folders exist in Telegram")
	}
	return desired, skipped, nil
}
