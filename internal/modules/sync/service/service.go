package service

import (
	"context"
	"log/slog"

	"github.com/samber/lo"
	"github.com/samber/oops"
	"github.com/teleflux/teleflux/internal/modules/sync/domain"
	"github.com/teleflux/teleflux/internal/shared/config"
)

// Service wires the reconciliation pipeline together: snapshot both
// sides, diff, execute, summarize. Each run rebuilds everything from
// scratch; the only state that persists between runs lives in the
// reader application itself.
type Service struct {
	cfg       *config.Config
	folders   FolderSource
	reader    ReaderClient
	validator FeedValidator
	urls      FeedURLBuilder
}

func New(cfg *config.Config, folders FolderSource, reader ReaderClient, validator FeedValidator, urls FeedURLBuilder) *Service {
	return &Service{cfg: cfg, folders: folders, reader: reader, validator: validator, urls: urls}
}

// Run performs one reconciliation pass. A non-nil error means a fatal
// failure: one of the state snapshots could not be built and no action
// was attempted. Anything short of that produces a Summary, including
// runs where individual actions failed.
func (s *Service) Run(ctx context.Context, dryRun bool) (domain.Summary, error) {
	if dryRun {
		slog.Info("Starting synchronization in dry-run mode")
	} else {
		slog.Info("Starting synchronization")
	}

	membership, err := s.fetchFolderMembership(ctx)
	if err != nil {
		return domain.Summary{}, err
	}

	desired, skipped, err := BuildDesiredState(membership, s.cfg.Sync.Folders, BuildPolicy{
		PrivateMode: s.cfg.Sync.PrivateFeedMode,
		KeepEmojis:  s.cfg.Sync.KeepEmojisInTitles,
	}, s.urls)
	if err != nil {
		return domain.Summary{}, err
	}
	slog.Info("Desired state built", "feeds", len(desired), "skipped_channels", len(skipped))

	categories, err := s.reader.Categories(ctx)
	if err != nil {
		return domain.Summary{}, oops.With("context", "listing categories").Wrap(err)
	}
	feeds, err := s.reader.Feeds(ctx)
	if err != nil {
		return domain.Summary{}, oops.With("context", "listing feeds").Wrap(err)
	}

	state := ReadCurrentState(categories, feeds, s.urls)
	managed := state.Restrict(lo.Map(s.cfg.Sync.Folders, func(m config.FolderMapping, _ int) string {
		return m.Category
	}))
	slog.Info("Current state read",
		"categories", len(state.ByCategory), "managed_categories", len(managed.ByCategory),
		"unmanaged_feeds", len(state.Unmanaged))

	actions := Diff(desired, managed, s.cfg.Sync.RemoveAbsentFeeds, s.cfg.Sync.DisableTitleUpdates)
	pending := lo.CountBy(actions, func(a domain.Action) bool { return a.Type != domain.ActionTypeNoop })
	if pending == 0 {
		slog.Info("No changes needed, all folders are in sync")
	} else {
		slog.Info("Applying changes", "actions", pending)
	}

	executor := NewExecutor(s.reader, s.validator, s.cfg.Sync.ValidateFeeds, dryRun)
	report := executor.Execute(ctx, actions, managed.CategoryIDs)

	summary := Aggregate(report, skipped, state.Unmanaged)
	slog.Info("Synchronization finished",
		"created", summary.Created, "updated", summary.Updated, "removed", summary.Removed,
		"in_sync", summary.InSync, "skipped", summary.Skipped, "failed", summary.Failed,
		"dry_run", summary.DryRun)
	return summary, nil
}

// fetchFolderMembership lists configured folders and their channels.
// Any failure here is fatal: diffing against a partial desired state
// would remove feeds that still have live channels.
func (s *Service) fetchFolderMembership(ctx context.Context) (map[string][]domain.Channel, error) {
	folders, err := s.folders.ListFolders(ctx)
	if err != nil {
		return nil, oops.With("context", "listing folders").Wrap(err)
	}

	wanted := lo.SliceToMap(s.cfg.Sync.Folders, func(m config.FolderMapping) (string, struct{}) {
		return m.Folder, struct{}{}
	})

	membership := make(map[string][]domain.Channel)
	for _, folder := range folders {
		if _, ok := wanted[folder.Title]; !ok {
			continue
		}
		channels, err := s.folders.ListChannels(ctx, folder)
		if err != nil {
			return nil, oops.With("folder", folder.Title).Wrap(err)
		}
		membership[folder.Title] = channels
	}
	return membership, nil
}
