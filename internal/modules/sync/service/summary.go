package service

import (
	"github.com/teleflux/teleflux/internal/modules/sync/domain"
)

// Aggregate folds an execution report into the run summary. Pure, no
// I/O; whether the notifier fires on the result is the caller's
// business. Counts cover feed-level actions; category creations and
// removals only show up in the itemized lists.
func Aggregate(report domain.ExecutionReport, skippedChannels []domain.SkippedChannel, unmanaged []domain.ExistingFeed) domain.Summary {
	summary := domain.Summary{
		DryRun:          report.DryRun,
		SkippedChannels: skippedChannels,
		UnmanagedFeeds:  unmanaged,
		Skipped:         len(skippedChannels),
	}

	for _, r := range report.Results {
		switch r.Status {
		case domain.ActionStatusFailed:
			summary.Failed++
			summary.FailedActions = append(summary.FailedActions, r)
		case domain.ActionStatusSkipped:
			summary.Skipped++
			summary.SkippedActions = append(summary.SkippedActions, r)
		case domain.ActionStatusUnchanged:
			summary.InSync++
		case domain.ActionStatusApplied, domain.ActionStatusWouldApply:
			switch r.Action.Type {
			case domain.ActionTypeCreateFeed:
				summary.Created++
				summary.CreatedFeeds = append(summary.CreatedFeeds, r)
			case domain.ActionTypeUpdateFeedTitle:
				summary.Updated++
				summary.UpdatedTitles = append(summary.UpdatedTitles, r)
			case domain.ActionTypeRemoveFeed:
				summary.Removed++
				summary.RemovedFeeds = append(summary.RemovedFeeds, r)
			case domain.ActionTypeRemoveEmptyCategory:
				summary.RemovedFeeds = append(summary.RemovedFeeds, r)
			}
		}
	}
	return summary
}
