package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/teleflux/teleflux/internal/modules/sync/domain"
	sharederrors "github.com/teleflux/teleflux/internal/shared/errors"
)

// Executor applies an ordered action list through the reader
// collaborator. Each action is attempted on its own: one failure is
// recorded and the batch continues. The single exception is a failed
// CreateCategory, which invalidates every queued action that depends
// on the category existing.
type Executor struct {
	reader        ReaderClient
	validator     FeedValidator
	validateFeeds bool
	dryRun        bool
}

func NewExecutor(reader ReaderClient, validator FeedValidator, validateFeeds, dryRun bool) *Executor {
	return &Executor{reader: reader, validator: validator, validateFeeds: validateFeeds, dryRun: dryRun}
}

// Execute runs the actions strictly in list order. categoryIDs seeds
// the category title -> ID table from current state; IDs of categories
// created during the run are added as they appear. Cancellation stops
// before the next action and never rolls back applied ones.
func (e *Executor) Execute(ctx context.Context, actions []domain.Action, categoryIDs map[string]int64) domain.ExecutionReport {
	report := domain.ExecutionReport{DryRun: e.dryRun, Results: make([]domain.ActionResult, 0, len(actions))}
	ids := make(map[string]int64, len(categoryIDs))
	for name, id := range categoryIDs {
		ids[name] = id
	}
	failedCategories := map[string]bool{}

	for i, action := range actions {
		if ctx.Err() != nil {
			for _, rest := range actions[i:] {
				if rest.Type == domain.ActionTypeNoop {
					report.Results = append(report.Results, domain.ActionResult{Action: rest, Status: domain.ActionStatusUnchanged})
					continue
				}
				report.Results = append(report.Results, domain.ActionResult{
					Action: rest,
					Status: domain.ActionStatusSkipped,
					Reason: "run canceled",
				})
			}
			break
		}
		report.Results = append(report.Results, e.apply(ctx, action, ids, failedCategories))
	}
	return report
}

func (e *Executor) apply(ctx context.Context, action domain.Action, ids map[string]int64, failedCategories map[string]bool) domain.ActionResult {
	if action.Type == domain.ActionTypeNoop {
		return domain.ActionResult{Action: action, Status: domain.ActionStatusUnchanged}
	}
	if failedCategories[action.Category] {
		return domain.ActionResult{
			Action: action,
			Status: domain.ActionStatusSkipped,
			Reason: "dependency failed: category " + action.Category + " was not created",
		}
	}

	if e.validateFeeds && !e.dryRun &&
		(action.Type == domain.ActionTypeCreateFeed || action.Type == domain.ActionTypeUpdateFeedTitle) {
		if !e.validator.IsReachable(ctx, action.URL) {
			slog.Warn("Feed URL failed reachability probe", "url", action.URL, "channel", action.ChannelTitle)
			return domain.ActionResult{
				Action: action,
				Status: domain.ActionStatusFailed,
				Reason: "feed unreachable",
				Err:    sharederrors.ErrFeedUnreachable,
			}
		}
	}

	if e.dryRun {
		slog.Info("Would apply", "action", action.Type, "category", action.Category, "url", action.URL, "title", action.Title)
		return domain.ActionResult{Action: action, Status: domain.ActionStatusWouldApply}
	}

	err := e.call(ctx, &action, ids)
	if err != nil {
		slog.Error("Action failed", "action", action.Type, "category", action.Category, "url", action.URL, "error", err)
		if action.Type == domain.ActionTypeCreateCategory {
			failedCategories[action.Category] = true
		}
		return domain.ActionResult{
			Action: action,
			Status: domain.ActionStatusFailed,
			Reason: failureReason(err),
			Err:    err,
		}
	}

	slog.Info("Applied", "action", action.Type, "category", action.Category, "url", action.URL, "title", action.Title)
	return domain.ActionResult{Action: action, Status: domain.ActionStatusApplied}
}

func (e *Executor) call(ctx context.Context, action *domain.Action, ids map[string]int64) error {
	switch action.Type {
	case domain.ActionTypeCreateCategory:
		id, err := e.reader.CreateCategory(ctx, action.Category)
		if err != nil {
			return err
		}
		action.CategoryID = id
		ids[action.Category] = id
		return nil
	case domain.ActionTypeCreateFeed:
		id, err := e.reader.CreateFeed(ctx, ids[action.Category], action.URL, action.Title)
		if err != nil {
			return err
		}
		action.FeedID = id
		return nil
	case domain.ActionTypeUpdateFeedTitle:
		return e.reader.UpdateFeedTitle(ctx, action.FeedID, action.Title)
	case domain.ActionTypeRemoveFeed:
		return e.reader.RemoveFeed(ctx, action.FeedID)
	case domain.ActionTypeRemoveEmptyCategory:
		return e.reader.RemoveCategory(ctx, ids[action.Category])
	default:
		return nil
	}
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, sharederrors.ErrRejected):
		return "rejected by reader application"
	case errors.Is(err, sharederrors.ErrServiceUnavailable):
		return "service unavailable"
	case errors.Is(err, sharederrors.ErrFeedUnreachable):
		return "feed unreachable"
	default:
		return err.Error()
	}
}
