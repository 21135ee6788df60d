package service

import (
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/teleflux/teleflux/internal/modules/sync/domain"
)

func desiredFeed(category, handle, title string) domain.DesiredFeed {
	url := "https://rsshub.example.com/telegram/channel/" + handle
	return domain.DesiredFeed{
		Category:     category,
		ChannelTitle: title,
		Title:        title,
		URL:          url,
		Key:          url,
	}
}

func existingFeed(id int64, category, handle, title string) domain.ExistingFeed {
	url := "https://rsshub.example.com/telegram/channel/" + handle
	return domain.ExistingFeed{ID: id, Category: category, Title: title, URL: url, Key: url}
}

func currentState(feedsByCat map[string][]domain.ExistingFeed, ids map[string]int64) CurrentState {
	state := CurrentState{
		ByCategory:     feedsByCat,
		CategoryIDs:    ids,
		UnmanagedCount: map[string]int{},
	}
	return state
}

func actionTypes(actions []domain.Action) []domain.ActionType {
	return lo.Map(actions, func(a domain.Action, _ int) domain.ActionType { return a.Type })
}

func TestDiffCreatesMissingCategoryFirst(t *testing.T) {
	desired := []domain.DesiredFeed{
		desiredFeed("News", "a", "A"),
		desiredFeed("News", "b", "B"),
	}
	current := currentState(map[string][]domain.ExistingFeed{}, map[string]int64{})

	actions := Diff(desired, current, true, false)

	require.Equal(t, []domain.ActionType{
		domain.ActionTypeCreateCategory,
		domain.ActionTypeCreateFeed,
		domain.ActionTypeCreateFeed,
	}, actionTypes(actions))
	assert.Equal(t, "News", actions[0].Category)
}

func TestDiffInSyncProducesOnlyNoops(t *testing.T) {
	desired := []domain.DesiredFeed{desiredFeed("News", "a", "A")}
	current := currentState(
		map[string][]domain.ExistingFeed{"News": {existingFeed(1, "News", "a", "A")}},
		map[string]int64{"News": 10},
	)

	actions := Diff(desired, current, true, false)

	require.Len(t, actions, 1)
	assert.Equal(t, domain.ActionTypeNoop, actions[0].Type)
	assert.Equal(t, int64(1), actions[0].FeedID)
}

func TestDiffMatchesByURLNotTitle(t *testing.T) {
	desired := []domain.DesiredFeed{desiredFeed("News", "a", "Renamed Channel")}
	current := currentState(
		map[string][]domain.ExistingFeed{"News": {existingFeed(1, "News", "a", "Old Name")}},
		map[string]int64{"News": 10},
	)

	actions := Diff(desired, current, true, false)

	require.Len(t, actions, 1)
	assert.Equal(t, domain.ActionTypeUpdateFeedTitle, actions[0].Type)
	assert.Equal(t, "Renamed Channel", actions[0].Title)
	assert.Equal(t, "Old Name", actions[0].OldTitle)
	assert.Equal(t, int64(1), actions[0].FeedID)
}

func TestDiffDisableTitleUpdates(t *testing.T) {
	desired := []domain.DesiredFeed{desiredFeed("News", "a", "Renamed Channel")}
	current := currentState(
		map[string][]domain.ExistingFeed{"News": {existingFeed(1, "News", "a", "Old Name")}},
		map[string]int64{"News": 10},
	)

	actions := Diff(desired, current, true, true)

	require.Len(t, actions, 1)
	assert.Equal(t, domain.ActionTypeNoop, actions[0].Type)
}

func TestDiffRemovesAbsentFeeds(t *testing.T) {
	desired := []domain.DesiredFeed{desiredFeed("News", "keep", "Keep")}
	current := currentState(
		map[string][]domain.ExistingFeed{"News": {
			existingFeed(1, "News", "keep", "Keep"),
			existingFeed(2, "News", "gone", "Gone"),
		}},
		map[string]int64{"News": 10},
	)

	actions := Diff(desired, current, true, false)

	require.Equal(t, []domain.ActionType{
		domain.ActionTypeNoop,
		domain.ActionTypeRemoveFeed,
	}, actionTypes(actions))
	assert.Equal(t, int64(2), actions[1].FeedID)
}

func TestDiffKeepsAbsentFeedsWhenRemovalDisabled(t *testing.T) {
	current := currentState(
		map[string][]domain.ExistingFeed{"News": {existingFeed(2, "News", "gone", "Gone")}},
		map[string]int64{"News": 10},
	)

	actions := Diff(nil, current, false, false)

	require.Len(t, actions, 1)
	assert.Equal(t, domain.ActionTypeNoop, actions[0].Type)
}

func TestDiffCreatesBeforeRemovesWithinCategory(t *testing.T) {
	desired := []domain.DesiredFeed{desiredFeed("News", "new", "New")}
	current := currentState(
		map[string][]domain.ExistingFeed{"News": {existingFeed(1, "News", "old", "Old")}},
		map[string]int64{"News": 10},
	)

	actions := Diff(desired, current, true, false)

	require.Equal(t, []domain.ActionType{
		domain.ActionTypeCreateFeed,
		domain.ActionTypeRemoveFeed,
	}, actionTypes(actions))
}

func TestDiffRemovesEmptiedCategory(t *testing.T) {
	current := currentState(
		map[string][]domain.ExistingFeed{"Stale": {existingFeed(1, "Stale", "gone", "Gone")}},
		map[string]int64{"Stale": 10},
	)

	actions := Diff(nil, current, true, false)

	require.Equal(t, []domain.ActionType{
		domain.ActionTypeRemoveFeed,
		domain.ActionTypeRemoveEmptyCategory,
	}, actionTypes(actions))
	assert.Equal(t, "Stale", actions[1].Category)
	assert.Equal(t, int64(10), actions[1].CategoryID)
}

func TestDiffKeepsCategoryHoldingUnmanagedFeeds(t *testing.T) {
	current := currentState(
		map[string][]domain.ExistingFeed{"Mixed": {existingFeed(1, "Mixed", "gone", "Gone")}},
		map[string]int64{"Mixed": 10},
	)
	current.UnmanagedCount["Mixed"] = 2

	actions := Diff(nil, current, true, false)

	require.Equal(t, []domain.ActionType{domain.ActionTypeRemoveFeed}, actionTypes(actions))
}

func TestDiffCategoriesProcessedDeterministically(t *testing.T) {
	desired := []domain.DesiredFeed{
		desiredFeed("Zeta", "z", "Z"),
		desiredFeed("Alpha", "a", "A"),
	}
	current := currentState(map[string][]domain.ExistingFeed{}, map[string]int64{})

	first := Diff(desired, current, true, false)
	second := Diff(desired, current, true, false)
	assert.Equal(t, first, second)
	assert.Equal(t, "Alpha", first[0].Category, "categories are handled in sorted order")
}

// Applying the diff and diffing again must yield no pending work.
func TestDiffIdempotence(t *testing.T) {
	desired := []domain.DesiredFeed{
		desiredFeed("News", "a", "A"),
		desiredFeed("News", "b", "B"),
	}

	// Simulate the state after a successful first run.
	converged := currentState(
		map[string][]domain.ExistingFeed{"News": {
			existingFeed(1, "News", "a", "A"),
			existingFeed(2, "News", "b", "B"),
		}},
		map[string]int64{"News": 10},
	)

	actions := Diff(desired, converged, true, false)
	pending := lo.CountBy(actions, func(a domain.Action) bool { return a.Type != domain.ActionTypeNoop })
	assert.Zero(t, pending)
}
