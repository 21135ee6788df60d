package service

import (
	"sort"

	"github.com/samber/lo"
	"github.com/teleflux/teleflux/internal/modules/sync/domain"
)

// Diff compares desired state against current state and returns the
// ordered action list that converges the latter to the former.
//
// Ordering guarantees, relied on by the executor:
//   - CreateCategory precedes every action referencing that category;
//   - within a category, creates and updates precede removes;
//   - RemoveEmptyCategory is the last action mentioning its category.
//
// Matching uses the join key only; titles and positions never match
// feeds. Running Diff twice over the same pair yields only noop
// entries the second time, which is what makes repeated runs safe.
//
// Every category present in current is treated as managed. A channel
// that moved between folders shows up as a create in the new category
// plus, under removeAbsent, a remove in the old one; if the reader
// application rejects the duplicate URL mid-run, the next run applies
// the create after the remove has landed.
func Diff(desired []domain.DesiredFeed, current CurrentState, removeAbsent, disableTitleUpdates bool) []domain.Action {
	desiredByCat := lo.GroupBy(desired, func(d domain.DesiredFeed) string { return d.Category })

	categories := lo.Uniq(append(lo.Keys(desiredByCat), lo.Keys(current.ByCategory)...))
	sort.Strings(categories)

	var actions []domain.Action
	for _, cat := range categories {
		want := desiredByCat[cat]
		have, exists := current.ByCategory[cat]
		catID := current.CategoryIDs[cat]

		if !exists {
			actions = append(actions, domain.Action{Type: domain.ActionTypeCreateCategory, Category: cat})
			for _, d := range want {
				actions = append(actions, createFeedAction(d, 0))
			}
			continue
		}

		haveByKey := lo.SliceToMap(have, func(f domain.ExistingFeed) (string, domain.ExistingFeed) {
			return f.Key, f
		})
		matched := make(map[string]bool, len(have))

		for _, d := range want {
			existing, ok := haveByKey[d.Key]
			if !ok {
				actions = append(actions, createFeedAction(d, catID))
				continue
			}
			matched[d.Key] = true
			if d.Title != existing.Title && !disableTitleUpdates {
				actions = append(actions, domain.Action{
					Type:         domain.ActionTypeUpdateFeedTitle,
					Category:     cat,
					CategoryID:   catID,
					FeedID:       existing.ID,
					URL:          existing.URL,
					Title:        d.Title,
					OldTitle:     existing.Title,
					ChannelTitle: d.ChannelTitle,
				})
				continue
			}
			actions = append(actions, domain.Action{
				Type:       domain.ActionTypeNoop,
				Category:   cat,
				CategoryID: catID,
				FeedID:     existing.ID,
				URL:        existing.URL,
				Title:      existing.Title,
			})
		}

		for _, f := range have {
			if matched[f.Key] {
				continue
			}
			if !removeAbsent {
				// Orphaned but kept.
				actions = append(actions, domain.Action{
					Type:       domain.ActionTypeNoop,
					Category:   cat,
					CategoryID: catID,
					FeedID:     f.ID,
					URL:        f.URL,
					Title:      f.Title,
				})
				continue
			}
			actions = append(actions, domain.Action{
				Type:       domain.ActionTypeRemoveFeed,
				Category:   cat,
				CategoryID: catID,
				FeedID:     f.ID,
				URL:        f.URL,
				Title:      f.Title,
			})
		}

		if removeAbsent && len(want) == 0 && current.UnmanagedCount[cat] == 0 {
			actions = append(actions, domain.Action{
				Type:       domain.ActionTypeRemoveEmptyCategory,
				Category:   cat,
				CategoryID: catID,
			})
		}
	}
	return actions
}

func createFeedAction(d domain.DesiredFeed, categoryID int64) domain.Action {
	return domain.Action{
		Type:         domain.ActionTypeCreateFeed,
		Category:     d.Category,
		CategoryID:   categoryID,
		URL:          d.URL,
		Title:        d.Title,
		ChannelTitle: d.ChannelTitle,
	}
}
