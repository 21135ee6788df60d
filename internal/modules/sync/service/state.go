package service

import (
	"log/slog"

	"github.com/samber/lo"
	"github.com/teleflux/teleflux/internal/modules/sync/domain"
)

// CurrentState is the reader application's feed layout grouped the
// same way desired state is, so the diff can join the two directly.
type CurrentState struct {
	// ByCategory holds managed feeds keyed by category title. Every
	// existing category has an entry, even an empty one: presence of
	// the key is what tells the diff the category already exists.
	ByCategory map[string][]domain.ExistingFeed
	// CategoryIDs maps category titles to reader-application IDs.
	CategoryIDs map[string]int64
	// Unmanaged lists feeds this system did not create (foreign URLs
	// or unparseable ones). They are reported and never touched.
	Unmanaged []domain.ExistingFeed
	// UnmanagedCount tracks unmanaged feeds per category so an
	// otherwise-empty category holding foreign feeds is not removed.
	UnmanagedCount map[string]int
}

// ReadCurrentState groups the reader application's categories and
// feeds into CurrentState. Pure transformation: the fetch already
// happened in the collaborator. A feed whose URL cannot be parsed is
// malformed state; it is excluded from the managed view and reported
// as unmanaged instead of aborting the run.
func ReadCurrentState(
	categories []domain.ExistingCategory,
	feeds []domain.ExistingFeed,
	urls FeedURLBuilder,
) CurrentState {
	state := CurrentState{
		ByCategory:     make(map[string][]domain.ExistingFeed, len(categories)),
		CategoryIDs:    make(map[string]int64, len(categories)),
		UnmanagedCount: make(map[string]int),
	}
	for _, cat := range categories {
		state.ByCategory[cat.Title] = nil
		state.CategoryIDs[cat.Title] = cat.ID
	}
	names := lo.Invert(state.CategoryIDs)

	for _, feed := range feeds {
		if feed.Category == "" {
			feed.Category = names[feed.CategoryID]
		}
		if !urls.IsManaged(feed.URL) {
			state.Unmanaged = append(state.Unmanaged, feed)
			state.UnmanagedCount[feed.Category]++
			continue
		}
		key, err := urls.JoinKey(feed.URL)
		if err != nil {
			slog.Warn("Existing feed has unparseable URL, leaving it alone",
				"feed_id", feed.ID, "url", feed.URL, "error", err)
			state.Unmanaged = append(state.Unmanaged, feed)
			state.UnmanagedCount[feed.Category]++
			continue
		}
		feed.Key = key
		state.ByCategory[feed.Category] = append(state.ByCategory[feed.Category], feed)
	}
	return state
}

// Restrict returns a copy of the state containing only the given
// categories. The diff treats every category it receives as managed,
// so the orchestrator restricts current state to the mapping's target
// categories before diffing.
func (s CurrentState) Restrict(categories []string) CurrentState {
	keep := lo.SliceToMap(categories, func(c string) (string, struct{}) { return c, struct{}{} })
	out := CurrentState{
		ByCategory:     make(map[string][]domain.ExistingFeed),
		CategoryIDs:    make(map[string]int64),
		Unmanaged:      s.Unmanaged,
		UnmanagedCount: s.UnmanagedCount,
	}
	for name, feeds := range s.ByCategory {
		if _, ok := keep[name]; ok {
			out.ByCategory[name] = feeds
			out.CategoryIDs[name] = s.CategoryIDs[name]
		}
	}
	return out
}
