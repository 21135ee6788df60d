// Package errors defines the sentinel errors shared across modules.
// Collaborator adapters classify their failures into one of these so the
// sync engine can decide between fatal and per-action handling without
// knowing transport details.
package errors

import "errors"

var (
	// ErrEmptyMapping is returned when the folder mapping is empty or
	// matches none of the folders reported by Telegram. Fatal: nothing
	// can be synchronized.
	ErrEmptyMapping = errors.New("folder mapping is empty or resolves to no folders")

	// ErrServiceUnavailable marks a collaborator that could not be
	// reached (network, auth). Fatal while building state snapshots,
	// per-action during execution.
	ErrServiceUnavailable = errors.New("service unavailable")

	// ErrRejected marks a write the collaborator refused (duplicate
	// URL, validation failure). Always per-action.
	ErrRejected = errors.New("request rejected")

	// ErrMalformedState marks an existing feed whose URL cannot be
	// parsed into a join key. The feed is excluded and reported, never
	// fatal.
	ErrMalformedState = errors.New("malformed feed state")

	// ErrFeedUnreachable marks a feed URL that failed the reachability
	// probe. Per-action.
	ErrFeedUnreachable = errors.New("feed unreachable")

	// ErrNotAuthorized is returned when the Telegram session file is
	// missing or expired and an interactive login would be required.
	ErrNotAuthorized = errors.New("telegram session is not authorized")
)
