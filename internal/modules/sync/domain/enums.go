//go:generate go run github.com/abice/go-enum --file=$GOFILE --names --nocase

package domain

// ActionType is the kind of reconciliation step.
// ENUM(create_category,create_feed,update_feed_title,remove_feed,remove_empty_category,noop)
type ActionType string

// ActionStatus is the executor's verdict on an action.
// ENUM(applied,would_apply,failed,skipped,unchanged)
type ActionStatus string

// PrivateFeedMode controls how private channels are synchronized.
// ENUM(secret,skip)
type PrivateFeedMode string

// SkipReason explains why a channel produced no desired feed.
// ENUM(private_channel,no_public_handle,conflict)
type SkipReason string
