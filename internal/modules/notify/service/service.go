// Package service formats run summaries into notification messages
// and decides whether one should be sent at all. Delivery is the
// transport's job.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/samber/lo"
	"github.com/teleflux/teleflux/internal/modules/sync/domain"
)

const (
	// Telegram rejects messages above 4096 characters.
	maxMessageLength = 4096
	maxItemsToShow   = 20
	maxErrorLength   = 200
)

// MessageSender delivers a single message to the configured chat.
type MessageSender interface {
	SendMessage(ctx context.Context, text string) error
}

// Notifier applies the notification policy and pushes formatted
// summaries through the sender. Delivery failures are logged and
// swallowed: a missed notification must never taint the sync outcome.
type Notifier struct {
	sender          MessageSender
	enabled         bool
	notifyNoChanges bool
}

func New(sender MessageSender, enabled, notifyNoChanges bool) *Notifier {
	return &Notifier{sender: sender, enabled: enabled, notifyNoChanges: notifyNoChanges}
}

// Notify sends the summary if policy allows. Dry runs never notify.
func (n *Notifier) Notify(ctx context.Context, summary domain.Summary) {
	if !n.enabled || n.sender == nil {
		slog.Info("Notifications are disabled")
		return
	}
	if summary.DryRun {
		slog.Info("Skipping notification in dry-run mode")
		return
	}
	if !summary.HasChanges() && summary.Failed == 0 && !n.notifyNoChanges {
		slog.Info("Skipping notification: no changes and notify_no_changes is disabled")
		return
	}

	for _, part := range Split(Format(summary), maxMessageLength) {
		if err := n.sender.SendMessage(ctx, part); err != nil {
			slog.Error("Failed to send notification", "error", err)
			return
		}
	}
	slog.Info("Synchronization notification sent")
}

// Format renders a summary into the notification body: a status line,
// capped per-action sections, and a totals line.
func Format(s domain.Summary) string {
	var lines []string

	switch {
	case !s.HasChanges() && s.Failed == 0:
		if s.DryRun {
			lines = append(lines, "Sync Status: No changes would be made")
		} else {
			lines = append(lines, "Sync Status: No changes required")
		}
	case s.Failed == 0:
		lines = append(lines, "Sync Status: Synchronization completed successfully")
	default:
		lines = append(lines, "Sync Status: Synchronization completed with errors")
	}

	if s.HasChanges() || s.Failed > 0 {
		lines = append(lines, "")
	}

	lines = appendSection(lines, label("Added feeds", "Would add feeds", s.DryRun), s.CreatedFeeds, func(r domain.ActionResult) string {
		return fmt.Sprintf("  • %s → %s", itemTitle(r), r.Action.Category)
	})
	lines = appendSection(lines, label("Removed feeds", "Would remove feeds", s.DryRun), s.RemovedFeeds, func(r domain.ActionResult) string {
		if r.Action.Type == domain.ActionTypeRemoveEmptyCategory {
			return fmt.Sprintf("  • category %s (empty)", r.Action.Category)
		}
		return fmt.Sprintf("  • %s ← %s", itemTitle(r), r.Action.Category)
	})
	lines = appendSection(lines, label("Updated titles", "Would update titles", s.DryRun), s.UpdatedTitles, func(r domain.ActionResult) string {
		return fmt.Sprintf("  • %s → %s", r.Action.OldTitle, r.Action.Title)
	})
	lines = appendSection(lines, "Failed", s.FailedActions, func(r domain.ActionResult) string {
		reason := r.Reason
		if len(reason) > maxErrorLength {
			reason = reason[:maxErrorLength-3] + "..."
		}
		return fmt.Sprintf("  • %s: %s", itemTitle(r), reason)
	})

	var totals []string
	if s.Created > 0 {
		totals = append(totals, fmt.Sprintf("Added: %d", s.Created))
	}
	if s.Removed > 0 {
		totals = append(totals, fmt.Sprintf("Removed: %d", s.Removed))
	}
	if s.Updated > 0 {
		totals = append(totals, fmt.Sprintf("Updated: %d", s.Updated))
	}
	if s.Failed > 0 {
		totals = append(totals, fmt.Sprintf("Errors: %d", s.Failed))
	}
	if len(totals) > 0 {
		mode := ""
		if s.DryRun {
			mode = " (DRY RUN)"
		}
		lines = append(lines, fmt.Sprintf("Summary: %s%s", strings.Join(totals, " | "), mode))
	}

	return strings.Join(lines, "\n")
}

func appendSection(lines []string, header string, items []domain.ActionResult, render func(domain.ActionResult) string) []string {
	if len(items) == 0 {
		return lines
	}
	lines = append(lines, fmt.Sprintf("%s (%d):", header, len(items)))
	shown := lo.Slice(items, 0, maxItemsToShow)
	for _, item := range shown {
		lines = append(lines, render(item))
	}
	if rest := len(items) - len(shown); rest > 0 {
		lines = append(lines, fmt.Sprintf("  • ... and %d more", rest))
	}
	return append(lines, "")
}

func label(normal, dry string, dryRun bool) string {
	if dryRun {
		return dry
	}
	return normal
}

func itemTitle(r domain.ActionResult) string {
	if r.Action.ChannelTitle != "" {
		return r.Action.ChannelTitle
	}
	if r.Action.Title != "" {
		return r.Action.Title
	}
	return r.Action.URL
}

// Split breaks a message into chunks below max, preferring newline
// boundaries, then spaces, then a hard cut.
func Split(message string, max int) []string {
	if len(message) <= max {
		return []string{message}
	}
	var parts []string
	remaining := message
	for len(remaining) > max {
		chunk := remaining[:max]
		cut := strings.LastIndex(chunk, "\n")
		if cut < max/2 {
			if space := strings.LastIndex(chunk, " "); space > max/2 {
				cut = space
			} else {
				cut = -1
			}
		}
		if cut > 0 {
			parts = append(parts, remaining[:cut])
			remaining = remaining[cut+1:]
		} else {
			parts = append(parts, remaining[:max])
			remaining = remaining[max:]
		}
	}
	if len(remaining) > 0 {
		parts = append(parts, remaining)
	}
	return parts
}
