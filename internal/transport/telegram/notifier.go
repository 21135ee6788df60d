package telegram

import (
	"context"
	"strconv"

	"github.com/go-telegram/bot"
	"github.com/samber/oops"
	"github.com/teleflux/teleflux/internal/shared/config"
)

// Notifier delivers summary messages through the Bot API. Kept apart
// from the MTProto client: the bot token and the user session are
// independent credentials and either may be absent.
type Notifier struct {
	bot    *bot.Bot
	chatID any
}

func NewNotifier(cfg config.NotificationsConfig) (*Notifier, error) {
	b, err := bot.New(cfg.BotToken)
	if err != nil {
		return nil, oops.Wrapf(err, "creating notification bot")
	}
	return &Notifier{bot: b, chatID: parseChatID(cfg.ChatID)}, nil
}

func (n *Notifier) SendMessage(ctx context.Context, text string) error {
	_, err := n.bot.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: n.chatID,
		Text:   text,
	})
	if err != nil {
		return oops.With("chat_id", n.chatID).Wrapf(err, "sending message")
	}
	return nil
}

// parseChatID keeps "@channelname" targets as strings and converts
// numeric IDs so the Bot API receives a proper integer.
func parseChatID(raw string) any {
	if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return id
	}
	return raw
}
