// Package notify announces finished catalog refreshes to a Telegram chat.
package notify

import (
	"fmt"
	"strings"

	"emotecat/types"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// Sender is the subset of the Telegram bot API used for announcements.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Notifier posts refresh summaries to one chat.
type Notifier struct {
	sender Sender
	chatID int64
	logger *zap.Logger
}

// New authorizes a bot with token and returns a Notifier for chatID.
func New(token string, chatID int64, logger *zap.Logger) (*Notifier, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize tg bot: %w", err)
	}
	if logger != nil {
		logger.Debug("Authorized on account", zap.String("user", bot.Self.UserName))
	}
	return NewWithSender(bot, chatID, logger), nil
}

// NewWithSender returns a Notifier that posts through s.
func NewWithSender(s Sender, chatID int64, logger *zap.Logger) *Notifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Notifier{sender: s, chatID: chatID, logger: logger}
}

// Announce sends a summary of a refreshed catalog written to path.
func (n *Notifier) Announce(path string, entries []types.EmoteEntry, counts []types.GroupCount) error {
	msg := tgbotapi.NewMessage(n.chatID, Message(path, entries, counts))
	if _, err := n.sender.Send(msg); err != nil {
		return fmt.Errorf("failed to send refresh notice: %w", err)
	}
	n.logger.Info("Refresh notice sent", zap.Int64("chat_id", n.chatID))
	return nil
}

// Message renders the announcement text.
func Message(path string, entries []types.EmoteEntry, counts []types.GroupCount) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Emote catalog refreshed: %d entries in %d groups\n", len(entries), len(counts))
	fmt.Fprintf(&sb, "Saved to %s\n", path)
	for _, c := range counts {
		fmt.Fprintf(&sb, "• %s: %d\n", c.Group, c.Count)
	}
	return strings.TrimRight(sb.String(), "\n")
}
