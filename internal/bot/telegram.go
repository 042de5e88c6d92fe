package bot

import (
	"context"
	"fmt"
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/omarshaarawi/sleeperbot/internal/service"
)

type TelegramBot struct {
	bot     *tgbotapi.BotAPI
	handler *Handler
	chatID  int64
}

func NewTelegramBot(token string, chatID int64, fantasyService *service.FantasyService) (*TelegramBot, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("connecting to telegram: %w", err)
	}

	return &TelegramBot{
		bot:     bot,
		handler: NewHandler(fantasyService),
		chatID:  chatID,
	}, nil
}

func (t *TelegramBot) Start(ctx context.Context) error {
	slog.Info("Authorized on account", "username", t.bot.Self.UserName)
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := t.bot.GetUpdatesChan(u)
	defer t.bot.StopReceivingUpdates()

	for {
		select {
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if update.Message == nil || !update.Message.IsCommand() {
				continue
			}
			if !t.allowed(update.Message.Chat.ID) {
				slog.Warn("Ignoring command from unknown chat", "chat_id", update.Message.Chat.ID, "command", update.Message.Command())
				continue
			}

			// Projections fan out over the whole roster and can take a few seconds.
			if _, err := t.bot.Request(tgbotapi.NewChatAction(update.Message.Chat.ID, tgbotapi.ChatTyping)); err != nil {
				slog.Debug("Error sending chat action", "error", err)
			}

			msg := t.handler.HandleCommand(ctx, update)
			if _, err := t.bot.Send(msg); err != nil {
				slog.Error("Error sending message", "error", err, "command", update.Message.Command())
			}
		case <-ctx.Done():
			return nil
		}
	}
}

// allowed reports whether commands from chatID are answered. With no
// CHAT_ID configured every chat is served.
func (t *TelegramBot) allowed(chatID int64) bool {
	return t.chatID == 0 || t.chatID == chatID
}

func (t *TelegramBot) SendMessage(text string) error {
	if t.chatID == 0 {
		return fmt.Errorf("chat ID not set")
	}

	msg := tgbotapi.NewMessage(t.chatID, text)
	msg.ParseMode = "Markdown"
	if _, err := t.bot.Send(msg); err != nil {
		slog.Error("Error sending message", "error", err)
		return err
	}
	return nil
}
