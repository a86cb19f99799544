package bot

import (
	"context"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/vidstat/statbot/pkg/config"
	"github.com/vidstat/statbot/pkg/logging"
)

const msgProcessing = "Обрабатываю запрос…"

// Bot runs the Telegram long-polling loop and hands text messages to the
// Answerer. Each message is handled on its own goroutine so one slow
// translation does not block the poll loop.
type Bot struct {
	api      *tgbotapi.BotAPI
	answerer *Answerer
	timeout  int
	logger   *zap.Logger
	wg       sync.WaitGroup
}

// New authenticates against the Bot API and returns a ready Bot.
func New(cfg *config.TelegramConfig, answerer *Answerer, logger *zap.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(cfg.Token)
	if err != nil {
		return nil, err
	}

	logger = logger.Named("bot")
	logger.Info("authorized on Telegram", zap.String("username", api.Self.UserName))

	return &Bot{
		api:      api,
		answerer: answerer,
		timeout:  cfg.PollTimeoutSeconds,
		logger:   logger,
	}, nil
}

// Run polls for updates until ctx is cancelled, then waits for in-flight
// handlers to finish.
func (b *Bot) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = b.timeout

	updates := b.api.GetUpdatesChan(u)

	go func() {
		<-ctx.Done()
		b.api.StopReceivingUpdates()
	}()

	for update := range updates {
		if update.Message == nil || update.Message.Text == "" {
			continue
		}

		msg := update.Message
		b.wg.Add(1)
		go func() {
			defer b.wg.Done()
			b.handleMessage(ctx, msg)
		}()
	}

	b.wg.Wait()
	b.logger.Info("update loop stopped")
	return nil
}

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	if msg.IsCommand() {
		b.handleCommand(msg)
		return
	}

	// Acknowledge immediately, then edit the placeholder with the answer.
	placeholder, err := b.send(tgbotapi.NewMessage(msg.Chat.ID, msgProcessing))
	if err != nil {
		b.logger.Warn("failed to send placeholder",
			zap.Int64("chat_id", msg.Chat.ID),
			zap.String("error", logging.SanitizeError(err)))
		return
	}

	answer := b.answerer.Answer(ctx, msg.Text)

	edit := tgbotapi.NewEditMessageText(msg.Chat.ID, placeholder.MessageID, answer)
	edit.ParseMode = tgbotapi.ModeHTML
	if _, err := b.api.Send(edit); err != nil {
		b.logger.Warn("failed to edit reply",
			zap.Int64("chat_id", msg.Chat.ID),
			zap.String("error", logging.SanitizeError(err)))
	}
}

func (b *Bot) handleCommand(msg *tgbotapi.Message) {
	switch msg.Command() {
	case "start", "help":
		if _, err := b.send(tgbotapi.NewMessage(msg.Chat.ID, msgWelcome)); err != nil {
			b.logger.Warn("failed to send welcome",
				zap.Int64("chat_id", msg.Chat.ID),
				zap.String("error", logging.SanitizeError(err)))
		}
	default:
		// Unknown commands are ignored.
	}
}

func (b *Bot) send(msg tgbotapi.MessageConfig) (tgbotapi.Message, error) {
	msg.ParseMode = tgbotapi.ModeHTML
	return b.api.Send(msg)
}
