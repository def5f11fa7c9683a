// Package bot runs the messenger side of the registration flow: it
// hands out personalized form links on /start and gates join requests
// to the deputies channel by activation status.
package bot

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/politreg/deputy-portal/internal/domain/entity"
	"github.com/politreg/deputy-portal/internal/domain/repository"
)

// Config holds the bot runtime settings.
type Config struct {
	// FormBaseURL is the public address of the registration form.
	FormBaseURL string
	// ChannelID is the restricted channel guarded by join requests.
	ChannelID int64
	// UpdateTimeout is the long-poll timeout in seconds.
	UpdateTimeout int
}

// Bot polls messenger updates and reacts to commands and join requests.
type Bot struct {
	api    *tgbotapi.BotAPI
	users  repository.UserRepository
	config Config
	logger *zap.Logger
}

// New creates a bot over an authorized API session.
func New(api *tgbotapi.BotAPI, users repository.UserRepository, config Config, logger *zap.Logger) *Bot {
	if config.UpdateTimeout <= 0 {
		config.UpdateTimeout = 60
	}
	return &Bot{
		api:    api,
		users:  users,
		config: config,
		logger: logger,
	}
}

// Run consumes the update stream until the context is cancelled.
func (b *Bot) Run(ctx context.Context) error {
	b.logger.Info("Starting bot polling", zap.String("username", b.api.Self.UserName))

	u := tgbotapi.NewUpdate(0)
	u.Timeout = b.config.UpdateTimeout
	updates := b.api.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			b.logger.Info("Bot polling stopped")
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			b.handleUpdate(ctx, update)
		}
	}
}

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	switch {
	case update.ChatJoinRequest != nil:
		b.handleJoinRequest(ctx, update.ChatJoinRequest)
	case update.Message != nil && update.Message.IsCommand():
		b.handleCommand(ctx, update.Message)
	}
}

func (b *Bot) handleCommand(ctx context.Context, message *tgbotapi.Message) {
	switch message.Command() {
	case "start":
		b.handleStart(ctx, message)
	default:
		// Unknown commands are ignored.
	}
}

// handleStart greets the user. An already verified deputy gets a
// confirmation; anyone else gets their personalized form link.
func (b *Bot) handleStart(ctx context.Context, message *tgbotapi.Message) {
	userID := message.From.ID

	user, err := b.users.GetByID(ctx, userID)
	if err != nil {
		b.logger.Error("Failed to look up user on /start",
			zap.Int64("user_id", userID), zap.Error(err))
		return
	}

	reply := tgbotapi.NewMessage(message.Chat.ID, b.startReply(user, userID))
	reply.ReplyToMessageID = message.MessageID
	if _, err := b.api.Send(reply); err != nil {
		b.logger.Error("Failed to reply to /start",
			zap.Int64("user_id", userID), zap.Error(err))
	}
}

// startReply builds the /start response. The form link is bound to the
// requesting account and stops working after submission, so the reply
// carries a one-time-use warning.
func (b *Bot) startReply(user *entity.User, userID int64) string {
	if user != nil && user.IsActive {
		return "Здравствуйте! Ваша анкета уже подтверждена, вы состоите в информационном канале депутатов."
	}
	link := fmt.Sprintf("%sinvite_form?id=%d", b.config.FormBaseURL, userID)
	return fmt.Sprintf(
		"Здравствуйте! Для вступления в информационный канал депутатов"+
			" вам необходимо заполнить анкету участника."+
			" Перейдите по следующей ссылке: %s"+
			" Обратите внимание: ссылка одноразовая и привязана к вашему аккаунту.",
		link)
}

// handleJoinRequest approves the join request only for verified users.
func (b *Bot) handleJoinRequest(ctx context.Context, request *tgbotapi.ChatJoinRequest) {
	userID := request.From.ID
	logger := b.logger.With(
		zap.Int64("user_id", userID),
		zap.Int64("chat_id", request.Chat.ID),
	)

	user, err := b.users.GetByID(ctx, userID)
	if err != nil {
		logger.Error("Failed to look up user on join request", zap.Error(err))
		return
	}

	if user != nil && user.IsActive {
		_, err = b.api.Request(tgbotapi.ApproveChatJoinRequestConfig{
			ChatConfig: tgbotapi.ChatConfig{ChatID: request.Chat.ID},
			UserID:     userID,
		})
		if err != nil {
			logger.Error("Failed to approve join request", zap.Error(err))
			return
		}
		logger.Info("Approved join request")
		return
	}

	_, err = b.api.Request(tgbotapi.DeclineChatJoinRequest{
		ChatConfig: tgbotapi.ChatConfig{ChatID: request.Chat.ID},
		UserID:     userID,
	})
	if err != nil {
		logger.Error("Failed to decline join request", zap.Error(err))
		return
	}
	logger.Info("Declined join request")
}
