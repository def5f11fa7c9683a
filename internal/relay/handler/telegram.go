package handler

import (
	"context"
	"encoding/json"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/politreg/deputy-portal/internal/relay"
)

// TelegramHandlers executes relay tasks against the messenger API. The
// worker process owns the only bot session, so every delivery the web
// side needs goes through these handlers.
type TelegramHandlers struct {
	bot       *tgbotapi.BotAPI
	channelID int64
	logger    *zap.Logger
}

// NewTelegramHandlers creates handlers bound to the deputies channel.
func NewTelegramHandlers(bot *tgbotapi.BotAPI, channelID int64, logger *zap.Logger) *TelegramHandlers {
	return &TelegramHandlers{
		bot:       bot,
		channelID: channelID,
		logger:    logger,
	}
}

// RegisterAll registers every telegram task handler on the registry.
func (h *TelegramHandlers) RegisterAll(r *Registry) {
	Register(r, relay.TaskSendMessage, h.SendMessage)
	Register(r, relay.TaskChatInvite, h.ChatInvite)
}

// SendMessage delivers a direct message to the user's chat.
func (h *TelegramHandlers) SendMessage(ctx context.Context, payload relay.SendMessagePayload) error {
	msg := tgbotapi.NewMessage(payload.ChatID, payload.Text)
	if _, err := h.bot.Send(msg); err != nil {
		return fmt.Errorf("failed to send message to chat %d: %w", payload.ChatID, err)
	}

	h.logger.Info("Sent telegram message", zap.Int64("chat_id", payload.ChatID))
	return nil
}

// ChatInvite issues a single-member invite link to the restricted
// channel and delivers it to the user. The member limit keeps the link
// from being shared onward.
func (h *TelegramHandlers) ChatInvite(ctx context.Context, payload relay.ChatInvitePayload) error {
	link, err := h.createLimitedInvite()
	if err != nil {
		return fmt.Errorf("failed to create invite link for chat %d: %w", payload.ChatID, err)
	}

	text := fmt.Sprintf(
		"Поздравляем, вы прошли верификацию. Присоединяйтесь к каналу депутатов: %s",
		link,
	)
	msg := tgbotapi.NewMessage(payload.ChatID, text)
	if _, err := h.bot.Send(msg); err != nil {
		return fmt.Errorf("failed to deliver invite to chat %d: %w", payload.ChatID, err)
	}

	h.logger.Info("Delivered channel invite", zap.Int64("chat_id", payload.ChatID))
	return nil
}

func (h *TelegramHandlers) createLimitedInvite() (string, error) {
	resp, err := h.bot.Request(tgbotapi.CreateChatInviteLinkConfig{
		ChatConfig:  tgbotapi.ChatConfig{ChatID: h.channelID},
		MemberLimit: 1,
	})
	if err != nil {
		return "", err
	}

	var created tgbotapi.ChatInviteLink
	if err := json.Unmarshal(resp.Result, &created); err != nil {
		return "", fmt.Errorf("failed to decode invite link: %w", err)
	}
	return created.InviteLink, nil
}
