package handlers

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/vladimiradmaev/recipebox/internal/bot/menus"
	"github.com/vladimiradmaev/recipebox/internal/bot/state"
	"github.com/vladimiradmaev/recipebox/internal/interfaces"
	"github.com/vladimiradmaev/recipebox/internal/logger"
)

// UpdateHandler handles telegram updates and coordinates other handlers
type UpdateHandler struct {
	userService     interfaces.UserServiceInterface
	callbackHandler *CallbackHandler
	commandHandler  *CommandHandler
	textHandler     *TextHandler
}

// NewUpdateHandler creates a new update handler
func NewUpdateHandler(api menus.Sender, deps Dependencies, stateManager state.StateManager) *UpdateHandler {
	return &UpdateHandler{
		userService:     deps.UserService,
		callbackHandler: NewCallbackHandler(api, deps, stateManager),
		commandHandler:  NewCommandHandler(api, deps, stateManager),
		textHandler:     NewTextHandler(api, deps, stateManager),
	}
}

// Handle processes a telegram update
func (h *UpdateHandler) Handle(ctx context.Context, update tgbotapi.Update) error {
	var from *tgbotapi.User
	switch {
	case update.CallbackQuery != nil:
		from = update.CallbackQuery.From
	case update.Message != nil:
		from = update.Message.From
	}
	if from == nil {
		return nil
	}

	user, err := h.userService.RegisterUser(ctx, from.ID, from.UserName, from.FirstName, from.LastName)
	if err != nil {
		logger.Error("Failed to register user", "telegram_id", from.ID, "error", err)
		return fmt.Errorf("failed to get/create user: %w", err)
	}

	if update.CallbackQuery != nil {
		return h.callbackHandler.Handle(ctx, update.CallbackQuery, user)
	}

	message := update.Message
	if message.IsCommand() {
		return h.commandHandler.Handle(ctx, message, user)
	}
	if message.Text != "" {
		return h.textHandler.Handle(ctx, message, user)
	}
	return nil
}
