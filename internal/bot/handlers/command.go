package handlers

import (
	"context"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/vladimiradmaev/recipebox/internal/bot/keyboards"
	"github.com/vladimiradmaev/recipebox/internal/bot/menus"
	"github.com/vladimiradmaev/recipebox/internal/bot/state"
	"github.com/vladimiradmaev/recipebox/internal/domain"
	"github.com/vladimiradmaev/recipebox/internal/logger"
)

// CommandHandler handles bot commands
type CommandHandler struct {
	recipeActions
	stateManager state.StateManager
}

// NewCommandHandler creates a new command handler
func NewCommandHandler(api menus.Sender, deps Dependencies, stateManager state.StateManager) *CommandHandler {
	return &CommandHandler{
		recipeActions: recipeActions{api: api, deps: deps},
		stateManager:  stateManager,
	}
}

// Handle processes a command message
func (h *CommandHandler) Handle(ctx context.Context, message *tgbotapi.Message, user *domain.User) error {
	logger.Infof("Handling command %s from user %d", message.Command(), user.ID)
	chatID := message.Chat.ID

	switch message.Command() {
	case "start":
		h.resetState(user.TelegramID)
		return menus.SendMainMenu(h.api, chatID)
	case "help":
		return h.send(chatID, menus.HelpText, keyboards.BackToMenu())
	case "cancel":
		h.resetState(user.TelegramID)
		if err := h.send(chatID, "Cancelled.", nil); err != nil {
			return err
		}
		return menus.SendMainMenu(h.api, chatID)
	case "import":
		return h.handleImport(ctx, message, user)
	case "recipes":
		h.resetState(user.TelegramID)
		return h.listRecipes(ctx, chatID, user)
	case "recipe":
		return h.handleRecipe(ctx, message, user)
	default:
		return h.send(chatID, "Unknown command. Use /help to see the available commands.", nil)
	}
}

func (h *CommandHandler) resetState(telegramID int64) {
	h.stateManager.SetUserState(telegramID, state.None)
	h.stateManager.ClearTempData(telegramID)
}

// handleImport imports the URL given as argument, or asks for one
func (h *CommandHandler) handleImport(ctx context.Context, message *tgbotapi.Message, user *domain.User) error {
	h.resetState(user.TelegramID)

	rawURL := strings.TrimSpace(message.CommandArguments())
	if rawURL == "" {
		h.stateManager.SetUserState(user.TelegramID, state.WaitingForRecipeURL)
		return h.send(message.Chat.ID, "🔗 Send me a link to the recipe page.", keyboards.BackToMenu())
	}
	return h.importRecipe(ctx, message.Chat.ID, user, rawURL)
}

// handleRecipe handles /recipe <id> [servings]
func (h *CommandHandler) handleRecipe(ctx context.Context, message *tgbotapi.Message, user *domain.User) error {
	usage := "Usage: /recipe <id> [servings]"
	args := strings.Fields(message.CommandArguments())
	if len(args) == 0 || len(args) > 2 {
		return h.send(message.Chat.ID, usage, nil)
	}

	id, err := strconv.ParseUint(strings.TrimPrefix(args[0], "#"), 10, 64)
	if err != nil || id == 0 {
		return h.send(message.Chat.ID, usage, nil)
	}

	servings := 0
	if len(args) == 2 {
		servings, err = parseServings(args[1])
		if err != nil {
			return h.send(message.Chat.ID, servingsHint, nil)
		}
	}

	return h.showRecipe(ctx, message.Chat.ID, user, uint(id), servings)
}
