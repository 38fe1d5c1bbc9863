package handlers

import (
	"context"
	"fmt"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/vladimiradmaev/recipebox/internal/bot/keyboards"
	"github.com/vladimiradmaev/recipebox/internal/bot/menus"
	"github.com/vladimiradmaev/recipebox/internal/bot/state"
	"github.com/vladimiradmaev/recipebox/internal/domain"
	"github.com/vladimiradmaev/recipebox/internal/logger"
)

// CallbackHandler handles callback query messages
type CallbackHandler struct {
	recipeActions
	stateManager state.StateManager
}

// NewCallbackHandler creates a new callback handler
func NewCallbackHandler(api menus.Sender, deps Dependencies, stateManager state.StateManager) *CallbackHandler {
	return &CallbackHandler{
		recipeActions: recipeActions{api: api, deps: deps},
		stateManager:  stateManager,
	}
}

// Handle processes a callback query
func (h *CallbackHandler) Handle(ctx context.Context, query *tgbotapi.CallbackQuery, user *domain.User) error {
	// Answer the callback query first
	callback := tgbotapi.NewCallback(query.ID, "")
	if _, err := h.api.Request(callback); err != nil {
		logger.Warn("Failed to answer callback query", "error", err)
	}

	if query.Message == nil || query.Message.Chat == nil {
		return nil
	}
	chatID := query.Message.Chat.ID

	switch query.Data {
	case keyboards.ActionImport:
		h.stateManager.SetUserState(user.TelegramID, state.WaitingForRecipeURL)
		return h.send(chatID, "🔗 Send me a link to the recipe page.", keyboards.BackToMenu())
	case keyboards.ActionRecipes:
		h.resetState(user.TelegramID)
		return h.listRecipes(ctx, chatID, user)
	case keyboards.ActionMainMenu:
		h.resetState(user.TelegramID)
		return menus.SendMainMenu(h.api, chatID)
	case keyboards.ActionHelp:
		return h.send(chatID, menus.HelpText, keyboards.BackToMenu())
	}

	action, recipeID, ok := keyboards.ParseRecipeAction(query.Data)
	if !ok {
		return h.handleUnknownCallback(chatID)
	}

	switch action {
	case keyboards.ActionShow:
		return h.showRecipe(ctx, chatID, user, recipeID, 0)
	case keyboards.ActionScale:
		return h.handleScale(chatID, user, recipeID)
	case keyboards.ActionDelete:
		h.resetState(user.TelegramID)
		return h.deleteRecipe(ctx, chatID, user, recipeID)
	default:
		return h.handleUnknownCallback(chatID)
	}
}

func (h *CallbackHandler) resetState(telegramID int64) {
	h.stateManager.SetUserState(telegramID, state.None)
	h.stateManager.ClearTempData(telegramID)
}

// handleScale asks for a servings count and remembers the recipe
func (h *CallbackHandler) handleScale(chatID int64, user *domain.User, recipeID uint) error {
	h.stateManager.SetUserState(user.TelegramID, state.WaitingForServings)
	h.stateManager.SetTempData(user.TelegramID, state.KeyRecipeID, strconv.FormatUint(uint64(recipeID), 10))

	text := fmt.Sprintf("How many servings should recipe #%d make?", recipeID)
	return h.send(chatID, text, keyboards.BackToMenu())
}

func (h *CallbackHandler) handleUnknownCallback(chatID int64) error {
	return h.send(chatID, "Unknown action. Please use the menu.", keyboards.MainMenu())
}
