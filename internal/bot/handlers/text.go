package handlers

import (
	"context"
	"errors"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/vladimiradmaev/recipebox/internal/bot/keyboards"
	"github.com/vladimiradmaev/recipebox/internal/bot/menus"
	"github.com/vladimiradmaev/recipebox/internal/bot/state"
	"github.com/vladimiradmaev/recipebox/internal/domain"
)

const servingsHint = "Please enter a whole number of servings (for example: 4)"

var errBadServings = errors.New("invalid servings")

func parseServings(text string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil || n <= 0 || n > maxServings {
		return 0, errBadServings
	}
	return n, nil
}

// TextHandler handles text messages
type TextHandler struct {
	recipeActions
	stateManager state.StateManager
}

// NewTextHandler creates a new text handler
func NewTextHandler(api menus.Sender, deps Dependencies, stateManager state.StateManager) *TextHandler {
	return &TextHandler{
		recipeActions: recipeActions{api: api, deps: deps},
		stateManager:  stateManager,
	}
}

// Handle processes a text message
func (h *TextHandler) Handle(ctx context.Context, message *tgbotapi.Message, user *domain.User) error {
	switch h.stateManager.GetUserState(user.TelegramID) {
	case state.WaitingForRecipeURL:
		h.stateManager.SetUserState(user.TelegramID, state.None)
		return h.importRecipe(ctx, message.Chat.ID, user, message.Text)
	case state.WaitingForServings:
		return h.handleServings(ctx, message, user)
	}

	if looksLikeURL(message.Text) {
		return h.importRecipe(ctx, message.Chat.ID, user, message.Text)
	}
	return h.send(message.Chat.ID, "Send me a link to a recipe page, or use the menu.", keyboards.MainMenu())
}

// handleServings scales the recipe remembered by the scale button
func (h *TextHandler) handleServings(ctx context.Context, message *tgbotapi.Message, user *domain.User) error {
	servings, err := parseServings(message.Text)
	if err != nil {
		return h.send(message.Chat.ID, servingsHint, keyboards.BackToMenu())
	}

	rawID, ok := h.stateManager.GetTempData(user.TelegramID, state.KeyRecipeID)
	h.stateManager.SetUserState(user.TelegramID, state.None)
	h.stateManager.ClearTempData(user.TelegramID)

	id, err := strconv.ParseUint(rawID, 10, 64)
	if !ok || err != nil {
		return menus.SendMainMenu(h.api, message.Chat.ID)
	}
	return h.showRecipe(ctx, message.Chat.ID, user, uint(id), servings)
}
