package handlers

import (
	"context"
	"errors"
	"net/url"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/vladimiradmaev/recipebox/internal/bot/keyboards"
	"github.com/vladimiradmaev/recipebox/internal/bot/menus"
	"github.com/vladimiradmaev/recipebox/internal/domain"
	apperrors "github.com/vladimiradmaev/recipebox/internal/errors"
	"github.com/vladimiradmaev/recipebox/internal/logger"
	"github.com/vladimiradmaev/recipebox/internal/services"
)

// maxServings bounds scaling requests
const maxServings = 1000

// recipeActions is shared by the command, text and callback handlers
type recipeActions struct {
	api  menus.Sender
	deps Dependencies
}

// looksLikeURL reports whether text is a single absolute http(s) link
func looksLikeURL(text string) bool {
	text = strings.TrimSpace(text)
	if text == "" || strings.ContainsAny(text, " \n\t") {
		return false
	}
	u, err := url.Parse(text)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

func (a recipeActions) send(chatID int64, text string, markup interface{}) error {
	msg := tgbotapi.NewMessage(chatID, text)
	if markup != nil {
		msg.ReplyMarkup = markup
	}
	_, err := a.api.Send(msg)
	return err
}

func (a recipeActions) reportError(ctx context.Context, err error) {
	if a.deps.ErrorHandler != nil {
		a.deps.ErrorHandler.Handle(ctx, err)
		return
	}
	logger.Error("Request failed", "error", err)
}

// importRecipe imports rawURL for user and replies with the result
func (a recipeActions) importRecipe(ctx context.Context, chatID int64, user *domain.User, rawURL string) error {
	rawURL = strings.TrimSpace(rawURL)
	if !looksLikeURL(rawURL) {
		return a.send(chatID, "Please send a link starting with http:// or https://", keyboards.BackToMenu())
	}

	progress, err := a.api.Send(tgbotapi.NewMessage(chatID, "⏳ Importing recipe..."))
	if err != nil {
		return err
	}

	log := logger.WithFields("user_id", user.ID, "url", rawURL)
	log.Info("Importing recipe")
	recipe, importErr := a.deps.Importer.Handle(ctx, rawURL, user.ID)

	if _, err := a.api.Request(tgbotapi.NewDeleteMessage(chatID, progress.MessageID)); err != nil {
		logger.Warn("Failed to delete progress message", "chat_id", chatID, "error", err)
	}

	if importErr != nil {
		a.reportError(ctx, importErr)
		return a.send(chatID, "❌ "+apperrors.UserMessage(importErr), keyboards.BackToMenu())
	}

	log.Info("Recipe imported", "recipe_id", recipe.ID, "title", recipe.Title)
	return menus.SendRecipe(a.api, chatID, recipe, 0)
}

// showRecipe sends one of the user's recipes scaled to servings
func (a recipeActions) showRecipe(ctx context.Context, chatID int64, user *domain.User, recipeID uint, servings int) error {
	recipe, err := a.deps.RecipeService.GetRecipe(ctx, user.ID, recipeID)
	if err != nil {
		if errors.Is(err, services.ErrRecipeNotFound) {
			return a.send(chatID, "Recipe not found.", keyboards.BackToMenu())
		}
		a.reportError(ctx, err)
		return a.send(chatID, "Could not load the recipe. Please try again later.", keyboards.BackToMenu())
	}
	return menus.SendRecipe(a.api, chatID, recipe, servings)
}

func (a recipeActions) listRecipes(ctx context.Context, chatID int64, user *domain.User) error {
	recipes, err := a.deps.RecipeService.GetUserRecipes(ctx, user.ID)
	if err != nil {
		a.reportError(ctx, err)
		return a.send(chatID, "Could not load your recipes. Please try again later.", keyboards.BackToMenu())
	}
	return menus.SendRecipeList(a.api, chatID, recipes)
}

func (a recipeActions) deleteRecipe(ctx context.Context, chatID int64, user *domain.User, recipeID uint) error {
	if err := a.deps.RecipeService.DeleteRecipe(ctx, user.ID, recipeID); err != nil {
		if errors.Is(err, services.ErrRecipeNotFound) {
			return a.send(chatID, "Recipe not found.", keyboards.BackToMenu())
		}
		a.reportError(ctx, err)
		return a.send(chatID, "Could not delete the recipe. Please try again later.", keyboards.BackToMenu())
	}
	logger.Info("Recipe deleted", "user_id", user.ID, "recipe_id", recipeID)

	if err := a.send(chatID, "🗑 Recipe deleted.", nil); err != nil {
		return err
	}
	return a.listRecipes(ctx, chatID, user)
}
