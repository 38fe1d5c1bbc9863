package keyboards

import (
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/vladimiradmaev/recipebox/internal/domain"
)

// Callback data values
const (
	ActionImport   = "import"
	ActionRecipes  = "recipes"
	ActionMainMenu = "main_menu"
	ActionHelp     = "help"
	ActionShow     = "recipe"
	ActionScale    = "scale"
	ActionDelete   = "delete"
)

// maxListButtons keeps the recipe list keyboard within Telegram limits
const maxListButtons = 30

// RecipeAction builds callback data for an action on one recipe
func RecipeAction(action string, recipeID uint) string {
	return fmt.Sprintf("%s:%d", action, recipeID)
}

// ParseRecipeAction splits callback data built by RecipeAction
func ParseRecipeAction(data string) (string, uint, bool) {
	action, rawID, ok := strings.Cut(data, ":")
	if !ok {
		return "", 0, false
	}
	id, err := strconv.ParseUint(rawID, 10, 64)
	if err != nil || id == 0 {
		return "", 0, false
	}
	return action, uint(id), true
}

// MainMenu creates the main menu keyboard
func MainMenu() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔗 Import recipe", ActionImport),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📖 My recipes", ActionRecipes),
			tgbotapi.NewInlineKeyboardButtonData("❓ Help", ActionHelp),
		),
	)
}

// BackToMenu creates a keyboard with a single main menu button
func BackToMenu() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("◀️ Main menu", ActionMainMenu),
		),
	)
}

// RecipeList creates one button per recipe
func RecipeList(recipes []domain.Recipe) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for i, r := range recipes {
		if i == maxListButtons {
			break
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(r.Title, RecipeAction(ActionShow, r.ID)),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("◀️ Main menu", ActionMainMenu),
	))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// RecipeActions creates the keyboard shown under a recipe
func RecipeActions(recipeID uint) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("⚖️ Scale", RecipeAction(ActionScale, recipeID)),
			tgbotapi.NewInlineKeyboardButtonData("🗑️ Delete", RecipeAction(ActionDelete, recipeID)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📖 My recipes", ActionRecipes),
			tgbotapi.NewInlineKeyboardButtonData("◀️ Main menu", ActionMainMenu),
		),
	)
}
