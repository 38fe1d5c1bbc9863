package menus

import (
	"fmt"
	"html"
	"strings"
	"unicode/utf8"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/vladimiradmaev/recipebox/internal/bot/keyboards"
	"github.com/vladimiradmaev/recipebox/internal/domain"
)

// Sender is the part of the Telegram API the bot talks to
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// maxMessageRunes stays under Telegram's 4096 character message limit
const maxMessageRunes = 4000

const HelpText = `Available commands:
/start - Show the main menu
/import <url> - Import a recipe from a web page
/recipes - List your recipes
/recipe <id> [servings] - Show a recipe, optionally scaled
/cancel - Cancel the current action
/help - Show this message

You can also just send me a link to a recipe page.`

// SendMainMenu sends the main menu to a chat
func SendMainMenu(api Sender, chatID int64) error {
	text := `🍳 *Recipe Box*

Send me a link to any recipe page and I will save the recipe, its ingredients and nutrition facts.

Choose an action:`

	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	msg.ReplyMarkup = keyboards.MainMenu()
	_, err := api.Send(msg)
	return err
}

// SendRecipeList sends the user's recipes as buttons
func SendRecipeList(api Sender, chatID int64, recipes []domain.Recipe) error {
	text := "Your recipes:"
	if len(recipes) == 0 {
		text = "You have no recipes yet. Send me a link to import one."
	}
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = keyboards.RecipeList(recipes)
	_, err := api.Send(msg)
	return err
}

// SendRecipe sends a recipe scaled to servings. Zero servings means as written.
func SendRecipe(api Sender, chatID int64, recipe *domain.Recipe, servings int) error {
	msg := tgbotapi.NewMessage(chatID, FormatRecipe(recipe, servings))
	msg.ParseMode = tgbotapi.ModeHTML
	msg.DisableWebPagePreview = true
	msg.ReplyMarkup = keyboards.RecipeActions(recipe.ID)
	_, err := api.Send(msg)
	if err != nil {
		// If HTML parsing fails, try sending without it
		msg.ParseMode = ""
		_, err = api.Send(msg)
	}
	return err
}

// ScaleFactor returns the multiplier that turns the recipe's servings into
// servings. It is 1 when either is unknown.
func ScaleFactor(recipe *domain.Recipe, servings int) float64 {
	if servings <= 0 || recipe.Servings <= 0 {
		return 1
	}
	return float64(servings) / float64(recipe.Servings)
}

// FormatRecipe renders a recipe as Telegram HTML
func FormatRecipe(recipe *domain.Recipe, servings int) string {
	var b strings.Builder
	esc := html.EscapeString
	factor := ScaleFactor(recipe, servings)

	fmt.Fprintf(&b, "<b>%s</b>\n", esc(recipe.Title))
	if recipe.Author != nil && *recipe.Author != "" {
		fmt.Fprintf(&b, "<i>by %s</i>\n", esc(*recipe.Author))
	}
	if recipe.Description != "" {
		fmt.Fprintf(&b, "\n%s\n", esc(recipe.Description))
	}

	var facts []string
	switch {
	case factor != 1:
		facts = append(facts, fmt.Sprintf("🍽 %d servings (scaled from %d)", servings, recipe.Servings))
	case recipe.Servings > 0:
		facts = append(facts, fmt.Sprintf("🍽 %d servings", recipe.Servings))
	case recipe.Yield != "":
		facts = append(facts, "🍽 "+esc(recipe.Yield))
	}
	if recipe.PrepTime > 0 {
		facts = append(facts, fmt.Sprintf("⏱ prep %s", formatMinutes(recipe.PrepTime)))
	}
	if recipe.CookingTime > 0 {
		facts = append(facts, fmt.Sprintf("🔥 cook %s", formatMinutes(recipe.CookingTime)))
	}
	if len(facts) > 0 {
		fmt.Fprintf(&b, "\n%s\n", strings.Join(facts, " · "))
	}

	if len(recipe.Ingredients) > 0 {
		b.WriteString("\n<b>Ingredients</b>\n")
		for _, ri := range recipe.OrderedIngredients() {
			fmt.Fprintf(&b, "• %s\n", esc(formatIngredient(ri, factor)))
		}
	}

	if recipe.Instructions != "" {
		fmt.Fprintf(&b, "\n<b>Instructions</b>\n%s\n", esc(recipe.Instructions))
	}

	if fields := recipe.Nutrition.Fields(); len(fields) > 0 {
		b.WriteString("\n<b>Nutrition</b>\n")
		for _, key := range domain.NutritionFields {
			if v, ok := fields[key]; ok {
				fmt.Fprintf(&b, "%s: %s\n", nutritionLabel(key), esc(v))
			}
		}
	}

	if url := recipe.SourceURL(); url != "" {
		fmt.Fprintf(&b, "\n🔗 %s\n", esc(url))
	}
	fmt.Fprintf(&b, "\n#%d", recipe.ID)

	return truncate(b.String(), maxMessageRunes)
}

func formatIngredient(ri domain.RecipeIngredient, factor float64) string {
	if ri.Amount == 0 {
		return ri.Ingredient.Name
	}
	m := ri.Measurement()
	if factor != 1 {
		m = m.Scale(factor)
	}
	return m.Format() + " " + ri.Ingredient.Name
}

func formatMinutes(m int) string {
	if m < 60 {
		return fmt.Sprintf("%d min", m)
	}
	if m%60 == 0 {
		return fmt.Sprintf("%d h", m/60)
	}
	return fmt.Sprintf("%d h %d min", m/60, m%60)
}

func nutritionLabel(key string) string {
	label := strings.TrimSuffix(key, "_content")
	label = strings.ReplaceAll(label, "_", " ")
	return strings.ToUpper(label[:1]) + label[1:]
}

func truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	return string(runes[:limit-1]) + "…"
}
