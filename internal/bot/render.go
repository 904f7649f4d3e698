package bot

import (
	"fmt"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/scar796/nutrio/internal/conversation"
	"github.com/scar796/nutrio/internal/grocery"
	"github.com/scar796/nutrio/internal/models"
)

func mainMenuKeyboard() *tgbotapi.InlineKeyboardMarkup {
	markup := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🍽 Today's plan", "menu:plan"),
			tgbotapi.NewInlineKeyboardButtonData("📅 Week plan", "menu:week"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🛒 Grocery list", "menu:grocery"),
			tgbotapi.NewInlineKeyboardButtonData("🧺 My cart", "menu:cart"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("👤 Profile", "menu:profile"),
		),
	)
	return &markup
}

func choicesKeyboard(choices []conversation.ChoiceOption) *tgbotapi.InlineKeyboardMarkup {
	if len(choices) == 0 {
		return nil
	}
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(choices))
	for _, choice := range choices {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(choice.Label, "choice:"+choice.Value),
		))
	}
	markup := tgbotapi.NewInlineKeyboardMarkup(rows...)
	return &markup
}

func dayPlanKeyboard(plan models.MealPlan) *tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, day := range plan.Days {
		for _, planned := range day.Meals {
			rows = append(rows, tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData("👍 "+planned.Meal.Name, "rate:like:"+planned.Meal.ID),
				tgbotapi.NewInlineKeyboardButtonData("👎", "rate:dislike:"+planned.Meal.ID),
			))
		}
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("🛒 Grocery list", "menu:grocery"),
		tgbotapi.NewInlineKeyboardButtonData("⬅ Menu", "menu:main"),
	))
	markup := tgbotapi.NewInlineKeyboardMarkup(rows...)
	return &markup
}

func weekKeyboard(plan models.MealPlan, dayIndex int) *tgbotapi.InlineKeyboardMarkup {
	var nav []tgbotapi.InlineKeyboardButton
	if dayIndex > 0 {
		nav = append(nav, tgbotapi.NewInlineKeyboardButtonData("◀ Prev", "week:prev"))
	}
	if dayIndex < len(plan.Days)-1 {
		nav = append(nav, tgbotapi.NewInlineKeyboardButtonData("Next ▶", "week:next"))
	}

	var rows [][]tgbotapi.InlineKeyboardButton
	if len(nav) > 0 {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(nav...))
	}
	rows = append(rows,
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🗓 Export calendar", "menu:export"),
			tgbotapi.NewInlineKeyboardButtonData("🛒 Grocery list", "menu:grocery"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("⬅ Menu", "menu:main"),
		),
	)
	markup := tgbotapi.NewInlineKeyboardMarkup(rows...)
	return &markup
}

func groceryKeyboard(cart models.Cart) *tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, ingredient := range grocery.Ingredients(cart) {
		label := "◻ " + ingredient
		if cart.Items[ingredient].Selected {
			label = "✅ " + ingredient
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, "cart:toggle:"+ingredient),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("🧺 View cart", "menu:cart"),
		tgbotapi.NewInlineKeyboardButtonData("⬅ Menu", "menu:main"),
	))
	markup := tgbotapi.NewInlineKeyboardMarkup(rows...)
	return &markup
}

func cartKeyboard(links []grocery.DeliveryLink) *tgbotapi.InlineKeyboardMarkup {
	var linkButtons []tgbotapi.InlineKeyboardButton
	for _, link := range links {
		linkButtons = append(linkButtons, tgbotapi.NewInlineKeyboardButtonURL("Order on "+link.Service, link.URL))
	}

	var rows [][]tgbotapi.InlineKeyboardButton
	if len(linkButtons) > 0 {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(linkButtons...))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("🗑 Clear cart", "cart:clear"),
		tgbotapi.NewInlineKeyboardButtonData("⬅ Menu", "menu:main"),
	))
	markup := tgbotapi.NewInlineKeyboardMarkup(rows...)
	return &markup
}

func profileKeyboard() *tgbotapi.InlineKeyboardMarkup {
	markup := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✏️ Edit profile", "menu:edit"),
			tgbotapi.NewInlineKeyboardButtonData("⬅ Menu", "menu:main"),
		),
	)
	return &markup
}

func welcomeBack(profile models.UserProfile, record models.StreakRecord) string {
	var builder strings.Builder
	fmt.Fprintf(&builder, "Welcome back, %s! 👋\n", profile.Name)
	if record.Count > 0 {
		fmt.Fprintf(&builder, "🔥 %d-day streak · %d points\n", record.Count, record.Points)
	}
	builder.WriteString("\nWhat would you like to do?")
	return builder.String()
}

func streakLine(record models.StreakRecord, earned int) string {
	if earned > 0 {
		return fmt.Sprintf("🔥 Day %d of your streak — you earned %d points (total %d)!",
			record.Count, earned, record.Points)
	}
	if record.Count > 0 {
		return fmt.Sprintf("🔥 %d-day streak · %d points. Come back tomorrow to keep it going!",
			record.Count, record.Points)
	}
	return "Grab a plan every day to build a streak and earn points!"
}

func noMealsText(profile models.UserProfile) string {
	return fmt.Sprintf("I couldn't find meals that fit a %s diet with your current restrictions in %s. "+
		"Try editing your profile to relax a constraint.", profile.Diet, title(string(profile.Region)))
}

func renderDayPlan(profile models.UserProfile, plan models.MealPlan, record models.StreakRecord, earned int) string {
	var builder strings.Builder
	fmt.Fprintf(&builder, "🍽 Today's plan for %s\n\n", profile.Name)
	for _, day := range plan.Days {
		for _, planned := range day.Meals {
			writeMealLine(&builder, planned)
		}
		fmt.Fprintf(&builder, "Total: ~%d kcal\n", day.TotalCalories())
	}
	builder.WriteString("\n" + streakLine(record, earned))
	return builder.String()
}

func renderWeekDay(plan models.MealPlan, dayIndex int) string {
	day := plan.Days[dayIndex]

	var builder strings.Builder
	fmt.Fprintf(&builder, "📅 Week plan — day %d of %d\n", dayIndex+1, len(plan.Days))
	if date, err := time.Parse("2006-01-02", day.Date); err == nil {
		fmt.Fprintf(&builder, "%s\n", date.Format("Monday, Jan 2"))
	}
	builder.WriteString("\n")
	for _, planned := range day.Meals {
		writeMealLine(&builder, planned)
	}
	return builder.String()
}

func writeMealLine(builder *strings.Builder, planned models.PlannedMeal) {
	fmt.Fprintf(builder, "%s %s — %s (~%d kcal)\n",
		slotEmoji(planned.Slot), title(string(planned.Slot)), planned.Meal.Name, planned.Meal.Calories)
	if planned.Meal.HealthNote != "" {
		fmt.Fprintf(builder, "   💡 %s\n", planned.Meal.HealthNote)
	}
}

func slotEmoji(slot models.MealSlot) string {
	switch slot {
	case models.SlotBreakfast:
		return "🌅"
	case models.SlotLunch:
		return "☀️"
	case models.SlotDinner:
		return "🌙"
	case models.SlotSnack:
		return "🍎"
	default:
		return "🍽"
	}
}

func renderGroceryList(profile models.UserProfile, cart models.Cart) string {
	selected := len(grocery.SelectedItems(cart))
	return fmt.Sprintf("🛒 Grocery list for %s\n\n"+
		"Tap an item to add or remove it from your cart.\n"+
		"%d of %d items selected.", profile.Name, selected, len(cart.Items))
}

func renderCart(selected []string) string {
	var builder strings.Builder
	builder.WriteString("🧺 Your cart\n\n")
	for _, ingredient := range selected {
		fmt.Fprintf(&builder, "• %s\n", ingredient)
	}
	fmt.Fprintf(&builder, "\n%d items. Order them in one tap below.", len(selected))
	return builder.String()
}

func renderRatingSummary(liked bool, likes, dislikes int) string {
	verdict := "Noted — I'll keep that in mind."
	if liked {
		verdict = "Glad you liked it!"
	}
	return fmt.Sprintf("%s That meal now has %d 👍 and %d 👎 from everyone.", verdict, likes, dislikes)
}

func renderProfile(profile models.UserProfile, record models.StreakRecord) string {
	var builder strings.Builder
	builder.WriteString("👤 Your profile\n\n")
	fmt.Fprintf(&builder, "Name: %s\n", profile.Name)
	fmt.Fprintf(&builder, "Age: %d\n", profile.Age)
	fmt.Fprintf(&builder, "Region: %s\n", title(string(profile.Region)))
	fmt.Fprintf(&builder, "Diet: %s\n", title(string(profile.Diet)))
	if len(profile.Medical) > 0 {
		tags := make([]string, 0, len(profile.Medical))
		for _, tag := range profile.Medical {
			tags = append(tags, string(tag))
		}
		fmt.Fprintf(&builder, "Medical: %s\n", strings.Join(tags, ", "))
	} else {
		builder.WriteString("Medical: none\n")
	}
	builder.WriteString("\n")
	if record.Count > 0 {
		fmt.Fprintf(&builder, "🔥 Streak: %d days · %d points", record.Count, record.Points)
	} else {
		builder.WriteString("No streak yet — grab a plan today to start one!")
	}
	return builder.String()
}

func title(value string) string {
	if value == "" {
		return value
	}
	return strings.ToUpper(value[:1]) + value[1:]
}
