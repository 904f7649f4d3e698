package bot

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/scar796/nutrio/internal/catalog"
	"github.com/scar796/nutrio/internal/conversation"
	"github.com/scar796/nutrio/internal/grocery"
	"github.com/scar796/nutrio/internal/models"
	"github.com/scar796/nutrio/internal/planner"
	"github.com/scar796/nutrio/internal/repository"
	"github.com/scar796/nutrio/internal/streak"
)

func (bot *Bot) handleStart(ctx context.Context, state *userState, userID, chatID int64) {
	profile, err := bot.profiles.Get(ctx, userID)
	if err == nil {
		record, _ := bot.recordEngagement(ctx, userID)
		bot.send(chatID, welcomeBack(profile, record), mainMenuKeyboard())
		return
	}
	if !errors.Is(err, repository.ErrNotFound) {
		bot.persist("profile load", err)
	}
	bot.startIntake(state, userID, chatID)
}

func (bot *Bot) startIntake(state *userState, userID, chatID int64) {
	session, reply := conversation.New(userID, time.Now())
	state.session = &session
	bot.send(chatID, "Welcome to Nutrio! I'll put together meal plans that fit how you eat.\n\n"+reply.Prompt, choicesKeyboard(reply.Choices))
}

func (bot *Bot) handleCancel(state *userState, userID, chatID int64) {
	if state.session == nil || state.session.State.Terminal() {
		bot.send(chatID, "Nothing to cancel. Send /start whenever you like.", nil)
		return
	}
	_, reply := conversation.Advance(*state.session, conversation.Cancel, time.Now())
	state.session = nil
	bot.send(chatID, reply.Prompt, nil)
}

func (bot *Bot) handleText(ctx context.Context, state *userState, userID, chatID int64, text string) {
	if state.session == nil || state.session.State.Terminal() {
		bot.send(chatID, "Send /start to set up a profile or get a meal plan.", nil)
		return
	}
	bot.advanceSession(ctx, state, userID, chatID, conversation.Text(text))
}

func (bot *Bot) handleConversationChoice(ctx context.Context, state *userState, userID, chatID int64, value string) {
	if state.session == nil || state.session.State.Terminal() {
		bot.send(chatID, "That conversation has ended. Send /start to begin again.", nil)
		return
	}
	bot.advanceSession(ctx, state, userID, chatID, conversation.Choice(value))
}

func (bot *Bot) advanceSession(ctx context.Context, state *userState, userID, chatID int64, input conversation.Input) {
	next, reply := conversation.Advance(*state.session, input, time.Now())
	state.session = &next

	switch {
	case reply.Done && reply.Profile != nil:
		bot.persist("profile upsert", bot.profiles.Upsert(ctx, *reply.Profile))
		record, earned := bot.recordEngagement(ctx, userID)
		state.session = nil
		bot.send(chatID, reply.Prompt+"\n\n"+streakLine(record, earned), mainMenuKeyboard())
	case reply.Cancelled:
		state.session = nil
		bot.send(chatID, reply.Prompt, nil)
	default:
		bot.send(chatID, reply.Prompt, choicesKeyboard(reply.Choices))
	}
}

// recordEngagement applies today's engagement to the user's streak. Reads
// and writes are best-effort; the computed record is authoritative for
// the reply either way.
func (bot *Bot) recordEngagement(ctx context.Context, userID int64) (models.StreakRecord, int) {
	record, err := bot.streaks.Get(ctx, userID)
	if err != nil {
		bot.persist("streak load", err)
		record = models.StreakRecord{UserID: userID}
	}

	updated, earned, err := streak.Record(record, time.Now().Format(streak.DateLayout))
	if err != nil {
		slog.Error("recording engagement", "user", userID, "error", err)
		return record, 0
	}
	if earned > 0 {
		bot.persist("streak upsert", bot.streaks.Upsert(ctx, updated))
	}
	return updated, earned
}

func (bot *Bot) loadProfile(ctx context.Context, userID, chatID int64) (models.UserProfile, bool) {
	profile, err := bot.profiles.Get(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		bot.send(chatID, "No profile found yet. Send /start to create one.", nil)
		return models.UserProfile{}, false
	}
	if err != nil {
		bot.persist("profile load", err)
		bot.send(chatID, "I couldn't load your profile just now. Please try again.", nil)
		return models.UserProfile{}, false
	}
	return profile, true
}

func (bot *Bot) candidatesFor(profile models.UserProfile) []models.MealRecord {
	return catalog.Filter(bot.index.Region(profile.Region), profile.Diet, profile.Medical, nil)
}

func (bot *Bot) recentHistory(ctx context.Context, userID int64) []string {
	history, err := bot.history.Recent(ctx, userID, bot.cfg.HistoryWindow)
	if err != nil {
		bot.persist("history load", err)
		return nil
	}
	return history
}

func (bot *Bot) handleDailyPlan(ctx context.Context, state *userState, userID, chatID int64) {
	profile, ok := bot.loadProfile(ctx, userID, chatID)
	if !ok {
		return
	}

	record, earned := bot.recordEngagement(ctx, userID)

	plan, err := planner.SelectDay(bot.candidatesFor(profile), bot.recentHistory(ctx, userID), userID, time.Now())
	if errors.Is(err, planner.ErrNoEligibleMeals) {
		bot.send(chatID, noMealsText(profile), mainMenuKeyboard())
		return
	}
	if err != nil {
		slog.Error("selecting daily plan", "user", userID, "error", err)
		bot.send(chatID, "Something went wrong building your plan. Please try again.", nil)
		return
	}

	state.lastPlan = &plan
	bot.persist("history append", bot.history.Append(ctx, userID, plan.MealIDs(), bot.cfg.HistoryWindow))

	text := renderDayPlan(profile, plan, record, earned)
	if bot.index.Degraded(profile.Region) {
		text += "\n\nNote: meal data for your region is limited right now."
	}
	bot.send(chatID, text, dayPlanKeyboard(plan))
}

func (bot *Bot) handleWeekPlan(ctx context.Context, state *userState, userID, chatID int64) {
	profile, ok := bot.loadProfile(ctx, userID, chatID)
	if !ok {
		return
	}

	plan, err := planner.SelectWeek(bot.candidatesFor(profile), bot.recentHistory(ctx, userID), userID, time.Now())
	if errors.Is(err, planner.ErrNoEligibleMeals) {
		bot.send(chatID, noMealsText(profile), mainMenuKeyboard())
		return
	}
	if err != nil {
		slog.Error("selecting week plan", "user", userID, "error", err)
		bot.send(chatID, "Something went wrong building your week. Please try again.", nil)
		return
	}

	state.weekPlan = &plan
	state.weekDay = 0
	state.lastPlan = &plan
	bot.persist("history append", bot.history.Append(ctx, userID, plan.MealIDs(), bot.cfg.HistoryWindow))

	bot.send(chatID, renderWeekDay(plan, 0), weekKeyboard(plan, 0))
}

func (bot *Bot) handleWeekNavigation(state *userState, chatID int64, direction string) {
	if state.weekPlan == nil {
		bot.send(chatID, "No weekly plan yet. Ask for one first!", mainMenuKeyboard())
		return
	}
	switch direction {
	case "prev":
		if state.weekDay > 0 {
			state.weekDay--
		}
	case "next":
		if state.weekDay < len(state.weekPlan.Days)-1 {
			state.weekDay++
		}
	}
	bot.send(chatID, renderWeekDay(*state.weekPlan, state.weekDay), weekKeyboard(*state.weekPlan, state.weekDay))
}

func (bot *Bot) handleExportWeek(state *userState, chatID int64) {
	if state.weekPlan == nil {
		bot.send(chatID, "No weekly plan to export yet. Ask for one first!", mainMenuKeyboard())
		return
	}
	document, err := planner.WeekCalendar(*state.weekPlan)
	if err != nil {
		slog.Error("rendering week calendar", "error", err)
		bot.send(chatID, "Couldn't build the calendar export. Please try again.", nil)
		return
	}
	bot.sendDocument(chatID, "nutrio-week.ics", []byte(document), "Your week of meals, ready for your calendar.")
}

func (bot *Bot) handleGroceryList(ctx context.Context, state *userState, userID, chatID int64) {
	profile, ok := bot.loadProfile(ctx, userID, chatID)
	if !ok {
		return
	}

	plan := state.lastPlan
	if plan == nil {
		generated, err := planner.SelectDay(bot.candidatesFor(profile), bot.recentHistory(ctx, userID), userID, time.Now())
		if err != nil {
			bot.send(chatID, noMealsText(profile), mainMenuKeyboard())
			return
		}
		plan = &generated
		state.lastPlan = plan
	}

	cart := bot.loadCart(ctx, userID)
	cart = grocery.Merge(cart, *plan)
	bot.persist("cart save", bot.carts.Save(ctx, cart))

	bot.send(chatID, renderGroceryList(profile, cart), groceryKeyboard(cart))
}

func (bot *Bot) handleCartAction(ctx context.Context, state *userState, userID, chatID int64, argument string) {
	action, ingredient, _ := strings.Cut(argument, ":")
	switch action {
	case "toggle":
		cart := bot.loadCart(ctx, userID)
		cart = grocery.Toggle(cart, ingredient)
		bot.persist("cart save", bot.carts.Save(ctx, cart))
		profile, ok := bot.loadProfile(ctx, userID, chatID)
		if !ok {
			return
		}
		bot.send(chatID, renderGroceryList(profile, cart), groceryKeyboard(cart))
	case "clear":
		bot.persist("cart clear", bot.carts.Clear(ctx, userID))
		bot.send(chatID, "Cart cleared. Start fresh from your next plan!", mainMenuKeyboard())
	}
}

func (bot *Bot) handleShowCart(ctx context.Context, userID, chatID int64) {
	cart := bot.loadCart(ctx, userID)
	selected := grocery.SelectedItems(cart)
	if len(selected) == 0 {
		bot.send(chatID, "Your cart is empty. Open the grocery list to pick some items.", mainMenuKeyboard())
		return
	}
	bot.send(chatID, renderCart(selected), cartKeyboard(grocery.DeliveryLinks(selected)))
}

func (bot *Bot) loadCart(ctx context.Context, userID int64) models.Cart {
	cart, err := bot.carts.Get(ctx, userID)
	if err != nil {
		bot.persist("cart load", err)
		return models.NewCart(userID)
	}
	return cart
}

func (bot *Bot) handleRating(ctx context.Context, userID, chatID int64, argument string) {
	verdict, mealID, ok := strings.Cut(argument, ":")
	if !ok || mealID == "" {
		return
	}
	liked := verdict == "like"

	_, err := bot.ratings.Create(ctx, models.MealRating{UserID: userID, MealID: mealID, Liked: liked})
	bot.persist("rating create", err)

	likes, dislikes, countErr := bot.ratings.CountForMeal(ctx, mealID)
	text := "Thanks for the feedback!"
	if countErr == nil {
		text = renderRatingSummary(liked, likes, dislikes)
	}
	bot.send(chatID, text, mainMenuKeyboard())
}

func (bot *Bot) handleShowProfile(ctx context.Context, userID, chatID int64) {
	profile, ok := bot.loadProfile(ctx, userID, chatID)
	if !ok {
		return
	}
	record, err := bot.streaks.Get(ctx, userID)
	if err != nil {
		bot.persist("streak load", err)
		record = models.StreakRecord{UserID: userID}
	}
	bot.send(chatID, renderProfile(profile, record), profileKeyboard())
}

func (bot *Bot) showMainMenu(ctx context.Context, userID, chatID int64) {
	profile, ok := bot.loadProfile(ctx, userID, chatID)
	if !ok {
		return
	}
	record, err := bot.streaks.Get(ctx, userID)
	if err != nil {
		bot.persist("streak load", err)
		record = models.StreakRecord{UserID: userID}
	}
	bot.send(chatID, welcomeBack(profile, record), mainMenuKeyboard())
}
