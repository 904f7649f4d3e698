// Package planner builds daily and weekly meal plans from a filtered
// candidate pool. Selection is deterministic for a given (user, date) so
// plans are reproducible; variety comes from deprioritizing recently eaten
// meals rather than excluding them outright.
package planner

import (
	"errors"
	"hash/fnv"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/scar796/nutrio/internal/models"
)

// ErrNoEligibleMeals reports an empty candidate pool. The caller surfaces
// a "no suitable meals" response instead of substituting an incompatible
// meal.
var ErrNoEligibleMeals = errors.New("no eligible meals for the given constraints")

const DateLayout = "2006-01-02"

// daySlots and their preferred calorie tiers. A day should not stack two
// high-tier meals, so high only appears as a lunch preference.
var daySlots = []struct {
	slot  models.MealSlot
	tiers []models.CalorieTier
}{
	{models.SlotBreakfast, []models.CalorieTier{models.TierLow, models.TierMedium}},
	{models.SlotLunch, []models.CalorieTier{models.TierMedium, models.TierHigh}},
	{models.SlotDinner, []models.CalorieTier{models.TierMedium}},
	{models.SlotSnack, []models.CalorieTier{models.TierLow}},
}

func seed(userID int64, date string) int64 {
	hasher := fnv.New64a()
	hasher.Write([]byte(date))
	var buf [8]byte
	for i := 0; i < 8; i++ {
		buf[i] = byte(userID >> (8 * i))
	}
	hasher.Write(buf[:])
	return int64(hasher.Sum64())
}

// SelectDay picks four meals (breakfast, lunch, dinner, snack) for one
// calendar day, balancing calorie tiers across the slots.
func SelectDay(candidates []models.MealRecord, history []string, userID int64, date time.Time) (models.MealPlan, error) {
	if len(candidates) == 0 {
		return models.MealPlan{}, ErrNoEligibleMeals
	}

	dateStr := date.Format(DateLayout)
	rng := rand.New(rand.NewSource(seed(userID, dateStr)))
	recent := toSet(history)
	pickedToday := make(map[string]bool)
	highUsed := false

	day := models.PlannedDay{Day: 1, Date: dateStr}
	for _, slot := range daySlots {
		best := -1
		bestScore := 0.0
		for i, candidate := range candidates {
			score := rng.Float64()
			if recent[candidate.ID] {
				score -= 2
			}
			if !tierMatches(candidate.Tier, slot.tiers) {
				score -= 0.5
			}
			if candidate.Tier == models.TierHigh && highUsed {
				score -= 1.5
			}
			// A repeat within the same day only wins when the pool
			// has no unused alternative left.
			if pickedToday[candidate.ID] {
				score -= 8
			}
			if best == -1 || score > bestScore {
				best = i
				bestScore = score
			}
		}
		chosen := candidates[best]
		pickedToday[chosen.ID] = true
		if chosen.Tier == models.TierHigh {
			highUsed = true
		}
		day.Meals = append(day.Meals, models.PlannedMeal{Slot: slot.slot, Meal: chosen})
	}

	return models.MealPlan{
		ID:        uuid.NewString(),
		UserID:    userID,
		Days:      []models.PlannedDay{day},
		CreatedAt: date,
	}, nil
}

// SelectWeek picks one meal per day for seven days starting at start. A
// meal repeats within the week only when the pool holds fewer than seven
// candidates, and then only the minimum necessary number of times.
func SelectWeek(candidates []models.MealRecord, history []string, userID int64, start time.Time) (models.MealPlan, error) {
	if len(candidates) == 0 {
		return models.MealPlan{}, ErrNoEligibleMeals
	}

	recent := toSet(history)
	usedCount := make(map[string]int)

	plan := models.MealPlan{
		ID:        uuid.NewString(),
		UserID:    userID,
		CreatedAt: start,
	}

	for dayIndex := 0; dayIndex < 7; dayIndex++ {
		date := start.AddDate(0, 0, dayIndex)
		dateStr := date.Format(DateLayout)
		rng := rand.New(rand.NewSource(seed(userID, dateStr)))

		best := -1
		bestScore := 0.0
		for i, candidate := range candidates {
			score := rng.Float64()
			if recent[candidate.ID] {
				score -= 1
			}
			score -= 10 * float64(usedCount[candidate.ID])
			if best == -1 || score > bestScore {
				best = i
				bestScore = score
			}
		}
		chosen := candidates[best]
		usedCount[chosen.ID]++

		plan.Days = append(plan.Days, models.PlannedDay{
			Day:   dayIndex + 1,
			Date:  dateStr,
			Meals: []models.PlannedMeal{{Slot: models.SlotMain, Meal: chosen}},
		})
	}

	return plan, nil
}

func tierMatches(tier models.CalorieTier, preferred []models.CalorieTier) bool {
	for _, candidate := range preferred {
		if tier == candidate {
			return true
		}
	}
	return false
}

func toSet(ids []string) map[string]bool {
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}
