package models

import (
	"sort"
	"time"
)

type Region string

const (
	RegionMaharashtra Region = "maharashtra"
	RegionKarnataka   Region = "karnataka"
)

func Regions() []Region {
	return []Region{RegionMaharashtra, RegionKarnataka}
}

func ParseRegion(value string) (Region, bool) {
	for _, region := range Regions() {
		if string(region) == value {
			return region, true
		}
	}
	return "", false
}

type DietType string

const (
	DietVegetarian    DietType = "vegetarian"
	DietNonVegetarian DietType = "non-vegetarian"
	DietJain          DietType = "jain"
	DietVegan         DietType = "vegan"
)

func DietTypes() []DietType {
	return []DietType{DietVegetarian, DietNonVegetarian, DietJain, DietVegan}
}

func ParseDietType(value string) (DietType, bool) {
	for _, diet := range DietTypes() {
		if string(diet) == value {
			return diet, true
		}
	}
	return "", false
}

type CalorieTier string

const (
	TierLow    CalorieTier = "low"
	TierMedium CalorieTier = "medium"
	TierHigh   CalorieTier = "high"
)

func ParseCalorieTier(value string) (CalorieTier, bool) {
	switch CalorieTier(value) {
	case TierLow, TierMedium, TierHigh:
		return CalorieTier(value), true
	}
	return "", false
}

// MedicalTag marks a condition that disqualifies meals carrying the same tag.
type MedicalTag string

const (
	MedicalDiabetes MedicalTag = "diabetes"
	MedicalThyroid  MedicalTag = "thyroid"
)

type MealRecord struct {
	ID          string
	Name        string
	Region      Region
	Ingredients []string
	Calories    int
	Tier        CalorieTier
	HealthNote  string
	Diets       []DietType
	Exclusions  []MedicalTag
}

func (meal MealRecord) SuitsDiet(diet DietType) bool {
	for _, tag := range meal.Diets {
		if tag == diet {
			return true
		}
	}
	return false
}

func (meal MealRecord) ExcludedFor(tags []MedicalTag) bool {
	for _, excluded := range meal.Exclusions {
		for _, tag := range tags {
			if excluded == tag {
				return true
			}
		}
	}
	return false
}

type UserProfile struct {
	UserID    int64
	Name      string
	Age       int
	Region    Region
	Diet      DietType
	Medical   []MedicalTag
	Gender    string
	Activity  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// StreakRecord tracks consecutive engagement days. LastEngaged is a
// YYYY-MM-DD date string, empty when the user has never engaged.
type StreakRecord struct {
	UserID      int64
	Count       int
	Points      int
	LastEngaged string
}

type MealSlot string

const (
	SlotBreakfast MealSlot = "breakfast"
	SlotLunch     MealSlot = "lunch"
	SlotDinner    MealSlot = "dinner"
	SlotSnack     MealSlot = "snack"
	SlotMain      MealSlot = "main"
)

type PlannedMeal struct {
	Slot MealSlot
	Meal MealRecord
}

type PlannedDay struct {
	Day   int
	Date  string
	Meals []PlannedMeal
}

func (day PlannedDay) TotalCalories() int {
	total := 0
	for _, planned := range day.Meals {
		total += planned.Meal.Calories
	}
	return total
}

type MealPlan struct {
	ID        string
	UserID    int64
	Days      []PlannedDay
	CreatedAt time.Time
}

func (plan MealPlan) MealIDs() []string {
	var ids []string
	for _, day := range plan.Days {
		for _, planned := range day.Meals {
			ids = append(ids, planned.Meal.ID)
		}
	}
	return ids
}

// Ingredients returns the distinct ingredients across the plan, sorted.
func (plan MealPlan) Ingredients() []string {
	seen := make(map[string]bool)
	for _, day := range plan.Days {
		for _, planned := range day.Meals {
			for _, ingredient := range planned.Meal.Ingredients {
				seen[ingredient] = true
			}
		}
	}
	ingredients := make([]string, 0, len(seen))
	for ingredient := range seen {
		ingredients = append(ingredients, ingredient)
	}
	sort.Strings(ingredients)
	return ingredients
}

type CartItem struct {
	Ingredient string
	Selected   bool
	Manual     bool
}

type Cart struct {
	UserID int64
	Items  map[string]CartItem
}

func NewCart(userID int64) Cart {
	return Cart{UserID: userID, Items: make(map[string]CartItem)}
}

type MealRating struct {
	ID        string
	UserID    int64
	MealID    string
	Liked     bool
	CreatedAt time.Time
}
