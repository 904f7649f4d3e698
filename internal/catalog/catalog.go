// Package catalog loads and indexes the regional meal datasets. The
// datasets are embedded at build time and treated as immutable for the
// process lifetime; all filtering is done on in-memory copies.
package catalog

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/scar796/nutrio/internal/models"
)

//go:embed data/*.json
var dataFS embed.FS

// ErrLoad reports a missing or unusable regional dataset. Callers degrade
// to the fallback pool rather than aborting.
var ErrLoad = errors.New("catalog load failed")

type rawMeal struct {
	Name        string   `json:"name"`
	Ingredients []string `json:"ingredients"`
	Calories    int      `json:"approx_calories"`
	Tier        string   `json:"calorie_tier"`
	HealthNote  string   `json:"health_note"`
	Diet        string   `json:"diet"`
	ExcludedFor []string `json:"excluded_for"`
}

// Ingredients that disqualify a meal for the stricter diet types.
var jainBanned = []string{"onion", "garlic", "potato"}

var dairyIngredients = []string{"milk", "ghee", "curd", "paneer", "butter", "buttermilk", "cream", "khoya", "honey"}

// Load parses the dataset for one region. Malformed entries are skipped
// with a warning; the load only fails when the source is missing or no
// valid entry remains.
func Load(region models.Region) ([]models.MealRecord, error) {
	filename := fmt.Sprintf("data/%s.json", region)
	content, err := dataFS.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", ErrLoad, filename, err)
	}

	var raw []rawMeal
	if err := json.Unmarshal(content, &raw); err != nil {
		return nil, fmt.Errorf("%w: parsing %s: %v", ErrLoad, filename, err)
	}

	var records []models.MealRecord
	for _, entry := range raw {
		record, err := buildRecord(region, entry)
		if err != nil {
			slog.Warn("skipping malformed catalog entry", "region", region, "name", entry.Name, "error", err)
			continue
		}
		records = append(records, record)
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("%w: no valid entries in %s", ErrLoad, filename)
	}
	return records, nil
}

func buildRecord(region models.Region, entry rawMeal) (models.MealRecord, error) {
	if strings.TrimSpace(entry.Name) == "" {
		return models.MealRecord{}, errors.New("empty name")
	}
	if len(entry.Ingredients) == 0 {
		return models.MealRecord{}, errors.New("no ingredients")
	}
	if entry.Calories <= 0 {
		return models.MealRecord{}, errors.New("non-positive calories")
	}

	tier, ok := models.ParseCalorieTier(entry.Tier)
	if !ok {
		tier = tierForCalories(entry.Calories)
	}

	record := models.MealRecord{
		ID:          string(region) + "/" + slugify(entry.Name),
		Name:        entry.Name,
		Region:      region,
		Ingredients: entry.Ingredients,
		Calories:    entry.Calories,
		Tier:        tier,
		HealthNote:  entry.HealthNote,
	}
	record.Diets = dietTagsFor(entry.Diet, entry.Ingredients)
	if len(record.Diets) == 0 {
		return models.MealRecord{}, fmt.Errorf("unknown diet %q", entry.Diet)
	}
	record.Exclusions = exclusionTagsFor(record, entry.ExcludedFor)
	return record, nil
}

// dietTagsFor materializes the full compatibility set once at load time so
// Filter is a plain tag-membership check. A vegetarian meal also suits
// non-vegetarian users; jain and vegan require the stricter ingredient
// checks to pass.
func dietTagsFor(base string, ingredients []string) []models.DietType {
	switch models.DietType(base) {
	case models.DietNonVegetarian:
		return []models.DietType{models.DietNonVegetarian}
	case models.DietVegetarian:
		tags := []models.DietType{models.DietVegetarian, models.DietNonVegetarian}
		if !containsAny(ingredients, jainBanned) {
			tags = append(tags, models.DietJain)
		}
		if !containsAny(ingredients, dairyIngredients) {
			tags = append(tags, models.DietVegan)
		}
		return tags
	}
	return nil
}

func exclusionTagsFor(record models.MealRecord, explicit []string) []models.MedicalTag {
	tags := make(map[models.MedicalTag]bool)
	for _, tag := range explicit {
		tags[models.MedicalTag(strings.ToLower(strings.TrimSpace(tag)))] = true
	}
	if record.Tier == models.TierHigh {
		tags[models.MedicalDiabetes] = true
	}
	if containsAny(record.Ingredients, []string{"coconut"}) {
		tags[models.MedicalThyroid] = true
	}
	result := make([]models.MedicalTag, 0, len(tags))
	for tag := range tags {
		result = append(result, tag)
	}
	return result
}

func containsAny(ingredients []string, needles []string) bool {
	for _, ingredient := range ingredients {
		lowered := strings.ToLower(ingredient)
		for _, needle := range needles {
			if strings.Contains(lowered, needle) {
				return true
			}
		}
	}
	return false
}

func tierForCalories(calories int) models.CalorieTier {
	switch {
	case calories < 200:
		return models.TierLow
	case calories < 330:
		return models.TierMedium
	default:
		return models.TierHigh
	}
}

func slugify(name string) string {
	var builder strings.Builder
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			builder.WriteRune(r)
		case r == ' ' || r == '-':
			builder.WriteRune('-')
		}
	}
	return builder.String()
}

// Index holds the loaded pools for every supported region.
type Index struct {
	byRegion map[models.Region][]models.MealRecord
	degraded map[models.Region]bool
}

// New loads every region at startup. A region that fails to load degrades
// to the fallback pool and is flagged so the transport can surface a
// limited-data notice.
func New() *Index {
	index := &Index{
		byRegion: make(map[models.Region][]models.MealRecord),
		degraded: make(map[models.Region]bool),
	}
	for _, region := range models.Regions() {
		records, err := Load(region)
		if err != nil {
			slog.Warn("catalog degraded to fallback pool", "region", region, "error", err)
			records = Fallback(region)
			index.degraded[region] = true
		}
		index.byRegion[region] = records
	}
	return index
}

func (index *Index) Region(region models.Region) []models.MealRecord {
	return index.byRegion[region]
}

func (index *Index) Degraded(region models.Region) bool {
	return index.degraded[region]
}

// Filter returns the records matching the diet that carry none of the
// excluded medical tags, preserving source order. A nil tier matches any
// tier.
func Filter(records []models.MealRecord, diet models.DietType, excluded []models.MedicalTag, tier *models.CalorieTier) []models.MealRecord {
	var filtered []models.MealRecord
	for _, record := range records {
		if !record.SuitsDiet(diet) {
			continue
		}
		if record.ExcludedFor(excluded) {
			continue
		}
		if tier != nil && record.Tier != *tier {
			continue
		}
		filtered = append(filtered, record)
	}
	return filtered
}

// Fallback is the minimal pool used when a regional source is unavailable.
func Fallback(region models.Region) []models.MealRecord {
	fallback := []rawMeal{
		{
			Name:        "Rice and Dal",
			Ingredients: []string{"rice", "lentils", "spices", "tomato"},
			Calories:    250,
			Tier:        string(models.TierMedium),
			HealthNote:  "Balanced meal with protein and carbs",
			Diet:        string(models.DietVegetarian),
		},
		{
			Name:        "Vegetable Curry",
			Ingredients: []string{"vegetables", "spices", "tomato", "oil"},
			Calories:    180,
			Tier:        string(models.TierLow),
			HealthNote:  "High in fibre and vitamins",
			Diet:        string(models.DietVegetarian),
		},
		{
			Name:        "Chapati",
			Ingredients: []string{"wheat flour", "water", "salt"},
			Calories:    120,
			Tier:        string(models.TierLow),
			HealthNote:  "Whole grain bread, good source of fibre",
			Diet:        string(models.DietVegetarian),
		},
		{
			Name:        "Mixed Vegetable Salad",
			Ingredients: []string{"cucumber", "tomato", "lemon", "salt"},
			Calories:    80,
			Tier:        string(models.TierLow),
			HealthNote:  "Low calorie, high in vitamins",
			Diet:        string(models.DietVegetarian),
		},
	}

	var records []models.MealRecord
	for _, entry := range fallback {
		record, err := buildRecord(region, entry)
		if err != nil {
			continue
		}
		records = append(records, record)
	}
	return records
}
