package catalog_test

import (
	"testing"

	"github.com/scar796/nutrio/internal/catalog"
	"github.com/scar796/nutrio/internal/models"
)

func TestLoad_BothRegions(t *testing.T) {
	for _, region := range models.Regions() {
		records, err := catalog.Load(region)
		if err != nil {
			t.Fatalf("loading %s: %v", region, err)
		}
		if len(records) < 10 {
			t.Errorf("%s: expected at least 10 meals, got %d", region, len(records))
		}
		for _, record := range records {
			if record.Region != region {
				t.Errorf("meal %s tagged with region %s", record.ID, record.Region)
			}
			if record.Calories <= 0 {
				t.Errorf("meal %s has non-positive calories", record.ID)
			}
			if len(record.Diets) == 0 {
				t.Errorf("meal %s has no diet tags", record.ID)
			}
		}
	}
}

func TestLoad_IDsAreRegionScopedSlugs(t *testing.T) {
	records, err := catalog.Load(models.RegionMaharashtra)
	if err != nil {
		t.Fatalf("loading maharashtra: %v", err)
	}

	seen := make(map[string]bool)
	for _, record := range records {
		if seen[record.ID] {
			t.Errorf("duplicate meal id %s", record.ID)
		}
		seen[record.ID] = true
		if record.ID[:len("maharashtra/")] != "maharashtra/" {
			t.Errorf("expected region-prefixed id, got %s", record.ID)
		}
	}
}

func TestDietTags_VegetarianSuitsNonVegetarian(t *testing.T) {
	records, err := catalog.Load(models.RegionMaharashtra)
	if err != nil {
		t.Fatalf("loading maharashtra: %v", err)
	}

	for _, record := range records {
		if record.SuitsDiet(models.DietVegetarian) && !record.SuitsDiet(models.DietNonVegetarian) {
			t.Errorf("vegetarian meal %s should also suit non-vegetarian users", record.ID)
		}
	}
}

func TestFilter_JainExcludesBannedIngredients(t *testing.T) {
	records, err := catalog.Load(models.RegionMaharashtra)
	if err != nil {
		t.Fatalf("loading maharashtra: %v", err)
	}

	filtered := catalog.Filter(records, models.DietJain, nil, nil)
	if len(filtered) == 0 {
		t.Fatal("expected some jain-compatible meals")
	}
	for _, record := range filtered {
		for _, ingredient := range record.Ingredients {
			for _, banned := range []string{"onion", "garlic", "potato"} {
				if ingredient == banned {
					t.Errorf("jain meal %s contains %s", record.ID, banned)
				}
			}
		}
	}
}

func TestFilter_DiabetesExcludesHighTier(t *testing.T) {
	records, err := catalog.Load(models.RegionKarnataka)
	if err != nil {
		t.Fatalf("loading karnataka: %v", err)
	}

	filtered := catalog.Filter(records, models.DietVegetarian, []models.MedicalTag{models.MedicalDiabetes}, nil)
	if len(filtered) == 0 {
		t.Fatal("expected some diabetes-safe meals")
	}
	for _, record := range filtered {
		if record.Tier == models.TierHigh {
			t.Errorf("high-calorie meal %s offered despite diabetes tag", record.ID)
		}
	}
}

func TestFilter_ThyroidExcludesCoconut(t *testing.T) {
	records, err := catalog.Load(models.RegionKarnataka)
	if err != nil {
		t.Fatalf("loading karnataka: %v", err)
	}

	filtered := catalog.Filter(records, models.DietVegetarian, []models.MedicalTag{models.MedicalThyroid}, nil)
	for _, record := range filtered {
		for _, ingredient := range record.Ingredients {
			if ingredient == "coconut" {
				t.Errorf("meal %s with coconut offered despite thyroid tag", record.ID)
			}
		}
	}
}

func TestFilter_TierNarrowing(t *testing.T) {
	records, err := catalog.Load(models.RegionMaharashtra)
	if err != nil {
		t.Fatalf("loading maharashtra: %v", err)
	}

	tier := models.TierLow
	filtered := catalog.Filter(records, models.DietVegetarian, nil, &tier)
	for _, record := range filtered {
		if record.Tier != models.TierLow {
			t.Errorf("meal %s has tier %s, expected low", record.ID, record.Tier)
		}
	}
}

func TestFilter_PreservesOrder(t *testing.T) {
	records, err := catalog.Load(models.RegionMaharashtra)
	if err != nil {
		t.Fatalf("loading maharashtra: %v", err)
	}

	filtered := catalog.Filter(records, models.DietVegetarian, nil, nil)
	position := -1
	for _, record := range filtered {
		found := -1
		for i, source := range records {
			if source.ID == record.ID {
				found = i
				break
			}
		}
		if found <= position {
			t.Fatalf("filter reordered meal %s", record.ID)
		}
		position = found
	}
}

func TestFilter_EmptyResultIsNotAnError(t *testing.T) {
	records := []models.MealRecord{{
		ID:     "maharashtra/only",
		Name:   "Only",
		Region: models.RegionMaharashtra,
		Tier:   models.TierHigh,
		Diets:  []models.DietType{models.DietNonVegetarian},
	}}

	filtered := catalog.Filter(records, models.DietVegan, nil, nil)
	if len(filtered) != 0 {
		t.Errorf("expected no matches, got %d", len(filtered))
	}
}

func TestFallback_BasicVegetarianPool(t *testing.T) {
	records := catalog.Fallback(models.RegionMaharashtra)
	if len(records) != 4 {
		t.Fatalf("expected 4 fallback meals, got %d", len(records))
	}
	for _, record := range records {
		if !record.SuitsDiet(models.DietVegetarian) {
			t.Errorf("fallback meal %s should suit vegetarians", record.ID)
		}
	}
}

func TestNew_IndexServesBothRegions(t *testing.T) {
	index := catalog.New()
	for _, region := range models.Regions() {
		if len(index.Region(region)) == 0 {
			t.Errorf("expected meals indexed for %s", region)
		}
		if index.Degraded(region) {
			t.Errorf("expected embedded dataset for %s, not the fallback pool", region)
		}
	}
}
