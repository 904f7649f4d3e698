package streak_test

import (
	"math"
	"testing"

	"github.com/scar796/nutrio/internal/models"
	"github.com/scar796/nutrio/internal/streak"
)

func TestDayPoints_Ranges(t *testing.T) {
	ranges := []struct {
		day  int
		low  int
		high int
	}{
		{1, 2, 5},
		{2, 4, 8},
		{3, 8, 15},
	}

	for userID := int64(1); userID <= 50; userID++ {
		for _, r := range ranges {
			points := streak.DayPoints(userID, r.day)
			if points < r.low || points > r.high {
				t.Errorf("user %d day %d: points %d outside [%d, %d]", userID, r.day, points, r.low, r.high)
			}
		}
	}
}

func TestDayPoints_GrowsByHalfAfterDayThree(t *testing.T) {
	for userID := int64(1); userID <= 50; userID++ {
		for day := 4; day <= 8; day++ {
			previous := streak.DayPoints(userID, day-1)
			expected := int(math.Round(float64(previous) * 1.5))
			if got := streak.DayPoints(userID, day); got != expected {
				t.Errorf("user %d day %d: expected %d (1.5x of %d), got %d", userID, day, expected, previous, got)
			}
		}
	}
}

func TestDayPoints_Deterministic(t *testing.T) {
	for day := 1; day <= 10; day++ {
		if streak.DayPoints(7, day) != streak.DayPoints(7, day) {
			t.Fatalf("day %d points not stable", day)
		}
	}
}

func TestRecord_FirstEngagement(t *testing.T) {
	record := models.StreakRecord{UserID: 42}

	updated, earned, err := streak.Record(record, "2026-08-30")
	if err != nil {
		t.Fatalf("recording engagement: %v", err)
	}
	if updated.Count != 1 {
		t.Errorf("expected count 1, got %d", updated.Count)
	}
	if earned != streak.DayPoints(42, 1) {
		t.Errorf("expected day-one points %d, got %d", streak.DayPoints(42, 1), earned)
	}
	if updated.Points != earned {
		t.Errorf("expected total points %d, got %d", earned, updated.Points)
	}
	if updated.LastEngaged != "2026-08-30" {
		t.Errorf("expected last engaged 2026-08-30, got %s", updated.LastEngaged)
	}
}

func TestRecord_SameDayIsNoOp(t *testing.T) {
	record := models.StreakRecord{UserID: 42}
	first, _, err := streak.Record(record, "2026-08-30")
	if err != nil {
		t.Fatalf("recording engagement: %v", err)
	}

	second, earned, err := streak.Record(first, "2026-08-30")
	if err != nil {
		t.Fatalf("recording same day: %v", err)
	}
	if earned != 0 {
		t.Errorf("expected no points on repeat engagement, got %d", earned)
	}
	if second != first {
		t.Errorf("expected unchanged record, got %+v", second)
	}
}

func TestRecord_ConsecutiveDaysAccumulate(t *testing.T) {
	dates := []string{"2026-08-25", "2026-08-26", "2026-08-27", "2026-08-28", "2026-08-29"}
	record := models.StreakRecord{UserID: 42}

	total := 0
	for day, date := range dates {
		var earned int
		var err error
		record, earned, err = streak.Record(record, date)
		if err != nil {
			t.Fatalf("recording %s: %v", date, err)
		}
		if expected := streak.DayPoints(42, day+1); earned != expected {
			t.Errorf("day %d: expected %d points, got %d", day+1, expected, earned)
		}
		total += earned
	}

	if record.Count != 5 {
		t.Errorf("expected count 5, got %d", record.Count)
	}
	if record.Points != total {
		t.Errorf("expected accumulated points %d, got %d", total, record.Points)
	}
}

func TestRecord_GapResets(t *testing.T) {
	record := models.StreakRecord{UserID: 42}
	record, _, _ = streak.Record(record, "2026-08-25")
	record, _, _ = streak.Record(record, "2026-08-26")
	record, _, _ = streak.Record(record, "2026-08-27")

	record, earned, err := streak.Record(record, "2026-08-30")
	if err != nil {
		t.Fatalf("recording after gap: %v", err)
	}
	if record.Count != 1 {
		t.Errorf("expected reset to count 1, got %d", record.Count)
	}
	if earned != streak.DayPoints(42, 1) {
		t.Errorf("expected day-one points after reset, got %d", earned)
	}
	if record.Points != earned {
		t.Errorf("expected points reset to %d, got %d", earned, record.Points)
	}
}

func TestRecord_EarlierDateIsNoOp(t *testing.T) {
	record := models.StreakRecord{UserID: 42, Count: 3, Points: 20, LastEngaged: "2026-08-30"}

	updated, earned, err := streak.Record(record, "2026-08-28")
	if err != nil {
		t.Fatalf("recording earlier date: %v", err)
	}
	if earned != 0 || updated != record {
		t.Errorf("expected no change for earlier date, got %+v earned %d", updated, earned)
	}
}

func TestRecord_RejectsMalformedDate(t *testing.T) {
	if _, _, err := streak.Record(models.StreakRecord{UserID: 42}, "30-08-2026"); err == nil {
		t.Fatal("expected error for malformed date")
	}
}
