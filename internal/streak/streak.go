// Package streak computes gamified engagement points. All functions are
// pure: the caller supplies today's date, and point draws are seeded from
// the user id so repeated calls give identical results.
package streak

import (
	"fmt"
	"hash/fnv"
	"math"
	"time"

	"github.com/scar796/nutrio/internal/models"
)

const DateLayout = "2006-01-02"

// DayPoints returns the points awarded for the given streak day. Days one
// to three draw from fixed ranges (2-5, 4-8, 8-15); from day four on each
// day is worth the previous day rounded up by half again.
func DayPoints(userID int64, day int) int {
	switch {
	case day <= 0:
		return 0
	case day == 1:
		return draw(userID, 1, 2, 5)
	case day == 2:
		return draw(userID, 2, 4, 8)
	case day == 3:
		return draw(userID, 3, 8, 15)
	default:
		return int(math.Round(float64(DayPoints(userID, day-1)) * 1.5))
	}
}

// draw picks a stable value in [low, high] keyed on (userID, day).
func draw(userID int64, day, low, high int) int {
	hasher := fnv.New64a()
	var buf [9]byte
	for i := 0; i < 8; i++ {
		buf[i] = byte(userID >> (8 * i))
	}
	buf[8] = byte(day)
	hasher.Write(buf[:])
	span := uint64(high - low + 1)
	return low + int(hasher.Sum64()%span)
}

// Record applies one day of engagement to a streak. Calling it again with
// the same date is a no-op, a consecutive date extends the streak, and a
// gap of more than one day resets it to day one with the day-one base
// points.
func Record(record models.StreakRecord, today string) (models.StreakRecord, int, error) {
	todayDate, err := time.Parse(DateLayout, today)
	if err != nil {
		return record, 0, fmt.Errorf("parsing engagement date %q: %w", today, err)
	}

	if record.LastEngaged == today {
		return record, 0, nil
	}

	if record.LastEngaged == "" {
		return start(record, today), DayPoints(record.UserID, 1), nil
	}

	lastDate, err := time.Parse(DateLayout, record.LastEngaged)
	if err != nil {
		return record, 0, fmt.Errorf("parsing stored engagement date %q: %w", record.LastEngaged, err)
	}

	days := int(todayDate.Sub(lastDate).Hours() / 24)
	switch {
	case days == 1:
		record.Count++
		earned := DayPoints(record.UserID, record.Count)
		record.Points += earned
		record.LastEngaged = today
		return record, earned, nil
	case days > 1:
		return start(record, today), DayPoints(record.UserID, 1), nil
	default:
		// Today is on or before the stored date; never move backwards.
		return record, 0, nil
	}
}

func start(record models.StreakRecord, today string) models.StreakRecord {
	record.Count = 1
	record.Points = DayPoints(record.UserID, 1)
	record.LastEngaged = today
	return record
}
