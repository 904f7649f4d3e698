package planner

import (
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/scar796/nutrio/internal/models"
)

// WeekCalendar renders a plan as an iCal document with one all-day event
// per planned meal, suitable for sending as a file attachment.
func WeekCalendar(plan models.MealPlan) (string, error) {
	calendar := ics.NewCalendar()
	calendar.SetMethod(ics.MethodPublish)

	for _, day := range plan.Days {
		date, err := time.Parse(DateLayout, day.Date)
		if err != nil {
			return "", fmt.Errorf("parsing plan date %q: %w", day.Date, err)
		}
		for _, planned := range day.Meals {
			event := calendar.AddEvent(fmt.Sprintf("%s-%s-%s@nutrio", plan.ID, day.Date, planned.Slot))
			event.SetDtStampTime(plan.CreatedAt.UTC())
			event.SetAllDayStartAt(date)
			event.SetAllDayEndAt(date.AddDate(0, 0, 1))
			event.SetSummary(fmt.Sprintf("[%s] %s", planned.Slot, planned.Meal.Name))
			if planned.Meal.HealthNote != "" {
				event.SetDescription(planned.Meal.HealthNote)
			}
		}
	}

	return calendar.Serialize(), nil
}
