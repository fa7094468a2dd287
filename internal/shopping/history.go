package shopping

import (
	"time"

	"github.com/google/uuid"

	"github.com/pageza/hearth/backend/internal/models"
)

// MaxHistory is the number of archived lists kept
const MaxHistory = 20

// PlanRange returns the earliest and latest day in the plan
func PlanRange(plan []models.MealPlanEntry) (string, string, bool) {
	if len(plan) == 0 {
		return "", "", false
	}
	start, end := plan[0].Date, plan[0].Date
	for _, e := range plan[1:] {
		if e.Date < start {
			start = e.Date
		}
		if e.Date > end {
			end = e.Date
		}
	}
	return start, end, true
}

// SaveToHistory archives list for the range covered by plan and returns the new history.
// A record for the same range is overwritten in place, otherwise the new record is
// prepended and the history capped at MaxHistory. An empty plan changes nothing.
func SaveToHistory(history []models.ShoppingListHistory, list []models.ShoppingItem, plan []models.MealPlanEntry, now time.Time) []models.ShoppingListHistory {
	out := make([]models.ShoppingListHistory, len(history), len(history)+1)
	copy(out, history)

	start, end, ok := PlanRange(plan)
	if !ok {
		return out
	}

	record := models.ShoppingListHistory{
		WeekStart:        start,
		WeekEnd:          end,
		Items:            append([]models.ShoppingItem{}, list...),
		MealPlanSnapshot: append([]models.MealPlanEntry{}, plan...),
		DateCreated:      now.UTC().Format(time.RFC3339),
	}

	for i, h := range out {
		if h.WeekStart == start && h.WeekEnd == end {
			record.ID = h.ID
			out[i] = record
			return out
		}
	}

	record.ID = uuid.NewString()
	out = append([]models.ShoppingListHistory{record}, out...)
	if len(out) > MaxHistory {
		out = out[:MaxHistory]
	}
	return out
}

// Historical returns the archived list at index, newest first
func Historical(history []models.ShoppingListHistory, index int) (models.ShoppingListHistory, bool) {
	if index < 0 || index >= len(history) {
		return models.ShoppingListHistory{}, false
	}
	return history[index], true
}
