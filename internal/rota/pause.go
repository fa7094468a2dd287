package rota

import (
	"errors"

	"github.com/pageza/hearth/backend/internal/models"
)

// maxSearchDays bounds the search for the next free day
const maxSearchDays = 366

// ErrNoFreeDay is returned when no unpaused day exists within the search window.
// The state is left untouched in that case.
var ErrNoFreeDay = errors.New("no unpaused day available within a year")

// PauseCommand pauses a single day and shifts later meals forward.
// The shift it performs is recorded so Undo can restore the plan exactly.
type PauseCommand struct {
	Date string
}

// Apply marks the day paused and moves every entry on or after it to the next
// unpaused day strictly after its original date. Targets strictly increase.
func (c PauseCommand) Apply(s State) (State, error) {
	if _, err := ParseDate(c.Date); err != nil {
		return s, err
	}
	if s.Paused[c.Date] {
		return s.Clone(), nil
	}

	out := s.Clone()
	out.Paused[c.Date] = true

	var kept, affected []models.MealPlanEntry
	for _, e := range out.MealPlan {
		if e.Date >= c.Date {
			affected = append(affected, e)
		} else {
			kept = append(kept, e)
		}
	}
	sortEntries(affected)

	shifted := make([]models.MealPlanEntry, 0, len(affected))
	prev := ""
	for _, e := range affected {
		target, ok := nextFreeDay(out.Paused, e.Date, prev)
		if !ok {
			return s, ErrNoFreeDay
		}
		moved := e
		moved.Date = target
		shifted = append(shifted, moved)
		prev = target
	}

	out.MealPlan = append(cloneEntries(kept), shifted...)
	sortEntries(out.MealPlan)
	out.PauseHistory[c.Date] = models.PauseRecord{
		Before: cloneEntries(affected),
		After:  cloneEntries(shifted),
	}
	return out, nil
}

// nextFreeDay finds the first unpaused day after both from and prev
func nextFreeDay(paused map[string]bool, from, prev string) (string, bool) {
	d := AddDays(from, 1)
	if prev != "" && d <= prev {
		d = AddDays(prev, 1)
	}
	for i := 0; i < maxSearchDays; i++ {
		if !paused[d] {
			return d, true
		}
		d = AddDays(d, 1)
	}
	return "", false
}

// Undo unpauses the day and, if a shift was recorded for it, puts the affected
// entries back where they were.
func (c PauseCommand) Undo(s State) State {
	out := s.Clone()
	delete(out.Paused, c.Date)

	rec, ok := out.PauseHistory[c.Date]
	if !ok {
		return out
	}

	moved := make(map[[2]string]bool, len(rec.After))
	for _, e := range rec.After {
		moved[[2]string{e.Date, e.RecipeID}] = true
	}
	original := make(map[string]bool, len(rec.Before))
	for _, e := range rec.Before {
		original[e.Date] = true
	}

	plan := make([]models.MealPlanEntry, 0, len(out.MealPlan))
	for _, e := range out.MealPlan {
		if moved[[2]string{e.Date, e.RecipeID}] || original[e.Date] {
			continue
		}
		plan = append(plan, e)
	}
	plan = append(plan, rec.Before...)
	sortEntries(plan)

	out.MealPlan = plan
	delete(out.PauseHistory, c.Date)
	return out
}

// TogglePause pauses an active day or unpauses a paused one and reports the new paused value
func TogglePause(s State, date string) (State, bool, error) {
	cmd := PauseCommand{Date: date}
	if s.Paused[date] {
		if _, err := ParseDate(date); err != nil {
			return s, true, err
		}
		return cmd.Undo(s), false, nil
	}
	out, err := cmd.Apply(s)
	if err != nil {
		return s, false, err
	}
	return out, true, nil
}
