package rota

import (
	"sort"

	"github.com/pageza/hearth/backend/internal/models"
)

// State is everything the rota needs about the household plan.
// Functions in this package never modify the State they are given.
type State struct {
	MealPlan     []models.MealPlanEntry
	Paused       map[string]bool
	WeekStarts   map[string]models.Person
	PauseHistory map[string]models.PauseRecord
	Cooked       map[string]bool
}

// Status is the lifecycle of a single day
type Status int

const (
	Unassigned Status = iota
	AssignedActive
	AssignedPaused
)

func (s Status) String() string {
	switch s {
	case AssignedActive:
		return "assigned"
	case AssignedPaused:
		return "paused"
	default:
		return "unassigned"
	}
}

// MarshalText renders the status name in JSON responses
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Clone returns a deep copy of s
func (s State) Clone() State {
	out := State{
		MealPlan:     cloneEntries(s.MealPlan),
		Paused:       make(map[string]bool, len(s.Paused)),
		WeekStarts:   make(map[string]models.Person, len(s.WeekStarts)),
		PauseHistory: make(map[string]models.PauseRecord, len(s.PauseHistory)),
		Cooked:       make(map[string]bool, len(s.Cooked)),
	}
	for k, v := range s.Paused {
		if v {
			out.Paused[k] = true
		}
	}
	for k, v := range s.WeekStarts {
		out.WeekStarts[k] = v
	}
	for k, v := range s.PauseHistory {
		out.PauseHistory[k] = models.PauseRecord{
			Before: cloneEntries(v.Before),
			After:  cloneEntries(v.After),
		}
	}
	for k, v := range s.Cooked {
		if v {
			out.Cooked[k] = true
		}
	}
	return out
}

func cloneEntries(in []models.MealPlanEntry) []models.MealPlanEntry {
	if in == nil {
		return []models.MealPlanEntry{}
	}
	out := make([]models.MealPlanEntry, len(in))
	copy(out, in)
	return out
}

func sortEntries(entries []models.MealPlanEntry) {
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].Date < entries[j].Date })
}

// Entry returns the meal plan entry for date
func (s State) Entry(date string) (models.MealPlanEntry, bool) {
	for _, e := range s.MealPlan {
		if e.Date == date {
			return e, true
		}
	}
	return models.MealPlanEntry{}, false
}

// DayStatus classifies date
func (s State) DayStatus(date string) Status {
	if _, ok := s.Entry(date); !ok {
		return Unassigned
	}
	if s.Paused[date] {
		return AssignedPaused
	}
	return AssignedActive
}

// StartPerson returns who opens the rota in the week containing date
func (s State) StartPerson(date string) models.Person {
	if p, ok := s.WeekStarts[WeekStart(date)]; ok && p.Valid() {
		return p
	}
	return models.PersonA
}

// Assign upserts the entry for date. A non-positive serves is stored as absent.
func Assign(s State, date string, recipe models.Recipe, serves int) (State, error) {
	if _, err := ParseDate(date); err != nil {
		return s, err
	}
	out := s.Clone()
	entry := models.MealPlanEntry{
		Date:        date,
		RecipeID:    recipe.ID,
		RecipeTitle: recipe.Title,
	}
	if serves > 0 {
		entry.Serves = serves
	}

	plan := out.MealPlan[:0]
	for _, e := range out.MealPlan {
		if e.Date != date {
			plan = append(plan, e)
		}
	}
	out.MealPlan = append(plan, entry)
	sortEntries(out.MealPlan)
	return out, nil
}

// Remove deletes the entry for date, if any
func Remove(s State, date string) State {
	out := s.Clone()
	plan := out.MealPlan[:0]
	for _, e := range out.MealPlan {
		if e.Date != date {
			plan = append(plan, e)
		}
	}
	out.MealPlan = plan
	return out
}

// PruneOrphans drops entries whose recipe is not in known and reports how many were dropped
func PruneOrphans(s State, known map[string]bool) (State, int) {
	out := s.Clone()
	plan := out.MealPlan[:0]
	for _, e := range out.MealPlan {
		if known[e.RecipeID] {
			plan = append(plan, e)
		}
	}
	dropped := len(out.MealPlan) - len(plan)
	out.MealPlan = plan
	return out, dropped
}

// RenameRecipe refreshes the cached title of every entry pointing at recipeID
func RenameRecipe(s State, recipeID, title string) State {
	out := s.Clone()
	for i := range out.MealPlan {
		if out.MealPlan[i].RecipeID == recipeID {
			out.MealPlan[i].RecipeTitle = title
		}
	}
	return out
}

// ToggleWeekStart flips the opening person for the week containing date only
func ToggleWeekStart(s State, date string) (State, models.Person, error) {
	if _, err := ParseDate(date); err != nil {
		return s, "", err
	}
	out := s.Clone()
	next := s.StartPerson(date).Other()
	out.WeekStarts[WeekStart(date)] = next
	return out, next, nil
}

// ToggleCooked flips the cooked flag of date and reports the new value
func ToggleCooked(s State, date string) (State, bool, error) {
	if _, err := ParseDate(date); err != nil {
		return s, false, err
	}
	out := s.Clone()
	if out.Cooked[date] {
		delete(out.Cooked, date)
		return out, false, nil
	}
	out.Cooked[date] = true
	return out, true, nil
}
