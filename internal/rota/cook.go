package rota

import "github.com/pageza/hearth/backend/internal/models"

// CookForDate returns who cooks on date. Paused and unassigned days have no cook
// and do not advance the alternation.
func CookForDate(s State, date string) (models.Person, bool) {
	if s.DayStatus(date) != AssignedActive {
		return "", false
	}

	start := WeekStart(date)
	prior := 0
	for _, e := range s.MealPlan {
		if e.Date >= start && e.Date < date && !s.Paused[e.Date] {
			prior++
		}
	}

	person := s.StartPerson(date)
	if prior%2 == 1 {
		person = person.Other()
	}
	return person, true
}

// DayView is one day of the visible week
type DayView struct {
	Date   string                `json:"date"`
	Status Status                `json:"status"`
	Entry  *models.MealPlanEntry `json:"entry,omitempty"`
	Paused bool                  `json:"paused"`
	Cooked bool                  `json:"cooked"`
	Cook   models.Person         `json:"cook,omitempty"`
}

// WeekView is the Monday based week containing a date
type WeekView struct {
	WeekStart   string        `json:"weekStart"`
	StartPerson models.Person `json:"startPerson"`
	Days        []DayView     `json:"days"`
}

// Week builds the view of the week containing date
func Week(s State, date string) (WeekView, error) {
	if _, err := ParseDate(date); err != nil {
		return WeekView{}, err
	}

	view := WeekView{
		WeekStart:   WeekStart(date),
		StartPerson: s.StartPerson(date),
	}
	for _, d := range WeekDays(date) {
		day := DayView{
			Date:   d,
			Status: s.DayStatus(d),
			Paused: s.Paused[d],
			Cooked: s.Cooked[d],
		}
		if e, ok := s.Entry(d); ok {
			entry := e
			day.Entry = &entry
		}
		if p, ok := CookForDate(s, d); ok {
			day.Cook = p
		}
		view.Days = append(view.Days, day)
	}
	return view, nil
}
