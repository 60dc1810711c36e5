package models

import "time"

// DateLayout is the calendar string used for every date in API responses,
// e.g. "Sun Jan 01 2023".
const DateLayout = "Mon Jan 02 2006"

// Exercise is a single logged activity belonging to one user.
type Exercise struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	Description string    `json:"description"`
	Duration    int       `json:"duration"` // minutes
	Date        time.Time `json:"date"`     // midnight UTC of the calendar day
}

// FormattedDate renders the exercise date in DateLayout.
func (e Exercise) FormattedDate() string {
	return FormatDate(e.Date)
}

// ExerciseFilter scopes an exercise query to one user with optional inclusive
// date bounds. A Limit of zero or less means no limit.
type ExerciseFilter struct {
	UserID string
	From   *time.Time
	To     *time.Time
	Limit  int
}

// Matches reports whether e satisfies the user and date constraints of the
// filter. Limit is not considered.
func (f ExerciseFilter) Matches(e Exercise) bool {
	if e.UserID != f.UserID {
		return false
	}
	if f.From != nil && e.Date.Before(*f.From) {
		return false
	}
	if f.To != nil && e.Date.After(*f.To) {
		return false
	}
	return true
}

// CalendarDate truncates t to midnight UTC of its calendar day in UTC.
func CalendarDate(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// FormatDate renders t in DateLayout using its UTC calendar day.
func FormatDate(t time.Time) string {
	return t.UTC().Format(DateLayout)
}
