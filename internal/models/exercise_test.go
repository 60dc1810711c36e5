package models

import (
	"testing"
	"time"
)

func TestFormatDate(t *testing.T) {
	d := time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC)
	if got := FormatDate(d); got != "Sun Jan 01 2023" {
		t.Errorf("FormatDate = %q, want %q", got, "Sun Jan 01 2023")
	}
	e := Exercise{Date: d}
	if got := e.FormattedDate(); got != "Sun Jan 01 2023" {
		t.Errorf("FormattedDate = %q", got)
	}
}

func TestCalendarDate(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)
	in := time.Date(2023, time.March, 5, 1, 30, 0, 0, loc) // 2023-03-04T23:30Z
	want := time.Date(2023, time.March, 4, 0, 0, 0, 0, time.UTC)
	if got := CalendarDate(in); !got.Equal(want) {
		t.Errorf("CalendarDate = %v, want %v", got, want)
	}
}

func TestExerciseFilterMatches(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2023, time.January, d, 0, 0, 0, 0, time.UTC) }
	from, to := day(5), day(10)

	tests := []struct {
		name   string
		filter ExerciseFilter
		ex     Exercise
		want   bool
	}{
		{"other user", ExerciseFilter{UserID: "a"}, Exercise{UserID: "b", Date: day(1)}, false},
		{"no bounds", ExerciseFilter{UserID: "a"}, Exercise{UserID: "a", Date: day(1)}, true},
		{"before from", ExerciseFilter{UserID: "a", From: &from}, Exercise{UserID: "a", Date: day(4)}, false},
		{"on from", ExerciseFilter{UserID: "a", From: &from}, Exercise{UserID: "a", Date: day(5)}, true},
		{"on to", ExerciseFilter{UserID: "a", To: &to}, Exercise{UserID: "a", Date: day(10)}, true},
		{"after to", ExerciseFilter{UserID: "a", To: &to}, Exercise{UserID: "a", Date: day(11)}, false},
		{"inside range", ExerciseFilter{UserID: "a", From: &from, To: &to}, Exercise{UserID: "a", Date: day(7)}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.filter.Matches(tt.ex); got != tt.want {
				t.Errorf("Matches = %v, want %v", got, tt.want)
			}
		})
	}
}
