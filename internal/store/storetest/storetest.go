// Package storetest holds a behavioural suite that every store.Store
// implementation is expected to pass.
package storetest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/isdelr/exercise-tracker-be/internal/models"
	"github.com/isdelr/exercise-tracker-be/internal/store"
)

// Factory returns a fresh, empty store. The suite closes it when the subtest ends.
type Factory func(t *testing.T) store.Store

// Run executes the suite against stores produced by newStore.
func Run(t *testing.T, newStore Factory) {
	tests := []struct {
		name string
		fn   func(t *testing.T, s store.Store)
	}{
		{"InsertUserAssignsDistinctIDs", testInsertUserAssignsDistinctIDs},
		{"ListUsers", testListUsers},
		{"FindUserByIDMissing", testFindUserByIDMissing},
		{"FindExercisesScopedToUser", testFindExercisesScopedToUser},
		{"FindExercisesDateBounds", testFindExercisesDateBounds},
		{"FindExercisesLimit", testFindExercisesLimit},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newStore(t)
			t.Cleanup(func() { s.Close() })
			tt.fn(t, s)
		})
	}
}

func day(d int) time.Time {
	return time.Date(2023, time.January, d, 0, 0, 0, 0, time.UTC)
}

func mustInsertUser(t *testing.T, s store.Store, name string) models.User {
	t.Helper()
	u := models.User{Username: name}
	if err := s.InsertUser(context.Background(), &u); err != nil {
		t.Fatalf("InsertUser(%q): %v", name, err)
	}
	if u.ID == "" {
		t.Fatalf("InsertUser(%q) did not assign an ID", name)
	}
	return u
}

func mustInsertExercise(t *testing.T, s store.Store, userID, desc string, duration int, date time.Time) models.Exercise {
	t.Helper()
	e := models.Exercise{UserID: userID, Description: desc, Duration: duration, Date: date}
	if err := s.InsertExercise(context.Background(), &e); err != nil {
		t.Fatalf("InsertExercise(%q): %v", desc, err)
	}
	if e.ID == "" {
		t.Fatalf("InsertExercise(%q) did not assign an ID", desc)
	}
	return e
}

func findExercises(t *testing.T, s store.Store, f models.ExerciseFilter) []models.Exercise {
	t.Helper()
	got, err := s.FindExercises(context.Background(), f)
	if err != nil {
		t.Fatalf("FindExercises: %v", err)
	}
	return got
}

func testInsertUserAssignsDistinctIDs(t *testing.T, s store.Store) {
	seen := make(map[string]bool)
	for i := 0; i < 5; i++ {
		u := mustInsertUser(t, s, "alice")
		if seen[u.ID] {
			t.Fatalf("duplicate ID %s", u.ID)
		}
		seen[u.ID] = true

		found, err := s.FindUserByID(context.Background(), u.ID)
		if err != nil {
			t.Fatalf("FindUserByID: %v", err)
		}
		if found != u {
			t.Errorf("FindUserByID = %+v, want %+v", found, u)
		}
	}
}

func testListUsers(t *testing.T, s store.Store) {
	users, err := s.ListUsers(context.Background())
	if err != nil {
		t.Fatalf("ListUsers: %v", err)
	}
	if len(users) != 0 {
		t.Fatalf("ListUsers on empty store returned %d users", len(users))
	}

	want := map[string]string{}
	for _, name := range []string{"alice", "bob", "alice"} {
		u := mustInsertUser(t, s, name)
		want[u.ID] = name
	}

	users, err = s.ListUsers(context.Background())
	if err != nil {
		t.Fatalf("ListUsers: %v", err)
	}
	if len(users) != len(want) {
		t.Fatalf("ListUsers returned %d users, want %d", len(users), len(want))
	}
	for _, u := range users {
		if want[u.ID] != u.Username {
			t.Errorf("user %s has username %q, want %q", u.ID, u.Username, want[u.ID])
		}
	}
}

func testFindUserByIDMissing(t *testing.T, s store.Store) {
	mustInsertUser(t, s, "alice")
	_, err := s.FindUserByID(context.Background(), uuid.New().String())
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("FindUserByID error = %v, want ErrNotFound", err)
	}
}

func testFindExercisesScopedToUser(t *testing.T, s store.Store) {
	alice := mustInsertUser(t, s, "alice")
	bob := mustInsertUser(t, s, "bob")
	mustInsertExercise(t, s, alice.ID, "run", 30, day(1))
	mustInsertExercise(t, s, bob.ID, "swim", 45, day(2))

	got := findExercises(t, s, models.ExerciseFilter{UserID: alice.ID})
	if len(got) != 1 {
		t.Fatalf("got %d exercises, want 1", len(got))
	}
	e := got[0]
	if e.UserID != alice.ID || e.Description != "run" || e.Duration != 30 || !e.Date.Equal(day(1)) {
		t.Errorf("unexpected exercise %+v", e)
	}

	none := findExercises(t, s, models.ExerciseFilter{UserID: uuid.New().String()})
	if len(none) != 0 {
		t.Errorf("unknown user returned %d exercises", len(none))
	}
}

func testFindExercisesDateBounds(t *testing.T, s store.Store) {
	u := mustInsertUser(t, s, "alice")
	for d := 1; d <= 10; d++ {
		mustInsertExercise(t, s, u.ID, "walk", d, day(d))
	}

	from, to := day(3), day(6)
	tests := []struct {
		name   string
		filter models.ExerciseFilter
		want   []int // durations, which equal the day of month
	}{
		{"no bounds", models.ExerciseFilter{UserID: u.ID}, []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}},
		{"from only", models.ExerciseFilter{UserID: u.ID, From: &from}, []int{3, 4, 5, 6, 7, 8, 9, 10}},
		{"to only", models.ExerciseFilter{UserID: u.ID, To: &to}, []int{1, 2, 3, 4, 5, 6}},
		{"both bounds inclusive", models.ExerciseFilter{UserID: u.ID, From: &from, To: &to}, []int{3, 4, 5, 6}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := findExercises(t, s, tt.filter)
			durations := make(map[int]bool, len(got))
			for _, e := range got {
				durations[e.Duration] = true
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %d exercises, want %d", len(got), len(tt.want))
			}
			for _, d := range tt.want {
				if !durations[d] {
					t.Errorf("missing exercise for day %d", d)
				}
			}
		})
	}
}

func testFindExercisesLimit(t *testing.T, s store.Store) {
	u := mustInsertUser(t, s, "alice")
	for d := 1; d <= 5; d++ {
		mustInsertExercise(t, s, u.ID, "lift", 10, day(d))
	}

	tests := []struct {
		limit int
		want  int
	}{
		{0, 5},
		{-1, 5},
		{1, 1},
		{3, 3},
		{10, 5},
	}
	for _, tt := range tests {
		got := findExercises(t, s, models.ExerciseFilter{UserID: u.ID, Limit: tt.limit})
		if len(got) != tt.want {
			t.Errorf("limit %d: got %d exercises, want %d", tt.limit, len(got), tt.want)
		}
	}
}
