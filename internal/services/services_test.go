package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/isdelr/exercise-tracker-be/internal/models"
	"github.com/isdelr/exercise-tracker-be/internal/store"
	"github.com/isdelr/exercise-tracker-be/internal/store/memstore"
)

// countingStore records exercise inserts and can be told to fail them.
type countingStore struct {
	*memstore.MemoryStore
	exerciseInserts int
	failWith        error
}

func (s *countingStore) InsertExercise(ctx context.Context, e *models.Exercise) error {
	if s.failWith != nil {
		return s.failWith
	}
	s.exerciseInserts++
	return s.MemoryStore.InsertExercise(ctx, e)
}

func (s *countingStore) FindExercises(ctx context.Context, f models.ExerciseFilter) ([]models.Exercise, error) {
	if s.failWith != nil {
		return nil, s.failWith
	}
	return s.MemoryStore.FindExercises(ctx, f)
}

var fixedNow = time.Date(2024, time.June, 15, 18, 45, 0, 0, time.UTC)

func newServices(t *testing.T) (*UserService, *ExerciseService, *countingStore) {
	t.Helper()
	s := &countingStore{MemoryStore: memstore.New()}
	users := NewUserService(s)
	exercises := NewExerciseService(s, users)
	exercises.now = func() time.Time { return fixedNow }
	return users, exercises, s
}

func assertValidation(t *testing.T, err error, field string) {
	t.Helper()
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("error = %v, want *ValidationError", err)
	}
	if verr.Field != field {
		t.Errorf("ValidationError.Field = %q, want %q", verr.Field, field)
	}
}

func TestCreateUser(t *testing.T) {
	users, _, _ := newServices(t)
	ctx := context.Background()

	seen := map[string]bool{}
	for i := 0; i < 3; i++ {
		u, err := users.CreateUser(ctx, "alice")
		if err != nil {
			t.Fatalf("CreateUser: %v", err)
		}
		if u.Username != "alice" {
			t.Errorf("Username = %q", u.Username)
		}
		if seen[u.ID] {
			t.Errorf("duplicate ID %s", u.ID)
		}
		seen[u.ID] = true
	}

	list, err := users.ListUsers(ctx)
	if err != nil {
		t.Fatalf("ListUsers: %v", err)
	}
	if len(list) != 3 {
		t.Errorf("ListUsers returned %d users, want 3", len(list))
	}
}

func TestCreateUserRequiresUsername(t *testing.T) {
	users, _, _ := newServices(t)
	for _, name := range []string{"", "   "} {
		_, err := users.CreateUser(context.Background(), name)
		assertValidation(t, err, "username")
	}
	list, _ := users.ListUsers(context.Background())
	if len(list) != 0 {
		t.Errorf("rejected users were stored: %v", list)
	}
}

func TestListUsersEmptyIsNotNil(t *testing.T) {
	users, _, _ := newServices(t)
	list, err := users.ListUsers(context.Background())
	if err != nil {
		t.Fatalf("ListUsers: %v", err)
	}
	if list == nil {
		t.Error("ListUsers returned nil slice")
	}
}

func TestGetUserNotFound(t *testing.T) {
	users, _, _ := newServices(t)
	for _, id := range []string{"not-a-uuid", "", uuid.New().String()} {
		if _, err := users.GetUser(context.Background(), id); !errors.Is(err, ErrUserNotFound) {
			t.Errorf("GetUser(%q) error = %v, want ErrUserNotFound", id, err)
		}
	}
}

func TestAddExerciseUnknownUserDoesNotInsert(t *testing.T) {
	_, exercises, s := newServices(t)
	_, err := exercises.AddExercise(context.Background(), uuid.New().String(), ExerciseInput{Description: "run", Duration: "30"})
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("error = %v, want ErrUserNotFound", err)
	}
	if s.exerciseInserts != 0 {
		t.Errorf("store saw %d inserts, want 0", s.exerciseInserts)
	}
}

func TestAddExerciseDefaultsDateToToday(t *testing.T) {
	users, exercises, _ := newServices(t)
	ctx := context.Background()
	u, _ := users.CreateUser(ctx, "alice")

	res, err := exercises.AddExercise(ctx, u.ID, ExerciseInput{Description: "run", Duration: "30"})
	if err != nil {
		t.Fatalf("AddExercise: %v", err)
	}
	if got, want := res.Exercise.FormattedDate(), "Sat Jun 15 2024"; got != want {
		t.Errorf("date = %q, want %q", got, want)
	}
	if res.User != u {
		t.Errorf("User = %+v, want %+v", res.User, u)
	}
	if res.Exercise.ID == "" || res.Exercise.UserID != u.ID {
		t.Errorf("unexpected exercise %+v", res.Exercise)
	}
}

func TestAddExerciseValidation(t *testing.T) {
	users, exercises, s := newServices(t)
	ctx := context.Background()
	u, _ := users.CreateUser(ctx, "alice")

	tests := []struct {
		name  string
		in    ExerciseInput
		field string
	}{
		{"missing description", ExerciseInput{Duration: "30"}, "description"},
		{"missing duration", ExerciseInput{Description: "run"}, "duration"},
		{"non numeric duration", ExerciseInput{Description: "run", Duration: "thirty"}, "duration"},
		{"fractional duration", ExerciseInput{Description: "run", Duration: "30.5"}, "duration"},
		{"bad date", ExerciseInput{Description: "run", Duration: "30", Date: "not a date"}, "date"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := exercises.AddExercise(ctx, u.ID, tt.in)
			assertValidation(t, err, tt.field)
		})
	}
	if s.exerciseInserts != 0 {
		t.Errorf("store saw %d inserts, want 0", s.exerciseInserts)
	}
}

func TestRoundTrip(t *testing.T) {
	users, exercises, _ := newServices(t)
	ctx := context.Background()

	u, err := users.CreateUser(ctx, "alice")
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	res, err := exercises.AddExercise(ctx, u.ID, ExerciseInput{Description: "run", Duration: " 30 ", Date: "2023-01-01"})
	if err != nil {
		t.Fatalf("AddExercise: %v", err)
	}
	if res.Exercise.Duration != 30 {
		t.Errorf("Duration = %d, want 30", res.Exercise.Duration)
	}

	log, err := exercises.GetLog(ctx, u.ID, LogQuery{})
	if err != nil {
		t.Fatalf("GetLog: %v", err)
	}
	if log.Count != 1 || len(log.Entries) != 1 {
		t.Fatalf("Count = %d, len(Entries) = %d, want 1", log.Count, len(log.Entries))
	}
	e := log.Entries[0]
	if e.Description != "run" || e.Duration != 30 || e.FormattedDate() != "Sun Jan 01 2023" {
		t.Errorf("unexpected entry %+v (%s)", e, e.FormattedDate())
	}
}

func TestGetLogFiltersAndLimits(t *testing.T) {
	users, exercises, _ := newServices(t)
	ctx := context.Background()
	u, _ := users.CreateUser(ctx, "alice")
	other, _ := users.CreateUser(ctx, "bob")

	for _, d := range []string{"2023-01-01", "2023-01-05", "2023-01-10", "2023-01-15"} {
		if _, err := exercises.AddExercise(ctx, u.ID, ExerciseInput{Description: "run", Duration: "10", Date: d}); err != nil {
			t.Fatalf("AddExercise(%s): %v", d, err)
		}
	}
	if _, err := exercises.AddExercise(ctx, other.ID, ExerciseInput{Description: "swim", Duration: "10", Date: "2023-01-05"}); err != nil {
		t.Fatalf("AddExercise: %v", err)
	}

	tests := []struct {
		name  string
		query LogQuery
		want  []string
	}{
		{"full log", LogQuery{}, []string{"Sun Jan 01 2023", "Thu Jan 05 2023", "Tue Jan 10 2023", "Sun Jan 15 2023"}},
		{"inclusive range", LogQuery{From: "2023-01-05", To: "2023-01-10"}, []string{"Thu Jan 05 2023", "Tue Jan 10 2023"}},
		{"from only", LogQuery{From: "2023-01-10"}, []string{"Tue Jan 10 2023", "Sun Jan 15 2023"}},
		{"to only", LogQuery{To: "2023-01-01"}, []string{"Sun Jan 01 2023"}},
		{"timestamp bound truncated to day", LogQuery{To: "2023-01-05T23:59:00Z"}, []string{"Sun Jan 01 2023", "Thu Jan 05 2023"}},
		{"limit", LogQuery{Limit: "2"}, []string{"Sun Jan 01 2023", "Thu Jan 05 2023"}},
		{"zero limit means no limit", LogQuery{Limit: "0"}, []string{"Sun Jan 01 2023", "Thu Jan 05 2023", "Tue Jan 10 2023", "Sun Jan 15 2023"}},
		{"range and limit", LogQuery{From: "2023-01-05", Limit: "1"}, []string{"Thu Jan 05 2023"}},
		{"empty range", LogQuery{From: "2023-02-01"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log, err := exercises.GetLog(ctx, u.ID, tt.query)
			if err != nil {
				t.Fatalf("GetLog: %v", err)
			}
			if log.Count != len(log.Entries) {
				t.Errorf("Count = %d, len(Entries) = %d", log.Count, len(log.Entries))
			}
			if log.Entries == nil {
				t.Error("Entries is nil")
			}
			if len(log.Entries) != len(tt.want) {
				t.Fatalf("got %d entries, want %d", len(log.Entries), len(tt.want))
			}
			for i, e := range log.Entries {
				if got := e.FormattedDate(); got != tt.want[i] {
					t.Errorf("entry %d date = %q, want %q", i, got, tt.want[i])
				}
			}
		})
	}
}

func TestGetLogValidation(t *testing.T) {
	users, exercises, _ := newServices(t)
	ctx := context.Background()
	u, _ := users.CreateUser(ctx, "alice")

	_, err := exercises.GetLog(ctx, u.ID, LogQuery{Limit: "ten"})
	assertValidation(t, err, "limit")
	_, err = exercises.GetLog(ctx, u.ID, LogQuery{From: "yesterday-ish"})
	assertValidation(t, err, "from")
	_, err = exercises.GetLog(ctx, u.ID, LogQuery{To: "nope"})
	assertValidation(t, err, "to")

	if _, err := exercises.GetLog(ctx, "missing", LogQuery{}); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("error = %v, want ErrUserNotFound", err)
	}
}

func TestStoreFailuresAreWrapped(t *testing.T) {
	users, exercises, s := newServices(t)
	ctx := context.Background()
	u, _ := users.CreateUser(ctx, "alice")

	boom := errors.New("connection refused")
	s.failWith = boom

	_, err := exercises.AddExercise(ctx, u.ID, ExerciseInput{Description: "run", Duration: "30"})
	if !errors.Is(err, boom) {
		t.Errorf("AddExercise error = %v, want wrapped %v", err, boom)
	}
	_, err = exercises.GetLog(ctx, u.ID, LogQuery{})
	if !errors.Is(err, boom) {
		t.Errorf("GetLog error = %v, want wrapped %v", err, boom)
	}
	var verr *ValidationError
	if errors.As(err, &verr) || errors.Is(err, ErrUserNotFound) {
		t.Errorf("store failure misclassified: %v", err)
	}
}

var _ store.Store = (*countingStore)(nil)
