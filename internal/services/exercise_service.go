package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/isdelr/exercise-tracker-be/internal/models"
	"github.com/isdelr/exercise-tracker-be/internal/store"
)

// ExerciseInput is the raw, unvalidated input for AddExercise.
type ExerciseInput struct {
	Description string
	Duration    string
	Date        string // optional, defaults to today
}

// LogQuery is the raw, unvalidated input for GetLog. Every field is optional.
type LogQuery struct {
	From  string
	To    string
	Limit string
}

// ExerciseResult is a newly stored exercise together with its owner.
type ExerciseResult struct {
	User     models.User
	Exercise models.Exercise
}

// Log is a user's exercise log after filtering. Count is len(Entries).
type Log struct {
	User    models.User
	Count   int
	Entries []models.Exercise
}

// ExerciseServiceProvider defines the interface for exercise services.
type ExerciseServiceProvider interface {
	AddExercise(ctx context.Context, userID string, in ExerciseInput) (ExerciseResult, error)
	GetLog(ctx context.Context, userID string, q LogQuery) (Log, error)
}

// ExerciseService provides business logic for exercise logging.
type ExerciseService struct {
	store       store.Store
	userService UserServiceProvider
	now         func() time.Time
}

// NewExerciseService creates a new ExerciseService.
func NewExerciseService(s store.Store, userService UserServiceProvider) *ExerciseService {
	return &ExerciseService{
		store:       s,
		userService: userService,
		now:         time.Now,
	}
}

// AddExercise appends an exercise to the user's log.
func (s *ExerciseService) AddExercise(ctx context.Context, userID string, in ExerciseInput) (ExerciseResult, error) {
	user, err := s.userService.GetUser(ctx, userID)
	if err != nil {
		return ExerciseResult{}, err
	}

	exercise, err := s.parseExercise(in)
	if err != nil {
		return ExerciseResult{}, err
	}
	exercise.UserID = user.ID

	if err := s.store.InsertExercise(ctx, &exercise); err != nil {
		return ExerciseResult{}, fmt.Errorf("failed to add exercise for user %s: %w", user.ID, err)
	}
	return ExerciseResult{User: user, Exercise: exercise}, nil
}

// GetLog returns the user's exercises, optionally bounded by an inclusive
// date range and capped at a number of entries.
func (s *ExerciseService) GetLog(ctx context.Context, userID string, q LogQuery) (Log, error) {
	user, err := s.userService.GetUser(ctx, userID)
	if err != nil {
		return Log{}, err
	}

	filter, err := parseLogQuery(user.ID, q)
	if err != nil {
		return Log{}, err
	}

	entries, err := s.store.FindExercises(ctx, filter)
	if err != nil {
		return Log{}, fmt.Errorf("failed to get log for user %s: %w", user.ID, err)
	}
	if entries == nil {
		entries = []models.Exercise{}
	}
	return Log{User: user, Count: len(entries), Entries: entries}, nil
}

func (s *ExerciseService) parseExercise(in ExerciseInput) (models.Exercise, error) {
	if strings.TrimSpace(in.Description) == "" {
		return models.Exercise{}, invalid("description", "description is required")
	}

	durationStr := strings.TrimSpace(in.Duration)
	if durationStr == "" {
		return models.Exercise{}, invalid("duration", "duration is required")
	}
	duration, err := strconv.Atoi(durationStr)
	if err != nil {
		return models.Exercise{}, invalid("duration", "duration must be an integer number of minutes")
	}

	date := s.now()
	if strings.TrimSpace(in.Date) != "" {
		if date, err = parseDate(in.Date); err != nil {
			return models.Exercise{}, invalid("date", "date %q is not a valid date", in.Date)
		}
	}

	return models.Exercise{
		Description: in.Description,
		Duration:    duration,
		Date:        models.CalendarDate(date),
	}, nil
}

func parseLogQuery(userID string, q LogQuery) (models.ExerciseFilter, error) {
	filter := models.ExerciseFilter{UserID: userID}

	if strings.TrimSpace(q.From) != "" {
		from, err := parseDate(q.From)
		if err != nil {
			return filter, invalid("from", "from %q is not a valid date", q.From)
		}
		from = models.CalendarDate(from)
		filter.From = &from
	}
	if strings.TrimSpace(q.To) != "" {
		to, err := parseDate(q.To)
		if err != nil {
			return filter, invalid("to", "to %q is not a valid date", q.To)
		}
		to = models.CalendarDate(to)
		filter.To = &to
	}
	if strings.TrimSpace(q.Limit) != "" {
		limit, err := strconv.Atoi(strings.TrimSpace(q.Limit))
		if err != nil {
			return filter, invalid("limit", "limit must be an integer")
		}
		// Zero or negative means no limit.
		filter.Limit = limit
	}
	return filter, nil
}

// parseDate accepts any common date or timestamp representation. Values
// without a zone are read as UTC.
func parseDate(s string) (time.Time, error) {
	return dateparse.ParseIn(strings.TrimSpace(s), time.UTC)
}
