// Package store defines the persistence collaborator used by the services.
package store

import (
	"context"
	"errors"

	"github.com/isdelr/exercise-tracker-be/internal/models"
)

// ErrNotFound is returned when a lookup matches no record.
var ErrNotFound = errors.New("not found")

// Store persists users and their exercise entries. Implementations assign
// record IDs on insert and must be safe for concurrent use.
type Store interface {
	InsertUser(ctx context.Context, user *models.User) error
	ListUsers(ctx context.Context) ([]models.User, error)
	FindUserByID(ctx context.Context, id string) (models.User, error)
	InsertExercise(ctx context.Context, exercise *models.Exercise) error
	FindExercises(ctx context.Context, filter models.ExerciseFilter) ([]models.Exercise, error)
	Ping(ctx context.Context) error
	Close() error
}
