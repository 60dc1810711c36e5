package memstore

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/isdelr/exercise-tracker-be/internal/models"
	"github.com/isdelr/exercise-tracker-be/internal/store"
)

// MemoryStore keeps users and exercises in process memory for testing or
// lightweight usage. Records are returned in insertion order.
type MemoryStore struct {
	mu        sync.RWMutex
	users     []models.User
	userIndex map[string]int
	exercises []models.Exercise
}

// New returns an empty in-memory store.
func New() *MemoryStore {
	return &MemoryStore{userIndex: make(map[string]int)}
}

// InsertUser stores a copy of user and assigns its ID.
func (s *MemoryStore) InsertUser(ctx context.Context, user *models.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	user.ID = uuid.New().String()
	s.userIndex[user.ID] = len(s.users)
	s.users = append(s.users, *user)
	return nil
}

// ListUsers returns every user in insertion order.
func (s *MemoryStore) ListUsers(ctx context.Context) ([]models.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	users := make([]models.User, len(s.users))
	copy(users, s.users)
	return users, nil
}

// FindUserByID retrieves a single user by their ID.
func (s *MemoryStore) FindUserByID(ctx context.Context, id string) (models.User, error) {
	if err := ctx.Err(); err != nil {
		return models.User{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.userIndex[id]
	if !ok {
		return models.User{}, store.ErrNotFound
	}
	return s.users[i], nil
}

// InsertExercise stores a copy of exercise and assigns its ID.
func (s *MemoryStore) InsertExercise(ctx context.Context, exercise *models.Exercise) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	exercise.ID = uuid.New().String()
	s.exercises = append(s.exercises, *exercise)
	return nil
}

// FindExercises returns the exercises matching filter in insertion order.
func (s *MemoryStore) FindExercises(ctx context.Context, filter models.ExerciseFilter) ([]models.Exercise, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []models.Exercise{}
	for _, e := range s.exercises {
		if filter.Limit > 0 && len(out) >= filter.Limit {
			break
		}
		if filter.Matches(e) {
			out = append(out, e)
		}
	}
	return out, nil
}

// Ping only reports context cancellation.
func (s *MemoryStore) Ping(ctx context.Context) error {
	return ctx.Err()
}

// Close is a no-op.
func (s *MemoryStore) Close() error {
	return nil
}
