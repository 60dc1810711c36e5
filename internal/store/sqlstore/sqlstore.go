package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/isdelr/exercise-tracker-be/internal/models"
	"github.com/isdelr/exercise-tracker-be/internal/store"
)

// SQLStore implements store.Store on top of a database/sql connection pool
// using the schema created by database.Migrate.
type SQLStore struct {
	db *sql.DB
}

// New creates a new SQLStore. The store takes ownership of db.
func New(db *sql.DB) *SQLStore {
	return &SQLStore{db: db}
}

// InsertUser stores a new user and assigns its ID.
func (s *SQLStore) InsertUser(ctx context.Context, user *models.User) error {
	id := uuid.New().String()
	_, err := s.db.ExecContext(ctx, "INSERT INTO users (id, username) VALUES (?, ?)", id, user.Username)
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	user.ID = id
	return nil
}

// ListUsers returns every user in table order.
func (s *SQLStore) ListUsers(ctx context.Context) ([]models.User, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, username FROM users")
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		var user models.User
		if err := rows.Scan(&user.ID, &user.Username); err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

// FindUserByID retrieves a single user by their ID.
func (s *SQLStore) FindUserByID(ctx context.Context, id string) (models.User, error) {
	var user models.User
	row := s.db.QueryRowContext(ctx, "SELECT id, username FROM users WHERE id = ?", id)
	if err := row.Scan(&user.ID, &user.Username); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, store.ErrNotFound
		}
		return models.User{}, fmt.Errorf("find user %s: %w", id, err)
	}
	return user, nil
}

// InsertExercise stores a new exercise entry and assigns its ID.
func (s *SQLStore) InsertExercise(ctx context.Context, exercise *models.Exercise) error {
	id := uuid.New().String()
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO exercises (id, user_id, description, duration, date) VALUES (?, ?, ?, ?, ?)",
		id, exercise.UserID, exercise.Description, exercise.Duration, formatDate(exercise.Date))
	if err != nil {
		return fmt.Errorf("insert exercise: %w", err)
	}
	exercise.ID = id
	return nil
}

// FindExercises returns the exercises matching filter in table order.
func (s *SQLStore) FindExercises(ctx context.Context, filter models.ExerciseFilter) ([]models.Exercise, error) {
	var query strings.Builder
	query.WriteString("SELECT id, user_id, description, duration, date FROM exercises WHERE user_id = ?")
	args := []any{filter.UserID}
	if filter.From != nil {
		query.WriteString(" AND date >= ?")
		args = append(args, formatDate(*filter.From))
	}
	if filter.To != nil {
		query.WriteString(" AND date <= ?")
		args = append(args, formatDate(*filter.To))
	}
	if filter.Limit > 0 {
		query.WriteString(" LIMIT ?")
		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("find exercises: %w", err)
	}
	defer rows.Close()

	exercises := []models.Exercise{}
	for rows.Next() {
		var (
			e    models.Exercise
			date string
		)
		if err := rows.Scan(&e.ID, &e.UserID, &e.Description, &e.Duration, &date); err != nil {
			return nil, err
		}
		if e.Date, err = time.Parse(time.DateOnly, date); err != nil {
			return nil, fmt.Errorf("exercise %s has malformed date %q: %w", e.ID, date, err)
		}
		exercises = append(exercises, e)
	}
	return exercises, rows.Err()
}

// Ping verifies the database is reachable.
func (s *SQLStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the underlying connection pool.
func (s *SQLStore) Close() error {
	return s.db.Close()
}

func formatDate(t time.Time) string {
	return t.UTC().Format(time.DateOnly)
}
