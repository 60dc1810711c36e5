package gormstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/isdelr/exercise-tracker-be/internal/models"
	"github.com/isdelr/exercise-tracker-be/internal/store"
	"gorm.io/gorm"
)

type userRecord struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)"`
	Username  string    `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null"`
}

func (userRecord) TableName() string {
	return "users"
}

type exerciseRecord struct {
	ID          string    `gorm:"primaryKey;type:varchar(36)"`
	UserID      string    `gorm:"not null;type:varchar(36);index:idx_exercises_user_date"`
	Description string    `gorm:"not null;type:text"`
	Duration    int       `gorm:"not null"`
	Date        time.Time `gorm:"not null;type:date;index:idx_exercises_user_date"`
	CreatedAt   time.Time `gorm:"not null"`
}

func (exerciseRecord) TableName() string {
	return "exercises"
}

func (r exerciseRecord) toModel() models.Exercise {
	return models.Exercise{
		ID:          r.ID,
		UserID:      r.UserID,
		Description: r.Description,
		Duration:    r.Duration,
		Date:        models.CalendarDate(r.Date),
	}
}

// Migrate creates or updates the tables used by GormStore.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&userRecord{}, &exerciseRecord{})
}

// GormStore implements store.Store with gorm, targeting Postgres.
type GormStore struct {
	db *gorm.DB
}

// New creates a new GormStore.
func New(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// InsertUser stores a new user and assigns its ID.
func (s *GormStore) InsertUser(ctx context.Context, user *models.User) error {
	rec := userRecord{ID: uuid.New().String(), Username: user.Username}
	if err := s.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	user.ID = rec.ID
	return nil
}

// ListUsers returns every user, selecting only id and username.
func (s *GormStore) ListUsers(ctx context.Context) ([]models.User, error) {
	var recs []userRecord
	if err := s.db.WithContext(ctx).Select("id", "username").Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	users := make([]models.User, 0, len(recs))
	for _, rec := range recs {
		users = append(users, models.User{ID: rec.ID, Username: rec.Username})
	}
	return users, nil
}

// FindUserByID retrieves a single user by their ID.
func (s *GormStore) FindUserByID(ctx context.Context, id string) (models.User, error) {
	var rec userRecord
	err := s.db.WithContext(ctx).Where("id = ?", id).Take(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, store.ErrNotFound
		}
		return models.User{}, fmt.Errorf("find user %s: %w", id, err)
	}
	return models.User{ID: rec.ID, Username: rec.Username}, nil
}

// InsertExercise stores a new exercise entry and assigns its ID.
func (s *GormStore) InsertExercise(ctx context.Context, exercise *models.Exercise) error {
	rec := exerciseRecord{
		ID:          uuid.New().String(),
		UserID:      exercise.UserID,
		Description: exercise.Description,
		Duration:    exercise.Duration,
		Date:        models.CalendarDate(exercise.Date),
	}
	if err := s.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return fmt.Errorf("insert exercise: %w", err)
	}
	exercise.ID = rec.ID
	return nil
}

// FindExercises returns the exercises matching filter in table order.
func (s *GormStore) FindExercises(ctx context.Context, filter models.ExerciseFilter) ([]models.Exercise, error) {
	q := s.db.WithContext(ctx).Where("user_id = ?", filter.UserID)
	if filter.From != nil {
		q = q.Where("date >= ?", models.CalendarDate(*filter.From))
	}
	if filter.To != nil {
		q = q.Where("date <= ?", models.CalendarDate(*filter.To))
	}
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}

	var recs []exerciseRecord
	if err := q.Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("find exercises: %w", err)
	}
	exercises := make([]models.Exercise, 0, len(recs))
	for _, rec := range recs {
		exercises = append(exercises, rec.toModel())
	}
	return exercises, nil
}

// Ping verifies the database is reachable.
func (s *GormStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close closes the underlying connection pool.
func (s *GormStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
