package store

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/quipapp/quip-backend/internal/models"
	"gorm.io/gorm"
)

type stagedOp struct {
	delete bool
	entity interface{}
}

// GormStore backs the Store contract with PostgreSQL through GORM. Staged
// operations are replayed inside a single gorm transaction on Commit.
type GormStore struct {
	db     *gorm.DB
	staged []stagedOp
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) AllActivities() ([]models.Activity, error) {
	var activities []models.Activity
	if err := s.db.Order("name ASC").Find(&activities).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch activities: %w", err)
	}
	return activities, nil
}

func (s *GormStore) ActivityByID(id uuid.UUID) (*models.Activity, error) {
	var activity models.Activity
	err := s.db.First(&activity, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch activity: %w", err)
	}
	return &activity, nil
}

func (s *GormStore) AllSessions() ([]models.GroupSession, error) {
	var sessions []models.GroupSession
	if err := s.db.Order("scheduled_time ASC").Find(&sessions).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch sessions: %w", err)
	}
	return sessions, nil
}

func (s *GormStore) UserByID(id uuid.UUID) (*models.User, error) {
	var user models.User
	err := s.db.First(&user, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}
	return &user, nil
}

func (s *GormStore) UserByEmail(email string) (*models.User, error) {
	var user models.User
	err := s.db.Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user by email: %w", err)
	}
	return &user, nil
}

func (s *GormStore) RefreshTokenByHash(tokenHash string) (*models.RefreshToken, error) {
	var token models.RefreshToken
	err := s.db.Where("token_hash = ?", tokenHash).First(&token).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch refresh token: %w", err)
	}
	return &token, nil
}

func (s *GormStore) InterestsByActivity(activityID uuid.UUID) ([]models.Interest, error) {
	var interests []models.Interest
	if err := s.db.Where("activity_id = ?", activityID).Find(&interests).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch interests: %w", err)
	}
	return interests, nil
}

func (s *GormStore) InterestByUserAndActivity(userID, activityID uuid.UUID) (*models.Interest, error) {
	var interest models.Interest
	err := s.db.Where("user_id = ? AND activity_id = ?", userID, activityID).First(&interest).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch interest: %w", err)
	}
	return &interest, nil
}

func (s *GormStore) StageInsert(entity interface{}) {
	s.staged = append(s.staged, stagedOp{entity: entity})
}

func (s *GormStore) StageDelete(entity interface{}) {
	s.staged = append(s.staged, stagedOp{delete: true, entity: entity})
}

func (s *GormStore) Commit() error {
	staged := s.staged
	s.staged = nil
	if len(staged) == 0 {
		return nil
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		for _, op := range staged {
			if op.delete {
				if err := tx.Delete(op.entity).Error; err != nil {
					return err
				}
				continue
			}
			if err := tx.Create(op.entity).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("commit failed (%d staged ops): %w", len(staged), err)
	}
	return nil
}
