package store

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/quipapp/quip-backend/internal/models"
)

// MemoryStore keeps everything in process memory for local development
// and the engine tests.
type MemoryStore struct {
	mu         sync.RWMutex
	users      map[uuid.UUID]models.User
	activities map[uuid.UUID]models.Activity
	interests  map[uuid.UUID]models.Interest
	sessions   map[uuid.UUID]models.GroupSession
	tokens     map[uuid.UUID]models.RefreshToken
	staged     []stagedOp
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:      make(map[uuid.UUID]models.User),
		activities: make(map[uuid.UUID]models.Activity),
		interests:  make(map[uuid.UUID]models.Interest),
		sessions:   make(map[uuid.UUID]models.GroupSession),
		tokens:     make(map[uuid.UUID]models.RefreshToken),
	}
}

func (s *MemoryStore) AllActivities() ([]models.Activity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	activities := make([]models.Activity, 0, len(s.activities))
	for _, a := range s.activities {
		activities = append(activities, a)
	}
	return activities, nil
}

func (s *MemoryStore) ActivityByID(id uuid.UUID) (*models.Activity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	activity, ok := s.activities[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &activity, nil
}

func (s *MemoryStore) AllSessions() ([]models.GroupSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sessions := make([]models.GroupSession, 0, len(s.sessions))
	for _, sess := range s.sessions {
		sessions = append(sessions, sess)
	}
	return sessions, nil
}

func (s *MemoryStore) UserByID(id uuid.UUID) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &user, nil
}

func (s *MemoryStore) UserByEmail(email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Email == email {
			user := u
			return &user, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) RefreshTokenByHash(tokenHash string) (*models.RefreshToken, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, t := range s.tokens {
		if t.TokenHash == tokenHash {
			token := t
			return &token, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) InterestsByActivity(activityID uuid.UUID) ([]models.Interest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var interests []models.Interest
	for _, in := range s.interests {
		if in.ActivityID != nil && *in.ActivityID == activityID {
			interests = append(interests, in)
		}
	}
	return interests, nil
}

func (s *MemoryStore) InterestByUserAndActivity(userID, activityID uuid.UUID) (*models.Interest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, in := range s.interests {
		if in.UserID != nil && *in.UserID == userID &&
			in.ActivityID != nil && *in.ActivityID == activityID {
			interest := in
			return &interest, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) StageInsert(entity interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.staged = append(s.staged, stagedOp{entity: entity})
}

func (s *MemoryStore) StageDelete(entity interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.staged = append(s.staged, stagedOp{delete: true, entity: entity})
}

func (s *MemoryStore) Commit() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	staged := s.staged
	s.staged = nil

	// Reject the whole batch before touching state so a bad op cannot
	// leave a partial commit behind.
	for _, op := range staged {
		switch op.entity.(type) {
		case *models.User, *models.Activity, *models.Interest,
			*models.GroupSession, *models.RefreshToken:
		default:
			return fmt.Errorf("memory store: unsupported entity %T", op.entity)
		}
	}

	for _, op := range staged {
		switch e := op.entity.(type) {
		case *models.User:
			if op.delete {
				delete(s.users, e.ID)
			} else {
				s.users[e.ID] = *e
			}
		case *models.Activity:
			if op.delete {
				delete(s.activities, e.ID)
				for id, in := range s.interests {
					if in.ActivityID != nil && *in.ActivityID == e.ID {
						delete(s.interests, id)
					}
				}
			} else {
				s.activities[e.ID] = *e
			}
		case *models.Interest:
			if op.delete {
				delete(s.interests, e.ID)
			} else {
				s.interests[e.ID] = *e
			}
		case *models.GroupSession:
			if op.delete {
				delete(s.sessions, e.ID)
			} else {
				s.sessions[e.ID] = *e
			}
		case *models.RefreshToken:
			if op.delete {
				delete(s.tokens, e.ID)
			} else {
				s.tokens[e.ID] = *e
			}
		}
	}
	return nil
}
