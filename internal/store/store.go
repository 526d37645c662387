package store

import (
	"errors"

	"github.com/google/uuid"
	"github.com/quipapp/quip-backend/internal/models"
)

// ErrNotFound is returned when a referenced record does not exist. The
// matching engine treats it as a dangling reference and recovers locally.
var ErrNotFound = errors.New("store: record not found")

// Store is the transactional object store the matching engine runs against.
// Reads execute immediately. StageInsert and StageDelete buffer mutations
// until Commit, which applies the whole staged batch atomically: either
// every staged operation lands or none do. The staged batch is dropped
// after the attempt in both cases.
//
// Mutation is expected to be serialized by the caller; implementations do
// not coordinate concurrent staging against the same batch.
type Store interface {
	AllActivities() ([]models.Activity, error)
	ActivityByID(id uuid.UUID) (*models.Activity, error)
	AllSessions() ([]models.GroupSession, error)
	UserByID(id uuid.UUID) (*models.User, error)
	UserByEmail(email string) (*models.User, error)
	RefreshTokenByHash(tokenHash string) (*models.RefreshToken, error)
	InterestsByActivity(activityID uuid.UUID) ([]models.Interest, error)
	InterestByUserAndActivity(userID, activityID uuid.UUID) (*models.Interest, error)

	StageInsert(entity interface{})
	StageDelete(entity interface{})
	Commit() error
}
