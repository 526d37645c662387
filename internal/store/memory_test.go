package store

import (
	"testing"

	"github.com/google/uuid"
	"github.com/quipapp/quip-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreNotFound(t *testing.T) {
	st := NewMemoryStore()

	_, err := st.UserByID(uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = st.ActivityByID(uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = st.InterestByUserAndActivity(uuid.New(), uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = st.UserByEmail("nobody@example.com")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = st.RefreshTokenByHash("deadbeef")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreCommitAppliesBatch(t *testing.T) {
	st := NewMemoryStore()
	user := models.User{ID: uuid.New(), Name: "Alice", Email: "alice@example.com"}
	activity := models.Activity{ID: uuid.New(), Name: "Chess", MinParticipants: 2}

	st.StageInsert(&user)
	st.StageInsert(&activity)
	st.StageInsert(models.NewInterest(user.ID, activity.ID))
	require.NoError(t, st.Commit())

	got, err := st.UserByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice", got.Name)

	interests, err := st.InterestsByActivity(activity.ID)
	require.NoError(t, err)
	assert.Len(t, interests, 1)
}

func TestMemoryStoreCommitIsAllOrNothing(t *testing.T) {
	st := NewMemoryStore()
	user := models.User{ID: uuid.New(), Name: "Alice", Email: "alice@example.com"}

	st.StageInsert(&user)
	st.StageInsert("not an entity")
	require.Error(t, st.Commit())

	_, err := st.UserByID(user.ID)
	assert.ErrorIs(t, err, ErrNotFound, "a rejected batch must apply nothing")
}

func TestMemoryStoreDelete(t *testing.T) {
	st := NewMemoryStore()
	user := models.User{ID: uuid.New(), Name: "Alice", Email: "alice@example.com"}
	activity := models.Activity{ID: uuid.New(), Name: "Chess", MinParticipants: 2}
	interest := models.NewInterest(user.ID, activity.ID)

	st.StageInsert(&user)
	st.StageInsert(&activity)
	st.StageInsert(interest)
	require.NoError(t, st.Commit())

	st.StageDelete(interest)
	require.NoError(t, st.Commit())

	interests, err := st.InterestsByActivity(activity.ID)
	require.NoError(t, err)
	assert.Empty(t, interests)
}

func TestMemoryStoreCommitClearsStagedBatch(t *testing.T) {
	st := NewMemoryStore()
	user := models.User{ID: uuid.New(), Name: "Alice", Email: "alice@example.com"}

	st.StageInsert(&user)
	require.NoError(t, st.Commit())

	// Nothing left to replay
	st.StageDelete(&user)
	require.NoError(t, st.Commit())
	require.NoError(t, st.Commit())

	_, err := st.UserByID(user.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
