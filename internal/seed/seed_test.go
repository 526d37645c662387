package seed

import (
	"testing"

	"github.com/quipapp/quip-backend/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActivitiesSeedsFullCatalog(t *testing.T) {
	st := store.NewMemoryStore()
	require.NoError(t, Activities(st))

	activities, err := st.AllActivities()
	require.NoError(t, err)
	require.Len(t, activities, len(catalog))

	for _, a := range activities {
		assert.NotEmpty(t, a.Name)
		assert.NotEmpty(t, a.Icon)
		assert.NotEmpty(t, a.Color)
		assert.GreaterOrEqual(t, a.MinParticipants, 2)
	}
}

func TestActivitiesIsIdempotent(t *testing.T) {
	st := store.NewMemoryStore()
	require.NoError(t, Activities(st))
	require.NoError(t, Activities(st))

	activities, err := st.AllActivities()
	require.NoError(t, err)
	assert.Len(t, activities, len(catalog))
}
