package companies

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/weddingplanner-backend/pkg/db/dbtest"
	"github.com/angelmondragon/weddingplanner-backend/pkg/enums"
)

func TestRepositoryCreateDefaultsToTrialing(t *testing.T) {
	client := dbtest.Open(t)
	repo := NewRepository(client.DB())
	ctx := context.Background()

	company, err := repo.Create(ctx, CreateCompanyDTO{Name: "Ana's Studio", Subdomain: "anas-studio-1a2b"})
	require.NoError(t, err)
	assert.Equal(t, enums.SubscriptionStatusTrialing, company.SubscriptionStatus)

	exists, err := repo.Exists(ctx, company.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.Exists(ctx, uuid.New())
	require.NoError(t, err)
	assert.False(t, exists)

	taken, err := repo.SubdomainTaken(ctx, "anas-studio-1a2b")
	require.NoError(t, err)
	assert.True(t, taken)

	loaded, err := repo.FindByID(ctx, company.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ana's Studio", FromModel(loaded).Name)
}
