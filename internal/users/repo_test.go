package users

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/weddingplanner-backend/pkg/db"
	"github.com/angelmondragon/weddingplanner-backend/pkg/db/dbtest"
	"github.com/angelmondragon/weddingplanner-backend/pkg/enums"
)

func TestRepositoryCreateAndFindByExternalID(t *testing.T) {
	client := dbtest.Open(t)
	repo := NewRepository(client.DB())
	ctx := context.Background()
	companyID := uuid.New()

	created, err := repo.Create(ctx, CreateUserDTO{
		ExternalID: "auth0|abc",
		CompanyID:  &companyID,
		Email:      "planner@example.com",
		Role:       enums.RoleCompanyAdmin,
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.True(t, created.IsActive)

	found, err := repo.FindByExternalID(ctx, "auth0|abc")
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)
	require.NotNil(t, found.CompanyID)
	assert.Equal(t, companyID, *found.CompanyID)

	now := time.Now().UTC().Truncate(time.Second)
	require.NoError(t, repo.UpdateLastLogin(ctx, created.ID, now))
	reloaded, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, reloaded.LastLoginAt)
	assert.True(t, reloaded.LastLoginAt.Equal(now))
}

func TestRepositoryRejectsDuplicateExternalID(t *testing.T) {
	client := dbtest.Open(t)
	repo := NewRepository(client.DB())
	ctx := context.Background()

	dto := CreateUserDTO{ExternalID: "auth0|dup", Email: "a@example.com", Role: enums.RoleSuperAdmin}
	_, err := repo.Create(ctx, dto)
	require.NoError(t, err)

	_, err = repo.Create(ctx, dto)
	require.Error(t, err)
	assert.True(t, db.IsUniqueViolation(err, ""))
}
