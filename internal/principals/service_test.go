package principals

import (
	"context"
	"io"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/angelmondragon/weddingplanner-backend/pkg/db"
	"github.com/angelmondragon/weddingplanner-backend/pkg/db/dbtest"
	pkgerrors "github.com/angelmondragon/weddingplanner-backend/pkg/errors"
	"github.com/angelmondragon/weddingplanner-backend/pkg/logger"
)

type txScope struct {
	client *db.Client
	calls  int
}

func (s *txScope) WithSystemScope(ctx context.Context, fn func(ctx context.Context, tx *gorm.DB) error) error {
	s.calls++
	return s.client.WithTx(ctx, func(tx *gorm.DB) error { return fn(ctx, tx) })
}

func TestServiceResolveRunsInSystemScope(t *testing.T) {
	client := dbtest.Open(t)
	resolver, _ := newTestResolver(t, defaultTenancy())
	scope := &txScope{client: client}

	svc, err := NewService(scope, resolver, logger.New(logger.Options{Output: io.Discard}))
	require.NoError(t, err)

	res, err := svc.Resolve(context.Background(), Identity{ExternalID: "auth0|svc", Email: "svc@example.com"})
	require.NoError(t, err)
	assert.Equal(t, 1, scope.calls)
	assert.True(t, res.Principal().HasCompany())
	assert.NoError(t, res.Principal().Validate())
}

func TestNewServiceRequiresDependencies(t *testing.T) {
	_, err := NewService(nil, nil, nil)
	assert.Error(t, err)
}

func TestServiceDescribeLoadsUserAndCompany(t *testing.T) {
	client := dbtest.Open(t)
	resolver, _ := newTestResolver(t, defaultTenancy())
	scope := &txScope{client: client}
	svc, err := NewService(scope, resolver, logger.New(logger.Options{Output: io.Discard}))
	require.NoError(t, err)

	res, err := svc.Resolve(context.Background(), Identity{ExternalID: "auth0|cleo", Email: "cleo@example.com", FirstName: "Cleo"})
	require.NoError(t, err)

	profile, err := svc.Describe(context.Background(), res.UserID)
	require.NoError(t, err)
	assert.Equal(t, "cleo@example.com", profile.User.Email)
	require.NotNil(t, profile.Company)
	assert.Equal(t, *res.CompanyID, profile.Company.ID)
	assert.Equal(t, "Cleo's Studio", profile.Company.Name)

	_, err = svc.Describe(context.Background(), uuid.New())
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeNotFound))
}
