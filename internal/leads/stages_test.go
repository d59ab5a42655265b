package leads

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/angelmondragon/weddingplanner-backend/pkg/db/dbtest"
	"github.com/angelmondragon/weddingplanner-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/weddingplanner-backend/pkg/errors"
)

// Seeder plugs into first-login provisioning.
var _ interface {
	SeedDefaultStages(ctx context.Context, tx *gorm.DB, companyID uuid.UUID) error
} = Seeder{}

func TestSeedDefaultStagesWritesOrderedPipelineOnce(t *testing.T) {
	f := newFixture(t)
	f.seed(t)

	var stages []models.PipelineStage
	require.NoError(t, f.db.DB().Where("company_id = ?", f.companyID).Order("position ASC").Find(&stages).Error)
	require.Len(t, stages, 7)

	names := make([]string, len(stages))
	for i, s := range stages {
		names[i] = s.Name
		assert.True(t, s.IsActive, s.Name)
		assert.Equal(t, i, s.Position)
	}
	assert.Equal(t, DefaultStageNames(), names)
	assert.True(t, f.stages["Won"].IsWon)
	assert.True(t, f.stages["Lost"].IsLost)
	assert.False(t, f.stages["Qualified"].IsWon || f.stages["Qualified"].IsLost)

	f.seed(t)
	assert.Equal(t, int64(7), dbtest.Count(t, f.db, "pipeline_stages", "company_id = ?", f.companyID))
}

func TestDeactivateStageWithLeadsIsRejected(t *testing.T) {
	f := newFixture(t)
	f.seed(t)
	f.newLead(t, CreateLeadInput{FirstName: "Ana"})
	stageID := f.stages["New"].ID

	err := f.db.WithTx(context.Background(), func(tx *gorm.DB) error {
		return f.machine.DeactivateStage(context.Background(), tx, f.companyID, stageID)
	})
	require.Error(t, err)
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeBadRequest))

	var stage models.PipelineStage
	require.NoError(t, f.db.DB().First(&stage, "id = ?", stageID).Error)
	assert.True(t, stage.IsActive)
}

func TestDeactivateEmptyStageSucceeds(t *testing.T) {
	f := newFixture(t)
	f.seed(t)
	stageID := f.stages["Negotiating"].ID

	f.tx(t, func(tx *gorm.DB) error {
		return f.machine.DeactivateStage(context.Background(), tx, f.companyID, stageID)
	})

	var stage models.PipelineStage
	require.NoError(t, f.db.DB().First(&stage, "id = ?", stageID).Error)
	assert.False(t, stage.IsActive)

	// A retired stage cannot be retired again.
	err := f.db.WithTx(context.Background(), func(tx *gorm.DB) error {
		return f.machine.DeactivateStage(context.Background(), tx, f.companyID, stageID)
	})
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeNotFound))
}

func TestDeactivateStageIgnoresDeletedLeads(t *testing.T) {
	f := newFixture(t)
	f.seed(t)
	lead := f.newLead(t, CreateLeadInput{FirstName: "Ana"})
	require.NoError(t, f.db.DB().Delete(&models.Lead{}, "id = ?", lead.ID).Error)

	f.tx(t, func(tx *gorm.DB) error {
		return f.machine.DeactivateStage(context.Background(), tx, f.companyID, f.stages["New"].ID)
	})
}

func TestDeactivateStageOfAnotherTenant(t *testing.T) {
	f := newFixture(t)
	f.seed(t)

	err := f.db.WithTx(context.Background(), func(tx *gorm.DB) error {
		return f.machine.DeactivateStage(context.Background(), tx, uuid.New(), f.stages["New"].ID)
	})
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeNotFound))
}

func TestCreateStageAppendsToPipeline(t *testing.T) {
	f := newFixture(t)
	f.seed(t)

	var stage *models.PipelineStage
	f.tx(t, func(tx *gorm.DB) error {
		var err error
		stage, err = f.machine.CreateStage(context.Background(), tx, f.companyID, CreateStageInput{Name: " Tasting booked ", Color: strPtr("#000000")})
		return err
	})
	assert.Equal(t, "Tasting booked", stage.Name)
	assert.Equal(t, 7, stage.Position)
	assert.True(t, stage.IsActive)

	err := f.db.WithTx(context.Background(), func(tx *gorm.DB) error {
		_, err := f.machine.CreateStage(context.Background(), tx, f.companyID, CreateStageInput{Name: "Limbo", IsWon: true, IsLost: true})
		return err
	})
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeBadRequest))
}

func TestCreateStageOnEmptyPipelineStartsAtZero(t *testing.T) {
	f := newFixture(t)

	var stage *models.PipelineStage
	f.tx(t, func(tx *gorm.DB) error {
		var err error
		stage, err = f.machine.CreateStage(context.Background(), tx, f.companyID, CreateStageInput{Name: "Inbox"})
		return err
	})
	assert.Equal(t, 0, stage.Position)
}
