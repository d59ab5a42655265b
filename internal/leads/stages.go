package leads

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/weddingplanner-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/weddingplanner-backend/pkg/errors"
)

type stageTemplate struct {
	Name   string
	Color  string
	IsWon  bool
	IsLost bool
}

var defaultStages = []stageTemplate{
	{Name: "New", Color: "#6366F1"},
	{Name: "Contacted", Color: "#0EA5E9"},
	{Name: "Qualified", Color: "#14B8A6"},
	{Name: "Proposal Sent", Color: "#F59E0B"},
	{Name: "Negotiating", Color: "#F97316"},
	{Name: "Won", Color: "#22C55E", IsWon: true},
	{Name: "Lost", Color: "#EF4444", IsLost: true},
}

// DefaultStageNames lists the seeded pipeline in order.
func DefaultStageNames() []string {
	out := make([]string, len(defaultStages))
	for i, s := range defaultStages {
		out[i] = s.Name
	}
	return out
}

// Seeder writes the default pipeline for a company.
type Seeder struct{}

// SeedDefaultStages creates the default stages when companyID has none.
func (Seeder) SeedDefaultStages(ctx context.Context, tx *gorm.DB, companyID uuid.UUID) error {
	_, err := seedDefaultStages(ctx, NewRepository(tx), companyID)
	return err
}

func seedDefaultStages(ctx context.Context, repo *Repository, companyID uuid.UUID) ([]models.PipelineStage, error) {
	existing, err := repo.ListStages(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		return nil, nil
	}

	stages := make([]models.PipelineStage, 0, len(defaultStages))
	for i, tpl := range defaultStages {
		color := tpl.Color
		stages = append(stages, models.PipelineStage{
			CompanyID: companyID,
			Name:      tpl.Name,
			Position:  i,
			Color:     &color,
			IsWon:     tpl.IsWon,
			IsLost:    tpl.IsLost,
			IsActive:  true,
		})
	}
	if err := repo.CreateStages(ctx, stages); err != nil {
		return nil, err
	}
	return stages, nil
}

// CreateStage appends a stage, at the end of the pipeline unless a position
// is given.
func (m *Machine) CreateStage(ctx context.Context, tx *gorm.DB, companyID uuid.UUID, input CreateStageInput) (*models.PipelineStage, error) {
	if input.IsWon && input.IsLost {
		return nil, pkgerrors.New(pkgerrors.CodeBadRequest, "a stage cannot be both won and lost")
	}
	repo := NewRepository(tx)

	position := 0
	if input.Position != nil {
		position = *input.Position
	} else {
		next, err := repo.NextPosition(ctx, companyID)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "resolve stage position")
		}
		position = next
	}

	stages := []models.PipelineStage{{
		CompanyID: companyID,
		Name:      strings.TrimSpace(input.Name),
		Position:  position,
		Color:     input.Color,
		IsWon:     input.IsWon,
		IsLost:    input.IsLost,
		IsActive:  true,
	}}
	if err := repo.CreateStages(ctx, stages); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create stage")
	}
	return &stages[0], nil
}

// DeactivateStage retires a stage. A stage still holding leads stays active.
func (m *Machine) DeactivateStage(ctx context.Context, tx *gorm.DB, companyID, stageID uuid.UUID) error {
	repo := NewRepository(tx)

	if _, err := repo.FindActiveStage(ctx, companyID, stageID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "stage not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load stage")
	}

	count, err := repo.CountLeadsOnStage(ctx, companyID, stageID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "count stage leads")
	}
	if count > 0 {
		return pkgerrors.New(pkgerrors.CodeBadRequest, "stage still has leads").
			WithDetails(map[string]any{"leads": count})
	}

	if err := repo.DeactivateStage(ctx, companyID, stageID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "deactivate stage")
	}
	return nil
}
