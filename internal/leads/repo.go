package leads

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/weddingplanner-backend/internal/repo"
	"github.com/angelmondragon/weddingplanner-backend/pkg/db/models"
)

// Repository handles lead, stage and pipeline activity persistence.
type Repository struct {
	repo.Base
}

// NewRepository binds a GORM DB to pipeline operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// FindLead loads an undeleted lead of companyID.
func (r *Repository) FindLead(ctx context.Context, companyID, leadID uuid.UUID) (*models.Lead, error) {
	var lead models.Lead
	if err := r.Scoped(ctx, companyID).Where("id = ?", leadID).First(&lead).Error; err != nil {
		return nil, err
	}
	return &lead, nil
}

// CreateLead persists a lead row.
func (r *Repository) CreateLead(ctx context.Context, lead *models.Lead) error {
	return r.DB(ctx).Create(lead).Error
}

// UpdateLead applies fields to the lead.
func (r *Repository) UpdateLead(ctx context.Context, lead *models.Lead, fields map[string]any) error {
	return r.DB(ctx).Model(lead).Updates(fields).Error
}

// MarkConverted records the conversion unless the lead was already
// converted; it reports whether this call won.
func (r *Repository) MarkConverted(ctx context.Context, companyID, leadID uuid.UUID, fields map[string]any) (bool, error) {
	res := r.Scoped(ctx, companyID).
		Model(&models.Lead{}).
		Where("id = ? AND converted_to_client_id IS NULL", leadID).
		Updates(fields)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// CountLeadsOnStage counts undeleted leads sitting on stageID.
func (r *Repository) CountLeadsOnStage(ctx context.Context, companyID, stageID uuid.UUID) (int64, error) {
	var count int64
	err := r.Scoped(ctx, companyID).Model(&models.Lead{}).Where("stage_id = ?", stageID).Count(&count).Error
	return count, err
}

// FindActiveStage loads an active stage of companyID.
func (r *Repository) FindActiveStage(ctx context.Context, companyID, stageID uuid.UUID) (*models.PipelineStage, error) {
	var stage models.PipelineStage
	err := r.Scoped(ctx, companyID).Where("id = ? AND is_active = ?", stageID, true).First(&stage).Error
	if err != nil {
		return nil, err
	}
	return &stage, nil
}

// FirstActiveStage returns the lowest-positioned active stage.
func (r *Repository) FirstActiveStage(ctx context.Context, companyID uuid.UUID) (*models.PipelineStage, error) {
	var stage models.PipelineStage
	err := r.Scoped(ctx, companyID).
		Where("is_active = ?", true).
		Order("position ASC").Order("created_at ASC").
		First(&stage).Error
	if err != nil {
		return nil, err
	}
	return &stage, nil
}

// WonStage returns the active isWon stage. When several are flagged the
// lowest position wins.
func (r *Repository) WonStage(ctx context.Context, companyID uuid.UUID) (*models.PipelineStage, error) {
	var stage models.PipelineStage
	err := r.Scoped(ctx, companyID).
		Where("is_won = ? AND is_active = ?", true, true).
		Order("position ASC").Order("created_at ASC").
		First(&stage).Error
	if err != nil {
		return nil, err
	}
	return &stage, nil
}

// ListStages returns every stage of companyID by position.
func (r *Repository) ListStages(ctx context.Context, companyID uuid.UUID) ([]models.PipelineStage, error) {
	var stages []models.PipelineStage
	err := r.Scoped(ctx, companyID).Order("position ASC").Find(&stages).Error
	return stages, err
}

// NextPosition returns one past the highest stage position.
func (r *Repository) NextPosition(ctx context.Context, companyID uuid.UUID) (int, error) {
	var highest *int
	err := r.Scoped(ctx, companyID).Model(&models.PipelineStage{}).Select("MAX(position)").Row().Scan(&highest)
	if err != nil {
		return 0, err
	}
	if highest == nil {
		return 0, nil
	}
	return *highest + 1, nil
}

// CreateStages persists stage rows.
func (r *Repository) CreateStages(ctx context.Context, stages []models.PipelineStage) error {
	return r.DB(ctx).Create(&stages).Error
}

// DeactivateStage flips is_active off.
func (r *Repository) DeactivateStage(ctx context.Context, companyID, stageID uuid.UUID) error {
	return r.Scoped(ctx, companyID).Model(&models.PipelineStage{}).
		Where("id = ?", stageID).
		Update("is_active", false).Error
}

// AppendActivity writes an immutable pipeline activity.
func (r *Repository) AppendActivity(ctx context.Context, activity *models.PipelineActivity) error {
	return r.DB(ctx).Create(activity).Error
}
