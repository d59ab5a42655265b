// Package leads implements the sales pipeline: stage moves, notes and the
// one-way conversion of a lead into a client.
package leads

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/weddingplanner-backend/internal/clients"
	"github.com/angelmondragon/weddingplanner-backend/pkg/db/models"
	"github.com/angelmondragon/weddingplanner-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/weddingplanner-backend/pkg/errors"
)

type clientCreator interface {
	CreateClient(ctx context.Context, tx *gorm.DB, companyID, creatorUserID uuid.UUID, input clients.CreateClientInput) (*clients.CreateResult, error)
}

// Conversion is the outcome of ConvertToClient.
type Conversion struct {
	Lead   models.Lead
	Client *clients.CreateResult
}

// Machine applies pipeline transitions inside the caller's transaction.
type Machine struct {
	creator clientCreator
	now     func() time.Time
}

// NewMachine wires the machine to the client orchestrator used for conversion.
func NewMachine(creator clientCreator) (*Machine, error) {
	if creator == nil {
		return nil, errors.New("client creator required")
	}
	return &Machine{creator: creator, now: time.Now}, nil
}

// CreateLead opens a lead on the first active stage with status new.
func (m *Machine) CreateLead(ctx context.Context, tx *gorm.DB, companyID, actorID uuid.UUID, input CreateLeadInput) (*models.Lead, error) {
	repo := NewRepository(tx)

	stage, err := repo.FirstActiveStage(ctx, companyID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.New(pkgerrors.CodeBadRequest, "pipeline has no active stage")
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load first stage")
	}

	lead := input.ToModel()
	lead.CompanyID = companyID
	lead.StageID = stage.ID
	lead.Status = enums.LeadStatusNew
	lead.CreatedBy = actorID
	if err := repo.CreateLead(ctx, lead); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create lead")
	}

	if err := m.appendActivity(ctx, repo, lead, actorID, enums.PipelineActivityCreated, "Lead created", map[string]any{
		"stageId": stage.ID.String(),
	}); err != nil {
		return nil, err
	}
	return lead, nil
}

// MoveStage puts the lead on stageID. A won or lost stage sets the matching
// status; other stages leave the status alone.
func (m *Machine) MoveStage(ctx context.Context, tx *gorm.DB, companyID, actorID, leadID, stageID uuid.UUID) (*models.Lead, error) {
	repo := NewRepository(tx)

	lead, err := m.loadLead(ctx, repo, companyID, leadID)
	if err != nil {
		return nil, err
	}
	stage, err := repo.FindActiveStage(ctx, companyID, stageID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "stage not found")
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load stage")
	}

	previous := lead.StageID
	status := lead.Status
	switch {
	case stage.IsWon:
		status = enums.LeadStatusWon
	case stage.IsLost:
		status = enums.LeadStatusLost
	}

	if err := repo.UpdateLead(ctx, lead, map[string]any{"stage_id": stage.ID, "status": status}); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "move lead")
	}
	lead.StageID = stage.ID
	lead.Status = status

	if err := m.appendActivity(ctx, repo, lead, actorID, enums.PipelineActivityStageChanged, "Moved to "+stage.Name, map[string]any{
		"previousStageId": previous.String(),
		"newStageId":      stage.ID.String(),
	}); err != nil {
		return nil, err
	}
	return lead, nil
}

// ConvertToClient turns the lead into a client exactly once. The client is
// built from the lead's fields with overrides applied, and the lead is marked
// won and moved to the won stage when the tenant has one. Everything happens
// in tx, so a failed conversion leaves neither a client nor a converted lead.
func (m *Machine) ConvertToClient(ctx context.Context, tx *gorm.DB, companyID, actorID, leadID uuid.UUID, overrides ConvertOverrides) (*Conversion, error) {
	repo := NewRepository(tx)

	lead, err := m.loadLead(ctx, repo, companyID, leadID)
	if err != nil {
		return nil, err
	}
	if lead.ConvertedToClientID != nil {
		return nil, alreadyConverted(*lead.ConvertedToClientID)
	}

	created, err := m.creator.CreateClient(ctx, tx, companyID, actorID, ClientInputFor(lead, overrides))
	if err != nil {
		return nil, err
	}
	clientID := created.Client.ID

	convertedAt := m.now().UTC()
	fields := map[string]any{
		"converted_to_client_id": clientID,
		"converted_at":           convertedAt,
		"status":                 enums.LeadStatusWon,
	}
	previous := lead.StageID
	won, err := repo.WonStage(ctx, companyID)
	switch {
	case err == nil:
		fields["stage_id"] = won.ID
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load won stage")
	}

	// The guarded update loses to a concurrent conversion that committed first.
	ok, err := repo.MarkConverted(ctx, companyID, leadID, fields)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mark lead converted")
	}
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeBadRequest, "lead already converted")
	}

	lead.ConvertedToClientID = &clientID
	lead.ConvertedAt = &convertedAt
	lead.Status = enums.LeadStatusWon
	if won != nil {
		lead.StageID = won.ID
	}

	if err := m.appendActivity(ctx, repo, lead, actorID, enums.PipelineActivityConverted, "Converted to client", map[string]any{
		"clientId":        clientID.String(),
		"previousStageId": previous.String(),
		"newStageId":      lead.StageID.String(),
	}); err != nil {
		return nil, err
	}
	return &Conversion{Lead: *lead, Client: created}, nil
}

// AddNote appends a note activity to the lead.
func (m *Machine) AddNote(ctx context.Context, tx *gorm.DB, companyID, actorID, leadID uuid.UUID, note string) (*models.PipelineActivity, error) {
	note = strings.TrimSpace(note)
	if note == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "note is required").
			WithDetails(map[string]string{"note": "is required"})
	}
	repo := NewRepository(tx)

	lead, err := m.loadLead(ctx, repo, companyID, leadID)
	if err != nil {
		return nil, err
	}
	activity := newActivity(lead, actorID, enums.PipelineActivityNote, note, nil)
	if err := repo.AppendActivity(ctx, activity); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "append note")
	}
	return activity, nil
}

// SeedDefaultStages writes the default pipeline if the company has no stages.
func (m *Machine) SeedDefaultStages(ctx context.Context, tx *gorm.DB, companyID uuid.UUID) ([]models.PipelineStage, error) {
	stages, err := seedDefaultStages(ctx, NewRepository(tx), companyID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "seed pipeline stages")
	}
	return stages, nil
}

func (m *Machine) loadLead(ctx context.Context, repo *Repository, companyID, leadID uuid.UUID) (*models.Lead, error) {
	lead, err := repo.FindLead(ctx, companyID, leadID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "lead not found")
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load lead")
	}
	return lead, nil
}

func (m *Machine) appendActivity(ctx context.Context, repo *Repository, lead *models.Lead, actorID uuid.UUID, kind enums.PipelineActivityType, description string, metadata map[string]any) error {
	if err := repo.AppendActivity(ctx, newActivity(lead, actorID, kind, description, metadata)); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "append pipeline activity")
	}
	return nil
}

func newActivity(lead *models.Lead, actorID uuid.UUID, kind enums.PipelineActivityType, description string, metadata map[string]any) *models.PipelineActivity {
	activity := &models.PipelineActivity{
		CompanyID:   lead.CompanyID,
		LeadID:      lead.ID,
		Type:        kind,
		Description: description,
		Metadata:    metadata,
	}
	if actorID != uuid.Nil {
		activity.ActorUserID = &actorID
	}
	return activity
}

func alreadyConverted(clientID uuid.UUID) error {
	return pkgerrors.New(pkgerrors.CodeBadRequest, "lead already converted").
		WithDetails(map[string]any{"clientId": clientID.String()})
}
