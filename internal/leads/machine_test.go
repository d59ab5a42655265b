package leads

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/angelmondragon/weddingplanner-backend/pkg/db/dbtest"
	"github.com/angelmondragon/weddingplanner-backend/pkg/db/models"
	"github.com/angelmondragon/weddingplanner-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/weddingplanner-backend/pkg/errors"
)

func (f *fixture) move(leadID, stageID uuid.UUID) (*models.Lead, error) {
	var lead *models.Lead
	err := f.db.WithTx(context.Background(), func(tx *gorm.DB) error {
		var err error
		lead, err = f.machine.MoveStage(context.Background(), tx, f.companyID, f.principal.UserID, leadID, stageID)
		return err
	})
	return lead, err
}

func (f *fixture) convert(leadID uuid.UUID, overrides ConvertOverrides) (*Conversion, error) {
	var conv *Conversion
	err := f.db.WithTx(context.Background(), func(tx *gorm.DB) error {
		var err error
		conv, err = f.machine.ConvertToClient(context.Background(), tx, f.companyID, f.principal.UserID, leadID, overrides)
		return err
	})
	return conv, err
}

func TestCreateLeadStartsOnFirstActiveStage(t *testing.T) {
	f := newFixture(t)
	f.seed(t)

	lead := f.newLead(t, CreateLeadInput{FirstName: "Ana", Tags: []string{"referral", "summer"}})
	assert.Equal(t, f.stages["New"].ID, lead.StageID)
	assert.Equal(t, enums.LeadStatusNew, lead.Status)
	assert.Equal(t, f.companyID, lead.CompanyID)
	assert.Len(t, f.activities(t, lead.ID, enums.PipelineActivityCreated), 1)

	stored := f.reload(t, lead.ID)
	assert.Equal(t, []string{"referral", "summer"}, []string(stored.Tags))
}

func TestCreateLeadSkipsInactiveStages(t *testing.T) {
	f := newFixture(t)
	f.seed(t)
	f.tx(t, func(tx *gorm.DB) error {
		return f.machine.DeactivateStage(context.Background(), tx, f.companyID, f.stages["New"].ID)
	})

	lead := f.newLead(t, CreateLeadInput{FirstName: "Ana"})
	assert.Equal(t, f.stages["Contacted"].ID, lead.StageID)
}

func TestCreateLeadWithoutPipeline(t *testing.T) {
	f := newFixture(t)

	err := f.db.WithTx(context.Background(), func(tx *gorm.DB) error {
		_, err := f.machine.CreateLead(context.Background(), tx, f.companyID, f.principal.UserID, CreateLeadInput{FirstName: "Ana"})
		return err
	})
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeBadRequest))
	assert.Equal(t, int64(0), dbtest.Count(t, f.db, "leads", ""))
}

func TestMoveStageDerivesStatusFromFlags(t *testing.T) {
	f := newFixture(t)
	f.seed(t)
	lead := f.newLead(t, CreateLeadInput{FirstName: "Ana"})

	moved, err := f.move(lead.ID, f.stages["Qualified"].ID)
	require.NoError(t, err)
	assert.Equal(t, enums.LeadStatusNew, moved.Status, "plain stages leave status alone")

	moved, err = f.move(lead.ID, f.stages["Lost"].ID)
	require.NoError(t, err)
	assert.Equal(t, enums.LeadStatusLost, moved.Status)

	moved, err = f.move(lead.ID, f.stages["Won"].ID)
	require.NoError(t, err)
	assert.Equal(t, enums.LeadStatusWon, moved.Status)

	stored := f.reload(t, lead.ID)
	assert.Equal(t, f.stages["Won"].ID, stored.StageID)
	assert.Equal(t, enums.LeadStatusWon, stored.Status)

	changes := f.activities(t, lead.ID, enums.PipelineActivityStageChanged)
	require.Len(t, changes, 3)
	var first *models.PipelineActivity
	for i := range changes {
		if changes[i].Metadata["newStageId"] == f.stages["Qualified"].ID.String() {
			first = &changes[i]
		}
	}
	require.NotNil(t, first)
	assert.Equal(t, f.stages["New"].ID.String(), first.Metadata["previousStageId"])
}

func TestMoveStageNotFound(t *testing.T) {
	f := newFixture(t)
	f.seed(t)
	lead := f.newLead(t, CreateLeadInput{FirstName: "Ana"})

	_, err := f.move(uuid.New(), f.stages["Won"].ID)
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeNotFound), "missing lead")

	_, err = f.move(lead.ID, uuid.New())
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeNotFound), "missing stage")

	f.tx(t, func(tx *gorm.DB) error {
		return f.machine.DeactivateStage(context.Background(), tx, f.companyID, f.stages["Negotiating"].ID)
	})
	_, err = f.move(lead.ID, f.stages["Negotiating"].ID)
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeNotFound), "inactive stage")

	foreign := models.PipelineStage{CompanyID: uuid.New(), Name: "Elsewhere", Position: 0, IsActive: true}
	require.NoError(t, f.db.DB().Create(&foreign).Error)
	_, err = f.move(lead.ID, foreign.ID)
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeNotFound), "other tenant's stage")

	assert.Empty(t, f.activities(t, lead.ID, enums.PipelineActivityStageChanged))
}

func TestConvertToClientIsAtMostOnce(t *testing.T) {
	f := newFixture(t)
	f.seed(t)
	weddingDate := time.Date(2026, 10, 3, 0, 0, 0, 0, time.UTC)
	lead := f.newLead(t, CreateLeadInput{
		FirstName:        "Ana",
		LastName:         "Ruiz",
		Email:            strPtr("ana@example.com"),
		PartnerFirstName: strPtr("Luis"),
		WeddingDate:      &weddingDate,
		WeddingType:      strPtr("traditional"),
	})

	conv, err := f.convert(lead.ID, ConvertOverrides{})
	require.NoError(t, err)
	client := conv.Client.Client
	assert.Equal(t, "Ana", client.Partner1FirstName)
	assert.Equal(t, "Ruiz", client.Partner1LastName)
	require.NotNil(t, client.Partner2FirstName)
	assert.Equal(t, "Luis", *client.Partner2FirstName)
	assert.Equal(t, "lead", client.Source)
	require.NotNil(t, conv.Client.Event)
	assert.Equal(t, "Ana & Luis's Wedding", conv.Client.Event.Title)

	stored := f.reload(t, lead.ID)
	require.NotNil(t, stored.ConvertedToClientID)
	assert.Equal(t, client.ID, *stored.ConvertedToClientID)
	assert.NotNil(t, stored.ConvertedAt)
	assert.Equal(t, enums.LeadStatusWon, stored.Status)
	assert.Equal(t, f.stages["Won"].ID, stored.StageID)

	converted := f.activities(t, lead.ID, enums.PipelineActivityConverted)
	require.Len(t, converted, 1)
	assert.Equal(t, client.ID.String(), converted[0].Metadata["clientId"])

	_, err = f.convert(lead.ID, ConvertOverrides{})
	require.Error(t, err)
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeBadRequest))
	assert.Equal(t, int64(1), dbtest.Count(t, f.db, "clients", ""))
	assert.Len(t, f.activities(t, lead.ID, enums.PipelineActivityConverted), 1)
}

func TestConvertToClientAppliesOverrides(t *testing.T) {
	f := newFixture(t)
	f.seed(t)
	estimate := decimal.NewFromInt(4000)
	lead := f.newLead(t, CreateLeadInput{FirstName: "Ana", EstimatedBudget: &estimate, WeddingType: strPtr("intimate")})

	total := decimal.NewFromInt(10000)
	conv, err := f.convert(lead.ID, ConvertOverrides{
		Partner1FirstName: strPtr("Ana Maria"),
		WeddingType:       strPtr("traditional"),
		Budget:            &total,
		Vendors:           strPtr("DJ Nova"),
	})
	require.NoError(t, err)

	assert.Equal(t, "Ana Maria", conv.Client.Client.Partner1FirstName)
	assert.Equal(t, "traditional", conv.Client.Client.WeddingType)
	assert.Len(t, conv.Client.Vendors, 1)
	assert.Equal(t, int64(8), dbtest.Count(t, f.db, "budget_items", "client_id = ? AND source = ?", conv.Client.Client.ID, "template"))
	assert.True(t, conv.Client.Client.StatsBudgetEstimated.Equal(total))
}

func TestClientInputForUsesLeadDefaults(t *testing.T) {
	estimate := decimal.NewFromInt(4000)
	guests := 80
	lead := &models.Lead{
		FirstName:       "Ana",
		LastName:        "Ruiz",
		WeddingType:     strPtr("destination"),
		EstimatedBudget: decimal.NullDecimal{Decimal: estimate, Valid: true},
		EstimatedGuests: &guests,
	}

	in := ClientInputFor(lead, ConvertOverrides{})
	assert.Equal(t, "Ana", in.Partner1FirstName)
	assert.Equal(t, "destination", in.WeddingType)
	require.NotNil(t, in.Budget)
	assert.True(t, in.Budget.Equal(estimate))
	assert.Equal(t, &guests, in.GuestCount)

	override := 120
	in = ClientInputFor(lead, ConvertOverrides{GuestCount: &override, Venue: strPtr("Sunset Vineyard")})
	assert.Equal(t, 120, *in.GuestCount)
	assert.Equal(t, "Sunset Vineyard", *in.Venue)
}

func TestConvertWithoutWonStageKeepsStage(t *testing.T) {
	f := newFixture(t)
	f.seed(t)
	require.NoError(t, f.db.DB().Model(&models.PipelineStage{}).Where("id = ?", f.stages["Won"].ID).Update("is_won", false).Error)
	lead := f.newLead(t, CreateLeadInput{FirstName: "Ana"})

	_, err := f.convert(lead.ID, ConvertOverrides{})
	require.NoError(t, err)

	stored := f.reload(t, lead.ID)
	assert.Equal(t, f.stages["New"].ID, stored.StageID)
	assert.Equal(t, enums.LeadStatusWon, stored.Status)
}

func TestConvertPicksLowestPositionedWonStage(t *testing.T) {
	f := newFixture(t)
	f.seed(t)
	early := models.PipelineStage{CompanyID: f.companyID, Name: "Signed", Position: 3, IsWon: true, IsActive: true}
	require.NoError(t, f.db.DB().Create(&early).Error)
	lead := f.newLead(t, CreateLeadInput{FirstName: "Ana"})

	_, err := f.convert(lead.ID, ConvertOverrides{})
	require.NoError(t, err)
	assert.Equal(t, early.ID, f.reload(t, lead.ID).StageID)
}

func TestConvertFailureLeavesLeadUntouched(t *testing.T) {
	f := newFixture(t)
	f.seed(t)
	lead := f.newLead(t, CreateLeadInput{FirstName: "Ana"})

	machine, err := NewMachine(failingCreator{err: pkgerrors.New(pkgerrors.CodeInternal, "recalculate client stats")})
	require.NoError(t, err)
	err = f.db.WithTx(context.Background(), func(tx *gorm.DB) error {
		_, err := machine.ConvertToClient(context.Background(), tx, f.companyID, f.principal.UserID, lead.ID, ConvertOverrides{})
		return err
	})
	require.Error(t, err)
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeInternal))

	stored := f.reload(t, lead.ID)
	assert.Nil(t, stored.ConvertedToClientID)
	assert.Equal(t, enums.LeadStatusNew, stored.Status)
	assert.Empty(t, f.activities(t, lead.ID, enums.PipelineActivityConverted))
}

func TestConvertUnknownLead(t *testing.T) {
	f := newFixture(t)
	f.seed(t)

	_, err := f.convert(uuid.New(), ConvertOverrides{})
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeNotFound))
	assert.Equal(t, int64(0), dbtest.Count(t, f.db, "clients", ""))
}

func TestAddNote(t *testing.T) {
	f := newFixture(t)
	f.seed(t)
	lead := f.newLead(t, CreateLeadInput{FirstName: "Ana"})

	var note *models.PipelineActivity
	f.tx(t, func(tx *gorm.DB) error {
		var err error
		note, err = f.machine.AddNote(context.Background(), tx, f.companyID, f.principal.UserID, lead.ID, "  Prefers a September date ")
		return err
	})
	assert.Equal(t, "Prefers a September date", note.Description)
	require.NotNil(t, note.ActorUserID)
	assert.Equal(t, f.principal.UserID, *note.ActorUserID)

	err := f.db.WithTx(context.Background(), func(tx *gorm.DB) error {
		_, err := f.machine.AddNote(context.Background(), tx, f.companyID, f.principal.UserID, lead.ID, "   ")
		return err
	})
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeValidation))
}

func TestNewMachineRequiresCreator(t *testing.T) {
	_, err := NewMachine(nil)
	assert.Error(t, err)
}
