package clients

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/weddingplanner-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/weddingplanner-backend/pkg/errors"
)

// cascadeStep deletes the rows of Table owned by a client. Predicate takes the
// client id as its single argument.
type cascadeStep struct {
	Table     string
	Predicate string
}

const (
	byClient    = "client_id = ?"
	byFloorPlan = "floor_plan_id IN (SELECT id FROM floor_plans WHERE client_id = ?)"
	byGuest     = "guest_id IN (SELECT id FROM guests WHERE client_id = ?)"
)

// cascadeOrder lists dependents leaves first.
var cascadeOrder = []cascadeStep{
	{"floor_plan_guests", byFloorPlan},
	{"floor_plan_tables", byFloorPlan},
	{"floor_plans", byClient},
	{"timeline_entries", byClient},
	{"guest_hotels", byGuest},
	{"guest_transports", byGuest},
	{"guest_gifts", byGuest},
	{"guests", byClient},
	{"client_vendors", byClient},
	{"budget_items", byClient},
	{"events", byClient},
	{"documents", byClient},
	{"gifts", byClient},
	{"gift_registry_items", byClient},
	{"messages", byClient},
	{"payments", byClient},
	{"wedding_websites", byClient},
	{"client_activities", byClient},
	{"client_users", byClient},
}

// CascadeTables returns the dependent tables in deletion order.
func CascadeTables() []string {
	out := make([]string, len(cascadeOrder))
	for i, step := range cascadeOrder {
		out[i] = step.Table
	}
	return out
}

// TableCount is the number of rows removed from one table.
type TableCount struct {
	Table string
	Rows  int64
}

// DeleteResult carries per-table counts in deletion order.
type DeleteResult struct {
	ClientID uuid.UUID
	Counts   []TableCount
}

// Total sums the rows removed across all tables.
func (r DeleteResult) Total() int64 {
	var total int64
	for _, c := range r.Counts {
		total += c.Rows
	}
	return total
}

// Rows returns the count recorded for table.
func (r DeleteResult) Rows(table string) int64 {
	for _, c := range r.Counts {
		if c.Table == table {
			return c.Rows
		}
	}
	return 0
}

// Deleter removes a client's dependent graph and soft-deletes the client.
type Deleter struct{}

// NewDeleter returns a Deleter.
func NewDeleter() *Deleter {
	return &Deleter{}
}

// DeleteClient hard-deletes every dependent row in cascade order, then marks
// the client deleted. Any failure is returned so the caller's transaction
// rolls back as a whole.
func (d *Deleter) DeleteClient(ctx context.Context, tx *gorm.DB, clientID, companyID uuid.UUID) (*DeleteResult, error) {
	db := tx.WithContext(ctx)

	var client models.Client
	err := db.Where("id = ? AND company_id = ?", clientID, companyID).First(&client).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "client not found")
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load client")
	}

	res := &DeleteResult{ClientID: clientID, Counts: make([]TableCount, 0, len(cascadeOrder))}
	for _, step := range cascadeOrder {
		stmt := fmt.Sprintf("DELETE FROM %s WHERE company_id = ? AND %s", step.Table, step.Predicate)
		out := db.Exec(stmt, companyID, clientID)
		if out.Error != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, out.Error, "delete "+step.Table)
		}
		res.Counts = append(res.Counts, TableCount{Table: step.Table, Rows: out.RowsAffected})
	}

	if err := db.Delete(&client).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "soft delete client")
	}
	return res, nil
}
