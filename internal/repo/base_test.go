package repo

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/angelmondragon/weddingplanner-backend/pkg/db/dbtest"
)

func TestNewBaseStoresConnection(t *testing.T) {
	db := dbtest.Open(t).DB()
	base := NewBase(db)

	if base.db != db {
		t.Fatalf("expected base db to match provided connection")
	}
}

func TestBaseDB_BindsContext(t *testing.T) {
	db := dbtest.Open(t).DB()
	base := NewBase(db)

	ctx := context.WithValue(context.Background(), struct{}{}, "value")
	withCtx := base.DB(ctx)

	if withCtx == nil {
		t.Fatalf("expected non-nil DB when context provided")
	}
	if withCtx.Statement == nil {
		t.Fatalf("expected statement created after WithContext")
	}
	if withCtx.Statement.Context != ctx {
		t.Fatalf("expected context to flow through, got %v", withCtx.Statement.Context)
	}

	withoutCtx := base.DB(nil)
	if withoutCtx != db {
		t.Fatalf("expected nil context to return raw connection")
	}
}

func TestBaseScoped_FiltersByCompany(t *testing.T) {
	client := dbtest.Open(t)
	mine, other := uuid.New(), uuid.New()
	for _, company := range []uuid.UUID{mine, mine, other} {
		if err := client.DB().Exec(
			`INSERT INTO vendors (id, company_id, name) VALUES (?, ?, ?)`,
			uuid.NewString(), company.String(), "Bloom & Co",
		).Error; err != nil {
			t.Fatalf("seed vendor: %v", err)
		}
	}

	var count int64
	if err := NewBase(client.DB()).Scoped(context.Background(), mine).Table("vendors").Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 scoped rows, got %d", count)
	}
}
