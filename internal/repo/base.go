package repo

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base provides a shared foundation for tenant-scoped repositories.
type Base struct {
	db *gorm.DB
}

// NewBase constructs a Base repository backed by the provided GORM connection.
func NewBase(db *gorm.DB) Base {
	return Base{db: db}
}

// DB returns the GORM connection bound to the supplied context (if any).
func (b Base) DB(ctx context.Context) *gorm.DB {
	if ctx == nil {
		return b.db
	}
	return b.db.WithContext(ctx)
}

// Scoped returns a query already filtered to companyID. Row-level policies
// enforce the same boundary on Postgres; the explicit filter keeps SQLite and
// privileged scopes honest.
func (b Base) Scoped(ctx context.Context, companyID uuid.UUID) *gorm.DB {
	return b.DB(ctx).Where("company_id = ?", companyID)
}
