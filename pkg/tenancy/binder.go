package tenancy

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

const (
	settingCompanyID = "app.current_company_id"
	settingRole      = "app.current_role"
)

// Binder publishes the tenant binding to the database's row level policies.
type Binder interface {
	// Bind sets the company and role settings on conn. local limits them to the
	// enclosing transaction.
	Bind(ctx context.Context, conn *gorm.DB, companyID, role string, local bool) error
	// Clear resets session level settings set by a non-local Bind.
	Clear(ctx context.Context, conn *gorm.DB) error
}

// NewBinder returns the binder for a gorm dialector name. Only Postgres has
// row level policies; every other dialect gets a no-op binder.
func NewBinder(dialect string) Binder {
	if dialect == "postgres" {
		return PostgresBinder{}
	}
	return NoopBinder{}
}

// PostgresBinder binds through set_config.
type PostgresBinder struct{}

func (PostgresBinder) Bind(ctx context.Context, conn *gorm.DB, companyID, role string, local bool) error {
	err := conn.WithContext(ctx).
		Exec("SELECT set_config(?, ?, ?), set_config(?, ?, ?)",
			settingCompanyID, companyID, local,
			settingRole, role, local).
		Error
	if err != nil {
		return fmt.Errorf("binding tenant settings: %w", err)
	}
	return nil
}

func (PostgresBinder) Clear(ctx context.Context, conn *gorm.DB) error {
	err := conn.WithContext(ctx).
		Exec("SELECT set_config(?, '', false), set_config(?, '', false)", settingCompanyID, settingRole).
		Error
	if err != nil {
		return fmt.Errorf("clearing tenant settings: %w", err)
	}
	return nil
}

// NoopBinder is used where the database has no row level policies.
type NoopBinder struct{}

func (NoopBinder) Bind(context.Context, *gorm.DB, string, string, bool) error { return nil }

func (NoopBinder) Clear(context.Context, *gorm.DB) error { return nil }
