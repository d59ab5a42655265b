package tenancy

import (
	"github.com/google/uuid"

	"github.com/angelmondragon/weddingplanner-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/weddingplanner-backend/pkg/errors"
)

// RoleSystem is bound for internal provisioning work that runs before any
// company exists. It never belongs to a user row.
const RoleSystem = "system"

// Principal is the authenticated caller for one operation.
type Principal struct {
	UserID    uuid.UUID
	CompanyID *uuid.UUID
	Role      enums.Role
}

// HasCompany reports whether the principal carries a usable tenant binding.
func (p Principal) HasCompany() bool {
	return p.CompanyID != nil && *p.CompanyID != uuid.Nil
}

// Company returns the bound company id or uuid.Nil.
func (p Principal) Company() uuid.UUID {
	if !p.HasCompany() {
		return uuid.Nil
	}
	return *p.CompanyID
}

// Validate enforces that every role except super_admin is bound to a company.
func (p Principal) Validate() error {
	if !p.Role.IsValid() {
		return pkgerrors.New(pkgerrors.CodeForbidden, "unknown principal role")
	}
	if p.Role != enums.RoleSuperAdmin && !p.HasCompany() {
		return pkgerrors.New(pkgerrors.CodeConfiguration, "tenant context missing for non super admin principal")
	}
	return nil
}

// RequireCompany validates p and returns its company. Work that always
// belongs to one tenant rejects a super admin without a company as forbidden.
func (p Principal) RequireCompany() (uuid.UUID, error) {
	if err := p.Validate(); err != nil {
		return uuid.Nil, err
	}
	if !p.HasCompany() {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeForbidden, "a company is required for this operation")
	}
	return *p.CompanyID, nil
}
