package principals

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/weddingplanner-backend/internal/companies"
	"github.com/angelmondragon/weddingplanner-backend/internal/users"
	pkgerrors "github.com/angelmondragon/weddingplanner-backend/pkg/errors"
	"github.com/angelmondragon/weddingplanner-backend/pkg/logger"
)

type systemScope interface {
	WithSystemScope(ctx context.Context, fn func(ctx context.Context, tx *gorm.DB) error) error
}

// Service resolves identities inside the system scope, before any tenant is bound.
type Service struct {
	scope    systemScope
	resolver *Resolver
	logg     *logger.Logger
}

// NewService wires the resolver behind the guard's system scope.
func NewService(scope systemScope, resolver *Resolver, logg *logger.Logger) (*Service, error) {
	if scope == nil {
		return nil, errors.New("system scope required")
	}
	if resolver == nil {
		return nil, errors.New("resolver required")
	}
	if logg == nil {
		return nil, errors.New("logger required")
	}
	return &Service{scope: scope, resolver: resolver, logg: logg}, nil
}

// Resolve returns the durable identity for the caller, provisioning it if needed.
func (s *Service) Resolve(ctx context.Context, identity Identity) (*Resolution, error) {
	var res *Resolution
	err := s.scope.WithSystemScope(ctx, func(ctx context.Context, tx *gorm.DB) error {
		resolved, err := s.resolver.ResolveOrProvision(ctx, tx, identity)
		if err != nil {
			return err
		}
		res = resolved
		return nil
	})
	if err != nil {
		return nil, err
	}
	if res.RefreshClaims {
		s.logg.Info(s.logg.WithUserID(ctx, res.UserID.String()), "session claims are stale; caller must refresh")
	}
	return res, nil
}

// Profile is the stored view of a resolved user and their company.
type Profile struct {
	User    *users.UserDTO        `json:"user"`
	Company *companies.CompanyDTO `json:"company,omitempty"`
}

// Describe loads the user and, when bound, their company.
func (s *Service) Describe(ctx context.Context, userID uuid.UUID) (*Profile, error) {
	var profile Profile
	err := s.scope.WithSystemScope(ctx, func(ctx context.Context, tx *gorm.DB) error {
		user, err := users.NewRepository(tx).FindByID(ctx, userID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load user")
		}
		profile.User = users.FromModel(user)
		if user.CompanyID == nil {
			return nil
		}
		company, err := companies.NewRepository(tx).FindByID(ctx, *user.CompanyID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load company")
		}
		profile.Company = companies.FromModel(company)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &profile, nil
}
