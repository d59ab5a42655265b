package principals

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/weddingplanner-backend/internal/companies"
	"github.com/angelmondragon/weddingplanner-backend/internal/users"
	"github.com/angelmondragon/weddingplanner-backend/pkg/config"
	"github.com/angelmondragon/weddingplanner-backend/pkg/db"
	"github.com/angelmondragon/weddingplanner-backend/pkg/db/models"
	"github.com/angelmondragon/weddingplanner-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/weddingplanner-backend/pkg/errors"
	"github.com/angelmondragon/weddingplanner-backend/pkg/logger"
	"github.com/angelmondragon/weddingplanner-backend/pkg/tenancy"
)

const (
	maxSlugLength = 30

	// Postgres constraint names, with the SQLite column spellings used in
	// development mode.
	externalIDConstraint = "users_external_id_key"
	externalIDColumn     = "users.external_id"
	subdomainConstraint  = "companies_subdomain_key"
	subdomainColumn      = "companies.subdomain"
)

var slugUnsafe = regexp.MustCompile(`[^a-z0-9]+`)

// Identity is what the identity provider tells us about the caller.
type Identity struct {
	ExternalID       string
	Email            string
	FirstName        string
	LastName         string
	ClaimedCompanyID *uuid.UUID
}

// Resolution is the durable view of a resolved identity.
type Resolution struct {
	UserID    uuid.UUID
	CompanyID *uuid.UUID
	Role      enums.Role
	// Provisioned is set when this call created the user row.
	Provisioned bool
	// RefreshClaims tells the caller its session claims no longer match storage.
	RefreshClaims bool
}

// Principal converts the resolution into the scope guard's principal.
func (r Resolution) Principal() tenancy.Principal {
	return tenancy.Principal{UserID: r.UserID, CompanyID: r.CompanyID, Role: r.Role}
}

type stageSeeder interface {
	SeedDefaultStages(ctx context.Context, tx *gorm.DB, companyID uuid.UUID) error
}

type userStore interface {
	FindByExternalID(ctx context.Context, externalID string) (*models.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	Create(ctx context.Context, dto users.CreateUserDTO) (*models.User, error)
	UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error
}

type companyStore interface {
	Create(ctx context.Context, dto companies.CreateCompanyDTO) (*models.Company, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	SubdomainTaken(ctx context.Context, subdomain string) (bool, error)
}

// Resolver maps external identities to user rows, provisioning a company and
// user on first sight.
type Resolver struct {
	cfg          config.TenancyConfig
	seeder       stageSeeder
	logg         *logger.Logger
	now          func() time.Time
	suffix       func() string
	newUsers     func(tx *gorm.DB) userStore
	newCompanies func(tx *gorm.DB) companyStore
}

// NewResolver wires a resolver. seeder may be nil when no default pipeline is wanted.
func NewResolver(cfg config.TenancyConfig, seeder stageSeeder, logg *logger.Logger) (*Resolver, error) {
	if logg == nil {
		return nil, errors.New("logger required")
	}
	return &Resolver{
		cfg:    cfg,
		seeder: seeder,
		logg:   logg,
		now:    time.Now,
		suffix: func() string { return strings.ReplaceAll(uuid.NewString(), "-", "")[:6] },
		newUsers: func(tx *gorm.DB) userStore {
			return users.NewRepository(tx)
		},
		newCompanies: func(tx *gorm.DB) companyStore {
			return companies.NewRepository(tx)
		},
	}, nil
}

// ResolveOrProvision returns the user row for identity, creating it (and a
// company when none is usable) if missing. A concurrent provision that wins
// the users.external_id constraint is treated as already resolved.
func (r *Resolver) ResolveOrProvision(ctx context.Context, tx *gorm.DB, identity Identity) (*Resolution, error) {
	externalID := strings.TrimSpace(identity.ExternalID)
	if externalID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "external identity is required")
	}
	ctx = r.logg.WithField(ctx, "external_id", externalID)

	userRepo := r.newUsers(tx)
	existing, err := userRepo.FindByExternalID(ctx, externalID)
	if err == nil {
		if err := userRepo.UpdateLastLogin(ctx, existing.ID, r.now().UTC()); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "record login")
		}
		return resolutionFor(existing, identity.ClaimedCompanyID, false), nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup user")
	}

	var (
		created        *models.User
		createdCompany bool
	)
	err = tx.Transaction(func(sp *gorm.DB) error {
		companyID, fresh, err := r.usableCompany(ctx, sp, identity)
		if err != nil {
			return err
		}
		createdCompany = fresh

		role := enums.RoleCompanyAdmin
		if r.cfg.IsSuperAdminEmail(identity.Email) {
			role = enums.RoleSuperAdmin
		}
		created, err = r.newUsers(sp).Create(ctx, users.CreateUserDTO{
			ExternalID: externalID,
			CompanyID:  &companyID,
			Email:      strings.ToLower(strings.TrimSpace(identity.Email)),
			FirstName:  strings.TrimSpace(identity.FirstName),
			LastName:   strings.TrimSpace(identity.LastName),
			Role:       role,
		})
		return err
	})
	if err != nil {
		if isExternalIDCollision(err) {
			winner, findErr := userRepo.FindByExternalID(ctx, externalID)
			if findErr == nil {
				r.logg.Info(ctx, "concurrent provisioning resolved to existing user")
				return resolutionFor(winner, identity.ClaimedCompanyID, false), nil
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "provisioning collided")
		}
		if typed := pkgerrors.As(err); typed != nil {
			return nil, typed
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "provision user")
	}

	reloaded, err := userRepo.FindByID(ctx, created.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "reload provisioned user")
	}
	res := resolutionFor(reloaded, identity.ClaimedCompanyID, true)
	if createdCompany {
		res.RefreshClaims = true
	}
	r.logg.Info(r.logg.WithFields(ctx, map[string]any{
		"user_id":         res.UserID.String(),
		"company_created": createdCompany,
	}), "provisioned user")
	return res, nil
}

// usableCompany returns the claimed company when it exists, otherwise creates one.
func (r *Resolver) usableCompany(ctx context.Context, tx *gorm.DB, identity Identity) (uuid.UUID, bool, error) {
	companyRepo := r.newCompanies(tx)

	if claimed := identity.ClaimedCompanyID; claimed != nil && *claimed != uuid.Nil {
		ok, err := companyRepo.Exists(ctx, *claimed)
		if err != nil {
			return uuid.Nil, false, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check claimed company")
		}
		if ok {
			return *claimed, false, nil
		}
		r.logg.Warn(r.logg.WithField(ctx, "claimed_company_id", claimed.String()), "claimed company not found; provisioning a new one")
	}

	company, err := r.createCompany(ctx, tx, identity)
	if err != nil {
		return uuid.Nil, false, err
	}

	if r.seeder != nil {
		if err := r.seeder.SeedDefaultStages(ctx, tx, company.ID); err != nil {
			return uuid.Nil, false, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "seed pipeline stages")
		}
	}
	return company.ID, true, nil
}

// createCompany inserts a trialing company under a free subdomain. Each insert
// runs in its own savepoint so a subdomain claimed concurrently between the
// check and the insert moves on to the next candidate.
func (r *Resolver) createCompany(ctx context.Context, tx *gorm.DB, identity Identity) (*models.Company, error) {
	base := Slug(displayName(identity))
	attempts := r.cfg.SubdomainAttempts
	if attempts <= 0 {
		attempts = 1
	}

	var trialEndsAt *time.Time
	if window := r.cfg.TrialWindow(); window > 0 {
		ends := r.now().UTC().Add(window)
		trialEndsAt = &ends
	}

	for i := 0; i < attempts; i++ {
		candidate := fmt.Sprintf("%s-%s", base, r.suffix())
		taken, err := r.newCompanies(tx).SubdomainTaken(ctx, candidate)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check subdomain")
		}
		if taken {
			continue
		}

		var company *models.Company
		err = tx.Transaction(func(sp *gorm.DB) error {
			var err error
			company, err = r.newCompanies(sp).Create(ctx, companies.CreateCompanyDTO{
				Name:               CompanyName(identity),
				Subdomain:          candidate,
				SubscriptionStatus: enums.SubscriptionStatusTrialing,
				TrialEndsAt:        trialEndsAt,
			})
			return err
		})
		if err == nil {
			return company, nil
		}
		if !isSubdomainCollision(err) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create company")
		}
		r.logg.Warn(r.logg.WithField(ctx, "subdomain", candidate), "subdomain claimed concurrently; trying another")
	}
	return nil, pkgerrors.New(pkgerrors.CodeConflict, "could not allocate a unique subdomain")
}

func isExternalIDCollision(err error) bool {
	return db.IsUniqueViolation(err, externalIDConstraint) || db.IsUniqueViolation(err, externalIDColumn)
}

func isSubdomainCollision(err error) bool {
	return db.IsUniqueViolation(err, subdomainConstraint) || db.IsUniqueViolation(err, subdomainColumn)
}

// CompanyName derives the display name of a freshly provisioned company.
func CompanyName(identity Identity) string {
	return displayName(identity) + "'s Studio"
}

// Slug lowercases value into a subdomain-safe token.
func Slug(value string) string {
	slug := slugUnsafe.ReplaceAllString(strings.ToLower(value), "-")
	slug = strings.Trim(slug, "-")
	if len(slug) > maxSlugLength {
		slug = strings.TrimRight(slug[:maxSlugLength], "-")
	}
	if slug == "" {
		return "studio"
	}
	return slug
}

func displayName(identity Identity) string {
	if name := strings.TrimSpace(identity.FirstName); name != "" {
		return name
	}
	if local, _, ok := strings.Cut(strings.TrimSpace(identity.Email), "@"); ok && local != "" {
		return local
	}
	return "My"
}

func resolutionFor(user *models.User, claimed *uuid.UUID, provisioned bool) *Resolution {
	res := &Resolution{
		UserID:      user.ID,
		CompanyID:   user.CompanyID,
		Role:        user.Role,
		Provisioned: provisioned,
	}
	res.RefreshClaims = !sameCompany(claimed, user.CompanyID)
	return res
}

func sameCompany(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
