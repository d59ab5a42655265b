package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	FeatureFlags FeatureFlagsConfig
	Tenancy      TenancyConfig
	Broadcast    BroadcastConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(cfg.FeatureFlags.UseSQLite); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"WEDDINGPLANNER_APP_ENV" required:"true"`
	LogLevel     string `envconfig:"WEDDINGPLANNER_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"WEDDINGPLANNER_LOG_WARN_STACK" default:"false"`
	LogFormat    string `envconfig:"WEDDINGPLANNER_LOG_FORMAT" default:"json"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"WEDDINGPLANNER_DB_DSN"`
	Driver string `envconfig:"WEDDINGPLANNER_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"WEDDINGPLANNER_DB_HOST"`
	LegacyPort     int    `envconfig:"WEDDINGPLANNER_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"WEDDINGPLANNER_DB_USER"`
	LegacyPassword string `envconfig:"WEDDINGPLANNER_DB_PASSWORD"`
	LegacyName     string `envconfig:"WEDDINGPLANNER_DB_NAME"`
	LegacySSLMode  string `envconfig:"WEDDINGPLANNER_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"WEDDINGPLANNER_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"WEDDINGPLANNER_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"WEDDINGPLANNER_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"WEDDINGPLANNER_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"WEDDINGPLANNER_REDIS_URL"`
	Address      string        `envconfig:"WEDDINGPLANNER_REDIS_ADDR"`
	Password     string        `envconfig:"WEDDINGPLANNER_REDIS_PASSWORD"`
	DB           int           `envconfig:"WEDDINGPLANNER_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"WEDDINGPLANNER_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"WEDDINGPLANNER_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"WEDDINGPLANNER_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"WEDDINGPLANNER_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"WEDDINGPLANNER_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"WEDDINGPLANNER_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"WEDDINGPLANNER_AUTO_MIGRATE" default:"false"`
}

// TenancyConfig drives first-login provisioning.
type TenancyConfig struct {
	SuperAdminEmail   string `envconfig:"WEDDINGPLANNER_SUPER_ADMIN_EMAIL"`
	TrialDays         int    `envconfig:"WEDDINGPLANNER_TRIAL_DAYS" default:"14"`
	SubdomainAttempts int    `envconfig:"WEDDINGPLANNER_SUBDOMAIN_ATTEMPTS" default:"5"`
}

// TrialWindow returns the trial length granted to freshly provisioned companies.
func (t TenancyConfig) TrialWindow() time.Duration {
	if t.TrialDays <= 0 {
		return 0
	}
	return time.Duration(t.TrialDays) * 24 * time.Hour
}

// IsSuperAdminEmail reports whether email matches the configured elevated identity.
func (t TenancyConfig) IsSuperAdminEmail(email string) bool {
	configured := strings.TrimSpace(t.SuperAdminEmail)
	if configured == "" {
		return false
	}
	return strings.EqualFold(configured, strings.TrimSpace(email))
}

type BroadcastConfig struct {
	Enabled        bool          `envconfig:"WEDDINGPLANNER_BROADCAST_ENABLED" default:"false"`
	PublishTimeout time.Duration `envconfig:"WEDDINGPLANNER_BROADCAST_PUBLISH_TIMEOUT" default:"2s"`
}

func (db *DBConfig) ensureDSN(useSQLite bool) error {
	if db.DSN != "" {
		return nil
	}
	if useSQLite {
		db.Driver = DriverSQLite
		db.DSN = defaultSQLiteDSN
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
