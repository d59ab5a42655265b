package config

const (
	EnvPrefix = "WEDDINGPLANNER"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	defaultSQLiteDSN = "file:weddingplanner.db?cache=shared"
)

const (
	EnvAppEnv            = "WEDDINGPLANNER_APP_ENV"
	EnvLogLevel          = "WEDDINGPLANNER_LOG_LEVEL"
	EnvDBDSN             = "WEDDINGPLANNER_DB_DSN"
	EnvDBHost            = "WEDDINGPLANNER_DB_HOST"
	EnvDBUser            = "WEDDINGPLANNER_DB_USER"
	EnvDBName            = "WEDDINGPLANNER_DB_NAME"
	EnvDBPassword        = "WEDDINGPLANNER_DB_PASSWORD"
	EnvRedisURL          = "WEDDINGPLANNER_REDIS_URL"
	EnvUseSQLite         = "WEDDINGPLANNER_USE_SQLITE"
	EnvSuperAdminEmail   = "WEDDINGPLANNER_SUPER_ADMIN_EMAIL"
	EnvTrialDays         = "WEDDINGPLANNER_TRIAL_DAYS"
	EnvBroadcastEnabled  = "WEDDINGPLANNER_BROADCAST_ENABLED"
	EnvBroadcastTimeout  = "WEDDINGPLANNER_BROADCAST_PUBLISH_TIMEOUT"
	EnvSubdomainAttempts = "WEDDINGPLANNER_SUBDOMAIN_ATTEMPTS"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
