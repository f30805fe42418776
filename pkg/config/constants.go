package config

const (
	EnvPrefix = "STOCKROOM"

	AppEnvDev  = "development"
	AppEnvProd = "production"

	EnvAppEnv     = "STOCKROOM_APP_ENV"
	EnvPort       = "STOCKROOM_APP_PORT"
	EnvDBDSN      = "STOCKROOM_DB_DSN"
	EnvDBHost     = "STOCKROOM_DB_HOST"
	EnvDBUser     = "STOCKROOM_DB_USER"
	EnvDBName     = "STOCKROOM_DB_NAME"
	EnvRedisURL   = "STOCKROOM_REDIS_URL"
	EnvJWTSecret  = "STOCKROOM_JWT_SECRET"
	EnvJWTIssuer  = "STOCKROOM_JWT_ISSUER"
	EnvJWTExpMins = "STOCKROOM_JWT_EXPIRATION_MINUTES"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
