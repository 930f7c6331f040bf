package config

// EnvPrefix is the envconfig prefix shared by every Marqen binary.
const EnvPrefix = "MARQEN"

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

const (
	EnvDBDSN  = "MARQEN_DB_DSN"
	EnvDBHost = "MARQEN_DB_HOST"
	EnvDBUser = "MARQEN_DB_USER"
	EnvDBName = "MARQEN_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
