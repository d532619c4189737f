package config

// Supported database types
const (
	PostgresDbType = "postgres"
	SqliteDbType   = "sqlite"
)
