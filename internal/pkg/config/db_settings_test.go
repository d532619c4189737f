//go:build unit
// +build unit

package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDatabaseSettingsValidation(t *testing.T) {
	tests := []struct {
		name          string
		settings      *DatabaseSettings
		expectedError bool
	}{
		{
			name: "valid postgres settings",
			settings: &DatabaseSettings{
				Type:   PostgresDbType,
				DSN:    "user=postgres password=postgres host=localhost port=5432 sslmode=disable",
				DBName: "invoicing",
			},
			expectedError: false,
		},
		{
			name: "sqlite without dsn falls back to memory",
			settings: &DatabaseSettings{
				Type: SqliteDbType,
			},
			expectedError: false,
		},
		{
			name: "missing type",
			settings: &DatabaseSettings{
				DSN:    "user=postgres host=localhost",
				DBName: "invoicing",
			},
			expectedError: true,
		},
		{
			name: "unsupported type",
			settings: &DatabaseSettings{
				Type:   "mysql",
				DSN:    "user:password@tcp(localhost:3306)/dbname",
				DBName: "invoicing",
			},
			expectedError: true,
		},
		{
			name: "postgres missing DSN",
			settings: &DatabaseSettings{
				Type:   PostgresDbType,
				DBName: "invoicing",
			},
			expectedError: true,
		},
		{
			name: "postgres missing name",
			settings: &DatabaseSettings{
				Type: PostgresDbType,
				DSN:  "user=postgres host=localhost",
			},
			expectedError: true,
		},
		{
			name: "negative pool size",
			settings: &DatabaseSettings{
				Type:         SqliteDbType,
				MaxOpenConns: -1,
			},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.settings.Validate()

			if tt.expectedError {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}
