package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// BlobConnectorSettings configures where uploaded avatars are stored
type BlobConnectorSettings struct {
	CloudProvider    string `mapstructure:"cloud_provider" validate:"required,oneof=azure local"`
	ConnectionString string `mapstructure:"connection_string"`
	ContainerName    string `mapstructure:"container_name"`
	LocalPath        string `mapstructure:"local_path"`
}

// Validate checks that all fields in BlobConnectorSettings are valid
func (s *BlobConnectorSettings) Validate() error {
	validate := validator.New()

	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("validation failed for BlobConnectorSettings: %w", err)
	}

	switch s.CloudProvider {
	case AzureCloudProvider:
		if s.ConnectionString == "" || s.ContainerName == "" {
			return fmt.Errorf("connection string and container name are required for azure")
		}
	case LocalStorageProvider:
		if s.LocalPath == "" {
			return fmt.Errorf("local path is required for local storage")
		}
	}

	return nil
}
