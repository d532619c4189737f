package connector

import (
	"context"
	"fmt"

	"github.com/MGTheTrain/web3-invoicing/internal/domain/users"
	"github.com/MGTheTrain/web3-invoicing/internal/pkg/config"
	"github.com/MGTheTrain/web3-invoicing/internal/pkg/logger"
)

// NewBlobConnector returns the connector selected by settings.CloudProvider.
func NewBlobConnector(ctx context.Context, settings *config.BlobConnectorSettings, logger logger.Logger) (users.BlobConnector, error) {
	switch settings.CloudProvider {
	case config.AzureCloudProvider:
		return NewAzureBlobConnector(ctx, settings, logger)
	case config.LocalStorageProvider:
		return NewLocalBlobConnector(settings, logger)
	default:
		return nil, fmt.Errorf("unsupported cloud provider: %s", settings.CloudProvider)
	}
}
