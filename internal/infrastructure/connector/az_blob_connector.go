package connector

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/MGTheTrain/web3-invoicing/internal/domain/apperr"
	"github.com/MGTheTrain/web3-invoicing/internal/domain/users"
	"github.com/MGTheTrain/web3-invoicing/internal/pkg/config"
	"github.com/MGTheTrain/web3-invoicing/internal/pkg/logger"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/blob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/bloberror"
)

// azureBlobConnector is a struct that holds the Azure Blob storage client and implements the users.BlobConnector interface.
type azureBlobConnector struct {
	client        *azblob.Client
	containerName string
	logger        logger.Logger
}

// NewAzureBlobConnector creates a new azureBlobConnector instance using a connection string.
// It creates the container when it does not exist yet.
func NewAzureBlobConnector(ctx context.Context, settings *config.BlobConnectorSettings, logger logger.Logger) (users.BlobConnector, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	client, err := azblob.NewClientFromConnectionString(settings.ConnectionString, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create Azure Blob client: %w", err)
	}

	if _, err := client.CreateContainer(ctx, settings.ContainerName, nil); err != nil {
		if !bloberror.HasCode(err, bloberror.ContainerAlreadyExists) {
			return nil, fmt.Errorf("failed to create container %s: %w", settings.ContainerName, err)
		}
	}

	return &azureBlobConnector{
		client:        client,
		containerName: settings.ContainerName,
		logger:        logger,
	}, nil
}

// Upload stores content under name, replacing an existing blob.
func (abc *azureBlobConnector) Upload(ctx context.Context, name string, content []byte, contentType string) error {
	opts := &azblob.UploadBufferOptions{
		HTTPHeaders: &blob.HTTPHeaders{BlobContentType: &contentType},
	}
	if _, err := abc.client.UploadBuffer(ctx, abc.containerName, name, content, opts); err != nil {
		return fmt.Errorf("failed to upload blob '%s': %w", name, err)
	}

	abc.logger.Info("Uploaded blob", "name", name, "size", len(content))
	return nil
}

// Download returns the content of the blob called name.
func (abc *azureBlobConnector) Download(ctx context.Context, name string) ([]byte, error) {
	resp, err := abc.client.DownloadStream(ctx, abc.containerName, name, nil)
	if err != nil {
		if bloberror.HasCode(err, bloberror.BlobNotFound) {
			return nil, fmt.Errorf("blob '%s': %w", name, apperr.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to download blob '%s': %w", name, err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			abc.logger.Warn("failed to close blob stream", "name", name, "error", err)
		}
	}()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, resp.Body); err != nil {
		return nil, fmt.Errorf("failed to read blob '%s': %w", name, err)
	}

	abc.logger.Info("Downloaded blob", "name", name)
	return buf.Bytes(), nil
}

// Delete removes the blob called name. Missing blobs are not an error.
func (abc *azureBlobConnector) Delete(ctx context.Context, name string) error {
	if _, err := abc.client.DeleteBlob(ctx, abc.containerName, name, nil); err != nil {
		if bloberror.HasCode(err, bloberror.BlobNotFound) {
			return nil
		}
		return fmt.Errorf("failed to delete blob '%s': %w", name, err)
	}

	abc.logger.Info("Deleted blob", "name", name)
	return nil
}
