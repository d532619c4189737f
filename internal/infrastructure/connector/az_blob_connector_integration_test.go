//go:build integration
// +build integration

package connector

import (
	"context"
	"testing"

	"github.com/MGTheTrain/web3-invoicing/internal/domain/apperr"
	"github.com/MGTheTrain/web3-invoicing/internal/domain/users"
	"github.com/MGTheTrain/web3-invoicing/internal/pkg/config"
	"github.com/MGTheTrain/web3-invoicing/internal/pkg/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAzureBlobConnectorForTest(t *testing.T) users.BlobConnector {
	t.Helper()
	logger := testutil.SetupTestLogger(t)

	settings := &config.BlobConnectorSettings{
		CloudProvider:    TestCloudProvider,
		ConnectionString: TestConnectionString,
		ContainerName:    TestContainerName,
	}

	blobConnector, err := NewAzureBlobConnector(context.Background(), settings, logger)
	require.NoError(t, err)
	return blobConnector
}

func TestAzureBlobConnector_UploadDownloadDelete(t *testing.T) {
	blobConnector := newAzureBlobConnectorForTest(t)
	ctx := context.Background()

	name := "avatars/" + uuid.NewString() + ".png"
	content := []byte("not really a png")

	require.NoError(t, blobConnector.Upload(ctx, name, content, "image/png"))

	downloaded, err := blobConnector.Download(ctx, name)
	require.NoError(t, err)
	assert.Equal(t, content, downloaded)

	require.NoError(t, blobConnector.Delete(ctx, name))

	_, err = blobConnector.Download(ctx, name)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	// deleting twice is fine
	assert.NoError(t, blobConnector.Delete(ctx, name))
}

func TestAzureBlobConnector_ExistingContainer(t *testing.T) {
	newAzureBlobConnectorForTest(t)
	newAzureBlobConnectorForTest(t)
}
