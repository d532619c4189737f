//go:build unit
// +build unit

package connector

import (
	"context"
	"testing"

	"github.com/MGTheTrain/web3-invoicing/internal/domain/apperr"
	"github.com/MGTheTrain/web3-invoicing/internal/pkg/config"
	"github.com/MGTheTrain/web3-invoicing/internal/pkg/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalBlobConnector(t *testing.T) {
	settings := &config.BlobConnectorSettings{
		CloudProvider: config.LocalStorageProvider,
		LocalPath:     t.TempDir(),
	}
	blobConnector, err := NewBlobConnector(context.Background(), settings, testutil.SetupTestLogger(t))
	require.NoError(t, err)
	ctx := context.Background()

	t.Run("RoundTrip", func(t *testing.T) {
		require.NoError(t, blobConnector.Upload(ctx, "avatars/a.png", []byte("first"), "image/png"))
		require.NoError(t, blobConnector.Upload(ctx, "avatars/a.png", []byte("second"), "image/png"))

		data, err := blobConnector.Download(ctx, "avatars/a.png")
		require.NoError(t, err)
		assert.Equal(t, []byte("second"), data)

		require.NoError(t, blobConnector.Delete(ctx, "avatars/a.png"))
		_, err = blobConnector.Download(ctx, "avatars/a.png")
		assert.ErrorIs(t, err, apperr.ErrNotFound)
	})

	t.Run("RejectsTraversal", func(t *testing.T) {
		err := blobConnector.Upload(ctx, "../escape.png", []byte("x"), "image/png")
		assert.ErrorIs(t, err, apperr.ErrValidation)

		_, err = blobConnector.Download(ctx, "")
		assert.ErrorIs(t, err, apperr.ErrValidation)
	})
}

func TestNewBlobConnector_UnsupportedProvider(t *testing.T) {
	settings := &config.BlobConnectorSettings{CloudProvider: "gcp"}
	_, err := NewBlobConnector(context.Background(), settings, testutil.SetupTestLogger(t))
	assert.Error(t, err)
}
