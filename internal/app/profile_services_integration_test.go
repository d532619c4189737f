//go:build integration
// +build integration

package app

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"testing"

	"github.com/MGTheTrain/web3-invoicing/internal/domain/apperr"
	"github.com/MGTheTrain/web3-invoicing/internal/domain/users"
	"github.com/MGTheTrain/web3-invoicing/internal/pkg/config"
	"github.com/MGTheTrain/web3-invoicing/internal/pkg/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileService_Update(t *testing.T) {
	ts := SetupTestServices(t, config.SqliteDbType)
	ctx := context.Background()
	session := SignInTestUser(t, ts)

	profile, err := ts.ProfileService.Update(ctx, session.User.ID, users.ProfileUpdate{
		DisplayName: "  Satoshi ",
		Email:       "satoshi@example.com",
		Company:     "Nakamoto Consulting",
	})
	require.NoError(t, err)
	assert.Equal(t, "Satoshi", profile.DisplayName)

	fetched, err := ts.ProfileService.Get(ctx, session.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "satoshi@example.com", fetched.Email)

	_, err = ts.ProfileService.Update(ctx, session.User.ID, users.ProfileUpdate{Email: "nope"})
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestProfileService_Avatar(t *testing.T) {
	ts := SetupTestServices(t, config.SqliteDbType)
	ctx := context.Background()
	session := SignInTestUser(t, ts)

	_, err := ts.ProfileService.DownloadAvatar(ctx, session.User.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	src := testutil.CreateTestPNG(t, 400, 300)
	profile, err := ts.ProfileService.UploadAvatar(ctx, session.User.ID, bytes.NewReader(src), &users.CropRect{X: 100, Y: 0, Width: 300, Height: 300})
	require.NoError(t, err)
	require.True(t, profile.HasAvatar())
	assert.Equal(t, users.AvatarBlobName(session.User.ID), *profile.AvatarBlobName)

	avatar, err := ts.ProfileService.DownloadAvatar(ctx, session.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "image/png", avatar.ContentType)

	decoded, err := png.Decode(bytes.NewReader(avatar.Content))
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, users.AvatarSize, users.AvatarSize), decoded.Bounds())
}

func TestProfileService_Avatar_InvalidCrop(t *testing.T) {
	ts := SetupTestServices(t, config.SqliteDbType)
	session := SignInTestUser(t, ts)

	src := testutil.CreateTestPNG(t, 100, 100)
	_, err := ts.ProfileService.UploadAvatar(context.Background(), session.User.ID, bytes.NewReader(src), &users.CropRect{X: -1, Width: 10, Height: 10})
	assert.ErrorIs(t, err, apperr.ErrValidation)
}
