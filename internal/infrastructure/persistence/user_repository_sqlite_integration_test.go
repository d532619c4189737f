//go:build integration
// +build integration

package persistence

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/MGTheTrain/web3-invoicing/internal/domain/apperr"
	"github.com/MGTheTrain/web3-invoicing/internal/domain/auth"
	"github.com/MGTheTrain/web3-invoicing/internal/domain/users"
	"github.com/MGTheTrain/web3-invoicing/internal/pkg/config"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserSqliteRepository_CreateAndLookup(t *testing.T) {
	tc := SetupTestDB(t, config.SqliteDbType)
	ctx := context.Background()

	CreateTestUser(t, tc, TestIssuerAddress)
	user := CreateTestUser(t, tc, TestRecipientAddress)

	fetched, err := tc.UserRepo.GetByWalletAddress(ctx, strings.ToUpper(TestRecipientAddress))
	require.NoError(t, err)
	assert.Equal(t, user.ID, fetched.ID)

	profile, err := tc.ProfileRepo.GetByUserID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.ID, profile.UserID)
	assert.False(t, profile.HasAvatar())
}

func TestUserSqliteRepository_DuplicateWallet(t *testing.T) {
	tc := SetupTestDB(t, config.SqliteDbType)
	CreateTestUser(t, tc, TestIssuerAddress)

	now := time.Now().UTC()
	dup := &users.User{ID: uuid.NewString(), WalletAddress: TestIssuerAddress, CreatedAt: now}
	profile := &users.Profile{ID: uuid.NewString(), UserID: dup.ID, CreatedAt: now}

	err := tc.UserRepo.Create(context.Background(), dup, profile)
	assert.ErrorIs(t, err, apperr.ErrConflict)
}

func TestUserSqliteRepository_GetByID_NotFound(t *testing.T) {
	tc := SetupTestDB(t, config.SqliteDbType)

	_, err := tc.UserRepo.GetByID(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestProfileSqliteRepository_Update(t *testing.T) {
	tc := SetupTestDB(t, config.SqliteDbType)
	ctx := context.Background()
	user := CreateTestUser(t, tc, TestIssuerAddress)

	profile, err := tc.ProfileRepo.GetByUserID(ctx, user.ID)
	require.NoError(t, err)

	blob := "avatars/" + user.ID + ".png"
	contentType := "image/png"
	profile.DisplayName = "Satoshi"
	profile.Email = "satoshi@example.com"
	profile.AvatarBlobName = &blob
	profile.AvatarContentType = &contentType
	require.NoError(t, tc.ProfileRepo.UpdateByID(ctx, profile))

	fetched, err := tc.ProfileRepo.GetByUserID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Satoshi", fetched.DisplayName)
	assert.True(t, fetched.HasAvatar())

	profile.Email = "not-an-email"
	assert.ErrorIs(t, tc.ProfileRepo.UpdateByID(ctx, profile), apperr.ErrValidation)
}

func newTestNonce(value string, expiresAt time.Time) *auth.Nonce {
	return &auth.Nonce{
		ID:            uuid.NewString(),
		WalletAddress: TestIssuerAddress,
		Value:         value,
		Message:       "sign in",
		ExpiresAt:     expiresAt,
		CreatedAt:     time.Now().UTC(),
	}
}

func TestNonceSqliteRepository_SingleUse(t *testing.T) {
	tc := SetupTestDB(t, config.SqliteDbType)
	ctx := context.Background()

	nonce := newTestNonce("abcdef0123456789abcdef", time.Now().UTC().Add(time.Minute))
	require.NoError(t, tc.NonceRepo.Create(ctx, nonce))

	fetched, err := tc.NonceRepo.GetByValue(ctx, nonce.Value)
	require.NoError(t, err)
	assert.True(t, fetched.Usable(time.Now()))

	require.NoError(t, tc.NonceRepo.MarkUsed(ctx, nonce.ID, time.Now().UTC()))
	assert.ErrorIs(t, tc.NonceRepo.MarkUsed(ctx, nonce.ID, time.Now().UTC()), apperr.ErrConflict)

	fetched, err = tc.NonceRepo.GetByValue(ctx, nonce.Value)
	require.NoError(t, err)
	assert.False(t, fetched.Usable(time.Now()))
}

func TestNonceSqliteRepository_DeleteExpired(t *testing.T) {
	tc := SetupTestDB(t, config.SqliteDbType)
	ctx := context.Background()
	now := time.Now().UTC()

	require.NoError(t, tc.NonceRepo.Create(ctx, newTestNonce("expired00000000000001", now.Add(-time.Hour))))
	require.NoError(t, tc.NonceRepo.Create(ctx, newTestNonce("fresh0000000000000001", now.Add(time.Hour))))

	deleted, err := tc.NonceRepo.DeleteExpired(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	_, err = tc.NonceRepo.GetByValue(ctx, "expired00000000000001")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}
