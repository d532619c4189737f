//go:build integration
// +build integration

package app

import (
	"context"
	"testing"

	"github.com/MGTheTrain/web3-invoicing/internal/domain/apperr"
	"github.com/MGTheTrain/web3-invoicing/internal/domain/contacts"
	"github.com/MGTheTrain/web3-invoicing/internal/infrastructure/persistence"
	"github.com/MGTheTrain/web3-invoicing/internal/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContactService_CRUD(t *testing.T) {
	ts := SetupTestServices(t, config.SqliteDbType)
	ctx := context.Background()
	owner := SignInTestUser(t, ts).User

	created, err := ts.ContactService.Create(ctx, owner.ID, contacts.ContactInput{
		Name:          " Acme Corp ",
		Email:         "billing@acme.example",
		WalletAddress: "0x8617E340B3D01FA5F11F306F4090FD50E238070D",
	})
	require.NoError(t, err)
	assert.Equal(t, "Acme Corp", created.Name)
	assert.Equal(t, persistence.TestRecipientAddress, created.WalletAddress)

	updated, err := ts.ContactService.Update(ctx, owner.ID, created.ID, contacts.ContactInput{Name: "Acme Inc", Company: "Acme"})
	require.NoError(t, err)
	assert.Equal(t, "Acme Inc", updated.Name)
	assert.Empty(t, updated.WalletAddress)

	list, err := ts.ContactService.List(ctx, contacts.NewContactQuery(owner.ID))
	require.NoError(t, err)
	require.Len(t, list, 1)

	require.NoError(t, ts.ContactService.DeleteByID(ctx, owner.ID, created.ID))
	_, err = ts.ContactService.GetByID(ctx, owner.ID, created.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestContactService_OwnerScoping(t *testing.T) {
	ts := SetupTestServices(t, config.SqliteDbType)
	ctx := context.Background()
	owner := SignInTestUser(t, ts).User
	stranger := SignInTestUser(t, ts).User

	contact, err := ts.ContactService.Create(ctx, owner.ID, contacts.ContactInput{Name: "Acme"})
	require.NoError(t, err)

	_, err = ts.ContactService.GetByID(ctx, stranger.ID, contact.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
	_, err = ts.ContactService.Update(ctx, stranger.ID, contact.ID, contacts.ContactInput{Name: "Mine"})
	assert.ErrorIs(t, err, apperr.ErrNotFound)
	assert.ErrorIs(t, ts.ContactService.DeleteByID(ctx, stranger.ID, contact.ID), apperr.ErrNotFound)

	list, err := ts.ContactService.List(ctx, contacts.NewContactQuery(stranger.ID))
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestContactService_DuplicateWallet(t *testing.T) {
	ts := SetupTestServices(t, config.SqliteDbType)
	ctx := context.Background()
	owner := SignInTestUser(t, ts).User

	_, err := ts.ContactService.Create(ctx, owner.ID, contacts.ContactInput{Name: "A", WalletAddress: persistence.TestRecipientAddress})
	require.NoError(t, err)
	_, err = ts.ContactService.Create(ctx, owner.ID, contacts.ContactInput{Name: "B", WalletAddress: persistence.TestRecipientAddress})
	assert.ErrorIs(t, err, apperr.ErrConflict)

	// other owners may store the same wallet
	other := SignInTestUser(t, ts).User
	_, err = ts.ContactService.Create(ctx, other.ID, contacts.ContactInput{Name: "A", WalletAddress: persistence.TestRecipientAddress})
	assert.NoError(t, err)
}
