//go:build integration
// +build integration

package app

import (
	"context"
	"testing"
	"time"

	"github.com/MGTheTrain/web3-invoicing/internal/domain/apperr"
	"github.com/MGTheTrain/web3-invoicing/internal/domain/invoices"
	"github.com/MGTheTrain/web3-invoicing/internal/infrastructure/persistence"
	"github.com/MGTheTrain/web3-invoicing/internal/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStreamService_CreateListCancel(t *testing.T) {
	ts := SetupTestServices(t, config.SqliteDbType)
	ctx := context.Background()
	issuer := SignInTestUser(t, ts).User

	input := TestInvoiceInput(36000)
	input.Send = true
	inv, err := ts.InvoiceService.Create(ctx, issuer.ID, input)
	require.NoError(t, err)

	start := time.Now().UTC().Add(-time.Minute)
	stream, err := ts.StreamService.Create(ctx, issuer.ID, inv.ID, invoices.StreamInput{
		SenderAddress: persistence.TestRecipientAddress,
		RatePerSecond: 10,
		StartTime:     start,
		StopTime:      start.Add(time.Hour),
	})
	require.NoError(t, err)
	assert.Equal(t, issuer.WalletAddress, stream.RecipientAddress, "recipient defaults to the issuer wallet")
	assert.Equal(t, int64(36000), stream.Deposit())
	assert.Equal(t, invoices.StreamActive, stream.EffectiveStatus(time.Now()))

	streams, err := ts.StreamService.List(ctx, issuer.ID, inv.ID)
	require.NoError(t, err)
	require.Len(t, streams, 1)

	stranger := SignInTestUser(t, ts).User
	_, err = ts.StreamService.Cancel(ctx, stranger.ID, stream.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	cancelled, err := ts.StreamService.Cancel(ctx, issuer.ID, stream.ID)
	require.NoError(t, err)
	assert.Equal(t, invoices.StreamCancelled, cancelled.Status)
	frozen := cancelled.StreamedAmount(time.Now().Add(time.Hour))
	assert.GreaterOrEqual(t, frozen, int64(600))
	assert.Less(t, frozen, int64(36000))

	_, err = ts.StreamService.Cancel(ctx, issuer.ID, stream.ID)
	assert.ErrorIs(t, err, apperr.ErrInvalidState)
}

func TestStreamService_Create_Rejects(t *testing.T) {
	ts := SetupTestServices(t, config.SqliteDbType)
	ctx := context.Background()
	issuer := SignInTestUser(t, ts).User
	start := time.Now().UTC()

	draft, err := ts.InvoiceService.Create(ctx, issuer.ID, TestInvoiceInput(1000))
	require.NoError(t, err)
	valid := invoices.StreamInput{
		SenderAddress: persistence.TestRecipientAddress,
		RatePerSecond: 1,
		StartTime:     start,
		StopTime:      start.Add(10 * time.Minute),
	}

	_, err = ts.StreamService.Create(ctx, issuer.ID, draft.ID, valid)
	assert.ErrorIs(t, err, apperr.ErrInvalidState)

	_, err = ts.InvoiceService.Send(ctx, issuer.ID, draft.ID)
	require.NoError(t, err)

	tests := []struct {
		name   string
		mutate func(in *invoices.StreamInput)
	}{
		{"stop before start", func(in *invoices.StreamInput) { in.StopTime = in.StartTime.Add(-time.Second) }},
		{"zero rate", func(in *invoices.StreamInput) { in.RatePerSecond = 0 }},
		{"bad sender", func(in *invoices.StreamInput) { in.SenderAddress = "0x1" }},
		{"deposit above outstanding", func(in *invoices.StreamInput) { in.StopTime = in.StartTime.Add(time.Hour) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := valid
			tt.mutate(&input)
			_, err := ts.StreamService.Create(ctx, issuer.ID, draft.ID, input)
			assert.ErrorIs(t, err, apperr.ErrValidation)
		})
	}
}
