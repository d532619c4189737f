//go:build integration
// +build integration

package app

import (
	"bytes"
	"context"
	"testing"

	"github.com/MGTheTrain/web3-invoicing/internal/domain/apperr"
	"github.com/MGTheTrain/web3-invoicing/internal/domain/users"
	"github.com/MGTheTrain/web3-invoicing/internal/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocumentService_RenderPDF(t *testing.T) {
	ts := SetupTestServices(t, config.SqliteDbType)
	ctx := context.Background()
	issuer := SignInTestUser(t, ts).User

	_, err := ts.ProfileService.Update(ctx, issuer.ID, users.ProfileUpdate{DisplayName: "Satoshi", Company: "Nakamoto Consulting"})
	require.NoError(t, err)

	inv, err := ts.InvoiceService.Create(ctx, issuer.ID, TestInvoiceInput(123456))
	require.NoError(t, err)

	doc, err := ts.DocumentService.RenderPDF(ctx, issuer.ID, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, "invoice-inv-000001-acme-corp.pdf", doc.FileName)
	assert.Equal(t, "application/pdf", doc.ContentType)
	assert.True(t, bytes.HasPrefix(doc.Content, []byte("%PDF-")))

	_, err = ts.DocumentService.RenderPublicPDF(ctx, inv.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound, "drafts are not public")

	_, err = ts.InvoiceService.Send(ctx, issuer.ID, inv.ID)
	require.NoError(t, err)
	public, err := ts.DocumentService.RenderPublicPDF(ctx, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, doc.FileName, public.FileName)

	stranger := SignInTestUser(t, ts).User
	_, err = ts.DocumentService.RenderPDF(ctx, stranger.ID, inv.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}
