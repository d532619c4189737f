//go:build unit
// +build unit

package v1

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MGTheTrain/web3-invoicing/internal/domain/invoices"
	"github.com/MGTheTrain/web3-invoicing/internal/domain/users"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

const (
	testUserID    = "6f1c2d4e-8a9b-4c3d-9e2f-1a2b3c4d5e6f"
	testInvoiceID = "0b7e4f3a-2c1d-4e5f-8a9b-0c1d2e3f4a5b"
	testContactID = "a1b2c3d4-e5f6-4a7b-8c9d-0e1f2a3b4c5d"
	testWallet    = "0x52908400098527886e0f7030069857d2e4169ee7"
	testRecipient = "0x8617e340b3d01fa5f11f306f4090fd50e238070d"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testUser() *users.User {
	return &users.User{
		ID:            testUserID,
		WalletAddress: testWallet,
		CreatedAt:     time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

// newTestContext builds a gin test context for method and url with an optional JSON body
func newTestContext(t *testing.T, method, url string, body interface{}) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		switch b := body.(type) {
		case string:
			reader = bytes.NewBufferString(b)
		default:
			encoded, err := json.Marshal(b)
			require.NoError(t, err)
			reader = bytes.NewReader(encoded)
		}
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, url, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	return c, w
}

// asUser attaches the test user like RequireAuth does
func asUser(c *gin.Context) *gin.Context {
	c.Set(userContextKey, testUser())
	return c
}

func withParam(c *gin.Context, key, value string) *gin.Context {
	c.Params = append(c.Params, gin.Param{Key: key, Value: value})
	return c
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func testInvoice(status invoices.Status) *invoices.Invoice {
	inv := &invoices.Invoice{
		ID:               testInvoiceID,
		IssuerID:         testUserID,
		IssuerAddress:    testWallet,
		Number:           "INV-000001",
		RecipientName:    "Acme Corp",
		RecipientAddress: testRecipient,
		Currency:         "USDC",
		ChainID:          1,
		Status:           status,
		IssueDate:        time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		DueDate:          time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC),
		TaxRateBps:       1000,
		Items: []invoices.LineItem{
			{Description: "Consulting", Quantity: 2, UnitPrice: 5000},
		},
		CreatedAt: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
	}
	if err := inv.Recalculate(); err != nil {
		panic(err)
	}
	return inv
}

func assertStatus(t *testing.T, w *httptest.ResponseRecorder, want int) {
	t.Helper()
	require.Equal(t, want, w.Code, "body: %s", w.Body.String())
}

// fixClock pins the response clock for the duration of the test
func fixClock(t *testing.T, now time.Time) {
	t.Helper()
	previous := clock
	clock = func() time.Time { return now }
	t.Cleanup(func() { clock = previous })
}
