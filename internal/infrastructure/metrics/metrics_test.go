//go:build unit
// +build unit

package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_RequestLifecycle(t *testing.T) {
	m := New()

	done := m.RequestStarted()
	assert.Equal(t, float64(1), testutil.ToFloat64(m.httpInFlight))
	done(http.MethodGet, "/api/v1/invoices", http.StatusOK)

	assert.Equal(t, float64(0), testutil.ToFloat64(m.httpInFlight))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.httpRequests.WithLabelValues(http.MethodGet, "/api/v1/invoices", "200")))
}

func TestMetrics_DomainCounters(t *testing.T) {
	m := New()

	m.InvoiceCreated()
	m.InvoiceCreated()
	m.PaymentRecorded("USDC")
	m.RateLimited("auth")
	m.SignIn(true)
	m.SignIn(false)
	m.SignIn(false)

	assert.Equal(t, float64(2), testutil.ToFloat64(m.invoicesCreated))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.paymentsRecorded.WithLabelValues("USDC")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.rateLimited.WithLabelValues("auth")))
	assert.Equal(t, float64(2), testutil.ToFloat64(m.signIns.WithLabelValues("failure")))
}

func TestMetrics_Handler(t *testing.T) {
	m := New()
	m.InvoiceCreated()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "web3_invoicing_invoices_created_total 1"))
}
