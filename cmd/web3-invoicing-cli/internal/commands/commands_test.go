//go:build unit
// +build unit

package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	v1 "github.com/MGTheTrain/web3-invoicing/internal/api/rest/v1"
	"github.com/MGTheTrain/web3-invoicing/internal/infrastructure/cryptography"
	"github.com/MGTheTrain/web3-invoicing/internal/pkg/testutil"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPrivateKey = "0x4c0883a69102937d6231471b5dbb6204fe5129617082792ae468d01a3f362318"

func newTestAuthHandler(t *testing.T) *AuthCommandHandler {
	t.Helper()
	log := testutil.SetupTestLogger(t)
	processor, err := cryptography.NewWalletProcessor(log)
	require.NoError(t, err)
	return &AuthCommandHandler{walletProcessor: processor, logger: log}
}

// fakeAuthAPI issues a fixed challenge and accepts only signatures recovering to the requested address
func fakeAuthAPI(t *testing.T, processor cryptography.WalletProcessor) *httptest.Server {
	t.Helper()
	const message = "localhost wants you to sign in with your Ethereum account"
	var requested string

	mux := http.NewServeMux()
	mux.HandleFunc(v1.BasePath+"/auth/nonce", func(w http.ResponseWriter, r *http.Request) {
		requested = r.URL.Query().Get("address")
		_ = json.NewEncoder(w).Encode(v1.ChallengeResponse{Address: requested, Nonce: "n1", Message: message})
	})
	mux.HandleFunc(v1.BasePath+"/auth", func(w http.ResponseWriter, r *http.Request) {
		var request v1.SignInRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&request))
		signer, err := processor.RecoverAddress([]byte(request.Message), request.Signature)
		if err != nil || !strings.EqualFold(signer, requested) {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(v1.ErrorResponse{Message: "invalid signature"})
			return
		}
		_ = json.NewEncoder(w).Encode(v1.SessionResponse{
			Token:     "jwt-token",
			TokenType: "Bearer",
			User:      v1.UserResponse{WalletAddress: signer},
		})
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func TestLogin_SignsChallenge(t *testing.T) {
	handler := newTestAuthHandler(t)
	server := fakeAuthAPI(t, handler.walletProcessor)

	privateKey, err := cryptography.ParsePrivateKey(testPrivateKey)
	require.NoError(t, err)

	session, err := handler.login(context.Background(), newAPIClient(server.URL, 5*time.Second), privateKey)
	require.NoError(t, err)
	assert.Equal(t, "jwt-token", session.Token)
	assert.Equal(t, "0x2c7536e3605d9c16a7a3d7b1898e529396a65c23", session.User.WalletAddress)
}

func TestAPIClient_SurfacesErrorMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_ = json.NewEncoder(w).Encode(v1.ErrorResponse{Message: "rate limit exceeded"})
	}))
	t.Cleanup(server.Close)

	_, err := newAPIClient(server.URL+"/", time.Second).Nonce(context.Background(), "0xabc")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 429: rate limit exceeded")
}

func TestWalletCommands_NewThenAddress(t *testing.T) {
	log := testutil.SetupTestLogger(t)
	processor, err := cryptography.NewWalletProcessor(log)
	require.NoError(t, err)
	handler := &WalletCommandHandler{walletProcessor: processor, logger: log}

	keyFile := filepath.Join(t.TempDir(), "wallet.key")
	run := func(fn func(*cobra.Command, []string)) string {
		cmd := &cobra.Command{}
		cmd.Flags().String("key-file", keyFile, "")
		var out bytes.Buffer
		cmd.SetOut(&out)
		fn(cmd, nil)
		return strings.TrimSpace(out.String())
	}

	created := run(handler.NewWalletCmd)
	require.Len(t, created, 42)
	assert.Equal(t, created, run(handler.AddressCmd))
}

func TestWalletSignCmd_FromFile(t *testing.T) {
	log := testutil.SetupTestLogger(t)
	processor, err := cryptography.NewWalletProcessor(log)
	require.NoError(t, err)
	handler := &WalletCommandHandler{walletProcessor: processor, logger: log}

	dir := t.TempDir()
	keyFile := filepath.Join(dir, "wallet.key")
	inputFile := filepath.Join(dir, "challenge.txt")
	require.NoError(t, testutil.CreateTestFile(keyFile, []byte(testPrivateKey)))
	require.NoError(t, testutil.CreateTestFile(inputFile, []byte("Some data")))

	cmd := &cobra.Command{}
	cmd.Flags().String("key-file", keyFile, "")
	cmd.Flags().String("message", "", "")
	cmd.Flags().String("input-file", inputFile, "")
	var out bytes.Buffer
	cmd.SetOut(&out)

	handler.SignCmd(cmd, nil)

	signature := strings.TrimSpace(out.String())
	signer, err := processor.RecoverAddress([]byte("Some data"), signature)
	require.NoError(t, err)
	assert.Equal(t, "0x2c7536e3605d9c16a7a3d7b1898e529396a65c23", signer)
}

func TestInvoiceHashCmd(t *testing.T) {
	root := &cobra.Command{Use: "root"}
	require.NoError(t, InitInvoiceCommands(root))
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{
		"invoice", "hash",
		"--issuer", "0x2C7536E3605D9C16A7A3D7B1898E529396A65C23",
		"--recipient", "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed",
		"--total", "11000",
		"--currency", "usdc",
		"--due-date", "2026-03-31",
		"--number", "INV-0001",
	})
	require.NoError(t, root.Execute())

	hash := strings.TrimSpace(out.String())
	assert.Regexp(t, "^0x[0-9a-f]{64}$", hash)
}

func TestCommitmentFieldsFromFlags_RejectsBadDate(t *testing.T) {
	cmd := &cobra.Command{}
	for _, name := range []string{"issuer", "recipient", "currency", "number"} {
		cmd.Flags().String(name, "", "")
	}
	cmd.Flags().Int64("total", 1, "")
	cmd.Flags().String("due-date", "31.03.2026", "")

	_, err := commitmentFieldsFromFlags(cmd)
	assert.Error(t, err)
}

func TestResolveAPIURL(t *testing.T) {
	t.Setenv(apiURLEnv, "http://api.internal:9000")
	assert.Equal(t, "http://flag:1", resolveAPIURL("http://flag:1"))
	assert.Equal(t, "http://api.internal:9000", resolveAPIURL(""))
}
