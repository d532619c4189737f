package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	v1 "github.com/MGTheTrain/web3-invoicing/internal/api/rest/v1"
)

const maxErrorBodyBytes = 4096

// apiClient calls the sign-in endpoints of a running invoicing API
type apiClient struct {
	baseURL    string
	httpClient *http.Client
}

func newAPIClient(baseURL string, timeout time.Duration) *apiClient {
	return &apiClient{
		baseURL:    strings.TrimRight(baseURL, "/") + v1.BasePath,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Nonce requests a sign-in challenge for address
func (c *apiClient) Nonce(ctx context.Context, address string) (*v1.ChallengeResponse, error) {
	endpoint := c.baseURL + "/auth/nonce?" + url.Values{"address": {address}}.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build nonce request: %w", err)
	}

	var challenge v1.ChallengeResponse
	if err := c.do(req, http.StatusOK, &challenge); err != nil {
		return nil, fmt.Errorf("nonce request failed: %w", err)
	}
	return &challenge, nil
}

// SignIn exchanges a signed challenge for a session
func (c *apiClient) SignIn(ctx context.Context, request v1.SignInRequest) (*v1.SessionResponse, error) {
	body, err := json.Marshal(request)
	if err != nil {
		return nil, fmt.Errorf("failed to encode sign-in request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/auth", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build sign-in request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	var session v1.SessionResponse
	if err := c.do(req, http.StatusOK, &session); err != nil {
		return nil, fmt.Errorf("sign-in failed: %w", err)
	}
	return &session, nil
}

func (c *apiClient) do(req *http.Request, expected int, out interface{}) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != expected {
		var apiErr v1.ErrorResponse
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		if json.Unmarshal(raw, &apiErr) == nil && apiErr.Message != "" {
			return fmt.Errorf("status %d: %s", resp.StatusCode, apiErr.Message)
		}
		return fmt.Errorf("status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
