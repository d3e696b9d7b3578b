package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const defaultRequestTimeout = 15 * time.Second

// Client is a thin wrapper around the banking API. It owns request building,
// bearer-token propagation and error normalization; it performs a single
// attempt per call with no retry or backoff.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *slog.Logger
}

// New builds an API client for the given base URL.
func New(baseURL string, logger *slog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: defaultRequestTimeout},
		logger:  logger,
	}
}

// do issues one request and decodes the JSON response into out (when non-nil).
// Non-2xx statuses become *APIError; transport failures are wrapped as-is.
func (c *Client) do(ctx context.Context, method, path, token string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode}
		var remote struct {
			Error string `json:"error"`
		}
		if err := json.Unmarshal(raw, &remote); err == nil && remote.Error != "" {
			apiErr.Message = remote.Error
		} else {
			apiErr.Message = fmt.Sprintf("HTTP error! status: %d", resp.StatusCode)
		}
		if c.logger != nil {
			c.logger.Warn("api request rejected",
				slog.String("method", method),
				slog.String("path", path),
				slog.Int("status", resp.StatusCode),
			)
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// Register creates a new user account.
func (c *Client) Register(ctx context.Context, in RegisterInput) (RegisterResult, error) {
	var res RegisterResult
	err := c.do(ctx, http.MethodPost, "/auth/register", "", in, &res)
	return res, err
}

// Login checks credentials and triggers OTP issuance.
func (c *Client) Login(ctx context.Context, in LoginInput) (LoginResult, error) {
	var res LoginResult
	err := c.do(ctx, http.MethodPost, "/auth/login", "", in, &res)
	return res, err
}

// VerifyOTP completes the login, exchanging the passcode for a token.
func (c *Client) VerifyOTP(ctx context.Context, in VerifyInput) (VerifyResult, error) {
	var res VerifyResult
	err := c.do(ctx, http.MethodPost, "/auth/verify-otp", "", in, &res)
	return res, err
}

// ResendOTP requests a fresh passcode for the account.
func (c *Client) ResendOTP(ctx context.Context, accountNumber string) (LoginResult, error) {
	var res LoginResult
	err := c.do(ctx, http.MethodPost, "/auth/resend-otp", "", map[string]string{"account_number": accountNumber}, &res)
	return res, err
}

// Dashboard fetches the aggregate dashboard snapshot.
func (c *Client) Dashboard(ctx context.Context, token string) (Snapshot, error) {
	var res Snapshot
	err := c.do(ctx, http.MethodGet, "/dashboard/me", token, nil, &res)
	return res, err
}

// Transactions fetches one page of the transaction history. txType filters by
// "credit" or "debit"; empty means all types.
func (c *Client) Transactions(ctx context.Context, token string, page, limit int, txType string) (TransactionPage, error) {
	params := url.Values{}
	params.Set("page", strconv.Itoa(page))
	params.Set("limit", strconv.Itoa(limit))
	if txType != "" {
		params.Set("type", txType)
	}

	var res TransactionPage
	err := c.do(ctx, http.MethodGet, "/dashboard/transactions?"+params.Encode(), token, nil, &res)
	return res, err
}

// AccountSummary fetches the standalone balance summary.
func (c *Client) AccountSummary(ctx context.Context, token string) (AccountSummary, error) {
	var res AccountSummary
	err := c.do(ctx, http.MethodGet, "/dashboard/account-summary", token, nil, &res)
	return res, err
}

// Ping probes the API root for reachability. Used by the health endpoint only.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}
