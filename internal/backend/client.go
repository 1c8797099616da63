package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"auction-bidder/internal/auctionerrors"
	"auction-bidder/internal/models"
)

// API is the auction backend surface the client core depends on.
type API interface {
	FetchItems(ctx context.Context, token string) ([]models.AuctionItem, error)
	CreateBid(ctx context.Context, token, itemID string, amount float64) error
	Login(ctx context.Context, email, password string) (string, models.User, error)
	Signup(ctx context.Context, name, email, password string) error
}

// Client talks HTTP to the auction backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a backend client for the service at baseURL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// FetchItems retrieves the full item collection. The response body may be a
// bare array of items or an object wrapping an items field; both normalize to
// the same slice.
func (c *Client) FetchItems(ctx context.Context, token string) ([]models.AuctionItem, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/auctionItems", nil)
	if err != nil {
		return nil, fmt.Errorf("backend: failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("backend: %w: %v", auctionerrors.ErrNetworkUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("backend: %w: %v", auctionerrors.ErrNetworkUnavailable, err)
	}

	if err := statusError(resp.StatusCode, body); err != nil {
		return nil, err
	}

	items, err := normalizeItems(body)
	if err != nil {
		return nil, fmt.Errorf("backend: failed to decode items: %w", err)
	}
	return items, nil
}

// CreateBid submits a bid for an item. Any 2xx response counts as acceptance.
func (c *Client) CreateBid(ctx context.Context, token, itemID string, amount float64) error {
	payload := struct {
		ItemID string  `json:"itemId"`
		Amount float64 `json:"amount"`
	}{ItemID: itemID, Amount: amount}

	_, err := c.post(ctx, "/api/createBid", token, payload)
	return err
}

// Login exchanges credentials for a bearer token and user record.
func (c *Client) Login(ctx context.Context, email, password string) (string, models.User, error) {
	payload := struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}{Email: email, Password: password}

	body, err := c.post(ctx, "/api/auth/login", "", payload)
	if err != nil {
		return "", models.User{}, err
	}

	var result struct {
		Token string      `json:"token"`
		User  models.User `json:"user"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return "", models.User{}, fmt.Errorf("backend: failed to decode login response: %w", err)
	}
	return result.Token, result.User, nil
}

// Signup registers a new bidder account.
func (c *Client) Signup(ctx context.Context, name, email, password string) error {
	payload := struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}{Name: name, Email: email, Password: password}

	_, err := c.post(ctx, "/api/signup", "", payload)
	return err
}

// post dispatches a JSON POST and returns the response body on 2xx.
func (c *Client) post(ctx context.Context, path, token string, payload any) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("backend: failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("backend: failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("backend: %w: %v", auctionerrors.ErrNetworkUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("backend: %w: %v", auctionerrors.ErrNetworkUnavailable, err)
	}

	if err := statusError(resp.StatusCode, body); err != nil {
		return nil, err
	}
	return body, nil
}

// statusError maps a non-2xx status to the error taxonomy. A 401 means the
// credential expired; anything else carries the backend message when present.
func statusError(status int, body []byte) error {
	if status >= 200 && status < 300 {
		return nil
	}
	if status == http.StatusUnauthorized {
		return fmt.Errorf("backend: %w", auctionerrors.ErrAuthExpired)
	}
	return &auctionerrors.ServerError{Status: status, Message: extractMessage(body)}
}

// extractMessage pulls the optional message field out of an error body.
func extractMessage(body []byte) string {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	return payload.Message
}

// normalizeItems accepts both list response shapes and returns one
// representation.
func normalizeItems(body []byte) ([]models.AuctionItem, error) {
	var items []models.AuctionItem
	if err := json.Unmarshal(body, &items); err == nil {
		return items, nil
	}

	var wrapper struct {
		Items []models.AuctionItem `json:"items"`
	}
	if err := json.Unmarshal(body, &wrapper); err != nil {
		return nil, err
	}
	return wrapper.Items, nil
}
