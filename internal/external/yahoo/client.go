package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/wonny/kabuscan/pkg/httputil"
	"github.com/wonny/kabuscan/pkg/logger"
)

// Client handles communication with the Yahoo Finance query API.
// 財務諸表・株価のAPI呼び出しはこのクライアントでのみ行う
type Client struct {
	httpClient *httputil.Client
	logger     *logger.Logger
	baseURL    string
	sparkURL   string
}

// NewClient creates a new Yahoo Finance client.
func NewClient(httpClient *httputil.Client, log *logger.Logger) *Client {
	return &Client{
		httpClient: httpClient,
		logger:     log,
		baseURL:    "https://query2.finance.yahoo.com",
		sparkURL:   "https://query1.finance.yahoo.com",
	}
}

// getJSON fetches a URL and decodes the JSON body into out.
func (c *Client) getJSON(ctx context.Context, url string, out interface{}) error {
	resp, err := c.httpClient.Get(ctx, url)
	if err != nil {
		return fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}
