package advisor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/avinashingale116-sys/mydeal/internal/config"
	"github.com/avinashingale116-sys/mydeal/internal/domain"
	apperrors "github.com/avinashingale116-sys/mydeal/pkg/util"
)

// Request carries the context the advisor prices against.
type Request struct {
	Title         string            `json:"title"`
	MarketPrice   domain.PriceRange `json:"market_price"`
	CompetingBids []int64           `json:"competing_bids"`
}

// Suggestion is the advisor's output. Purely advisory; it never reaches the
// store on its own.
type Suggestion struct {
	SuggestedPrice int64   `json:"suggested_price"`
	Reasoning      string  `json:"reasoning"`
	WinProbability float64 `json:"win_probability"`
}

// Client calls the external bid-pricing advisor.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient constructs the advisor client.
func NewClient(cfg config.AdvisorConfig) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    &http.Client{Timeout: cfg.Timeout()},
	}
}

// Suggest returns a pricing suggestion or reports "no result".
func (c *Client) Suggest(ctx context.Context, input Request) (*Suggestion, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, apperrors.NewValidationError("title required", nil)
	}
	if c.baseURL == "" {
		return nil, apperrors.NewUpstreamUnavailable("bid-pricing advisor", nil)
	}

	body, err := json.Marshal(input)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/suggestions", bytes.NewReader(body))
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, apperrors.NewUpstreamUnavailable("bid-pricing advisor", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apperrors.NewUpstreamUnavailable("bid-pricing advisor",
			fmt.Errorf("status %d", resp.StatusCode))
	}

	var suggestion Suggestion
	if err := json.NewDecoder(resp.Body).Decode(&suggestion); err != nil {
		return nil, apperrors.NewUpstreamUnavailable("bid-pricing advisor", err)
	}
	if suggestion.SuggestedPrice <= 0 {
		return nil, apperrors.NewUpstreamUnavailable("bid-pricing advisor",
			fmt.Errorf("non-positive suggested price %d", suggestion.SuggestedPrice))
	}
	return &suggestion, nil
}
