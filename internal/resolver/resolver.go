package resolver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/avinashingale116-sys/mydeal/internal/config"
	"github.com/avinashingale116-sys/mydeal/internal/domain"
	"github.com/avinashingale116-sys/mydeal/internal/persistence"
	apperrors "github.com/avinashingale116-sys/mydeal/pkg/util"
)

// ProductSpecification is the structured description the resolver returns
// for a free-text product query. Content is untrusted until Validate passes.
type ProductSpecification struct {
	Title                string            `json:"title"`
	Category             string            `json:"category"`
	Specs                map[string]string `json:"specs"`
	EstimatedMarketPrice domain.PriceRange `json:"estimated_market_price"`
	SuggestedMaxBudget   int64             `json:"suggested_max_budget"`
}

// Validate range-checks the numeric fields before the specification may seed
// a requirement.
func (s *ProductSpecification) Validate() error {
	if strings.TrimSpace(s.Title) == "" || strings.TrimSpace(s.Category) == "" {
		return apperrors.NewValidationError("resolver returned empty title or category", nil)
	}
	if !s.EstimatedMarketPrice.Valid() {
		return apperrors.NewValidationError("resolver price range invalid", map[string]any{
			"min": s.EstimatedMarketPrice.Min,
			"max": s.EstimatedMarketPrice.Max,
		})
	}
	if s.SuggestedMaxBudget <= 0 {
		return apperrors.NewValidationError("resolver suggested budget invalid", nil)
	}
	return nil
}

// Client calls the external specification resolver. Resolution never touches
// the store: a result either arrives and is offered for confirmation, or
// does not, with no side effect either way.
type Client struct {
	baseURL string
	http    *http.Client
	cache   *persistence.Redis
	ttl     time.Duration
	logger  *zap.Logger
}

// NewClient constructs the resolver client. The Redis cache is optional and
// degrades to direct calls when unreachable.
func NewClient(cfg config.ResolverConfig, cache *persistence.Redis, logger *zap.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    &http.Client{Timeout: cfg.Timeout()},
		cache:   cache,
		ttl:     cfg.CacheTTL,
		logger:  logger,
	}
}

// Resolve turns a free-text product description into a validated
// specification, or reports "no result".
func (c *Client) Resolve(ctx context.Context, query string) (*ProductSpecification, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, apperrors.NewValidationError("product description required", nil)
	}
	if c.baseURL == "" {
		return nil, apperrors.NewUpstreamUnavailable("specification resolver", nil)
	}

	if spec := c.cached(ctx, query); spec != nil {
		return spec, nil
	}

	body, err := json.Marshal(map[string]string{"query": query})
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/specifications", bytes.NewReader(body))
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, apperrors.NewUpstreamUnavailable("specification resolver", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apperrors.NewUpstreamUnavailable("specification resolver",
			fmt.Errorf("status %d", resp.StatusCode))
	}

	var spec ProductSpecification
	if err := json.NewDecoder(resp.Body).Decode(&spec); err != nil {
		return nil, apperrors.NewUpstreamUnavailable("specification resolver", err)
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	c.store(ctx, query, &spec)
	return &spec, nil
}

func (c *Client) cached(ctx context.Context, query string) *ProductSpecification {
	if c.cache == nil || c.cache.Client == nil {
		return nil
	}
	raw, err := c.cache.Client.Get(ctx, cacheKey(query)).Bytes()
	if err != nil {
		return nil
	}
	var spec ProductSpecification
	if err := json.Unmarshal(raw, &spec); err != nil {
		return nil
	}
	if err := spec.Validate(); err != nil {
		return nil
	}
	return &spec
}

func (c *Client) store(ctx context.Context, query string, spec *ProductSpecification) {
	if c.cache == nil || c.cache.Client == nil {
		return
	}
	raw, err := json.Marshal(spec)
	if err != nil {
		return
	}
	if err := c.cache.Client.Set(ctx, cacheKey(query), raw, c.ttl).Err(); err != nil {
		c.logger.Debug("resolver cache write failed", zap.Error(err))
	}
}

func cacheKey(query string) string {
	return "resolver:spec:" + strings.ToLower(query)
}
