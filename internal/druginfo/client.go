// Package druginfo queries the openFDA drug label registry for
// medication information. It is a read-only collaborator of the
// assistant; lookups go through a circuit breaker so a degraded
// registry fails fast instead of hanging every prompt.
package druginfo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/wellca/wellbot/internal/observability/metrics"
	"github.com/wellca/wellbot/pkg/circuitbreaker"
)

// ErrNotFound indicates the registry has no label for the medication.
var ErrNotFound = errors.New("medication not found in registry")

// ErrUnavailable indicates the registry is down or the circuit is open.
var ErrUnavailable = errors.New("drug information registry unavailable")

// Label is the subset of an openFDA drug label the assistant displays.
type Label struct {
	BrandName               string
	Manufacturer            string
	DosageAndAdministration []string
	Warnings                []string
	IndicationsAndUsage     []string
	DrugInteractions        []string
}

type labelResponse struct {
	Results []struct {
		DosageAndAdministration []string `json:"dosage_and_administration"`
		Warnings                []string `json:"warnings"`
		IndicationsAndUsage     []string `json:"indications_and_usage"`
		DrugInteractions        []string `json:"drug_interactions"`
		OpenFDA                 struct {
			BrandName        []string `json:"brand_name"`
			ManufacturerName []string `json:"manufacturer_name"`
		} `json:"openfda"`
	} `json:"results"`
}

// Client fetches drug labels from the registry.
type Client struct {
	baseURL string
	http    *http.Client
	breaker *circuitbreaker.CircuitBreaker
	metrics *metrics.Metrics
	logger  *zap.Logger
}

// NewClient creates a registry client. baseURL is the registry root,
// e.g. https://api.fda.gov.
func NewClient(baseURL string, timeout time.Duration, m *metrics.Metrics, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	if m == nil {
		m = metrics.New(nil)
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		breaker: circuitbreaker.New(circuitbreaker.DefaultConfig("drug-registry"), logger),
		metrics: m,
		logger:  logger,
	}
}

// FetchLabel retrieves the label for a medication by brand name.
// A registry with no matching label yields ErrNotFound; transport
// failures and open-circuit rejections yield ErrUnavailable.
func (c *Client) FetchLabel(ctx context.Context, medicationName string) (*Label, error) {
	result, err := c.breaker.Execute(func() (interface{}, error) {
		return c.fetch(ctx, medicationName)
	})
	if err != nil {
		if circuitbreaker.IsOpenError(err) {
			c.metrics.RegistryLookups.WithLabelValues("rejected").Inc()
			return nil, ErrUnavailable
		}
		c.metrics.RegistryLookups.WithLabelValues("error").Inc()
		c.logger.Warn("registry lookup failed",
			zap.String("medication", medicationName), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	label, ok := result.(*Label)
	if !ok || label == nil {
		c.metrics.RegistryLookups.WithLabelValues("not_found").Inc()
		return nil, ErrNotFound
	}
	c.metrics.RegistryLookups.WithLabelValues("ok").Inc()
	return label, nil
}

// fetch performs one registry request. A 404 or empty result set is a
// successful call with a nil label, so it never trips the breaker.
func (c *Client) fetch(ctx context.Context, medicationName string) (*Label, error) {
	query := url.Values{}
	query.Set("search", fmt.Sprintf("openfda.brand_name:%q", medicationName))
	query.Set("limit", "1")

	endpoint := fmt.Sprintf("%s/drug/label.json?%s", c.baseURL, query.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build registry request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("registry request: %w", err)
	}
	defer resp.Body.Close()

	// openFDA answers 404 for searches with no hits.
	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("registry returned status %d", resp.StatusCode)
	}

	var body labelResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode registry response: %w", err)
	}
	if len(body.Results) == 0 {
		return nil, nil
	}

	r := body.Results[0]
	label := &Label{
		DosageAndAdministration: r.DosageAndAdministration,
		Warnings:                r.Warnings,
		IndicationsAndUsage:     r.IndicationsAndUsage,
		DrugInteractions:        r.DrugInteractions,
	}
	if len(r.OpenFDA.BrandName) > 0 {
		label.BrandName = r.OpenFDA.BrandName[0]
	}
	if len(r.OpenFDA.ManufacturerName) > 0 {
		label.Manufacturer = r.OpenFDA.ManufacturerName[0]
	}
	return label, nil
}
