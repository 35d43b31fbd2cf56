// Package probe checks the liveness of an Ethereum-compatible JSON-RPC
// endpoint with two dependent calls: eth_blockNumber for the current height,
// then eth_getLogs over a fixed window ending at that height for a contract
// resolved from a provider registry. Each run is stateless check-and-exit.
package probe

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	rpc "github.com/ybbus/jsonrpc/v3"
	"golang.org/x/time/rate"
)

const (
	DefaultTimeout = 10 * time.Second
	DefaultRetries = 2

	defaultRetryInterval = 500 * time.Millisecond
)

// Outcome reports a successful probe run.
type Outcome struct {
	Provider string
	Endpoint string
	Height   uint64
	Window   LogWindow
	LogCount int
	// ZeroLogs marks a valid but noteworthy run: the window held no events.
	ZeroLogs bool
	Elapsed  time.Duration
}

// Prober runs liveness checks. Safe for concurrent use; runs are isolated.
type Prober struct {
	registry      *Registry
	httpClient    *http.Client
	retries       uint64
	retryInterval time.Duration
	limiter       *rate.Limiter
}

type Option func(*Prober)

// WithRegistry replaces the default provider registry.
func WithRegistry(registry *Registry) Option {
	return func(p *Prober) { p.registry = registry }
}

// WithHTTPClient replaces the underlying HTTP client. The client's timeout
// bounds every outbound call.
func WithHTTPClient(client *http.Client) Option {
	return func(p *Prober) { p.httpClient = client }
}

// WithTimeout sets the connect/read timeout on the default HTTP client.
func WithTimeout(timeout time.Duration) Option {
	return func(p *Prober) { p.httpClient.Timeout = timeout }
}

// WithRetries bounds how many times a transport-level failure is retried.
// 0 disables retrying.
func WithRetries(retries uint64) Option {
	return func(p *Prober) { p.retries = retries }
}

// WithRetryInterval sets the initial backoff interval between retries.
func WithRetryInterval(interval time.Duration) Option {
	return func(p *Prober) { p.retryInterval = interval }
}

// WithRateLimit caps outbound requests per second across all runs of this
// Prober. 0 disables limiting.
func WithRateLimit(rps float64) Option {
	return func(p *Prober) {
		if rps > 0 {
			p.limiter = rate.NewLimiter(rate.Limit(rps), 1)
		}
	}
}

func New(options ...Option) *Prober {
	p := &Prober{
		registry:      NewRegistry(),
		httpClient:    &http.Client{Timeout: DefaultTimeout},
		retries:       DefaultRetries,
		retryInterval: defaultRetryInterval,
	}
	for _, option := range options {
		option(p)
	}
	return p
}

// Check probes endpoint on behalf of provider. The address lookup happens
// before any network call, so an unknown provider costs no requests. The
// logs call strictly depends on the height call's result; any failure along
// the way is terminal for the run.
func (p *Prober) Check(ctx context.Context, provider, endpoint string) (*Outcome, error) {
	start := time.Now()
	outcome, err := p.check(ctx, provider, endpoint)
	elapsed := time.Since(start)

	metrics := GetMetrics()
	metrics.ProbesTotal.WithLabelValues(provider, outcomeLabel(err)).Inc()
	metrics.ProbeDuration.Observe(elapsed.Seconds())

	if err != nil {
		return nil, err
	}
	outcome.Elapsed = elapsed
	return outcome, nil
}

func (p *Prober) check(ctx context.Context, provider, endpoint string) (*Outcome, error) {
	address, err := p.registry.Resolve(provider)
	if err != nil {
		return nil, err
	}

	client := rpc.NewClientWithOpts(endpoint, &rpc.RPCClientOpts{
		HTTPClient:       p.httpClient,
		DefaultRequestID: 1,
	})

	height, err := p.getHeight(ctx, client)
	if err != nil {
		return nil, fmt.Errorf("get height: %w", err)
	}

	window := NewLogWindow(height)
	log.Printf("query logs for %v in blocks %v to %v", provider, window.FromBlock(), window.ToBlock())

	logs, err := p.getLogs(ctx, client, address, window)
	if err != nil {
		return nil, fmt.Errorf("get logs: %w", err)
	}

	return &Outcome{
		Provider: provider,
		Endpoint: endpoint,
		Height:   height,
		Window:   window,
		LogCount: len(logs),
		ZeroLogs: len(logs) == 0,
	}, nil
}

// Result pairs a provider with its probe outcome or error.
type Result struct {
	Provider string
	Outcome  *Outcome
	Err      error
}

// CheckMany probes several providers against one endpoint concurrently.
// Runs share nothing but the rate limiter, so fan-out is safe. Results keep
// the order of providers.
func (p *Prober) CheckMany(ctx context.Context, providers []string, endpoint string) []Result {
	results := make([]Result, len(providers))

	var wg sync.WaitGroup
	for i, provider := range providers {
		wg.Add(1)
		go func(i int, provider string) {
			defer wg.Done()
			outcome, err := p.Check(ctx, provider, endpoint)
			results[i] = Result{Provider: provider, Outcome: outcome, Err: err}
		}(i, provider)
	}
	wg.Wait()

	return results
}
