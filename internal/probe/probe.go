// Package probe exercises DNS resolution and HTTP reachability against a
// set of endpoints without mutating any system state.
package probe

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"
)

const probeMaxWorkers = 10

// EndpointResult holds the outcome of a single HTTP reachability check.
type EndpointResult struct {
	URL        string `json:"url"`
	Reachable  bool   `json:"reachable"`
	StatusCode int    `json:"status_code,omitempty"`
	LatencyMs  int    `json:"latency_ms"`
	Error      string `json:"error,omitempty"`
}

// DNSResult holds the outcome of the DNS lookup check.
type DNSResult struct {
	Host      string   `json:"host"`
	Addresses []string `json:"addresses,omitempty"`
	Error     string   `json:"error,omitempty"`
}

// Report aggregates one probe run. Results are informational only and
// never affect the process exit code.
type Report struct {
	Endpoints []EndpointResult `json:"endpoints"`
	DNS       DNSResult        `json:"dns"`
}

// Prober checks endpoint reachability with header-only requests.
type Prober struct {
	client   *http.Client
	resolver *net.Resolver
	timeout  time.Duration
	logger   *slog.Logger
}

// New creates a Prober with a per-request timeout.
func New(timeout time.Duration, logger *slog.Logger) *Prober {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Prober{
		client:   newHTTPClient(timeout),
		resolver: net.DefaultResolver,
		timeout:  timeout,
		logger:   logger,
	}
}

// newHTTPClient creates an HTTP client with conservative transport limits
// for probing untrusted, possibly filtered endpoints.
func newHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			DialContext:           (&net.Dialer{Timeout: timeout}).DialContext,
			TLSHandshakeTimeout:   timeout,
			ResponseHeaderTimeout: timeout,
			IdleConnTimeout:       90 * time.Second,
			MaxIdleConns:          probeMaxWorkers,
		},
	}
}

// Run checks every endpoint concurrently, then resolves host once.
func (p *Prober) Run(ctx context.Context, endpoints []string, host string) Report {
	report := Report{Endpoints: p.checkEndpoints(ctx, endpoints)}
	if host != "" {
		report.DNS = p.lookup(ctx, host)
	}
	return report
}

// checkEndpoints performs concurrent HTTP HEAD requests, bounded by a
// worker semaphore.
func (p *Prober) checkEndpoints(ctx context.Context, endpoints []string) []EndpointResult {
	results := make([]EndpointResult, len(endpoints))
	sem := make(chan struct{}, probeMaxWorkers)
	var wg sync.WaitGroup

	for i, u := range endpoints {
		wg.Add(1)
		go func(idx int, url string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			reqCtx, cancel := context.WithTimeout(ctx, p.timeout)
			defer cancel()

			req, err := http.NewRequestWithContext(reqCtx, http.MethodHead, url, nil)
			if err != nil {
				results[idx] = EndpointResult{URL: url, Error: err.Error()}
				return
			}
			req.Header.Set("User-Agent", "netfix/1.0")

			start := time.Now()
			resp, err := p.client.Do(req)
			elapsed := time.Since(start)

			if err != nil {
				results[idx] = EndpointResult{URL: url, LatencyMs: int(elapsed.Milliseconds()), Error: err.Error()}
				return
			}
			resp.Body.Close()

			results[idx] = EndpointResult{
				URL:        url,
				Reachable:  resp.StatusCode < 400,
				StatusCode: resp.StatusCode,
				LatencyMs:  int(elapsed.Milliseconds()),
			}
		}(i, u)
	}

	wg.Wait()
	return results
}

// lookup resolves host once with the probe timeout.
func (p *Prober) lookup(ctx context.Context, host string) DNSResult {
	lookupCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	addrs, err := p.resolver.LookupHost(lookupCtx, host)
	if err != nil {
		return DNSResult{Host: host, Error: err.Error()}
	}
	return DNSResult{Host: host, Addresses: addrs}
}
