package probe

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestRunReportsReachability(t *testing.T) {
	ok := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodHead {
			t.Errorf("expected HEAD request, got %s", r.Method)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer ok.Close()

	failing := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer failing.Close()

	p := New(2*time.Second, slog.Default())
	report := p.Run(context.Background(), []string{ok.URL, failing.URL}, "localhost")

	if len(report.Endpoints) != 2 {
		t.Fatalf("expected 2 endpoint results, got %d", len(report.Endpoints))
	}

	if !report.Endpoints[0].Reachable {
		t.Errorf("endpoint %s not reported reachable: %+v", ok.URL, report.Endpoints[0])
	}
	if report.Endpoints[0].StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", report.Endpoints[0].StatusCode)
	}

	if report.Endpoints[1].Reachable {
		t.Errorf("endpoint %s reported reachable despite 503", failing.URL)
	}
	if report.Endpoints[1].StatusCode != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", report.Endpoints[1].StatusCode)
	}

	if report.DNS.Error != "" {
		t.Errorf("localhost lookup failed: %s", report.DNS.Error)
	}
	if len(report.DNS.Addresses) == 0 {
		t.Error("localhost lookup returned no addresses")
	}
}

func TestRunUnreachableEndpoint(t *testing.T) {
	// Reserved TEST-NET-1 address, nothing listens there
	p := New(500*time.Millisecond, slog.Default())
	report := p.Run(context.Background(), []string{"http://192.0.2.1"}, "")

	if len(report.Endpoints) != 1 {
		t.Fatalf("expected 1 endpoint result, got %d", len(report.Endpoints))
	}
	r := report.Endpoints[0]
	if r.Reachable {
		t.Errorf("unreachable endpoint reported reachable: %+v", r)
	}
	if r.Error == "" {
		t.Error("expected a connection error")
	}
}

func TestRunPreservesEndpointOrder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	urls := []string{srv.URL + "/a", srv.URL + "/b", srv.URL + "/c"}
	p := New(2*time.Second, slog.Default())
	report := p.Run(context.Background(), urls, "")

	for i, u := range urls {
		if report.Endpoints[i].URL != u {
			t.Errorf("result %d URL = %q, want %q", i, report.Endpoints[i].URL, u)
		}
	}
}
