package ratelimit

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

func TestTokenBucket_Allow(t *testing.T) {
	bucket := newTokenBucket(10, 1.0) // 10 tokens, 1 token per second

	for i := 0; i < 10; i++ {
		if !bucket.allow() {
			t.Errorf("Expected request %d to be allowed", i+1)
		}
	}

	if bucket.allow() {
		t.Error("Expected 11th request to be denied")
	}
}

func TestTokenBucket_Refill(t *testing.T) {
	bucket := newTokenBucket(2, 10.0) // 10 tokens per second

	bucket.allow()
	bucket.allow()
	if bucket.allow() {
		t.Fatal("Expected empty bucket to deny")
	}

	time.Sleep(150 * time.Millisecond)

	if !bucket.allow() {
		t.Error("Expected request to be allowed after refill")
	}
}

func TestTokenBucket_GetStatus(t *testing.T) {
	bucket := newTokenBucket(10, 1.0)

	for i := 0; i < 5; i++ {
		bucket.allow()
	}

	remaining, resetTime := bucket.getStatus()
	if remaining != 5 {
		t.Errorf("Expected 5 remaining tokens, got %d", remaining)
	}
	if !resetTime.After(time.Now()) {
		t.Error("Reset time should be in the future")
	}
}

func TestMatchEndpoint(t *testing.T) {
	configs := DefaultEndpointConfigs()

	tests := []struct {
		name      string
		path      string
		method    string
		wantPath  string
		wantLimit int
	}{
		{name: "health is unlimited", path: "/health", method: "GET", wantPath: "/health", wantLimit: 0},
		{name: "session creation", path: "/sessions", method: "POST", wantPath: "/sessions", wantLimit: 30},
		{name: "pdf export", path: "/sessions/8f14e45f/export/pdf", method: "GET", wantPath: "/sessions/{id}/export/pdf", wantLimit: 20},
		{name: "export bundle", path: "/sessions/8f14e45f/export", method: "GET", wantPath: "/sessions/{id}/export", wantLimit: 20},
		{name: "admin login", path: "/admin/login", method: "POST", wantPath: "/admin/login", wantLimit: 10},
		{name: "wizard step", path: "/sessions/8f14e45f/advance", method: "POST", wantPath: "/sessions/", wantLimit: 300},
		{name: "answer", path: "/sessions/8f14e45f/answers/objective", method: "PUT", wantPath: "/sessions/", wantLimit: 300},
		{name: "delete", path: "/sessions/8f14e45f", method: "DELETE", wantPath: "/sessions/", wantLimit: 60},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MatchEndpoint(tt.path, tt.method, configs)
			if got == nil {
				t.Fatalf("Expected a match for %s %s", tt.method, tt.path)
			}
			if got.Path != tt.wantPath {
				t.Errorf("Expected pattern %s, got %s", tt.wantPath, got.Path)
			}
			if got.Limit != tt.wantLimit {
				t.Errorf("Expected limit %d, got %d", tt.wantLimit, got.Limit)
			}
		})
	}
}

func TestMatchEndpoint_NoMatch(t *testing.T) {
	configs := DefaultEndpointConfigs()

	for _, tc := range []struct{ path, method string }{
		{"/services", "GET"},
		{"/sessions/8f14e45f/summary", "GET"},
		{"/sessions//export", "GET"},
		{"/sessions/8f14e45f/export/pdf/extra", "GET"},
		{"/admin/login", "GET"},
	} {
		if got := MatchEndpoint(tc.path, tc.method, configs); got != nil {
			t.Errorf("Expected no match for %s %s, got %s", tc.method, tc.path, got.Path)
		}
	}
}

func TestLimiter_Allow(t *testing.T) {
	limiter := NewLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  10,
		DefaultWindow: time.Minute,
	})
	defer limiter.Stop()

	for i := 0; i < 10; i++ {
		allowed, info := limiter.Allow("127.0.0.1", "/services", "GET")
		if !allowed {
			t.Errorf("Expected request %d to be allowed", i+1)
		}
		if info.Limit != 10 {
			t.Errorf("Expected limit 10, got %d", info.Limit)
		}
		if info.Remaining != 9-i {
			t.Errorf("Expected remaining %d, got %d", 9-i, info.Remaining)
		}
	}

	allowed, info := limiter.Allow("127.0.0.1", "/services", "GET")
	if allowed {
		t.Error("Expected 11th request to be denied")
	}
	if info.RetryAfter <= 0 {
		t.Error("Expected retry after to be positive")
	}

	// Another client has its own bucket
	if allowed, _ := limiter.Allow("127.0.0.2", "/services", "GET"); !allowed {
		t.Error("Expected other client to be allowed")
	}
}

func TestLimiter_SessionsShareBucket(t *testing.T) {
	limiter := NewLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  1000,
		DefaultWindow: time.Minute,
		EndpointConfigs: []EndpointConfig{
			{Path: "/sessions/{id}/export/pdf", Method: "GET", Limit: 2, Window: time.Hour, Burst: 2},
		},
	})
	defer limiter.Stop()

	for i := 0; i < 2; i++ {
		path := fmt.Sprintf("/sessions/session-%d/export/pdf", i)
		if allowed, _ := limiter.Allow("127.0.0.1", path, "GET"); !allowed {
			t.Errorf("Expected request %d to be allowed", i+1)
		}
	}

	// A fresh session id does not reset the budget
	if allowed, _ := limiter.Allow("127.0.0.1", "/sessions/session-9/export/pdf", "GET"); allowed {
		t.Error("Expected third PDF export to be denied")
	}
}

func TestLimiter_Whitelist(t *testing.T) {
	limiter := NewLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  1,
		DefaultWindow: time.Minute,
		Whitelist:     map[string]bool{"127.0.0.1": true},
	})
	defer limiter.Stop()

	for i := 0; i < 100; i++ {
		allowed, info := limiter.Allow("127.0.0.1", "/services", "GET")
		if !allowed {
			t.Errorf("Expected whitelisted request %d to be allowed", i+1)
		}
		if info.Limit != 0 {
			t.Errorf("Expected limit 0 for whitelisted, got %d", info.Limit)
		}
	}
}

func TestLimiter_Blacklist(t *testing.T) {
	limiter := NewLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  1000,
		DefaultWindow: time.Minute,
		Blacklist:     map[string]bool{"192.168.1.1": true},
	})
	defer limiter.Stop()

	if allowed, _ := limiter.Allow("192.168.1.1", "/services", "GET"); allowed {
		t.Error("Expected blacklisted request to be denied")
	}
}

func TestLimiter_Disabled(t *testing.T) {
	limiter := NewLimiter(&Config{Enabled: false})
	defer limiter.Stop()

	for i := 0; i < 100; i++ {
		allowed, info := limiter.Allow("127.0.0.1", "/sessions", "POST")
		if !allowed {
			t.Errorf("Expected request %d to be allowed when disabled", i+1)
		}
		if info.Limit != 0 {
			t.Errorf("Expected limit 0 when disabled, got %d", info.Limit)
		}
	}
}

func TestLimiter_HealthUnlimited(t *testing.T) {
	limiter := NewLimiter(&Config{
		Enabled:         true,
		DefaultLimit:    1,
		DefaultWindow:   time.Minute,
		EndpointConfigs: DefaultEndpointConfigs(),
	})
	defer limiter.Stop()

	for i := 0; i < 50; i++ {
		if allowed, _ := limiter.Allow("127.0.0.1", "/health", "GET"); !allowed {
			t.Fatalf("Expected health check %d to be allowed", i+1)
		}
	}
}

func TestLimiter_Concurrent(t *testing.T) {
	limiter := NewLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  100,
		DefaultWindow: time.Minute,
	})
	defer limiter.Stop()

	var (
		wg           sync.WaitGroup
		mu           sync.Mutex
		allowedCount int
	)

	for i := 0; i < 200; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if allowed, _ := limiter.Allow("127.0.0.1", "/services", "GET"); allowed {
				mu.Lock()
				allowedCount++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if allowedCount != 100 {
		t.Errorf("Expected 100 allowed requests, got %d", allowedCount)
	}
}

func TestLimiter_Burst(t *testing.T) {
	limiter := NewLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  10,
		DefaultWindow: time.Minute,
		EndpointConfigs: []EndpointConfig{
			{Path: "/admin/login", Method: "POST", Limit: 10, Window: time.Minute, Burst: 5},
		},
	})
	defer limiter.Stop()

	for i := 0; i < 5; i++ {
		if allowed, _ := limiter.Allow("127.0.0.1", "/admin/login", "POST"); !allowed {
			t.Errorf("Expected burst request %d to be allowed", i+1)
		}
	}

	if allowed, _ := limiter.Allow("127.0.0.1", "/admin/login", "POST"); allowed {
		t.Error("Expected request after burst to be denied")
	}
}

func TestNewLimiter_NilConfig(t *testing.T) {
	limiter := NewLimiter(nil)
	defer limiter.Stop()

	allowed, info := limiter.Allow("127.0.0.1", "/services", "GET")
	if !allowed {
		t.Error("Expected request to be allowed with default config")
	}
	if info.Limit != 600 {
		t.Errorf("Expected default limit 600, got %d", info.Limit)
	}
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("RATE_LIMIT_DEFAULT_LIMIT", "42")
	t.Setenv("RATE_LIMIT_WHITELIST", "10.0.0.1, 10.0.0.2")

	cfg := LoadConfig()
	if !cfg.Enabled {
		t.Fatal("Expected rate limiting to be enabled by default")
	}
	if cfg.DefaultLimit != 42 {
		t.Errorf("Expected default limit 42, got %d", cfg.DefaultLimit)
	}
	if !cfg.Whitelist["10.0.0.2"] || len(cfg.Whitelist) != 2 {
		t.Errorf("Unexpected whitelist %v", cfg.Whitelist)
	}

	t.Setenv("RATE_LIMIT_ENABLED", "false")
	if LoadConfig().Enabled {
		t.Error("Expected RATE_LIMIT_ENABLED=false to disable rate limiting")
	}
}
