package config

import (
	"testing"
	"time"
)

func TestLoadRateLimitConfigDefaults(t *testing.T) {
	cfg := LoadRateLimitConfig()
	if !cfg.Enabled {
		t.Error("Enabled = false, want true by default")
	}
	if cfg.Capacity != 60 {
		t.Errorf("Capacity = %d, want 60", cfg.Capacity)
	}
	if cfg.RefillInterval != time.Second {
		t.Errorf("RefillInterval = %v, want 1s", cfg.RefillInterval)
	}
	if cfg.TTL < 5*cfg.RefillInterval {
		t.Errorf("TTL = %v, want at least 5x refill interval", cfg.TTL)
	}
}

func TestLoadRateLimitConfigClamps(t *testing.T) {
	t.Setenv("RATE_LIMIT_CAPACITY", "-10")
	t.Setenv("RATE_LIMIT_REFILL_TOKENS", "0")
	t.Setenv("RATE_LIMIT_TTL", "1s")
	t.Setenv("RATE_LIMIT_REFILL_INTERVAL", "2s")

	cfg := LoadRateLimitConfig()
	if cfg.Capacity != 1 {
		t.Errorf("Capacity = %d, want clamp to 1", cfg.Capacity)
	}
	if cfg.RefillTokens != 1 {
		t.Errorf("RefillTokens = %d, want clamp to 1", cfg.RefillTokens)
	}
	if want := 10 * time.Second; cfg.TTL != want {
		t.Errorf("TTL = %v, want %v (5x interval)", cfg.TTL, want)
	}
}

func TestLoadRateLimitConfigBurstOverride(t *testing.T) {
	t.Setenv("RATE_LIMIT_BURST", "120")
	if got := LoadRateLimitConfig().Capacity; got != 120 {
		t.Errorf("Capacity = %d, want 120 from RATE_LIMIT_BURST", got)
	}
}

func TestParseMethods(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{name: "single", in: "GET", want: []string{"GET"}},
		{name: "mixed case with spaces", in: "get, Head ", want: []string{"GET", "HEAD"}},
		{name: "empty entries dropped", in: ",GET,,", want: []string{"GET"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := parseMethods(tt.in)
			if len(m) != len(tt.want) {
				t.Fatalf("parseMethods(%q) has %d entries, want %d", tt.in, len(m), len(tt.want))
			}
			for _, w := range tt.want {
				if !m[w] {
					t.Errorf("parseMethods(%q) missing %q", tt.in, w)
				}
			}
		})
	}
}

func TestEnvDur(t *testing.T) {
	t.Setenv("SOME_DURATION", "90s")
	if got := envDur("SOME_DURATION", time.Minute); got != 90*time.Second {
		t.Errorf("envDur = %v, want 90s", got)
	}
	t.Setenv("SOME_DURATION", "not-a-duration")
	if got := envDur("SOME_DURATION", time.Minute); got != time.Minute {
		t.Errorf("envDur fallback = %v, want 1m", got)
	}
}
