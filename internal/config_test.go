package internal

import (
	"strings"
	"testing"
)

func TestAuthConfig_DisabledMode(t *testing.T) {
	cfg := AuthConfig{Mode: "disabled", Token: ""}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("disabled mode should pass: %v", err)
	}
	if cfg.AuthEnabled() {
		t.Error("disabled mode should not be enabled")
	}
}

func TestAuthConfig_EmptyModeDefaultsDisabled(t *testing.T) {
	cfg := AuthConfig{Mode: "", Token: ""}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("empty mode should default to disabled: %v", err)
	}
	if cfg.Mode != AuthModeDisabled {
		t.Errorf("mode = %q, want %q", cfg.Mode, AuthModeDisabled)
	}
}

func TestAuthConfig_TokenModeValid(t *testing.T) {
	cfg := AuthConfig{Mode: "token", Token: "mysecret"}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("token mode with token should pass: %v", err)
	}
	if !cfg.AuthEnabled() {
		t.Error("token mode should be enabled")
	}
}

func TestAuthConfig_TokenModeEmptyToken(t *testing.T) {
	cfg := AuthConfig{Mode: "token", Token: ""}
	err := cfg.Validate()
	if err == nil {
		t.Fatal("token mode with empty token should fail")
	}
	if !strings.Contains(err.Error(), "token is empty") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestAuthConfig_InvalidMode(t *testing.T) {
	cfg := AuthConfig{Mode: "magic", Token: "x"}
	if err := cfg.Validate(); err == nil {
		t.Fatal("invalid mode should fail validation")
	}
}

func TestSearchConfig_Defaults(t *testing.T) {
	cfg := NewDefaultConfig()
	if err := cfg.Search.Validate(); err != nil {
		t.Fatalf("default search config should pass: %v", err)
	}
	if cfg.Search.CacheTTLMinutes != 60 {
		t.Errorf("cache ttl = %d, want 60", cfg.Search.CacheTTLMinutes)
	}
	if cfg.Search.SnippetLength != 150 {
		t.Errorf("snippet length = %d, want 150", cfg.Search.SnippetLength)
	}
}

func TestSearchConfig_Bounds(t *testing.T) {
	tests := []struct {
		name string
		cfg  SearchConfig
		ok   bool
	}{
		{"valid", SearchConfig{CacheTTLMinutes: 30, SnippetLength: 200, TaskQueueSize: 16}, true},
		{"zero ttl", SearchConfig{CacheTTLMinutes: 0, SnippetLength: 150, TaskQueueSize: 16}, false},
		{"snippet too short", SearchConfig{CacheTTLMinutes: 60, SnippetLength: 5, TaskQueueSize: 16}, false},
		{"snippet too long", SearchConfig{CacheTTLMinutes: 60, SnippetLength: 5000, TaskQueueSize: 16}, false},
		{"zero queue", SearchConfig{CacheTTLMinutes: 60, SnippetLength: 150, TaskQueueSize: 0}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.ok && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if !tt.ok && err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestFullConfig_SectionValidationCalled(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Auth.Mode = "token"
	cfg.Auth.Token = ""
	if err := cfg.Validate(); err == nil {
		t.Fatal("full config validate should catch auth error")
	}

	cfg = NewDefaultConfig()
	cfg.Search.SnippetLength = 1
	if err := cfg.Validate(); err == nil {
		t.Fatal("full config validate should catch search error")
	}
}
