package llm

import "testing"

func clearProviderEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"GEMINI_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "OPENROUTER_API_KEY",
		"SKILLBRIDGE_LLM_PROVIDER",
		"SKILLBRIDGE_ANTHROPIC_API_KEY", "SKILLBRIDGE_OPENAI_API_KEY",
		"SKILLBRIDGE_GEMINI_API_KEY", "SKILLBRIDGE_OPENROUTER_API_KEY",
	} {
		t.Setenv(k, "")
	}
}

func TestDiscoverConfig_NoKeys(t *testing.T) {
	clearProviderEnv(t)

	if _, ok := DiscoverConfig(); ok {
		t.Fatal("expected no config without API keys")
	}
}

func TestDiscoverConfig_Priority(t *testing.T) {
	clearProviderEnv(t)
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("ANTHROPIC_API_KEY", "sk-ant")

	cfg, ok := DiscoverConfig()
	if !ok {
		t.Fatal("expected config")
	}
	if cfg.Provider != "openai" {
		t.Fatalf("expected openai to win over anthropic, got %q", cfg.Provider)
	}
	if cfg.OpenAI.APIKey != "sk-test" {
		t.Fatalf("unexpected key: %q", cfg.OpenAI.APIKey)
	}
}

func TestConfigFromEnv_Overrides(t *testing.T) {
	clearProviderEnv(t)
	t.Setenv("SKILLBRIDGE_LLM_PROVIDER", "anthropic")
	t.Setenv("SKILLBRIDGE_ANTHROPIC_API_KEY", "sk-ant")
	t.Setenv("SKILLBRIDGE_ANTHROPIC_MODEL", "claude-sonnet")

	cfg := ConfigFromEnv()
	if cfg.Provider != "anthropic" {
		t.Fatalf("unexpected provider: %q", cfg.Provider)
	}
	if cfg.Anthropic.Model != "claude-sonnet" {
		t.Fatalf("unexpected model: %q", cfg.Anthropic.Model)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected validation error: %v", err)
	}
}

func TestValidate_MissingKey(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Provider = "gemini"
	cfg.Gemini.APIKey = ""

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected validation error for missing key")
	}
}

func TestValidate_UnknownProvider(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Provider = "llama-at-home"

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected validation error for unknown provider")
	}
}

func TestDefaultConfig_RetriesOnce(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Retry.MaxAttempts != 2 {
		t.Fatalf("expected 2 attempts (one retry), got %d", cfg.Retry.MaxAttempts)
	}
}
