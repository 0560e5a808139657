package api

import (
	"os"
	"testing"

	"github.com/anthropics/anthropic-sdk-go"
)

func TestNewClient_WithAPIKey(t *testing.T) {
	client, err := NewClient(ClientConfig{
		APIKey: "test-key-123",
		Model:  anthropic.ModelClaudeSonnet4_5_20250929,
	})
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	if client.Model() != anthropic.ModelClaudeSonnet4_5_20250929 {
		t.Errorf("Model() = %s", client.Model())
	}
}

func TestNewClient_RequiresModel(t *testing.T) {
	if _, err := NewClient(ClientConfig{APIKey: "test-key"}); err == nil {
		t.Fatal("NewClient() without a model should fail")
	}
}

func TestNewClient_MissingAPIKey(t *testing.T) {
	old := os.Getenv("ANTHROPIC_API_KEY")
	os.Unsetenv("ANTHROPIC_API_KEY")
	defer func() {
		if old != "" {
			os.Setenv("ANTHROPIC_API_KEY", old)
		}
	}()

	_, err := NewClient(ClientConfig{Model: anthropic.ModelClaudeSonnet4_5_20250929})
	if err == nil {
		t.Fatal("NewClient() without an API key should fail")
	}
}

func TestResolveModel_Bedrock(t *testing.T) {
	c := &Client{bedrock: true}

	tests := []struct {
		name  string
		model anthropic.Model
		want  string
	}{
		{
			"sonnet 4.5",
			anthropic.ModelClaudeSonnet4_5_20250929,
			"us.anthropic.claude-sonnet-4-5-20250929-v1:0",
		},
		{
			"haiku 4.5",
			anthropic.ModelClaudeHaiku4_5_20251001,
			"us.anthropic.claude-haiku-4-5-20251001-v1:0",
		},
		{
			"unknown model passes through",
			anthropic.Model("custom-model"),
			"custom-model",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.ResolveModel(tt.model); string(got) != tt.want {
				t.Errorf("ResolveModel(%s) = %s, want %s", tt.model, got, tt.want)
			}
		})
	}
}

func TestResolveModel_DirectAPI(t *testing.T) {
	c := &Client{}
	got := c.ResolveModel(anthropic.ModelClaudeHaiku4_5_20251001)
	if got != anthropic.ModelClaudeHaiku4_5_20251001 {
		t.Errorf("ResolveModel() = %s, want untranslated name", got)
	}
}
