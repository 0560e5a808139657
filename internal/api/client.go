// Package api provides the Anthropic transport for hoopscout crews.
package api

import (
	"context"
	"fmt"
	"os"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/bedrock"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/aws/aws-sdk-go-v2/config"
)

// Client is the configured SDK client for a run. It remembers which
// transport it talks to so per-agent model overrides can be resolved
// the same way as the run's default model.
type Client struct {
	inner   anthropic.Client
	model   anthropic.Model
	bedrock bool
}

// ClientConfig configures the transport.
type ClientConfig struct {
	// Model runs every task unless an agent override names another one.
	// Required; the config layer supplies the default.
	Model anthropic.Model
	// APIKey authenticates against the direct API. Falls back to the
	// ANTHROPIC_API_KEY environment variable.
	APIKey string
	// UseAWSBedrock switches the transport to AWS Bedrock.
	UseAWSBedrock bool
	// AWSRegion is the Bedrock region (e.g. "us-west-2").
	AWSRegion string
	// AWSProfile is the optional AWS profile name.
	AWSProfile string
}

// NewClient builds the SDK client for the configured transport.
func NewClient(cfg ClientConfig) (*Client, error) {
	if cfg.Model == "" {
		return nil, fmt.Errorf("model is required")
	}

	var opts []option.RequestOption
	if cfg.UseAWSBedrock {
		var loadOpts []func(*config.LoadOptions) error
		if cfg.AWSRegion != "" {
			loadOpts = append(loadOpts, config.WithRegion(cfg.AWSRegion))
		}
		if cfg.AWSProfile != "" {
			loadOpts = append(loadOpts, config.WithSharedConfigProfile(cfg.AWSProfile))
		}
		opts = append(opts, bedrock.WithLoadDefaultConfig(context.Background(), loadOpts...))
	} else {
		apiKey := cfg.APIKey
		if apiKey == "" {
			apiKey = os.Getenv("ANTHROPIC_API_KEY")
		}
		if apiKey == "" {
			return nil, fmt.Errorf("ANTHROPIC_API_KEY environment variable is not set")
		}
		opts = append(opts, option.WithAPIKey(apiKey))
	}

	c := &Client{
		inner:   anthropic.NewClient(opts...),
		bedrock: cfg.UseAWSBedrock,
	}
	c.model = c.ResolveModel(cfg.Model)
	return c, nil
}

// Model returns the run's default model, already resolved for the
// active transport.
func (c *Client) Model() anthropic.Model {
	return c.model
}

// ResolveModel maps a model name to the form the active transport
// expects. Bedrock wants cross-region inference profile IDs
// (us.anthropic.{model}-v1:0); the direct API takes names as-is.
func (c *Client) ResolveModel(model anthropic.Model) anthropic.Model {
	if !c.bedrock {
		return model
	}
	profiles := map[anthropic.Model]string{
		anthropic.ModelClaudeSonnet4_20250514:   "us.anthropic.claude-sonnet-4-20250514-v1:0",
		anthropic.ModelClaudeSonnet4_5_20250929: "us.anthropic.claude-sonnet-4-5-20250929-v1:0",
		anthropic.ModelClaudeHaiku4_5_20251001:  "us.anthropic.claude-haiku-4-5-20251001-v1:0",
		anthropic.ModelClaudeOpus4_1_20250805:   "us.anthropic.claude-opus-4-1-20250805-v1:0",
		anthropic.ModelClaudeOpus4_5_20251101:   "us.anthropic.claude-opus-4-5-20251101-v1:0",
		anthropic.ModelClaude3_7Sonnet20250219:  "us.anthropic.claude-3-7-sonnet-20250219-v1:0",
		anthropic.ModelClaude3_5Haiku20241022:   "us.anthropic.claude-3-5-haiku-20241022-v1:0",
	}
	if p, ok := profiles[model]; ok {
		return anthropic.Model(p)
	}
	return model
}
