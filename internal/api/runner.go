package api

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/anthropics/anthropic-sdk-go"

	"hoopscout/internal/crew"
)

// maxOutputTokens bounds a single task completion. Research task
// outputs are long-form Markdown; 8192 matches the SDK ceiling we use
// everywhere.
const maxOutputTokens = 8192

// Pricing is the per-million-token USD rate behind the run's cost
// estimate. The config layer supplies the values so a model or price
// change doesn't need a rebuild.
type Pricing struct {
	InputPerMTok  float64
	OutputPerMTok float64
}

// Runner executes crew tasks against the Anthropic Messages API and
// accumulates the run's token usage. It implements crew.Executor and
// crew.UsageReporter. Research agents run without tools: one prompt
// in, one text deliverable out.
type Runner struct {
	client  *Client
	pricing Pricing

	mu           sync.Mutex
	inputTokens  int64
	outputTokens int64
}

// NewRunner creates a runner over the given client.
func NewRunner(client *Client, pricing Pricing) *Runner {
	return &Runner{client: client, pricing: pricing}
}

// Execute runs a single task attempt for the given agent.
// The agent's role, goal and backstory form the system prompt; the
// assembled task prompt is the user message. All text blocks of the
// response are concatenated into the task output.
func (r *Runner) Execute(ctx context.Context, agent *crew.Agent, prompt string) (string, error) {
	model := r.client.Model()
	if agent.Model != "" {
		model = r.client.ResolveModel(anthropic.Model(agent.Model))
	}

	resp, err := r.client.inner.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     model,
		MaxTokens: maxOutputTokens,
		System: []anthropic.TextBlockParam{
			{Text: SystemPrompt(agent)},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("API call failed: %w", err)
	}

	r.record(resp.Usage.InputTokens, resp.Usage.OutputTokens)

	var result strings.Builder
	for _, block := range resp.Content {
		if variant, ok := block.AsAny().(anthropic.TextBlock); ok {
			result.WriteString(variant.Text)
		}
	}

	output := strings.TrimSpace(result.String())
	if output == "" {
		return "", fmt.Errorf("empty response from model %s", model)
	}
	return output, nil
}

func (r *Runner) record(input, output int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.inputTokens += input
	r.outputTokens += output
}

// Usage reports the run's aggregate token usage and estimated cost.
func (r *Runner) Usage() crew.Usage {
	r.mu.Lock()
	defer r.mu.Unlock()
	cost := float64(r.inputTokens)/1_000_000*r.pricing.InputPerMTok +
		float64(r.outputTokens)/1_000_000*r.pricing.OutputPerMTok
	return crew.Usage{
		InputTokens:  r.inputTokens,
		OutputTokens: r.outputTokens,
		Cost:         cost,
	}
}

// SystemPrompt renders an agent's persona as the system message.
func SystemPrompt(agent *crew.Agent) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are %s.\n\n", agent.Role)
	fmt.Fprintf(&b, "Your goal: %s\n\n", agent.Goal)
	b.WriteString(strings.TrimSpace(agent.Backstory))
	b.WriteString("\n\nProduce the requested deliverable directly as well-structured Markdown. Do not ask clarifying questions.")
	return b.String()
}
