package suggest

import (
	"context"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/shuna/azooKey/internal/candidate"
	"github.com/shuna/azooKey/internal/ime"
)

// defaultStepBudget bounds generation when no budget is configured.
const defaultStepBudget = 16

// LLMProvider computes supplementary candidates with a model behind an
// OpenAI-compatible endpoint. Local model servers expose the same API,
// so one client covers both tiers.
type LLMProvider struct {
	client     openai.Client
	model      string
	stepBudget int
}

// LLMConfig configures an LLMProvider.
type LLMConfig struct {
	// BaseURL is the endpoint; empty means the platform default.
	BaseURL string

	// APIKey authenticates; empty for local servers.
	APIKey string

	// Model is the model identifier at the endpoint.
	Model string

	// Speculative maps the engine's effort tier and step budget onto
	// generation limits.
	Speculative ime.Speculative
}

// NewLLMProvider creates a model-backed provider.
func NewLLMProvider(cfg LLMConfig) *LLMProvider {
	var opts []option.RequestOption
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	if cfg.APIKey != "" {
		opts = append(opts, option.WithAPIKey(cfg.APIKey))
	}

	budget := cfg.Speculative.StepBudget
	if budget <= 0 {
		budget = defaultStepBudget
	}

	return &LLMProvider{
		client:     openai.NewClient(opts...),
		model:      cfg.Model,
		stepBudget: budget,
	}
}

// Suggest implements Provider. Each non-empty line of the completion
// becomes one replacement item.
func (p *LLMProvider) Suggest(ctx context.Context, snap Snapshot) ([]candidate.ResultItem, error) {
	resp, err := p.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(p.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage("You complete Japanese input-method composing text. Reply with up to three continuations, one per line, no commentary."),
			openai.UserMessage(snap.Text),
		},
		MaxCompletionTokens: openai.Int(int64(p.stepBudget)),
	})
	if err != nil {
		return nil, err
	}
	if len(resp.Choices) == 0 {
		return nil, nil
	}

	var items []candidate.ResultItem
	for _, line := range strings.Split(resp.Choices[0].Message.Content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		items = append(items, candidate.ReplacementItem(line))
		if len(items) == 3 {
			break
		}
	}
	return items, nil
}
