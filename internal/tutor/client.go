package tutor

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	openai "github.com/sashabaranov/go-openai"
)

// CompletionClient is the interface every provider implementation
// satisfies.
type CompletionClient interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

var (
	// ErrServiceUnavailable wraps any provider fault. Callers must abort
	// the current operation; nothing is logged or committed on this path.
	ErrServiceUnavailable = errors.New("AI service unavailable")

	// ErrMissingCredential means the configured provider has no API key.
	// Fatal at startup.
	ErrMissingCredential = errors.New("missing completion API credential")
)

// Tutor wraps a CompletionClient with the persona and the prompt
// templates for chat, tutorials, and challenges.
type Tutor struct {
	client CompletionClient
	model  string
}

// NewTutor selects a provider from the environment. The default is the
// OpenAI chat completion API with a fixed low-cost model.
func NewTutor() (*Tutor, error) {
	if os.Getenv("MOCK_TUTOR") == "true" {
		log.Println("Tutor using mock responses")
		return &Tutor{client: NewMockClient(), model: "mock"}, nil
	}

	if os.Getenv("TUTOR_PROVIDER") == "anthropic" {
		apiKey := os.Getenv("ANTHROPIC_API_KEY")
		if apiKey == "" {
			return nil, fmt.Errorf("%w: ANTHROPIC_API_KEY is not set", ErrMissingCredential)
		}
		model := os.Getenv("ANTHROPIC_MODEL")
		if model == "" {
			model = "claude-3-5-haiku-20241022"
		}
		log.Println("Tutor using Anthropic API:", model)
		return &Tutor{client: NewAnthropicClient(apiKey, model), model: model}, nil
	}

	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("%w: OPENAI_API_KEY is not set", ErrMissingCredential)
	}
	model := os.Getenv("OPENAI_MODEL")
	if model == "" {
		model = openai.GPT3Dot5Turbo
	}
	log.Println("Tutor using OpenAI API:", model)
	return &Tutor{client: NewOpenAIClient(apiKey, model), model: model}, nil
}

// NewTutorWithClient builds a Tutor around an explicit client. Used by
// tests.
func NewTutorWithClient(client CompletionClient, model string) *Tutor {
	return &Tutor{client: client, model: model}
}

func (t *Tutor) ModelName() string {
	return t.model
}

// Ask sends a prompt with the persona and an optional personalization
// prefix for the user's interest and assessment score.
func (t *Tutor) Ask(ctx context.Context, prompt, interest string, score *int) (string, error) {
	full := PersonalizationClause(interest, score) + prompt
	answer, err := t.client.Complete(ctx, SystemPersona, full)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
	}
	return answer, nil
}

// Tutorial generates a tutorial for an explicit language and level; no
// personalization prefix is applied.
func (t *Tutor) Tutorial(ctx context.Context, topic, level, language string) (string, error) {
	return t.Ask(ctx, TutorialPrompt(topic, level, language), "", nil)
}

// Challenge generates a coding challenge for an explicit language and
// level; no personalization prefix is applied.
func (t *Tutor) Challenge(ctx context.Context, topic, level, language string) (string, error) {
	return t.Ask(ctx, ChallengePrompt(topic, level, language), "", nil)
}

// SolutionFeedback asks for feedback on a submitted challenge solution.
func (t *Tutor) SolutionFeedback(ctx context.Context, solution string) (string, error) {
	return t.Ask(ctx, SolutionFeedbackPrompt(solution), "", nil)
}

// ── OpenAIClient — default provider ────────────────────────

type OpenAIClient struct {
	client *openai.Client
	model  string
}

func NewOpenAIClient(apiKey, model string) *OpenAIClient {
	return &OpenAIClient{client: openai.NewClient(apiKey), model: model}
}

func (c *OpenAIClient) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices in completion response")
	}
	return resp.Choices[0].Message.Content, nil
}

// ── AnthropicClient — alternate provider ───────────────────

type AnthropicClient struct {
	client *anthropic.Client
	model  string
}

func NewAnthropicClient(apiKey, model string) *AnthropicClient {
	client := anthropic.NewClient(option.WithAPIKey(apiKey))
	return &AnthropicClient{client: &client, model: model}
}

func (c *AnthropicClient) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	message, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(c.model),
		MaxTokens: 1024,
		System: []anthropic.TextBlockParam{
			{Text: systemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(userPrompt)),
		},
	})
	if err != nil {
		return "", err
	}

	for _, block := range message.Content {
		if block.Type == "text" {
			return block.Text, nil
		}
	}
	return "", fmt.Errorf("no text content in API response")
}

// ── MockClient — local development and tests ───────────────

type MockClient struct{}

func NewMockClient() *MockClient {
	return &MockClient{}
}

func (m *MockClient) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	return fmt.Sprintf("[Mock] Here is a concise answer to: %s", userPrompt), nil
}
