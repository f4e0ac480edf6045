package classifier

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/jmroz/inquiry-desk/internal/models"
)

type draftResponse struct {
	Draft      string `json:"draft"`
	Confidence int    `json:"confidence"`
}

// OpenAIClassifier drafts responses with a chat model. Any API or parse
// failure falls back to the rule classifier, so callers always get a
// usable suggestion.
type OpenAIClassifier struct {
	client      *openai.Client
	model       string
	maxTokens   int
	temperature float64
	fallback    *RuleClassifier
	logger      *zap.Logger
}

func NewOpenAIClassifier(apiKey, model string, maxTokens int, temperature float64, logger *zap.Logger) *OpenAIClassifier {
	return &OpenAIClassifier{
		client:      openai.NewClient(apiKey),
		model:       model,
		maxTokens:   maxTokens,
		temperature: temperature,
		fallback:    NewRuleClassifier(),
		logger:      logger,
	}
}

func (c *OpenAIClassifier) Classify(message string, cfg models.AIConfig, knowledge []models.KnowledgeItem) models.Suggestion {
	ctx := context.Background()

	var kb strings.Builder
	for _, item := range knowledge {
		fmt.Fprintf(&kb, "- %s: %s\n", item.Title, item.Content)
	}

	prompt := fmt.Sprintf(`You draft replies to customer inquiries for %s (contact: %s).
Write the reply in the language of the inquiry, polite and concise.

Company knowledge base:
%s
Return a JSON object with this structure:
{
    "draft": "the reply text",
    "confidence": 0-100
}

Inquiry: %s`, cfg.CompanyName, cfg.ContactEmail, kb.String(), message)

	resp, err := c.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: c.model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			MaxTokens:   c.maxTokens,
			Temperature: float32(c.temperature),
		},
	)
	if err != nil {
		c.logger.Error("Failed to get draft from OpenAI", zap.Error(err))
		return c.fallback.Classify(message, cfg, knowledge)
	}

	var draft draftResponse
	response := strings.TrimSpace(resp.Choices[0].Message.Content)
	if err := json.Unmarshal([]byte(response), &draft); err != nil {
		c.logger.Error("Failed to parse OpenAI response",
			zap.Error(err),
			zap.String("response", response))
		return c.fallback.Classify(message, cfg, knowledge)
	}

	if draft.Draft == "" {
		return c.fallback.Classify(message, cfg, knowledge)
	}
	if draft.Confidence < 0 {
		draft.Confidence = 0
	}
	if draft.Confidence > 100 {
		draft.Confidence = 100
	}

	return models.Suggestion{DraftText: draft.Draft, Confidence: draft.Confidence}
}
