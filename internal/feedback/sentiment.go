package feedback

import (
	"context"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// Sentiment is the polarity assigned to a review.
type Sentiment string

const (
	SentimentPositive Sentiment = "Positive"
	SentimentNegative Sentiment = "Negative"
	SentimentNeutral  Sentiment = "Neutral"
)

// Classifier assigns a sentiment to free-text feedback.
type Classifier interface {
	Classify(ctx context.Context, text string) (Sentiment, error)
}

// NewClassifier returns the OpenAI-backed classifier when an API key is
// configured, otherwise the local lexicon fallback so the feedback
// scenario keeps working offline.
func NewClassifier(apiKey, model string) Classifier {
	if apiKey == "" {
		return &LexiconClassifier{}
	}
	return NewOpenAIClassifier(apiKey, model)
}

const classifyPrompt = "Classify the sentiment of the customer feedback. " +
	"Respond with exactly one word: Positive, Negative, or Neutral."

// OpenAIClassifier classifies sentiment with a chat completion call.
type OpenAIClassifier struct {
	client *openai.Client
	model  string
}

// NewOpenAIClassifier constructs an OpenAI-backed classifier.
func NewOpenAIClassifier(apiKey, model string) *OpenAIClassifier {
	if model == "" {
		model = openai.GPT4oMini
	}
	return &OpenAIClassifier{client: openai.NewClient(apiKey), model: model}
}

// Classify sends the feedback text to the chat completion API and maps
// the one-word reply to a Sentiment. Unparseable replies are Neutral.
func (c *OpenAIClassifier) Classify(ctx context.Context, text string) (Sentiment, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: classifyPrompt},
			{Role: openai.ChatMessageRoleUser, Content: text},
		},
		Temperature: 0,
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return SentimentNeutral, nil
	}

	reply := strings.ToLower(strings.TrimSpace(resp.Choices[0].Message.Content))
	switch {
	case strings.HasPrefix(reply, "positive"):
		return SentimentPositive, nil
	case strings.HasPrefix(reply, "negative"):
		return SentimentNegative, nil
	default:
		return SentimentNeutral, nil
	}
}

// LexiconClassifier scores feedback against small word lists. It backs
// the feedback scenario when no classifier service is configured.
type LexiconClassifier struct{}

var positiveWords = []string{
	"good", "great", "excellent", "helpful", "love", "loved", "easy",
	"fast", "friendly", "amazing", "happy", "best", "convenient",
}

var negativeWords = []string{
	"bad", "poor", "terrible", "slow", "hate", "hated", "hard",
	"confusing", "awful", "worst", "unhappy", "broken", "frustrating",
}

// Classify counts positive and negative lexicon hits in the text.
func (c *LexiconClassifier) Classify(_ context.Context, text string) (Sentiment, error) {
	words := strings.Fields(strings.ToLower(text))
	var score int
	for _, w := range words {
		w = strings.Trim(w, ".,!?;:'\"")
		for _, p := range positiveWords {
			if w == p {
				score++
			}
		}
		for _, n := range negativeWords {
			if w == n {
				score--
			}
		}
	}
	switch {
	case score > 0:
		return SentimentPositive, nil
	case score < 0:
		return SentimentNegative, nil
	default:
		return SentimentNeutral, nil
	}
}
