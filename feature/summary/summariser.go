package summary

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"lakecircle/core/controlplane"
	"lakecircle/core/lifecycle"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"go.uber.org/zap"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "amazon.nova-lite-v1:0"

const prompt = "You are an AWS S3 lifecycle expert. Summarize lifecycle rules concisely and clearly. As simple as possible. Output format: \n" +
	" - Where: ...\n" +
	" - Actions: ...\n" +
	"For where: the prefix if observed. \n" +
	"For actions: one action per bulletpoint, focus on what, when, and storage class change. \n" +
	"Keep it readable. The data is here as follows:\n"

const (
	maxTokens   = 300
	temperature = 0.1
	topP        = 0.9
)

// ErrEmptySummary is returned when the model replies without text.
var ErrEmptySummary = errors.New("model returned no summary")

type textBlock struct {
	Text string `json:"text"`
}

type message struct {
	Role    string      `json:"role"`
	Content []textBlock `json:"content"`
}

type inferenceConfig struct {
	MaxTokens   int     `json:"maxTokens"`
	Temperature float64 `json:"temperature"`
	TopP        float64 `json:"topP"`
}

type request struct {
	SchemaVersion   string          `json:"schemaVersion"`
	Messages        []message       `json:"messages"`
	InferenceConfig inferenceConfig `json:"inferenceConfig"`
}

type response struct {
	Output struct {
		Message message `json:"message"`
	} `json:"output"`
}

// Summariser implements reconcile.Summariser on a Bedrock model.
type Summariser struct {
	api    controlplane.ModelAPI
	model  string
	logger *zap.Logger
}

// NewSummariser creates a summariser invoking model through api.
func NewSummariser(api controlplane.ModelAPI, model string, logger *zap.Logger) *Summariser {
	if model == "" {
		model = DefaultModel
	}
	return &Summariser{api: api, model: model, logger: logger.Named("summary")}
}

// Summarise returns a short description of the rules in c.
func (s *Summariser) Summarise(ctx context.Context, c *lifecycle.RuleCollection) (string, error) {
	body, err := s.body(c)
	if err != nil {
		return "", err
	}

	out, err := s.api.InvokeModel(ctx, &bedrockruntime.InvokeModelInput{
		ModelId:     aws.String(s.model),
		Body:        body,
		ContentType: aws.String("application/json"),
		Accept:      aws.String("application/json"),
	})
	if err != nil {
		return "", fmt.Errorf("invoke %s: %w", s.model, err)
	}

	var res response
	if err := json.Unmarshal(out.Body, &res); err != nil {
		return "", fmt.Errorf("decode %s reply: %w", s.model, err)
	}
	content := res.Output.Message.Content
	if len(content) == 0 || strings.TrimSpace(content[0].Text) == "" {
		return "", ErrEmptySummary
	}

	s.logger.Debug("Summary received",
		zap.String("bucket", c.Bucket()),
		zap.String("model", s.model),
		zap.Int("rules", c.Len()),
	)
	return strings.TrimSpace(content[0].Text), nil
}

func (s *Summariser) body(c *lifecycle.RuleCollection) ([]byte, error) {
	rules := make([]map[string]any, 0, c.Len())
	for _, r := range c.Rules() {
		rules = append(rules, r.Describe())
	}
	data, err := json.Marshal(map[string]any{"bucket": c.Bucket(), "rules": rules})
	if err != nil {
		return nil, fmt.Errorf("encode rules of %s: %w", c.Bucket(), err)
	}

	return json.Marshal(request{
		SchemaVersion: "messages-v1",
		Messages: []message{{
			Role:    "user",
			Content: []textBlock{{Text: prompt + string(data)}},
		}},
		InferenceConfig: inferenceConfig{MaxTokens: maxTokens, Temperature: temperature, TopP: topP},
	})
}
