package genai

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	brtypes "github.com/aws/aws-sdk-go-v2/service/bedrockruntime/types"

	"github.com/adecos/ads-copilot/internal/config"
	"github.com/adecos/ads-copilot/internal/pkg/logger"
)

// BedrockClient is a generation backend powered by AWS Bedrock (Claude).
// All traffic stays within AWS - useful for deployments that cannot call
// external generation APIs.
type BedrockClient struct {
	client  *bedrockruntime.Client
	modelID string
	region  string
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicRequest struct {
	AnthropicVersion string             `json:"anthropic_version"`
	MaxTokens        int                `json:"max_tokens"`
	Messages         []anthropicMessage `json:"messages"`
	Temperature      float64            `json:"temperature,omitempty"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Usage struct {
		InputTokens  int `json:"input_tokens"`
		OutputTokens int `json:"output_tokens"`
	} `json:"usage"`
}

type anthropicStreamChunk struct {
	Type  string `json:"type"`
	Delta struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"delta"`
}

// NewBedrockClient creates a Bedrock generation client using the default
// AWS credential chain.
func NewBedrockClient(ctx context.Context, cfg config.BedrockConfig) (*BedrockClient, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	logger.Info("bedrock client initialized", "model", cfg.ModelID, "region", cfg.Region)

	return &BedrockClient{
		client:  bedrockruntime.NewFromConfig(awsCfg),
		modelID: cfg.ModelID,
		region:  cfg.Region,
	}, nil
}

// Generate sends the prompt as a single user message and returns the text.
func (b *BedrockClient) Generate(ctx context.Context, prompt string) (string, error) {
	requestBody, err := json.Marshal(anthropicRequest{
		AnthropicVersion: "bedrock-2023-05-31",
		MaxTokens:        4000,
		Messages:         []anthropicMessage{{Role: "user", Content: prompt}},
		Temperature:      0.7,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	output, err := b.client.InvokeModel(ctx, &bedrockruntime.InvokeModelInput{
		ModelId:     aws.String(b.modelID),
		ContentType: aws.String("application/json"),
		Accept:      aws.String("application/json"),
		Body:        requestBody,
	})
	if err != nil {
		return "", fmt.Errorf("Bedrock API error: %w", err)
	}

	var response anthropicResponse
	if err := json.Unmarshal(output.Body, &response); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}

	var text string
	for _, content := range response.Content {
		if content.Type == "text" {
			text += content.Text
		}
	}

	logger.Debug("bedrock generation complete",
		"in_tokens", response.Usage.InputTokens, "out_tokens", response.Usage.OutputTokens)

	return text, nil
}

// GenerateStream invokes the model with the streaming transport, buffers all
// delta fragments, and returns the assembled text.
func (b *BedrockClient) GenerateStream(ctx context.Context, prompt string) (string, error) {
	requestBody, err := json.Marshal(anthropicRequest{
		AnthropicVersion: "bedrock-2023-05-31",
		MaxTokens:        4000,
		Messages:         []anthropicMessage{{Role: "user", Content: prompt}},
		Temperature:      0.7,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	output, err := b.client.InvokeModelWithResponseStream(ctx, &bedrockruntime.InvokeModelWithResponseStreamInput{
		ModelId:     aws.String(b.modelID),
		ContentType: aws.String("application/json"),
		Accept:      aws.String("application/json"),
		Body:        requestBody,
	})
	if err != nil {
		return "", fmt.Errorf("Bedrock API error: %w", err)
	}

	stream := output.GetStream()
	defer stream.Close()

	var text string
	for event := range stream.Events() {
		chunk, ok := event.(*brtypes.ResponseStreamMemberChunk)
		if !ok {
			continue
		}
		var delta anthropicStreamChunk
		if err := json.Unmarshal(chunk.Value.Bytes, &delta); err != nil {
			return "", fmt.Errorf("failed to parse stream chunk: %w", err)
		}
		if delta.Type == "content_block_delta" {
			text += delta.Delta.Text
		}
	}
	if err := stream.Err(); err != nil {
		return "", fmt.Errorf("stream read failed: %w", err)
	}

	return text, nil
}

// GetModelID returns the Bedrock model being used
func (b *BedrockClient) GetModelID() string { return b.modelID }
