package llm

import (
	"context"
	"encoding/json"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/placementsprint/sprintd/errors"
)

// BedrockClient invokes Anthropic models hosted on AWS Bedrock.
type BedrockClient struct {
	client  *bedrockruntime.Client
	modelID string
}

// NewBedrockClient creates a new BedrockClient. It requires AWS credentials
// to be configured in the environment.
func NewBedrockClient(ctx context.Context, modelID string) (*BedrockClient, error) {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, errors.WrapKind(errors.KindProvider, err, "failed to load AWS config")
	}

	return &BedrockClient{
		client:  bedrockruntime.NewFromConfig(cfg),
		modelID: modelID,
	}, nil
}

func (b *BedrockClient) Generate(ctx context.Context, prompt string, schema Schema) (json.RawMessage, error) {
	body, err := json.Marshal(map[string]interface{}{
		"anthropic_version": "bedrock-2023-05-31",
		"max_tokens":        4096,
		"system":            schemaInstruction(schema),
		"messages": []map[string]interface{}{
			{
				"role": "user",
				"content": []map[string]interface{}{
					{"type": "text", "text": prompt},
				},
			},
		},
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal Bedrock request")
	}

	resp, err := b.client.InvokeModel(ctx, &bedrockruntime.InvokeModelInput{
		ModelId:     aws.String(b.modelID),
		ContentType: aws.String("application/json"),
		Body:        body,
	})
	if err != nil {
		return nil, errors.WrapKind(errors.KindProvider, err, "failed to invoke Bedrock model %s", b.modelID)
	}

	return parseBedrockBody(resp.Body)
}

func parseBedrockBody(body []byte) (json.RawMessage, error) {
	var response struct {
		Error   interface{} `json:"error"`
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
	}
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, errors.WrapKind(errors.KindProvider, err, "failed to unmarshal Bedrock response")
	}
	if response.Error != nil {
		return nil, errors.New(errors.KindProvider, "Bedrock API error: %v", response.Error)
	}

	var text string
	for _, item := range response.Content {
		if item.Type == "text" {
			text += item.Text
		}
	}
	return extractJSON(text)
}
