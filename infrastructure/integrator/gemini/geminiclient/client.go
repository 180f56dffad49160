package geminiclient

import (
	"context"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/pkg/errors"
	"google.golang.org/api/option"
)

var ErrEmptyResponse = errors.New("resposta do Gemini sem conteúdo")

type Client interface {
	GenerateContent(ctx context.Context, params GenerateParams) (string, error)
}

type GenerateParams struct {
	APIKey string
	Model  string
	Prompt string
}

type GenaiClient struct{}

func NewClient() Client {
	return &GenaiClient{}
}

// GenerateContent abre um cliente por chamada; a geração é rara e a chave pode mudar entre execuções
func (c *GenaiClient) GenerateContent(ctx context.Context, params GenerateParams) (string, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(params.APIKey))
	if err != nil {
		return "", errors.Wrap(err, "erro ao criar cliente do Gemini")
	}
	defer client.Close()

	model := client.GenerativeModel(params.Model)

	resp, err := model.GenerateContent(ctx, genai.Text(params.Prompt))
	if err != nil {
		return "", errors.Wrapf(err, "erro ao gerar conteúdo com o modelo %s", params.Model)
	}

	return extractText(resp)
}

func extractText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		if resp != nil && resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != genai.BlockReasonUnspecified {
			return "", errors.Errorf("prompt bloqueado pelo Gemini: %s", resp.PromptFeedback.BlockReason)
		}
		return "", ErrEmptyResponse
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil {
		return "", ErrEmptyResponse
	}

	var sb strings.Builder
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}

	if strings.TrimSpace(sb.String()) == "" {
		return "", ErrEmptyResponse
	}

	return sb.String(), nil
}
