package assistente

import (
	"context"
	"errors"

	openaiapi "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

type OpenAIProvider struct {
	client openaiapi.Client
	model  string
}

func NewOpenAIProvider(apiKey, model string) *OpenAIProvider {
	if model == "" {
		model = "gpt-4o-mini"
	}
	return &OpenAIProvider{
		client: openaiapi.NewClient(option.WithAPIKey(apiKey)),
		model:  model,
	}
}

func (p *OpenAIProvider) Chat(ctx context.Context, mensagens []Mensagem) (string, error) {
	msgs := make([]openaiapi.ChatCompletionMessageParamUnion, 0, len(mensagens))
	for _, m := range mensagens {
		switch m.Papel {
		case PapelSistema:
			msgs = append(msgs, openaiapi.SystemMessage(m.Conteudo))
		case PapelAssistente:
			msgs = append(msgs, openaiapi.AssistantMessage(m.Conteudo))
		default:
			msgs = append(msgs, openaiapi.UserMessage(m.Conteudo))
		}
	}

	resp, err := p.client.Chat.Completions.New(ctx, openaiapi.ChatCompletionNewParams{
		Model:    openaiapi.ChatModel(p.model),
		Messages: msgs,
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("openai: resposta vazia")
	}
	return resp.Choices[0].Message.Content, nil
}
