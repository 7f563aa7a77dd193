package assistente

import (
	"context"

	"google.golang.org/genai"
)

type GeminiProvider struct {
	client *genai.Client
	model  string
}

func NewGeminiProvider(ctx context.Context, apiKey, model string) (*GeminiProvider, error) {
	if model == "" {
		model = "gemini-2.0-flash"
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}
	return &GeminiProvider{client: client, model: model}, nil
}

func (p *GeminiProvider) Chat(ctx context.Context, mensagens []Mensagem) (string, error) {
	var sistema *genai.Content
	contents := make([]*genai.Content, 0, len(mensagens))
	for _, m := range mensagens {
		switch m.Papel {
		case PapelSistema:
			// A API do Gemini recebe a instrução de sistema fora do histórico.
			sistema = genai.NewContentFromText(m.Conteudo, genai.RoleUser)
		case PapelAssistente:
			contents = append(contents, genai.NewContentFromText(m.Conteudo, genai.RoleModel))
		default:
			contents = append(contents, genai.NewContentFromText(m.Conteudo, genai.RoleUser))
		}
	}

	var cfg *genai.GenerateContentConfig
	if sistema != nil {
		cfg = &genai.GenerateContentConfig{SystemInstruction: sistema}
	}

	resp, err := p.client.Models.GenerateContent(ctx, p.model, contents, cfg)
	if err != nil {
		return "", err
	}
	return resp.Text(), nil
}
