// Package assistente integra os provedores de LLM que dão voz ao vendedor
// virtual. O pacote só gera a resposta em texto livre; a extração de
// estrutura fica em internal/extracao.
package assistente

import "context"

// Papéis no formato esperado pelas APIs de chat.
const (
	PapelSistema    = "system"
	PapelUsuario    = "user"
	PapelAssistente = "assistant"
)

type Mensagem struct {
	Papel    string
	Conteudo string
}

// Provider envia a conversa acumulada e devolve a próxima fala do vendedor.
type Provider interface {
	Chat(ctx context.Context, mensagens []Mensagem) (string, error)
}
