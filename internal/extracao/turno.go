package extracao

import "time"

// Papel identifica quem produziu um turno da conversa.
type Papel string

const (
	PapelUsuario    Papel = "usuario"
	PapelAssistente Papel = "assistente"
)

// Turno é uma mensagem trocada entre o cliente e o vendedor virtual.
type Turno struct {
	Papel    Papel     `json:"papel"`
	Conteudo string    `json:"conteudo"`
	CriadoEm time.Time `json:"criado_em"`
}
