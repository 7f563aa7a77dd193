package conversa

import "time"

// Mensagem é o registro durável de um turno da conversa. É gravada turno a
// turno como efeito colateral; a extração nunca lê do banco, só da lista em
// memória da sessão.
type Mensagem struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	SessaoID string    `gorm:"size:36;not null;index" json:"sessao_id"`
	Papel    string    `gorm:"size:16;not null" json:"papel"`
	Conteudo string    `gorm:"type:text;not null" json:"conteudo"`
	CriadoEm time.Time `gorm:"autoCreateTime" json:"criado_em"`
}

func (Mensagem) TableName() string { return "mensagens" }

// RespostaAgente amarra a fala final do vendedor virtual ao orçamento que
// ela fechou. Provedor fica vazio quando quem gravou não sabe qual backend
// gerou o texto.
type RespostaAgente struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	SessaoID    string    `gorm:"size:36;not null;index" json:"sessao_id"`
	Canal       string    `gorm:"size:32;not null" json:"canal"`
	Provedor    string    `gorm:"size:32" json:"provedor"`
	Conteudo    string    `gorm:"type:text;not null" json:"conteudo"`
	OrcamentoID *uint     `gorm:"index" json:"orcamento_id,omitempty"`
	CriadoEm    time.Time `gorm:"autoCreateTime" json:"criado_em"`
}

func (RespostaAgente) TableName() string { return "respostas_agente" }
