package orcamento

// DTOs da solicitação manual de orçamento feita pelo formulário do site.

type ItemSolicitacao struct {
	Nome       string  `json:"nome" validate:"required"`
	Dimensoes  string  `json:"dimensoes"`
	Quantidade int     `json:"quantidade" validate:"required,gt=0"`
	Subtipo    string  `json:"subtipo"`
	PrecoTotal float64 `json:"preco_total"`
}

type SolicitacaoOrcamento struct {
	Email          string            `json:"email" validate:"required,email"`
	Nome           string            `json:"nome"`
	Telefone       string            `json:"telefone"`
	Itens          []ItemSolicitacao `json:"itens" validate:"required,min=1,dive"`
	LocalEntrega   string            `json:"local_entrega" validate:"required"`
	Prazo          string            `json:"prazo"`
	FormaPagamento string            `json:"forma_pagamento"`
	Observacoes    string            `json:"observacoes"`
}

type AtualizacaoStatus struct {
	Status     string   `json:"status" validate:"required,oneof=pendente em_analise aprovado recusado"`
	ValorTotal *float64 `json:"valor_total" validate:"omitempty,gte=0"`
}
