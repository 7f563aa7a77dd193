package orcamento

import "gorm.io/gorm"

// Status que um orçamento percorre no back-office. Todo orçamento nasce
// pendente; preço e aprovação são atribuídos depois pela equipe.
const (
	StatusPendente  = "pendente"
	StatusEmAnalise = "em_analise"
	StatusAprovado  = "aprovado"
	StatusRecusado  = "recusado"
)

// Canais que originam orçamentos.
const (
	OrigemSite             = "site"
	OrigemVendedorVirtual  = "vendedor-virtual-site"
	OrigemVendedorWhatsApp = "vendedor-virtual-whatsapp"
)

// Orcamento é o registro durável de uma solicitação de orçamento.
// Itens e HistoricoConversa são serializados como JSON para auditoria.
type Orcamento struct {
	gorm.Model
	ClienteID         uint    `gorm:"not null;index" json:"cliente_id"`
	Status            string  `gorm:"size:32;not null;default:pendente" json:"status"`
	Itens             string  `gorm:"type:text" json:"itens"`
	LocalEntrega      string  `gorm:"size:255" json:"local_entrega"`
	Prazo             string  `gorm:"size:64" json:"prazo"`
	FormaPagamento    string  `gorm:"size:64" json:"forma_pagamento"`
	ValorTotal        float64 `gorm:"not null;default:0" json:"valor_total"`
	CriadoPor         string  `gorm:"size:64;not null" json:"criado_por"`
	HistoricoConversa string  `gorm:"type:text" json:"historico_conversa,omitempty"`
	Observacoes       string  `gorm:"type:text" json:"observacoes"`
}
