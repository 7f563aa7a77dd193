package conversa

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/ConcrefortePremoldados/api-orcamentos/internal/cliente"
	"github.com/ConcrefortePremoldados/api-orcamentos/internal/extracao"
	"github.com/ConcrefortePremoldados/api-orcamentos/internal/orcamento"
	"github.com/ConcrefortePremoldados/api-orcamentos/internal/utils"
	"gorm.io/gorm"
)

var (
	ErrSemIdentidade = errors.New("sessão sem identidade de cliente")
	ErrRascunhoVazio = errors.New("rascunho sem produtos, nada a orçar")
)

// Persister transforma um rascunho completo em registros duráveis: garante
// o cadastro do cliente e insere o orçamento com o histórico embutido.
// Cada gravação tem a sua própria política de repetição (uma nova tentativa
// após intervalo fixo); a falha terminal volta para quem chamou, que mantém
// o rascunho para permitir novo envio sem refazer a conversa.
//
// Persistir não deduplica: quem chama é responsável por invocá-lo no máximo
// uma vez por sessão (trava Sessao.OrcamentoID).
type Persister struct {
	Clientes   *cliente.Repository
	Orcamentos *orcamento.Repository
	Respostas  *Repository
	Tentativas int
	Intervalo  time.Duration
}

func NewPersister(clientes *cliente.Repository, orcamentos *orcamento.Repository, respostas *Repository) *Persister {
	return &Persister{
		Clientes:   clientes,
		Orcamentos: orcamentos,
		Respostas:  respostas,
		Tentativas: 2,
		Intervalo:  time.Second,
	}
}

func (p *Persister) Persistir(ctx context.Context, sessao *Sessao, rascunho extracao.Rascunho) (uint, error) {
	if strings.TrimSpace(sessao.Identidade) == "" {
		return 0, ErrSemIdentidade
	}
	if len(rascunho.Produtos) == 0 {
		return 0, ErrRascunhoVazio
	}

	c, err := p.resolverCliente(ctx, sessao.Identidade)
	if err != nil {
		return 0, err
	}

	itens, err := json.Marshal(rascunho.Produtos)
	if err != nil {
		return 0, err
	}
	historico, err := json.Marshal(sessao.Turnos)
	if err != nil {
		return 0, err
	}

	// Hoje sempre soma zero: o preço é atribuído depois pela equipe. A soma
	// existe para quando os itens chegarem precificados.
	var total float64
	for _, item := range rascunho.Produtos {
		total += item.PrecoTotal
	}

	o := orcamento.Orcamento{
		ClienteID:         c.ID,
		Status:            orcamento.StatusPendente,
		Itens:             string(itens),
		LocalEntrega:      rascunho.LocalEntrega,
		Prazo:             rascunho.Prazo,
		FormaPagamento:    rascunho.FormaPagamento,
		ValorTotal:        total,
		CriadoPor:         origemDoCanal(sessao.Canal),
		HistoricoConversa: string(historico),
	}
	err = utils.Repetir(ctx, p.Tentativas, p.Intervalo, func() error {
		return p.Orcamentos.Salvar(ctx, &o)
	})
	if err != nil {
		return 0, err
	}

	// Auditoria da última fala do vendedor, agora amarrada ao orçamento.
	if ultima := ultimaRespostaAssistente(sessao.Turnos); ultima != "" {
		ra := RespostaAgente{
			SessaoID:    sessao.ID,
			Canal:       sessao.Canal,
			Conteudo:    ultima,
			OrcamentoID: &o.ID,
		}
		err = utils.Repetir(ctx, p.Tentativas, p.Intervalo, func() error {
			return p.Respostas.InserirRespostaAgente(ctx, &ra)
		})
		if err != nil {
			return 0, err
		}
	}

	return o.ID, nil
}

func (p *Persister) resolverCliente(ctx context.Context, identidade string) (*cliente.Cliente, error) {
	var (
		c   *cliente.Cliente
		err error
	)
	if strings.Contains(identidade, "@") {
		c, err = p.Clientes.BuscarPorEmail(ctx, identidade)
	} else {
		c, err = p.Clientes.BuscarPorTelefone(ctx, identidade)
	}
	if err == nil {
		return c, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	novo := &cliente.Cliente{Nome: nomeDaIdentidade(identidade)}
	if strings.Contains(identidade, "@") {
		novo.Email = identidade
	} else {
		novo.Telefone = identidade
	}
	err = utils.Repetir(ctx, p.Tentativas, p.Intervalo, func() error {
		return p.Clientes.Salvar(ctx, novo)
	})
	if err != nil {
		return nil, err
	}
	return novo, nil
}

// nomeDaIdentidade deriva um nome de exibição provisório: a parte local do
// e-mail, ou o próprio telefone.
func nomeDaIdentidade(identidade string) string {
	if i := strings.Index(identidade, "@"); i > 0 {
		return identidade[:i]
	}
	return identidade
}

func origemDoCanal(canal string) string {
	if canal == CanalWhatsApp {
		return orcamento.OrigemVendedorWhatsApp
	}
	return orcamento.OrigemVendedorVirtual
}

func ultimaRespostaAssistente(turnos []extracao.Turno) string {
	for i := len(turnos) - 1; i >= 0; i-- {
		if turnos[i].Papel == extracao.PapelAssistente {
			return turnos[i].Conteudo
		}
	}
	return ""
}
