package conversa

import (
	"context"
	"log"
	"time"

	"github.com/ConcrefortePremoldados/api-orcamentos/internal/assistente"
	"github.com/ConcrefortePremoldados/api-orcamentos/internal/extracao"
)

// RespostaIndisponivel é devolvida quando o provedor de IA falha ou estoura
// o tempo limite. Não há nova tentativa: o cliente pode simplesmente mandar
// a próxima mensagem.
const RespostaIndisponivel = "Desculpe, estou com uma instabilidade no momento. Pode repetir sua mensagem em instantes?"

// EventoPublisher avisa o back-office quando um orçamento é criado pela
// conversa. Pode ser nil (nenhum aviso).
type EventoPublisher interface {
	PublicarOrcamentoCriado(ctx context.Context, orcamentoID uint, canal string) error
}

// Service processa um ciclo por mensagem recebida: anexa o turno, pede a
// resposta do vendedor virtual, recalcula o rascunho sobre a conversa
// inteira e, quando a conversa fecha, persiste o orçamento uma única vez.
type Service struct {
	Repo        *Repository
	Registry    *assistente.Registry
	Persister   *Persister
	Eventos     EventoPublisher
	Provedor    string
	Modelo      string
	TimeoutChat time.Duration
}

func NewService(repo *Repository, registry *assistente.Registry, persister *Persister, provedor, modelo string) *Service {
	return &Service{
		Repo:        repo,
		Registry:    registry,
		Persister:   persister,
		Provedor:    provedor,
		Modelo:      modelo,
		TimeoutChat: 10 * time.Second,
	}
}

// ProcessarMensagem recebe a fala do cliente e devolve a resposta do
// vendedor virtual. Os turnos são processados em ordem estrita de chegada
// por sessão; os handlers serializam as chamadas sobre a mesma sessão com
// TravaSessoes, segurando a trava do buscar no Store até o salvar.
func (s *Service) ProcessarMensagem(ctx context.Context, sessao *Sessao, texto string) (string, error) {
	agora := time.Now()
	sessao.Turnos = append(sessao.Turnos, extracao.Turno{
		Papel:    extracao.PapelUsuario,
		Conteudo: texto,
		CriadoEm: agora,
	})

	// Auditoria turno a turno; falha aqui não derruba o atendimento.
	if err := s.Repo.InserirMensagem(ctx, &Mensagem{
		SessaoID: sessao.ID,
		Papel:    string(extracao.PapelUsuario),
		Conteudo: texto,
	}); err != nil {
		log.Printf("conversa %s: erro ao gravar mensagem do usuário: %v", sessao.ID, err)
	}

	resposta := s.gerarResposta(ctx, sessao)

	sessao.Turnos = append(sessao.Turnos, extracao.Turno{
		Papel:    extracao.PapelAssistente,
		Conteudo: resposta,
		CriadoEm: time.Now(),
	})
	if err := s.Repo.InserirMensagem(ctx, &Mensagem{
		SessaoID: sessao.ID,
		Papel:    string(extracao.PapelAssistente),
		Conteudo: resposta,
	}); err != nil {
		log.Printf("conversa %s: erro ao gravar resposta do assistente: %v", sessao.ID, err)
	}

	// O rascunho é sempre recalculado do zero sobre a conversa inteira.
	sessao.Rascunho = extracao.Extrair(sessao.Turnos)

	if sessao.OrcamentoID == 0 && extracao.EstaCompleto(sessao.Turnos) {
		id, err := s.Persister.Persistir(ctx, sessao, sessao.Rascunho)
		if err != nil {
			// Rascunho fica na sessão; o cliente pode reenviar pelo botão
			// "enviar para um vendedor" sem repetir a conversa.
			log.Printf("conversa %s: erro ao persistir orçamento: %v", sessao.ID, err)
			return resposta, err
		}
		sessao.OrcamentoID = id

		if s.Eventos != nil {
			if err := s.Eventos.PublicarOrcamentoCriado(ctx, id, sessao.Canal); err != nil {
				log.Printf("conversa %s: erro ao publicar evento de orçamento %d: %v", sessao.ID, id, err)
			}
		}
	}

	return resposta, nil
}

func (s *Service) gerarResposta(ctx context.Context, sessao *Sessao) string {
	provider, err := s.Registry.Get(ctx, s.Provedor, s.Modelo)
	if err != nil {
		log.Printf("conversa %s: provedor indisponível: %v", sessao.ID, err)
		return RespostaIndisponivel
	}

	mensagens := make([]assistente.Mensagem, 0, len(sessao.Turnos)+1)
	mensagens = append(mensagens, assistente.Mensagem{
		Papel:    assistente.PapelSistema,
		Conteudo: assistente.PersonaVendedor,
	})
	for _, t := range sessao.Turnos {
		papel := assistente.PapelUsuario
		if t.Papel == extracao.PapelAssistente {
			papel = assistente.PapelAssistente
		}
		mensagens = append(mensagens, assistente.Mensagem{Papel: papel, Conteudo: t.Conteudo})
	}

	cctx, cancel := context.WithTimeout(ctx, s.TimeoutChat)
	defer cancel()

	resposta, err := provider.Chat(cctx, mensagens)
	if err != nil {
		log.Printf("conversa %s: erro do provedor de IA: %v", sessao.ID, err)
		return RespostaIndisponivel
	}
	return resposta
}
