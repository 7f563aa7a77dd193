package conversa

import (
	"context"
	"errors"
	"sync"

	"github.com/ConcrefortePremoldados/api-orcamentos/internal/extracao"
	"github.com/google/uuid"
)

// Canais de atendimento.
const (
	CanalSite     = "site"
	CanalWhatsApp = "whatsapp"
)

var ErrSessaoNaoEncontrada = errors.New("sessão não encontrada")

// Sessao concentra o estado mutável de um atendimento: a lista ordenada de
// turnos, o rascunho derivado do último recálculo e a trava de persistência
// (OrcamentoID != 0 significa que o orçamento desta conversa já foi criado
// e não deve ser criado de novo).
type Sessao struct {
	ID          string            `json:"id"`
	Identidade  string            `json:"identidade"` // e-mail (site) ou telefone (whatsapp)
	Canal       string            `json:"canal"`
	Turnos      []extracao.Turno  `json:"turnos"`
	Rascunho    extracao.Rascunho `json:"rascunho"`
	OrcamentoID uint              `json:"orcamento_id,omitempty"`
}

func NovaSessao(identidade, canal string) *Sessao {
	return &Sessao{
		ID:         uuid.NewString(),
		Identidade: identidade,
		Canal:      canal,
	}
}

// Store guarda sessões entre requisições. O atendimento pelo site usa a
// implementação em memória; o webhook do WhatsApp, que não tem afinidade de
// processo, usa a implementação em Redis.
type Store interface {
	Buscar(ctx context.Context, id string) (*Sessao, error)
	Salvar(ctx context.Context, s *Sessao) error
	Remover(ctx context.Context, id string) error
}

type MemoriaStore struct {
	mu      sync.RWMutex
	sessoes map[string]*Sessao
}

func NewMemoriaStore() *MemoriaStore {
	return &MemoriaStore{sessoes: make(map[string]*Sessao)}
}

func (s *MemoriaStore) Buscar(ctx context.Context, id string) (*Sessao, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessoes[id]
	if !ok {
		return nil, ErrSessaoNaoEncontrada
	}
	return sess, nil
}

func (s *MemoriaStore) Salvar(ctx context.Context, sess *Sessao) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessoes[sess.ID] = sess
	return nil
}

func (s *MemoriaStore) Remover(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessoes, id)
	return nil
}
