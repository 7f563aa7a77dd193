package conversa

import (
	"context"

	"gorm.io/gorm"
)

type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

func (r *Repository) InserirMensagem(ctx context.Context, m *Mensagem) error {
	return r.DB.WithContext(ctx).Create(m).Error
}

// ListarPorSessao devolve os turnos gravados em ordem de chegada. Serve ao
// back-office para auditoria; o fluxo de extração nunca passa por aqui.
func (r *Repository) ListarPorSessao(ctx context.Context, sessaoID string) ([]Mensagem, error) {
	var msgs []Mensagem
	err := r.DB.WithContext(ctx).
		Where("sessao_id = ?", sessaoID).
		Order("id ASC").
		Find(&msgs).Error
	return msgs, err
}

func (r *Repository) InserirRespostaAgente(ctx context.Context, ra *RespostaAgente) error {
	return r.DB.WithContext(ctx).Create(ra).Error
}
