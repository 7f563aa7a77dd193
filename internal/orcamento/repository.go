package orcamento

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

func (r *Repository) Salvar(ctx context.Context, o *Orcamento) error {
	return r.DB.WithContext(ctx).Create(o).Error
}

func (r *Repository) BuscarPorID(ctx context.Context, id uint) (*Orcamento, error) {
	var o Orcamento
	if err := r.DB.WithContext(ctx).First(&o, id).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *Repository) ListarTodos(ctx context.Context) ([]Orcamento, error) {
	var orcamentos []Orcamento
	err := r.DB.WithContext(ctx).Order("created_at DESC").Find(&orcamentos).Error
	return orcamentos, err
}

// ListarPorCliente alimenta a tela de histórico de orçamentos do cliente.
func (r *Repository) ListarPorCliente(ctx context.Context, clienteID uint) ([]Orcamento, error) {
	var orcamentos []Orcamento
	err := r.DB.WithContext(ctx).
		Where("cliente_id = ?", clienteID).
		Order("created_at DESC").
		Find(&orcamentos).Error
	return orcamentos, err
}

func (r *Repository) ListarPorStatus(ctx context.Context, status string) ([]Orcamento, error) {
	var orcamentos []Orcamento
	err := r.DB.WithContext(ctx).
		Where("status = ?", status).
		Order("created_at DESC").
		Find(&orcamentos).Error
	return orcamentos, err
}

// AtualizarStatus muda o status e, opcionalmente, o valor precificado pela
// equipe.
func (r *Repository) AtualizarStatus(ctx context.Context, id uint, status string, valorTotal *float64) error {
	var existente Orcamento
	if err := r.DB.WithContext(ctx).First(&existente, id).Error; err != nil {
		return err
	}

	existente.Status = status
	if valorTotal != nil {
		existente.ValorTotal = *valorTotal
	}

	return r.DB.WithContext(ctx).Save(&existente).Error
}

func (r *Repository) Deletar(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Delete(&Orcamento{}, id).Error
}
