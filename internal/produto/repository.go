package produto

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

func (r *Repository) Salvar(ctx context.Context, p *Produto) error {
	return r.DB.WithContext(ctx).Create(p).Error
}

func (r *Repository) BuscarPorID(ctx context.Context, id uint) (*Produto, error) {
	var p Produto
	if err := r.DB.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// ListarAtivos retorna o catálogo visível no site, opcionalmente filtrado
// por categoria.
func (r *Repository) ListarAtivos(ctx context.Context, categoria string) ([]Produto, error) {
	q := r.DB.WithContext(ctx).Where("ativo = ?", true)
	if categoria != "" {
		q = q.Where("categoria = ?", categoria)
	}
	var produtos []Produto
	err := q.Order("categoria ASC, nome ASC").Find(&produtos).Error
	return produtos, err
}

func (r *Repository) ListarTodos(ctx context.Context) ([]Produto, error) {
	var produtos []Produto
	err := r.DB.WithContext(ctx).Find(&produtos).Error
	return produtos, err
}

func (r *Repository) Atualizar(ctx context.Context, p *Produto) error {
	return r.DB.WithContext(ctx).Save(p).Error
}

func (r *Repository) Deletar(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Delete(&Produto{}, id).Error
}
