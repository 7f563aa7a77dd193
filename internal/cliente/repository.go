package cliente

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

func (r *Repository) Salvar(ctx context.Context, c *Cliente) error {
	return r.DB.WithContext(ctx).Create(c).Error
}

func (r *Repository) BuscarPorID(ctx context.Context, id uint) (*Cliente, error) {
	var c Cliente
	if err := r.DB.WithContext(ctx).First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *Repository) BuscarPorEmail(ctx context.Context, email string) (*Cliente, error) {
	var c Cliente
	if err := r.DB.WithContext(ctx).Where("email = ?", email).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *Repository) BuscarPorTelefone(ctx context.Context, telefone string) (*Cliente, error) {
	var c Cliente
	if err := r.DB.WithContext(ctx).Where("telefone = ?", telefone).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *Repository) ListarTodos(ctx context.Context) ([]Cliente, error) {
	var clientes []Cliente
	err := r.DB.WithContext(ctx).Order("nome ASC").Find(&clientes).Error
	return clientes, err
}

func (r *Repository) Atualizar(ctx context.Context, id uint, novosDados *Cliente) error {
	var existente Cliente
	if err := r.DB.WithContext(ctx).First(&existente, id).Error; err != nil {
		return err
	}

	existente.Nome = novosDados.Nome
	existente.Email = novosDados.Email
	existente.Telefone = novosDados.Telefone
	existente.Empresa = novosDados.Empresa
	existente.Endereco = novosDados.Endereco
	existente.Cidade = novosDados.Cidade

	return r.DB.WithContext(ctx).Save(&existente).Error
}

func (r *Repository) Deletar(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Delete(&Cliente{}, id).Error
}
