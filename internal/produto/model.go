package produto

import "gorm.io/gorm"

// Categorias do catálogo. Os mesmos nomes aparecem na heurística de
// extração do vendedor virtual.
const (
	CategoriaTubo  = "tubo"
	CategoriaPoste = "poste"
	CategoriaBloco = "bloco"
)

// Produto é um item do catálogo exibido no site.
type Produto struct {
	gorm.Model
	Categoria string  `gorm:"size:32;not null;index" json:"categoria"`
	Nome      string  `gorm:"size:255;not null" json:"nome"`
	Descricao string  `gorm:"type:text" json:"descricao"`
	Dimensoes string  `gorm:"size:64" json:"dimensoes"`
	Subtipo   string  `gorm:"size:64" json:"subtipo"`
	Preco     float64 `gorm:"not null;default:0" json:"preco"`
	Ativo     bool    `gorm:"not null;default:true" json:"ativo"`
}
