package produto

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	gormsqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func abrirCatalogoDeTeste(t *testing.T) *Repository {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(gormsqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("abrir sqlite: %v", err)
	}
	if err := db.AutoMigrate(&Produto{}); err != nil {
		t.Fatalf("automigrate: %v", err)
	}

	repo := NewRepository(db)
	seeds := []Produto{
		{Categoria: CategoriaTubo, Nome: "Tubo PA1 0.30x1.00", Ativo: true},
		{Categoria: CategoriaPoste, Nome: "Poste circular 9/300", Ativo: true},
		{Categoria: CategoriaBloco, Nome: "Bloco 14x19x39 fora de linha", Ativo: true},
	}
	for i := range seeds {
		if err := repo.Salvar(context.Background(), &seeds[i]); err != nil {
			t.Fatalf("seed produto: %v", err)
		}
	}
	// O bloco sai de linha depois de cadastrado.
	if err := db.Model(&seeds[2]).Update("ativo", false).Error; err != nil {
		t.Fatalf("desativar produto: %v", err)
	}
	return repo
}

func listar(t *testing.T, h *Handler, url string) []Produto {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, url, nil)
	rec := httptest.NewRecorder()
	h.ListarProdutos(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("listar produtos %s: status %d", url, rec.Code)
	}
	var produtos []Produto
	if err := json.NewDecoder(rec.Body).Decode(&produtos); err != nil {
		t.Fatalf("decodificar resposta: %v", err)
	}
	return produtos
}

func TestListarProdutos_SiteSoVeAtivos(t *testing.T) {
	h := NewHandler(abrirCatalogoDeTeste(t))

	produtos := listar(t, h, "/produtos")
	if len(produtos) != 2 {
		t.Fatalf("esperava 2 produtos ativos, vieram %d", len(produtos))
	}
	for _, p := range produtos {
		if !p.Ativo {
			t.Fatalf("produto inativo vazou para o site: %q", p.Nome)
		}
	}
}

func TestListarProdutos_FiltraPorCategoria(t *testing.T) {
	h := NewHandler(abrirCatalogoDeTeste(t))

	produtos := listar(t, h, "/produtos?categoria=poste")
	if len(produtos) != 1 || produtos[0].Categoria != CategoriaPoste {
		t.Fatalf("filtro por categoria errado: %+v", produtos)
	}
}

func TestListarProdutos_BackOfficeVeInativos(t *testing.T) {
	h := NewHandler(abrirCatalogoDeTeste(t))

	produtos := listar(t, h, "/produtos?incluir_inativos=true")
	if len(produtos) != 3 {
		t.Fatalf("esperava o catálogo inteiro (3), vieram %d", len(produtos))
	}
}
