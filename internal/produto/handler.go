package produto

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

type Handler struct {
	Repo *Repository
}

func NewHandler(repo *Repository) *Handler {
	return &Handler{Repo: repo}
}

// GET /produtos?categoria=tubo
//
// O site só vê o catálogo ativo; o back-office pede tudo com
// ?incluir_inativos=true.
func (h *Handler) ListarProdutos(w http.ResponseWriter, r *http.Request) {
	var (
		produtos []Produto
		err      error
	)
	if r.URL.Query().Get("incluir_inativos") == "true" {
		produtos, err = h.Repo.ListarTodos(r.Context())
	} else {
		produtos, err = h.Repo.ListarAtivos(r.Context(), r.URL.Query().Get("categoria"))
	}
	if err != nil {
		http.Error(w, "erro ao buscar produtos", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(produtos)
}

// GET /produtos/{id}
func (h *Handler) BuscarProduto(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID de produto inválido", http.StatusBadRequest)
		return
	}

	p, err := h.Repo.BuscarPorID(r.Context(), uint(id))
	if err != nil {
		http.Error(w, "produto não encontrado", http.StatusNotFound)
		return
	}
	json.NewEncoder(w).Encode(p)
}

// POST /produtos
func (h *Handler) CriarProduto(w http.ResponseWriter, r *http.Request) {
	var p Produto
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		http.Error(w, "JSON mal formado", http.StatusBadRequest)
		return
	}
	if p.Nome == "" || p.Categoria == "" {
		http.Error(w, "nome e categoria são obrigatórios", http.StatusBadRequest)
		return
	}

	if err := h.Repo.Salvar(r.Context(), &p); err != nil {
		http.Error(w, "erro ao inserir produto", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(p)
}

// PUT /produtos/{id}
func (h *Handler) AtualizarProduto(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID de produto inválido", http.StatusBadRequest)
		return
	}

	existente, err := h.Repo.BuscarPorID(r.Context(), uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.Error(w, "produto não encontrado", http.StatusNotFound)
			return
		}
		http.Error(w, "erro ao buscar produto", http.StatusInternalServerError)
		return
	}

	var dados Produto
	if err := json.NewDecoder(r.Body).Decode(&dados); err != nil {
		http.Error(w, "JSON mal formado", http.StatusBadRequest)
		return
	}

	existente.Categoria = dados.Categoria
	existente.Nome = dados.Nome
	existente.Descricao = dados.Descricao
	existente.Dimensoes = dados.Dimensoes
	existente.Subtipo = dados.Subtipo
	existente.Preco = dados.Preco
	existente.Ativo = dados.Ativo

	if err := h.Repo.Atualizar(r.Context(), existente); err != nil {
		http.Error(w, "erro ao atualizar produto", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(existente)
}

// DELETE /produtos/{id}
func (h *Handler) DeletarProduto(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID de produto inválido", http.StatusBadRequest)
		return
	}

	if err := h.Repo.Deletar(r.Context(), uint(id)); err != nil {
		http.Error(w, "erro ao deletar produto", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
