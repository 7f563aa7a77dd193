package cliente

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

// Handler expõe o CRUD de clientes usado pelo back-office.
type Handler struct {
	Repo *Repository
}

func NewHandler(repo *Repository) *Handler {
	return &Handler{Repo: repo}
}

// POST /clientes
func (h *Handler) CriarCliente(w http.ResponseWriter, r *http.Request) {
	var c Cliente
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}
	if c.Email == "" && c.Telefone == "" {
		http.Error(w, "cliente precisa de e-mail ou telefone", http.StatusBadRequest)
		return
	}

	if err := h.Repo.Salvar(r.Context(), &c); err != nil {
		http.Error(w, "erro ao salvar cliente", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(c)
}

// GET /clientes
func (h *Handler) ListarClientes(w http.ResponseWriter, r *http.Request) {
	clientes, err := h.Repo.ListarTodos(r.Context())
	if err != nil {
		http.Error(w, "erro ao listar clientes", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(clientes)
}

// GET /clientes/{id}
func (h *Handler) BuscarPorID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	c, err := h.Repo.BuscarPorID(r.Context(), uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.Error(w, "cliente não encontrado", http.StatusNotFound)
			return
		}
		http.Error(w, "erro ao buscar cliente", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(c)
}

// PUT /clientes/{id}
func (h *Handler) AtualizarCliente(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	var dados Cliente
	if err := json.NewDecoder(r.Body).Decode(&dados); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}

	if err := h.Repo.Atualizar(r.Context(), uint(id), &dados); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.Error(w, "cliente não encontrado", http.StatusNotFound)
			return
		}
		http.Error(w, "erro ao atualizar cliente", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("cliente atualizado com sucesso"))
}

// DELETE /clientes/{id}
func (h *Handler) DeletarCliente(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	if err := h.Repo.Deletar(r.Context(), uint(id)); err != nil {
		http.Error(w, "erro ao remover cliente", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
