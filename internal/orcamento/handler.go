package orcamento

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/ConcrefortePremoldados/api-orcamentos/internal/cliente"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

var validate = validator.New()

// Handler cobre o fluxo manual de solicitação (formulário do site) e a
// administração de orçamentos no back-office.
type Handler struct {
	Repo     *Repository
	Clientes *cliente.Repository
}

func NewHandler(repo *Repository, clientes *cliente.Repository) *Handler {
	return &Handler{Repo: repo, Clientes: clientes}
}

// POST /orcamentos
func (h *Handler) SolicitarOrcamento(w http.ResponseWriter, r *http.Request) {
	var req SolicitacaoOrcamento
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}
	if err := validate.Struct(req); err != nil {
		http.Error(w, "solicitação incompleta: "+err.Error(), http.StatusBadRequest)
		return
	}

	ctx := r.Context()

	// Reaproveita o cadastro se o e-mail já existe; senão cria na hora.
	c, err := h.Clientes.BuscarPorEmail(ctx, req.Email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		nome := req.Nome
		if nome == "" {
			nome = strings.SplitN(req.Email, "@", 2)[0]
		}
		c = &cliente.Cliente{Nome: nome, Email: req.Email, Telefone: req.Telefone}
		if err := h.Clientes.Salvar(ctx, c); err != nil {
			http.Error(w, "erro ao cadastrar cliente", http.StatusInternalServerError)
			return
		}
	} else if err != nil {
		http.Error(w, "erro ao buscar cliente", http.StatusInternalServerError)
		return
	}

	itens, err := json.Marshal(req.Itens)
	if err != nil {
		http.Error(w, "erro ao montar orçamento", http.StatusInternalServerError)
		return
	}

	var total float64
	for _, item := range req.Itens {
		total += item.PrecoTotal
	}

	o := Orcamento{
		ClienteID:      c.ID,
		Status:         StatusPendente,
		Itens:          string(itens),
		LocalEntrega:   req.LocalEntrega,
		Prazo:          req.Prazo,
		FormaPagamento: req.FormaPagamento,
		ValorTotal:     total,
		CriadoPor:      OrigemSite,
		Observacoes:    req.Observacoes,
	}
	if err := h.Repo.Salvar(ctx, &o); err != nil {
		http.Error(w, "erro ao salvar orçamento", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(o)
}

// GET /orcamentos?status=pendente
func (h *Handler) ListarOrcamentos(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")

	var (
		orcamentos []Orcamento
		err        error
	)
	if status != "" {
		orcamentos, err = h.Repo.ListarPorStatus(r.Context(), status)
	} else {
		orcamentos, err = h.Repo.ListarTodos(r.Context())
	}
	if err != nil {
		http.Error(w, "erro ao listar orçamentos", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(orcamentos)
}

// GET /orcamentos/{id}
func (h *Handler) BuscarPorID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	o, err := h.Repo.BuscarPorID(r.Context(), uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.Error(w, "orçamento não encontrado", http.StatusNotFound)
			return
		}
		http.Error(w, "erro ao buscar orçamento", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(o)
}

// GET /clientes/{id}/orcamentos
func (h *Handler) ListarPorCliente(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID de cliente inválido", http.StatusBadRequest)
		return
	}

	orcamentos, err := h.Repo.ListarPorCliente(r.Context(), uint(id))
	if err != nil {
		http.Error(w, "erro ao listar orçamentos do cliente", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(orcamentos)
}

// PATCH /orcamentos/{id}/status
func (h *Handler) AtualizarStatus(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	var req AtualizacaoStatus
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}
	if err := validate.Struct(req); err != nil {
		http.Error(w, "status inválido", http.StatusBadRequest)
		return
	}

	if err := h.Repo.AtualizarStatus(r.Context(), uint(id), req.Status, req.ValorTotal); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.Error(w, "orçamento não encontrado", http.StatusNotFound)
			return
		}
		http.Error(w, "erro ao atualizar orçamento", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("orçamento atualizado com sucesso"))
}

// DELETE /orcamentos/{id}
func (h *Handler) DeletarOrcamento(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	if err := h.Repo.Deletar(r.Context(), uint(id)); err != nil {
		http.Error(w, "erro ao remover orçamento", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
