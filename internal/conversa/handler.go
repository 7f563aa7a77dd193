package conversa

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
)

// Handler expõe o atendimento do vendedor virtual para o site. Toda rota que
// mexe na sessão segura a trava da sessão do início ao fim, cobrindo a
// janela entre buscar no Store e salvar de volta.
type Handler struct {
	Svc    *Service
	Store  Store
	travas *TravaSessoes
}

func NewHandler(svc *Service, store Store) *Handler {
	return &Handler{Svc: svc, Store: store, travas: NewTravaSessoes()}
}

type iniciarConversaRequest struct {
	Identidade string `json:"identidade"`
}

type mensagemRequest struct {
	Conteudo string `json:"conteudo"`
}

// POST /conversas
func (h *Handler) IniciarConversa(w http.ResponseWriter, r *http.Request) {
	var req iniciarConversaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}

	sessao := NovaSessao(req.Identidade, CanalSite)
	if err := h.Store.Salvar(r.Context(), sessao); err != nil {
		http.Error(w, "erro ao criar conversa", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]string{"sessao_id": sessao.ID})
}

// POST /conversas/{id}/mensagens
func (h *Handler) EnviarMensagem(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	destrancar := h.travas.Trancar(id)
	defer destrancar()

	sessao, ok := h.buscarSessao(w, r)
	if !ok {
		return
	}

	var req mensagemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Conteudo == "" {
		http.Error(w, "mensagem vazia", http.StatusBadRequest)
		return
	}

	resposta, err := h.Svc.ProcessarMensagem(r.Context(), sessao, req.Conteudo)
	if err != nil {
		// A resposta do vendedor existe mesmo quando a persistência falhou;
		// o front avisa o cliente e oferece o reenvio manual.
		corpo := map[string]any{
			"resposta":          resposta,
			"erro_persistencia": true,
			"orcamento_criado":  false,
		}
		if salvarErr := h.Store.Salvar(r.Context(), sessao); salvarErr == nil {
			json.NewEncoder(w).Encode(corpo)
			return
		}
		http.Error(w, "erro ao processar mensagem", http.StatusInternalServerError)
		return
	}

	if err := h.Store.Salvar(r.Context(), sessao); err != nil {
		http.Error(w, "erro ao salvar conversa", http.StatusInternalServerError)
		return
	}

	json.NewEncoder(w).Encode(map[string]any{
		"resposta":         resposta,
		"rascunho":         sessao.Rascunho,
		"orcamento_criado": sessao.OrcamentoID != 0,
		"orcamento_id":     sessao.OrcamentoID,
	})
}

// GET /conversas/{id}
func (h *Handler) BuscarConversa(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	destrancar := h.travas.Trancar(id)
	defer destrancar()

	sessao, ok := h.buscarSessao(w, r)
	if !ok {
		return
	}
	json.NewEncoder(w).Encode(sessao)
}

// GET /conversas/{id}/mensagens
//
// Auditoria do back-office: lê os turnos gravados no banco, não a sessão.
func (h *Handler) ListarMensagens(w http.ResponseWriter, r *http.Request) {
	msgs, err := h.Svc.Repo.ListarPorSessao(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "erro ao listar mensagens", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(msgs)
}

// POST /conversas/{id}/enviar
//
// Reenvio manual ("enviar para um vendedor"): usa o rascunho já calculado,
// sem refazer a extração, para quando a persistência automática falhou.
func (h *Handler) EnviarParaVendedor(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	destrancar := h.travas.Trancar(id)
	defer destrancar()

	sessao, ok := h.buscarSessao(w, r)
	if !ok {
		return
	}

	if sessao.OrcamentoID != 0 {
		json.NewEncoder(w).Encode(map[string]any{"orcamento_id": sessao.OrcamentoID})
		return
	}

	orcID, err := h.Svc.Persister.Persistir(r.Context(), sessao, sessao.Rascunho)
	if err != nil {
		if errors.Is(err, ErrRascunhoVazio) || errors.Is(err, ErrSemIdentidade) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, "erro ao enviar orçamento, tente novamente", http.StatusInternalServerError)
		return
	}

	sessao.OrcamentoID = orcID
	if err := h.Store.Salvar(r.Context(), sessao); err != nil {
		http.Error(w, "erro ao salvar conversa", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]any{"orcamento_id": orcID})
}

// DELETE /conversas/{id}
func (h *Handler) EncerrarConversa(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	destrancar := h.travas.Trancar(id)
	defer destrancar()

	if err := h.Store.Remover(r.Context(), id); err != nil {
		http.Error(w, "erro ao encerrar conversa", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) buscarSessao(w http.ResponseWriter, r *http.Request) (*Sessao, bool) {
	id := mux.Vars(r)["id"]
	sessao, err := h.Store.Buscar(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrSessaoNaoEncontrada) {
			http.Error(w, "conversa não encontrada", http.StatusNotFound)
			return nil, false
		}
		http.Error(w, "erro ao buscar conversa", http.StatusInternalServerError)
		return nil, false
	}
	return sessao, true
}
