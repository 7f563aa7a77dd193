package notificacao

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/ConcrefortePremoldados/api-orcamentos/internal/assistente"
	"github.com/ConcrefortePremoldados/api-orcamentos/internal/cliente"
	"github.com/ConcrefortePremoldados/api-orcamentos/internal/conversa"
	"github.com/ConcrefortePremoldados/api-orcamentos/internal/orcamento"
	gormsqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

type provedorFixo struct {
	resposta string
}

func (p *provedorFixo) Chat(ctx context.Context, mensagens []assistente.Mensagem) (string, error) {
	return p.resposta, nil
}

// cloudAPIFalsa captura as chamadas de envio feitas pelo sender.
type cloudAPIFalsa struct {
	mu       sync.Mutex
	caminhos []string
	corpos   []string
}

func (c *cloudAPIFalsa) handler(w http.ResponseWriter, r *http.Request) {
	corpo, _ := io.ReadAll(r.Body)
	c.mu.Lock()
	c.caminhos = append(c.caminhos, r.URL.Path)
	c.corpos = append(c.corpos, string(corpo))
	c.mu.Unlock()
	w.WriteHeader(http.StatusOK)
}

func (c *cloudAPIFalsa) enviadas() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.caminhos)
}

func montarWebhook(t *testing.T, respostaIA string) (*WebhookHandler, *conversa.MemoriaStore, *cloudAPIFalsa) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(gormsqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("abrir sqlite: %v", err)
	}
	if err := db.AutoMigrate(&cliente.Cliente{}, &orcamento.Orcamento{}, &conversa.Mensagem{}, &conversa.RespostaAgente{}); err != nil {
		t.Fatalf("automigrate: %v", err)
	}

	reg := assistente.NewRegistry()
	reg.Register("fake", func(ctx context.Context, model string) (assistente.Provider, error) {
		return &provedorFixo{resposta: respostaIA}, nil
	})

	repo := conversa.NewRepository(db)
	persister := conversa.NewPersister(cliente.NewRepository(db), orcamento.NewRepository(db), repo)
	persister.Intervalo = 0
	svc := conversa.NewService(repo, reg, persister, "fake", "")

	api := &cloudAPIFalsa{}
	srv := httptest.NewServer(http.HandlerFunc(api.handler))
	t.Cleanup(srv.Close)

	sender := NewWhatsAppSender("token-de-teste", "5511000000")
	sender.BaseURL = srv.URL

	store := conversa.NewMemoriaStore()
	return NewWebhookHandler("segredo", svc, store, sender), store, api
}

func TestVerificar_TokenCorreto(t *testing.T) {
	h, _, _ := montarWebhook(t, "ok")

	req := httptest.NewRequest(http.MethodGet,
		"/webhook/whatsapp?hub.mode=subscribe&hub.verify_token=segredo&hub.challenge=42", nil)
	rec := httptest.NewRecorder()
	h.Verificar(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status inesperado: %d", rec.Code)
	}
	if rec.Body.String() != "42" {
		t.Fatalf("deveria ecoar o challenge, veio %q", rec.Body.String())
	}
}

func TestVerificar_TokenErrado(t *testing.T) {
	h, _, _ := montarWebhook(t, "ok")

	req := httptest.NewRequest(http.MethodGet,
		"/webhook/whatsapp?hub.mode=subscribe&hub.verify_token=outro&hub.challenge=42", nil)
	rec := httptest.NewRecorder()
	h.Verificar(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("token errado deveria dar 403, veio %d", rec.Code)
	}
}

func TestReceber_MensagemDeTexto(t *testing.T) {
	h, store, api := montarWebhook(t, "Olá! O que você precisa?")

	payload := `{"entry":[{"changes":[{"value":{"messages":[
		{"from":"5517999990000","type":"text","text":{"body":"Oi, preciso de tubos"}}
	]}}]}]}`
	req := httptest.NewRequest(http.MethodPost, "/webhook/whatsapp", strings.NewReader(payload))
	rec := httptest.NewRecorder()
	h.Receber(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("webhook deveria responder 200, veio %d", rec.Code)
	}

	sessao, err := store.Buscar(context.Background(), "wa:5517999990000")
	if err != nil {
		t.Fatalf("sessão deveria ter sido criada pelo telefone: %v", err)
	}
	if sessao.Canal != conversa.CanalWhatsApp {
		t.Fatalf("canal errado: %q", sessao.Canal)
	}
	if len(sessao.Turnos) != 2 {
		t.Fatalf("esperava 2 turnos na sessão, vieram %d", len(sessao.Turnos))
	}

	if api.enviadas() != 1 {
		t.Fatalf("esperava 1 resposta enviada, vieram %d", api.enviadas())
	}
	if api.caminhos[0] != "/5511000000/messages" {
		t.Fatalf("caminho da Cloud API errado: %q", api.caminhos[0])
	}
	if !strings.Contains(api.corpos[0], `"to":"5517999990000"`) {
		t.Fatalf("resposta não endereçada ao remetente: %s", api.corpos[0])
	}
	if !strings.Contains(api.corpos[0], "Olá! O que você precisa?") {
		t.Fatalf("corpo não carrega a fala do vendedor: %s", api.corpos[0])
	}
}

func TestReceber_IgnoraMensagemNaoTexto(t *testing.T) {
	h, store, api := montarWebhook(t, "ok")

	payload := `{"entry":[{"changes":[{"value":{"messages":[
		{"from":"5517999990000","type":"image"}
	]}}]}]}`
	req := httptest.NewRequest(http.MethodPost, "/webhook/whatsapp", strings.NewReader(payload))
	rec := httptest.NewRecorder()
	h.Receber(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("webhook deveria responder 200 mesmo ignorando, veio %d", rec.Code)
	}
	if _, err := store.Buscar(context.Background(), "wa:5517999990000"); !errors.Is(err, conversa.ErrSessaoNaoEncontrada) {
		t.Fatalf("mensagem não textual não deveria abrir sessão, veio %v", err)
	}
	if api.enviadas() != 0 {
		t.Fatalf("nada deveria ter sido enviado, vieram %d", api.enviadas())
	}
}

func TestReceber_PayloadInvalido(t *testing.T) {
	h, _, _ := montarWebhook(t, "ok")

	req := httptest.NewRequest(http.MethodPost, "/webhook/whatsapp", strings.NewReader("{"))
	rec := httptest.NewRecorder()
	h.Receber(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("payload quebrado deveria dar 400, veio %d", rec.Code)
	}
}
