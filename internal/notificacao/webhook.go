package notificacao

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/ConcrefortePremoldados/api-orcamentos/internal/conversa"
)

// WebhookHandler recebe as mensagens do WhatsApp. Cada requisição chega sem
// estado: a sessão da conversa é recuperada do Store pelo telefone do
// remetente. A Meta reentrega o webhook quando não recebe 200, então o
// atendimento de cada remetente segura a trava da sessão do buscar ao salvar
// para duas entregas simultâneas não criarem dois orçamentos.
type WebhookHandler struct {
	VerifyToken string
	Svc         *conversa.Service
	Store       conversa.Store
	Sender      *WhatsAppSender
	travas      *conversa.TravaSessoes
}

func NewWebhookHandler(verifyToken string, svc *conversa.Service, store conversa.Store, sender *WhatsAppSender) *WebhookHandler {
	return &WebhookHandler{
		VerifyToken: verifyToken,
		Svc:         svc,
		Store:       store,
		Sender:      sender,
		travas:      conversa.NewTravaSessoes(),
	}
}

// GET /webhook/whatsapp, a verificação de assinatura exigida pela Meta.
func (h *WebhookHandler) Verificar(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if q.Get("hub.mode") == "subscribe" && q.Get("hub.verify_token") == h.VerifyToken {
		w.Write([]byte(q.Get("hub.challenge")))
		return
	}
	http.Error(w, "token de verificação inválido", http.StatusForbidden)
}

// Estrutura mínima do payload de mensagens da Cloud API.
type webhookPayload struct {
	Entry []struct {
		Changes []struct {
			Value struct {
				Messages []struct {
					From string `json:"from"`
					Type string `json:"type"`
					Text struct {
						Body string `json:"body"`
					} `json:"text"`
				} `json:"messages"`
			} `json:"value"`
		} `json:"changes"`
	} `json:"entry"`
}

// POST /webhook/whatsapp
func (h *WebhookHandler) Receber(w http.ResponseWriter, r *http.Request) {
	var payload webhookPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	for _, entry := range payload.Entry {
		for _, change := range entry.Changes {
			for _, msg := range change.Value.Messages {
				if msg.Type != "text" || msg.From == "" {
					continue
				}
				h.atender(ctx, msg.From, msg.Text.Body)
			}
		}
	}

	// A Meta reenvia o webhook se não receber 200.
	w.WriteHeader(http.StatusOK)
}

func (h *WebhookHandler) atender(ctx context.Context, de, texto string) {
	sessaoID := "wa:" + de
	destrancar := h.travas.Trancar(sessaoID)
	defer destrancar()

	sessao, err := h.Store.Buscar(ctx, sessaoID)
	if errors.Is(err, conversa.ErrSessaoNaoEncontrada) {
		sessao = conversa.NovaSessao(de, conversa.CanalWhatsApp)
		sessao.ID = sessaoID
	} else if err != nil {
		log.Printf("webhook whatsapp: erro ao buscar sessão de %s: %v", de, err)
		return
	}

	resposta, err := h.Svc.ProcessarMensagem(ctx, sessao, texto)
	if err != nil {
		log.Printf("webhook whatsapp: erro ao persistir orçamento de %s: %v", de, err)
	}

	if err := h.Store.Salvar(ctx, sessao); err != nil {
		log.Printf("webhook whatsapp: erro ao salvar sessão de %s: %v", de, err)
	}

	if err := h.Sender.EnviarTexto(ctx, de, resposta); err != nil {
		log.Printf("webhook whatsapp: erro ao responder %s: %v", de, err)
	}
}
