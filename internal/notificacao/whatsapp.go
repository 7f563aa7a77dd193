// Package notificacao cuida das integrações de saída: mensagens pelo
// WhatsApp Cloud API e eventos de orçamento para o back-office.
package notificacao

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// WhatsAppSender envia mensagens de texto pela Cloud API do WhatsApp.
type WhatsAppSender struct {
	Token   string
	PhoneID string
	BaseURL string
	Client  *http.Client
}

func NewWhatsAppSender(token, phoneID string) *WhatsAppSender {
	return &WhatsAppSender{
		Token:   token,
		PhoneID: phoneID,
		BaseURL: "https://graph.facebook.com/v19.0",
		Client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type whatsAppTextoReq struct {
	MessagingProduct string            `json:"messaging_product"`
	To               string            `json:"to"`
	Type             string            `json:"type"`
	Text             whatsAppTextoBody `json:"text"`
}

type whatsAppTextoBody struct {
	Body string `json:"body"`
}

func (s *WhatsAppSender) EnviarTexto(ctx context.Context, para, texto string) error {
	payload, err := json.Marshal(whatsAppTextoReq{
		MessagingProduct: "whatsapp",
		To:               para,
		Type:             "text",
		Text:             whatsAppTextoBody{Body: texto},
	})
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/%s/messages", strings.TrimRight(s.BaseURL, "/"), s.PhoneID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.Token)

	resp, err := s.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		corpo, _ := io.ReadAll(io.LimitReader(resp.Body, 4*1024))
		return fmt.Errorf("whatsapp: status %d: %s", resp.StatusCode, strings.TrimSpace(string(corpo)))
	}
	return nil
}
