package assistente

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

type ProviderFactory func(ctx context.Context, model string) (Provider, error)

// Registry resolve provedores por nome ("openai", "gemini"), permitindo
// trocar o backend do vendedor virtual por configuração.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]ProviderFactory
}

func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]ProviderFactory)}
}

func (r *Registry) Register(nome string, f ProviderFactory) {
	nome = strings.ToLower(strings.TrimSpace(nome))
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[nome] = f
}

func (r *Registry) Get(ctx context.Context, nome string, model string) (Provider, error) {
	nome = strings.ToLower(strings.TrimSpace(nome))
	r.mu.RLock()
	f, ok := r.factories[nome]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("provedor de IA desconhecido: %s", nome)
	}
	return f(ctx, model)
}
