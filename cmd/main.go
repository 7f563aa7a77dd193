package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/ConcrefortePremoldados/api-orcamentos/internal/assistente"
	"github.com/ConcrefortePremoldados/api-orcamentos/internal/cliente"
	"github.com/ConcrefortePremoldados/api-orcamentos/internal/config"
	"github.com/ConcrefortePremoldados/api-orcamentos/internal/conversa"
	"github.com/ConcrefortePremoldados/api-orcamentos/internal/notificacao"
	"github.com/ConcrefortePremoldados/api-orcamentos/internal/orcamento"
	"github.com/ConcrefortePremoldados/api-orcamentos/internal/produto"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/rs/cors"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Arquivo .env não encontrado, usando variáveis do ambiente")
	}
	cfg := config.Load()

	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		log.Fatal("Erro ao conectar no banco:", err)
	}

	// AutoMigrate para todos os modelos
	if err := db.AutoMigrate(
		&cliente.Cliente{},
		&produto.Produto{},
		&orcamento.Orcamento{},
		&conversa.Mensagem{},
		&conversa.RespostaAgente{},
	); err != nil {
		log.Fatal("Erro no AutoMigrate:", err)
	}

	// Repositórios
	clienteRepo := cliente.NewRepository(db)
	produtoRepo := produto.NewRepository(db)
	orcamentoRepo := orcamento.NewRepository(db)
	conversaRepo := conversa.NewRepository(db)

	// Provedores de IA
	registry := assistente.NewRegistry()
	registry.Register("openai", func(ctx context.Context, model string) (assistente.Provider, error) {
		if cfg.OpenAIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY não configurada")
		}
		return assistente.NewOpenAIProvider(cfg.OpenAIKey, model), nil
	})
	registry.Register("gemini", func(ctx context.Context, model string) (assistente.Provider, error) {
		if cfg.GeminiKey == "" {
			return nil, fmt.Errorf("GEMINI_API_KEY não configurada")
		}
		return assistente.NewGeminiProvider(ctx, cfg.GeminiKey, model)
	})

	modelo := cfg.OpenAIModel
	if cfg.Provedor == "gemini" {
		modelo = cfg.GeminiModel
	}

	persister := conversa.NewPersister(clienteRepo, orcamentoRepo, conversaRepo)
	svc := conversa.NewService(conversaRepo, registry, persister, cfg.Provedor, modelo)
	svc.TimeoutChat = cfg.ChatTimeout

	if cfg.RabbitURL != "" {
		publisher, err := notificacao.NewPublisherOrcamentos(cfg.RabbitURL, cfg.RabbitQueue)
		if err != nil {
			log.Println("Erro ao conectar no RabbitMQ, eventos desativados:", err)
		} else {
			defer publisher.Close()
			svc.Eventos = publisher
		}
	}

	// Sessões em memória por padrão; Redis quando configurado (obrigatório
	// para o canal WhatsApp, que roda com mais de uma réplica).
	var store conversa.Store = conversa.NewMemoriaStore()
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		store = conversa.NewRedisStore(rdb)
	}

	// Handlers
	clienteHandler := cliente.NewHandler(clienteRepo)
	produtoHandler := produto.NewHandler(produtoRepo)
	orcamentoHandler := orcamento.NewHandler(orcamentoRepo, clienteRepo)
	conversaHandler := conversa.NewHandler(svc, store)

	// Router
	r := mux.NewRouter()

	// Rotas de clientes
	r.HandleFunc("/clientes", clienteHandler.CriarCliente).Methods("POST")
	r.HandleFunc("/clientes", clienteHandler.ListarClientes).Methods("GET")
	r.HandleFunc("/clientes/{id}", clienteHandler.BuscarPorID).Methods("GET")
	r.HandleFunc("/clientes/{id}", clienteHandler.AtualizarCliente).Methods("PUT")
	r.HandleFunc("/clientes/{id}", clienteHandler.DeletarCliente).Methods("DELETE")

	// Rotas do catálogo de produtos
	r.HandleFunc("/produtos", produtoHandler.ListarProdutos).Methods("GET")
	r.HandleFunc("/produtos", produtoHandler.CriarProduto).Methods("POST")
	r.HandleFunc("/produtos/{id}", produtoHandler.BuscarProduto).Methods("GET")
	r.HandleFunc("/produtos/{id}", produtoHandler.AtualizarProduto).Methods("PUT")
	r.HandleFunc("/produtos/{id}", produtoHandler.DeletarProduto).Methods("DELETE")

	// Rotas de orçamentos
	r.HandleFunc("/orcamentos", orcamentoHandler.SolicitarOrcamento).Methods("POST")
	r.HandleFunc("/orcamentos", orcamentoHandler.ListarOrcamentos).Methods("GET")
	r.HandleFunc("/orcamentos/{id}", orcamentoHandler.BuscarPorID).Methods("GET")
	r.HandleFunc("/orcamentos/{id}/status", orcamentoHandler.AtualizarStatus).Methods("PATCH")
	r.HandleFunc("/orcamentos/{id}", orcamentoHandler.DeletarOrcamento).Methods("DELETE")
	r.HandleFunc("/clientes/{id}/orcamentos", orcamentoHandler.ListarPorCliente).Methods("GET")

	// Rotas do vendedor virtual no site
	r.HandleFunc("/conversas", conversaHandler.IniciarConversa).Methods("POST")
	r.HandleFunc("/conversas/{id}", conversaHandler.BuscarConversa).Methods("GET")
	r.HandleFunc("/conversas/{id}", conversaHandler.EncerrarConversa).Methods("DELETE")
	r.HandleFunc("/conversas/{id}/mensagens", conversaHandler.EnviarMensagem).Methods("POST")
	r.HandleFunc("/conversas/{id}/mensagens", conversaHandler.ListarMensagens).Methods("GET")
	r.HandleFunc("/conversas/{id}/enviar", conversaHandler.EnviarParaVendedor).Methods("POST")

	// Canal WhatsApp, só quando as credenciais da Cloud API existem
	if cfg.WhatsAppToken != "" && cfg.WhatsAppPhoneID != "" {
		sender := notificacao.NewWhatsAppSender(cfg.WhatsAppToken, cfg.WhatsAppPhoneID)
		webhook := notificacao.NewWebhookHandler(cfg.WhatsAppVerifyToken, svc, store, sender)
		r.HandleFunc("/webhook/whatsapp", webhook.Verificar).Methods("GET")
		r.HandleFunc("/webhook/whatsapp", webhook.Receber).Methods("POST")
	}

	handler := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
	}).Handler(r)

	// Inicia servidor
	fmt.Println("Servidor rodando em", cfg.HTTPAddr)
	log.Fatal(http.ListenAndServe(cfg.HTTPAddr, handler))
}
