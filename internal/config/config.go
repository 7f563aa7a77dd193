// Package config centraliza a leitura das variáveis de ambiente da API.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	HTTPAddr string

	DBHost     string
	DBPort     uint
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	RabbitURL   string
	RabbitQueue string

	// Provedor de IA ("openai" ou "gemini") e o modelo de cada um.
	Provedor    string
	OpenAIKey   string
	OpenAIModel string
	GeminiKey   string
	GeminiModel string

	WhatsAppToken       string
	WhatsAppPhoneID     string
	WhatsAppVerifyToken string

	ChatTimeout time.Duration
}

func Load() Config {
	return Config{
		HTTPAddr: getEnv("HTTP_ADDR", ":8080"),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnvUint("DB_PORT", 5432),
		DBUser:     getEnv("DB_USERNAME", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "orcamentos"),
		DBSSLMode:  getEnv("DB_SSL_MODE", "disable"),

		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("REDIS_DB", 0),

		RabbitURL:   getEnv("RABBITMQ_URL", ""),
		RabbitQueue: getEnv("RABBITMQ_QUEUE", "orcamentos.criados"),

		Provedor:    getEnv("AI_PROVIDER", "openai"),
		OpenAIKey:   getEnv("OPENAI_API_KEY", ""),
		OpenAIModel: getEnv("OPENAI_MODEL", ""),
		GeminiKey:   getEnv("GEMINI_API_KEY", ""),
		GeminiModel: getEnv("GEMINI_MODEL", ""),

		WhatsAppToken:       getEnv("WHATSAPP_TOKEN", ""),
		WhatsAppPhoneID:     getEnv("WHATSAPP_PHONE_ID", ""),
		WhatsAppVerifyToken: getEnv("WHATSAPP_VERIFY_TOKEN", ""),

		ChatTimeout: getEnvDuration("CHAT_TIMEOUT", 10*time.Second),
	}
}

// DSN monta a string de conexão do Postgres.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=%s",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort, c.DBSSLMode)
}

func getEnv(chave, padrao string) string {
	if v := os.Getenv(chave); v != "" {
		return v
	}
	return padrao
}

func getEnvInt(chave string, padrao int) int {
	v := os.Getenv(chave)
	if v == "" {
		return padrao
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return padrao
	}
	return n
}

func getEnvUint(chave string, padrao uint) uint {
	v := os.Getenv(chave)
	if v == "" {
		return padrao
	}
	n, err := strconv.ParseUint(v, 10, 32)
	if err != nil {
		return padrao
	}
	return uint(n)
}

func getEnvDuration(chave string, padrao time.Duration) time.Duration {
	v := os.Getenv(chave)
	if v == "" {
		return padrao
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return padrao
	}
	return d
}
