package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// ErrMissingJWTKey indica que a chave de assinatura dos tokens não foi configurada
var ErrMissingJWTKey = errors.New("chave secreta JWT não configurada (JWT_SECRET_KEY)")

// Config representa a configuração da aplicação
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Log      LogConfig
	Metrics  MetricsConfig
}

// ServerConfig contém as configurações do servidor HTTP
type ServerConfig struct {
	Port               string
	Env                string
	BasePath           string
	CORSAllowedOrigins []string
}

// DatabaseConfig contém as configurações para conexão com o PostgreSQL
type DatabaseConfig struct {
	URL             string
	Host            string
	Port            int
	User            string
	Password        string
	Name            string
	SSLMode         string
	MaxConnections  int32
	MinConnections  int32
	MaxConnLifetime time.Duration
}

// JWTConfig contém as configurações dos tokens de acesso
type JWTConfig struct {
	SecretKey  string
	Expiration time.Duration
}

// LogConfig contém as configurações de log
type LogConfig struct {
	Level string
}

// MetricsConfig contém as configurações de métricas
type MetricsConfig struct {
	Prefix string
}

// Load carrega o arquivo .env, se existir, e monta a configuração a partir
// das variáveis de ambiente
func Load() (*Config, error) {
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv monta a configuração apenas a partir das variáveis de ambiente
func FromEnv() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:               getEnv("SERVER_PORT", "8080"),
			Env:                getEnv("APP_ENV", "development"),
			BasePath:           getEnv("API_BASE_PATH", "/api/v1"),
			CORSAllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000")),
		},
		Database: DatabaseFromEnv(),
		JWT: JWTConfig{
			SecretKey:  os.Getenv("JWT_SECRET_KEY"),
			Expiration: time.Duration(getEnvAsInt("JWT_EXPIRATION_HOURS", 24)) * time.Hour,
		},
		Log: LogConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Metrics: MetricsConfig{
			Prefix: getEnv("METRICS_PREFIX", "loja"),
		},
	}

	if cfg.JWT.SecretKey == "" {
		return nil, ErrMissingJWTKey
	}

	return cfg, nil
}

// DatabaseFromEnv lê apenas a configuração do banco de dados, usada pela
// ferramenta de migrações
func DatabaseFromEnv() DatabaseConfig {
	return DatabaseConfig{
		URL:             os.Getenv("DATABASE_URL"),
		Host:            getEnv("DB_HOST", "localhost"),
		Port:            getEnvAsInt("DB_PORT", 5432),
		User:            getEnv("DB_USER", "postgres"),
		Password:        getEnv("DB_PASSWORD", "postgres"),
		Name:            getEnv("DB_NAME", "loja_colchoes"),
		SSLMode:         getEnv("DB_SSL_MODE", "disable"),
		MaxConnections:  int32(getEnvAsInt("DB_MAX_CONNECTIONS", 10)),
		MinConnections:  int32(getEnvAsInt("DB_MIN_CONNECTIONS", 2)),
		MaxConnLifetime: time.Duration(getEnvAsInt("DB_MAX_LIFETIME", 300)) * time.Second,
	}
}

// ConnectionString retorna a string de conexão para o PostgreSQL
func (c DatabaseConfig) ConnectionString() string {
	if c.URL != "" {
		return c.URL
	}
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode,
	)
}

// MigrationURL retorna a URL no formato esperado pelo golang-migrate
func (c DatabaseConfig) MigrationURL() string {
	if c.URL != "" {
		return c.URL
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.Name, c.SSLMode)
}

// IsProduction indica se a aplicação roda em produção
func (c ServerConfig) IsProduction() bool {
	return c.Env == "production"
}

// getEnv retorna o valor de uma variável de ambiente ou um valor padrão
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvAsInt retorna o valor inteiro de uma variável de ambiente ou um valor padrão
func getEnvAsInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
