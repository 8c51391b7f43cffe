package util

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Secrets struct {
	Db         DbSecrets         `json:"db"`
	Oracle     OracleSecrets     `json:"oracle"`
	Alpaca     AlpacaSecrets     `json:"alpaca"`
	Jwt        string            `json:"jwt"`
	Port       int               `json:"port"`
	Allocation AllocationSecrets `json:"allocation"`
}

type DbSecrets struct {
	Host      string `json:"host"`
	User      string `json:"user"`
	Port      string `json:"port"`
	Password  string `json:"password"`
	Database  string `json:"database"`
	EnableSsl bool   `json:"enableSsl"`
}

func (t DbSecrets) ToConnectionStr() string {
	x := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s",
		t.Host, t.Port, t.User, t.Password, t.Database)
	if !t.EnableSsl {
		x += " sslmode=disable"
	}
	return x
}

type OracleSecrets struct {
	// "ollama" or "gpt"
	Backend     string `json:"backend"`
	OllamaUrl   string `json:"ollamaUrl"`
	OllamaModel string `json:"ollamaModel"`
	GptApiKey   string `json:"gpt"`
}

type AlpacaSecrets struct {
	ApiKey       string `json:"apiKey"`
	ApiSecret    string `json:"apiSecret"`
	Endpoint     string `json:"endpoint"`
	SubmitOrders bool   `json:"submitOrders"`
}

type AllocationSecrets struct {
	MaxAttempts          int    `json:"maxAttempts"`
	PriceRefreshSchedule string `json:"priceRefreshSchedule"`
}

const (
	DefaultOllamaUrl            = "http://localhost:11434"
	DefaultOllamaModel          = "llama3"
	DefaultMaxAttempts          = 2
	DefaultPriceRefreshSchedule = "*/5 * * * *"
	DefaultPort                 = 3009
)

func secretsFile() string {
	switch strings.ToLower(os.Getenv("TRADEDESK_ENV")) {
	case "dev":
		return "secrets-dev.json"
	case "test":
		return "secrets-test.json"
	default:
		return "/go/src/app/secrets.json"
	}
}

func LoadSecrets() (*Secrets, error) {
	// .env is optional
	_ = godotenv.Load()

	f, err := os.ReadFile(secretsFile())
	if err != nil {
		return nil, fmt.Errorf("could not open secrets.json: %w", err)
	}

	return ParseSecrets(f)
}

// ParseSecrets decodes a secrets file and applies env overrides and
// defaults on top of it.
func ParseSecrets(contents []byte) (*Secrets, error) {
	secrets := Secrets{}
	if err := json.Unmarshal(contents, &secrets); err != nil {
		return nil, fmt.Errorf("failed to parse secrets: %w", err)
	}

	if err := secrets.applyEnv(); err != nil {
		return nil, err
	}
	secrets.applyDefaults()

	return &secrets, nil
}

func (s *Secrets) applyEnv() error {
	overrideString(&s.Oracle.Backend, "ORACLE_BACKEND")
	overrideString(&s.Oracle.OllamaUrl, "OLLAMA_URL")
	overrideString(&s.Oracle.OllamaModel, "OLLAMA_MODEL")
	overrideString(&s.Oracle.GptApiKey, "GPT_API_KEY")
	overrideString(&s.Db.Host, "DB_HOST")
	overrideString(&s.Db.Port, "DB_PORT")
	overrideString(&s.Db.User, "DB_USER")
	overrideString(&s.Db.Password, "DB_PASSWORD")
	overrideString(&s.Db.Database, "DB_NAME")

	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid PORT %q: %w", v, err)
		}
		s.Port = port
	}
	return nil
}

func (s *Secrets) applyDefaults() {
	if s.Oracle.Backend == "" {
		s.Oracle.Backend = "ollama"
	}
	if s.Oracle.OllamaUrl == "" {
		s.Oracle.OllamaUrl = DefaultOllamaUrl
	}
	if s.Oracle.OllamaModel == "" {
		s.Oracle.OllamaModel = DefaultOllamaModel
	}
	if s.Allocation.MaxAttempts <= 0 {
		s.Allocation.MaxAttempts = DefaultMaxAttempts
	}
	if s.Allocation.PriceRefreshSchedule == "" {
		s.Allocation.PriceRefreshSchedule = DefaultPriceRefreshSchedule
	}
	if s.Port == 0 {
		s.Port = DefaultPort
	}
}

func overrideString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}
