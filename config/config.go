package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds every setting the backend reads at start. Values come from
// defaults, then an optional YAML file (CONFIG_FILE), then the environment.
type Config struct {
	Port   string `yaml:"port"`
	AppEnv string `yaml:"app_env"`

	Provider        string `yaml:"ai_provider"`
	CredentialEnv   string `yaml:"ai_credential_env"`
	ChatModel       string `yaml:"chat_model"`
	SuggestionModel string `yaml:"suggestion_model"`
	TTSModel        string `yaml:"tts_model"`
	TTSVoice        string `yaml:"tts_voice"`
	TTSLanguage     string `yaml:"tts_language"`
	OpenAIBaseURL   string `yaml:"openai_base_url"`
	GeminiBaseURL   string `yaml:"gemini_base_url"`

	InstitutionalContextFile string `yaml:"institutional_context_file"`
	StrictCatalog            bool   `yaml:"strict_catalog"`

	DataDir     string `yaml:"data_dir"`
	UploadDir   string `yaml:"upload_dir"`
	MaxUploadMB int    `yaml:"max_upload_mb"`

	CORSOrigins    []string `yaml:"cors_origins"`
	RateLimitRPS   float64  `yaml:"rate_limit_rps"`
	RateLimitBurst int      `yaml:"rate_limit_burst"`

	DB DBConfig `yaml:"db"`
}

// DBConfig enables the MySQL data source when Host is set.
type DBConfig struct {
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
}

func (d DBConfig) Enabled() bool { return strings.TrimSpace(d.Host) != "" }

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

// Defaults returns the configuration used when nothing else is provided.
func Defaults() Config {
	return Config{
		Port:           "8001",
		AppEnv:         "dev",
		Provider:       ProviderGemini,
		TTSLanguage:    "pt-BR",
		DataDir:        "./data",
		UploadDir:      "./tmp",
		MaxUploadMB:    10,
		CORSOrigins:    []string{"http://localhost", "http://localhost:8080", "http://127.0.0.1:8080"},
		RateLimitRPS:   2,
		RateLimitBurst: 5,
		DB:             DBConfig{Port: "3306"},
	}
}

// Load reads .env files (missing files are ignored), the optional YAML file
// and the environment.
func Load(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, p := range envFiles {
		_ = godotenv.Load(p)
	}
	cfg := Defaults()
	if path := strings.TrimSpace(os.Getenv("CONFIG_FILE")); path != "" {
		if err := cfg.mergeYAML(path); err != nil {
			return Config{}, err
		}
	}
	if err := cfg.mergeEnv(os.Getenv); err != nil {
		return Config{}, err
	}
	cfg.applyProviderDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) mergeYAML(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(b, c); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}
	return nil
}

func (c *Config) mergeEnv(getenv func(string) string) error {
	str := func(name string, dst *string) {
		if v := sanitizeEnv(getenv(name)); v != "" {
			*dst = v
		}
	}
	str("PORT", &c.Port)
	str("APP_ENV", &c.AppEnv)
	str("AI_PROVIDER", &c.Provider)
	str("AI_CREDENTIAL_ENV", &c.CredentialEnv)
	str("CHAT_MODEL", &c.ChatModel)
	str("SUGGESTION_MODEL", &c.SuggestionModel)
	str("TTS_MODEL", &c.TTSModel)
	str("TTS_VOICE", &c.TTSVoice)
	str("TTS_LANGUAGE", &c.TTSLanguage)
	str("OPENAI_BASE_URL", &c.OpenAIBaseURL)
	str("GEMINI_BASE_URL", &c.GeminiBaseURL)
	str("INSTITUTIONAL_CONTEXT_FILE", &c.InstitutionalContextFile)
	str("DATA_DIR", &c.DataDir)
	str("UPLOAD_DIR", &c.UploadDir)
	str("DB_HOST", &c.DB.Host)
	str("DB_PORT", &c.DB.Port)
	str("DB_USER", &c.DB.User)
	str("DB_PASSWORD", &c.DB.Password)
	str("DB_NAME", &c.DB.Name)

	if v := sanitizeEnv(getenv("CORS_ORIGINS")); v != "" {
		c.CORSOrigins = splitList(v)
	}
	if v := sanitizeEnv(getenv("STRICT_CATALOG")); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("config: STRICT_CATALOG=%q: %w", v, err)
		}
		c.StrictCatalog = b
	}
	if v := sanitizeEnv(getenv("MAX_UPLOAD_MB")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: MAX_UPLOAD_MB=%q: %w", v, err)
		}
		c.MaxUploadMB = n
	}
	if v := sanitizeEnv(getenv("RATE_LIMIT_RPS")); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("config: RATE_LIMIT_RPS=%q: %w", v, err)
		}
		c.RateLimitRPS = f
	}
	if v := sanitizeEnv(getenv("RATE_LIMIT_BURST")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: RATE_LIMIT_BURST=%q: %w", v, err)
		}
		c.RateLimitBurst = n
	}
	return nil
}

func (c *Config) applyProviderDefaults() {
	c.Provider = strings.ToLower(strings.TrimSpace(c.Provider))
	switch c.Provider {
	case ProviderOpenAI:
		setDefault(&c.CredentialEnv, "OPENAI_API_KEY")
		setDefault(&c.ChatModel, "gpt-4o-mini")
		setDefault(&c.SuggestionModel, "gpt-4o-mini")
		setDefault(&c.TTSModel, "tts-1")
		setDefault(&c.TTSVoice, "alloy")
	default:
		setDefault(&c.CredentialEnv, "GEMINI_API_KEY")
		setDefault(&c.ChatModel, "gemini-2.5-flash")
		setDefault(&c.SuggestionModel, "gemini-2.5-flash")
		setDefault(&c.TTSModel, "gemini-2.5-flash-preview-tts")
		setDefault(&c.TTSVoice, "Kore")
	}
}

// Validate reports settings the server cannot start with.
func (c Config) Validate() error {
	switch c.Provider {
	case ProviderGemini, ProviderOpenAI:
	default:
		return fmt.Errorf("config: unknown AI_PROVIDER %q (expected gemini or openai)", c.Provider)
	}
	if strings.TrimSpace(c.CredentialEnv) == "" {
		return fmt.Errorf("config: AI_CREDENTIAL_ENV is empty")
	}
	if c.MaxUploadMB <= 0 {
		return fmt.Errorf("config: MAX_UPLOAD_MB must be positive")
	}
	if c.RateLimitRPS < 0 || c.RateLimitBurst < 0 {
		return fmt.Errorf("config: rate limit values must not be negative")
	}
	return nil
}

// ReadInstitutionalContext returns the override text, or "" when no file is configured.
func (c Config) ReadInstitutionalContext() (string, error) {
	if strings.TrimSpace(c.InstitutionalContextFile) == "" {
		return "", nil
	}
	b, err := os.ReadFile(c.InstitutionalContextFile)
	if err != nil {
		return "", fmt.Errorf("config: institutional context: %w", err)
	}
	return string(b), nil
}

// sanitizeEnv trims whitespace and one pair of matching surrounding quotes.
func sanitizeEnv(v string) string {
	v = strings.TrimSpace(v)
	if len(v) >= 2 {
		if (v[0] == '"' && v[len(v)-1] == '"') || (v[0] == '\'' && v[len(v)-1] == '\'') {
			return v[1 : len(v)-1]
		}
	}
	return v
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func setDefault(dst *string, v string) {
	if strings.TrimSpace(*dst) == "" {
		*dst = v
	}
}
