package config

import (
	"encoding/json"
	"fmt"
	"os"
)

type Config struct {
	Port        int             `json:"port"`
	JWTSecret   string          `json:"jwt_secret"`
	JWTTTLHours int             `json:"jwt_ttl_hours"`
	LogLevel    string          `json:"log_level"`
	CORSOrigins []string        `json:"cors_origins"`
	Database    DatabaseConfig  `json:"database"`
	AI          AIConfig        `json:"ai"`
	Vector      VectorConfig    `json:"vector"`
	Knowledge   KnowledgeConfig `json:"knowledge"`
	Schedule    ScheduleConfig  `json:"schedule"`
}

type DatabaseConfig struct {
	DSN      string `json:"dsn"`
	Host     string `json:"host"`
	Port     int    `json:"port"`
	User     string `json:"user"`
	Password string `json:"password"`
	DBName   string `json:"dbname"`
	SSLMode  string `json:"sslmode"`
}

// ProviderConfig is one entry in an ordered provider chain. Args is
// provider-specific and decoded by the provider factory itself.
type ProviderConfig struct {
	Provider string      `json:"provider"`
	Model    string      `json:"model"`
	Args     interface{} `json:"args"`
}

type AIConfig struct {
	Generators     []ProviderConfig `json:"generators"`
	Embedders      []ProviderConfig `json:"embedders"`
	TimeoutSeconds int              `json:"timeout_seconds"`
	MaxOutputChars int              `json:"max_output_chars"`
	CacheSize      int              `json:"cache_size"`
	CacheTTLHours  int              `json:"cache_ttl_hours"`
}

type VectorConfig struct {
	Type string      `json:"type"`
	Args interface{} `json:"args"`
}

type KnowledgeConfig struct {
	Store        StoreConfig `json:"store"`
	ChunkSize    int         `json:"chunk_size"`
	ChunkOverlap int         `json:"chunk_overlap"`
	TopK         int         `json:"top_k"`
}

type StoreConfig struct {
	Type string      `json:"type"`
	Args interface{} `json:"args"`
}

type ScheduleConfig struct {
	KnowledgeSyncSpec string `json:"knowledge_sync_spec"`
	CacheCleanupSpec  string `json:"cache_cleanup_spec"`
	CacheKeepDays     int    `json:"cache_keep_days"`
}

func Load(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	var cfg Config
	if err := json.NewDecoder(file).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if cfg.Port == 0 {
		return nil, fmt.Errorf("port is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("jwt_secret is required")
	}
	if cfg.Database.DSN == "" && cfg.Database.Host == "" {
		return nil, fmt.Errorf("database.dsn or database.host is required")
	}
	if cfg.JWTTTLHours == 0 {
		cfg.JWTTTLHours = 72
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.AI.TimeoutSeconds == 0 {
		cfg.AI.TimeoutSeconds = 60
	}
	if cfg.AI.MaxOutputChars == 0 {
		cfg.AI.MaxOutputChars = 16384
	}
	if cfg.AI.CacheSize == 0 {
		cfg.AI.CacheSize = 4096
	}
	if cfg.AI.CacheTTLHours == 0 {
		cfg.AI.CacheTTLHours = 24
	}
	if cfg.Knowledge.ChunkSize == 0 {
		cfg.Knowledge.ChunkSize = 1000
	}
	if cfg.Knowledge.ChunkOverlap == 0 {
		cfg.Knowledge.ChunkOverlap = 200
	}
	if cfg.Knowledge.ChunkOverlap >= cfg.Knowledge.ChunkSize {
		return nil, fmt.Errorf("knowledge.chunk_overlap must be smaller than chunk_size")
	}
	if cfg.Knowledge.TopK == 0 {
		cfg.Knowledge.TopK = 5
	}
	if cfg.Knowledge.Store.Type == "" {
		cfg.Knowledge.Store.Type = "local"
	}
	if cfg.Schedule.CacheKeepDays == 0 {
		cfg.Schedule.CacheKeepDays = 30
	}
	return &cfg, nil
}
