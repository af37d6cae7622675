package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/xxxsen/common/logger"
)

type Config struct {
	Port               int              `json:"port"`
	JWTSecret          string           `json:"jwt_secret"`
	JWTTTLHours        int              `json:"jwt_ttl_hours"`
	SessionWindowHours int              `json:"session_window_hours"`
	PromptPath         string           `json:"prompt_path"`
	MaxUploadBytes     int64            `json:"max_upload_bytes"`
	AllowedMIMETypes   []string         `json:"allowed_mime_types"`
	CORSAllowlist      []string         `json:"cors_allowlist"`
	LogConfig          logger.LogConfig `json:"log_config"`
	CredStore          BackendConfig    `json:"cred_store"`
	Archive            BackendConfig    `json:"archive"`
	Eval               EvalConfig       `json:"eval"`
	Properties         Properties       `json:"properties"`
}

// BackendConfig selects a pluggable backend by type; Data is decoded by the
// backend factory itself.
type BackendConfig struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

type EvalConfig struct {
	Provider       string      `json:"provider"`
	Model          string      `json:"model"`
	TimeoutSeconds int         `json:"timeout_seconds"`
	Data           interface{} `json:"data"`
}

// Properties are client-facing display settings returned verbatim by the
// properties endpoint.
type Properties struct {
	Title            string `json:"title"`
	RequirementsText string `json:"requirements_text"`
	ExampleText      string `json:"example_text"`
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
	if cfg.PromptPath == "" {
		return nil, fmt.Errorf("prompt_path is required")
	}
	if cfg.CredStore.Type == "" {
		return nil, fmt.Errorf("cred_store.type is required")
	}
	if cfg.Archive.Type == "" {
		return nil, fmt.Errorf("archive.type is required")
	}
	if cfg.Eval.Provider == "" {
		return nil, fmt.Errorf("eval.provider is required")
	}
	if cfg.Eval.Model == "" {
		return nil, fmt.Errorf("eval.model is required")
	}
	if cfg.JWTTTLHours == 0 {
		cfg.JWTTTLHours = 72
	}
	if cfg.SessionWindowHours == 0 {
		cfg.SessionWindowHours = 720
	}
	if cfg.MaxUploadBytes == 0 {
		cfg.MaxUploadBytes = 10 * 1024 * 1024
	}
	if len(cfg.AllowedMIMETypes) == 0 {
		cfg.AllowedMIMETypes = []string{"image/png", "image/jpeg"}
	}
	if cfg.LogConfig.Level == "" {
		cfg.LogConfig.Level = "info"
	}
	return &cfg, nil
}
