package config

import (
	"log"
	"os"

	"gopkg.in/yaml.v3"
)

type Mode string

const (
	ModeLocal Mode = "local"
	ModeGCP   Mode = "gcp"
)

type Config struct {
	Mode Mode

	Port string

	GCPProjectID string
	GCPLocation  string
	ModelName    string

	StorageBackend string // "memory", "sqlite" or "firestore"
	SQLitePath     string
	UseMockLLM     bool // true = use mock even on GCP
}

// fileConfig mirrors the optional YAML config file. Env vars always win
// over file values.
type fileConfig struct {
	Mode           string `yaml:"mode"`
	Port           string `yaml:"port"`
	GCPProject     string `yaml:"gcp_project"`
	GCPLocation    string `yaml:"gcp_location"`
	ModelName      string `yaml:"model_name"`
	StorageBackend string `yaml:"storage_backend"`
	SQLitePath     string `yaml:"sqlite_path"`
}

func getBoolEnv(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if v == "1" || v == "true" || v == "TRUE" {
		return true
	}
	return false
}

func loadFile(path string) fileConfig {
	var fc fileConfig
	if path == "" {
		return fc
	}

	data, err := os.ReadFile(path)
	if err != nil {
		log.Fatalf("reading config file %s: %v", path, err)
	}
	if err := yaml.Unmarshal(data, &fc); err != nil {
		log.Fatalf("parsing config file %s: %v", path, err)
	}
	return fc
}

func pick(envVal, fileVal, def string) string {
	if envVal != "" {
		return envVal
	}
	if fileVal != "" {
		return fileVal
	}
	return def
}

// Load builds the config from the optional WEEKWISE_CONFIG YAML file
// plus env vars, env taking precedence.
func Load() *Config {
	fc := loadFile(os.Getenv("WEEKWISE_CONFIG"))

	modeStr := pick(os.Getenv("WEEKWISE_MODE"), fc.Mode, "local")
	var mode Mode
	switch modeStr {
	case "gcp":
		mode = ModeGCP
	default:
		mode = ModeLocal
	}

	cfg := &Config{
		Mode: mode,

		Port: pick(os.Getenv("WEEKWISE_PORT"), fc.Port, "8080"),

		GCPProjectID: pick(os.Getenv("WEEKWISE_GCP_PROJECT"), fc.GCPProject, ""),
		GCPLocation:  pick(os.Getenv("WEEKWISE_GCP_LOCATION"), fc.GCPLocation, "us-central1"),
		ModelName:    pick(os.Getenv("WEEKWISE_MODEL_NAME"), fc.ModelName, "gemini-2.5-flash-lite"),

		StorageBackend: pick(os.Getenv("WEEKWISE_STORAGE_BACKEND"), fc.StorageBackend, "memory"),
		SQLitePath:     pick(os.Getenv("WEEKWISE_SQLITE_PATH"), fc.SQLitePath, "weekwise.db"),
		UseMockLLM:     getBoolEnv("WEEKWISE_USE_MOCK_LLM", mode == ModeLocal),
	}

	// Minimal validation in GCP mode
	if cfg.Mode == ModeGCP && cfg.GCPProjectID == "" {
		log.Fatal("WEEKWISE_GCP_PROJECT must be set in gcp mode")
	}

	return cfg
}
