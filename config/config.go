package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	InputDataPath    string `yaml:"input_data_path"`
	OutputDir        string `yaml:"output_dir"`
	ReportTitle      string `yaml:"report_title"`
	SQLiteExportPath string `yaml:"sqlite_export_path"`
}

// Load reads the yaml config and applies overrides from the environment
// (a .env file is picked up when present). INPUT_DATA_PATH and OUTPUT_DIR
// override their yaml counterparts.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := &Config{
		OutputDir:   "reports",
		ReportTitle: "Transaction Monitoring Data Report",
	}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	if v := os.Getenv("INPUT_DATA_PATH"); v != "" {
		cfg.InputDataPath = v
	}
	if v := os.Getenv("OUTPUT_DIR"); v != "" {
		cfg.OutputDir = v
	}

	if cfg.InputDataPath == "" {
		return nil, fmt.Errorf("config %s: input_data_path is required", path)
	}
	return cfg, nil
}
