package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	assert.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	path := writeConfig(t, "input_data_path: data/alerts.csv\n")
	cfg, err := Load(path)
	assert.NoError(t, err)
	assert.Equal(t, "data/alerts.csv", cfg.InputDataPath)
	assert.Equal(t, "reports", cfg.OutputDir)
	assert.Equal(t, "Transaction Monitoring Data Report", cfg.ReportTitle)
	assert.Equal(t, "", cfg.SQLiteExportPath)
}

func TestLoadFull(t *testing.T) {
	path := writeConfig(t, `input_data_path: alerts.csv.gz
output_dir: out
report_title: Custom Title
sqlite_export_path: out/alerts.db
`)
	cfg, err := Load(path)
	assert.NoError(t, err)
	assert.Equal(t, "alerts.csv.gz", cfg.InputDataPath)
	assert.Equal(t, "out", cfg.OutputDir)
	assert.Equal(t, "Custom Title", cfg.ReportTitle)
	assert.Equal(t, "out/alerts.db", cfg.SQLiteExportPath)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("INPUT_DATA_PATH", "env.csv")
	t.Setenv("OUTPUT_DIR", "env_reports")
	path := writeConfig(t, "input_data_path: file.csv\noutput_dir: file_reports\n")
	cfg, err := Load(path)
	assert.NoError(t, err)
	assert.Equal(t, "env.csv", cfg.InputDataPath)
	assert.Equal(t, "env_reports", cfg.OutputDir)
}

func TestLoadMissingInputPath(t *testing.T) {
	path := writeConfig(t, "output_dir: out\n")
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
