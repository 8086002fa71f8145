package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ErrConfigNotFound is returned when the config file does not exist.
// Callers can check for this with errors.Is(err, config.ErrConfigNotFound).
var ErrConfigNotFound = errors.New("config file not found")

type ConnectionConfig struct {
	Host           string `yaml:"host"`
	Port           int    `yaml:"port"`
	Username       string `yaml:"username"`
	Database       string `yaml:"database"`
	SSLMode        string `yaml:"sslmode"`
	SSLCert        string `yaml:"sslcert,omitempty"`
	SSLKey         string `yaml:"sslkey,omitempty"`
	SSLRootCert    string `yaml:"sslrootcert,omitempty"`
	AuthMethod     string `yaml:"auth_method,omitempty"`
	AzureTenantID  string `yaml:"azure_tenant_id,omitempty"`
	AzureClientID  string `yaml:"azure_client_id,omitempty"`
	AWSRegion      string `yaml:"aws_region,omitempty"`
	GoogleInstance string `yaml:"google_instance,omitempty"`
}

// ModelConfig controls where the annotated model lives and which schemas
// introspection covers.
type ModelConfig struct {
	Path    string   `yaml:"path,omitempty"`
	Schemas []string `yaml:"schemas,omitempty"`
}

// ExportConfig carries project-level export defaults. CLI flags override
// these per invocation.
type ExportConfig struct {
	OutputDir          string `yaml:"output_dir,omitempty"`
	Denormalized       bool   `yaml:"denormalized,omitempty"`
	ImplicitSatellites bool   `yaml:"implicit_satellites,omitempty"`
	Strict             bool   `yaml:"strict,omitempty"`
}

type ProjectConfig struct {
	Connection ConnectionConfig `yaml:"connection"`
	Model      ModelConfig      `yaml:"model"`
	Export     ExportConfig     `yaml:"export"`
	Timeout    string           `yaml:"timeout"`
}

const ConfigFileName = "dvgen.yaml"

func Load(projectPath string) (*ProjectConfig, error) {
	configPath := filepath.Join(projectPath, ConfigFileName)
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cfg ProjectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
