package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vvka-141/dvgen/internal/config"
	"github.com/vvka-141/dvgen/internal/files/filesystem"
	"github.com/vvka-141/dvgen/pkg/dvgen"
)

func TestAuthMethodToString(t *testing.T) {
	tests := []struct {
		method dvgen.AuthMethod
		want   string
	}{
		{dvgen.AuthMethodStandard, ""},
		{dvgen.AuthMethodAzureEntraID, "azure"},
		{dvgen.AuthMethodAWSIAM, "aws"},
		{dvgen.AuthMethodGoogleIAM, "google"},
	}

	for _, tt := range tests {
		got := authMethodToString(tt.method)
		if got != tt.want {
			t.Errorf("authMethodToString(%v) = %q, want %q", tt.method, got, tt.want)
		}
	}
}

func TestSaveConnectionToConfig_CloudAuth(t *testing.T) {
	dir := t.TempDir()

	connConfig := &dvgen.ConnectionConfig{
		Host:           "myhost.postgres.database.azure.com",
		Port:           5432,
		Username:       "admin@myhost",
		Database:       "mydb",
		SSLMode:        "require",
		SSLCert:        "/path/client.crt",
		SSLKey:         "/path/client.key",
		SSLRootCert:    "/path/ca.crt",
		AuthMethod:     dvgen.AuthMethodAzureEntraID,
		AzureTenantID:  "my-tenant",
		AzureClientID:  "my-client",
		GoogleInstance: "",
		AWSRegion:      "",
	}

	err := saveConnectionToConfig(dir, connConfig)
	if err != nil {
		t.Fatalf("saveConnectionToConfig() error = %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "dvgen.yaml"))
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}

	var cfg config.ProjectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	if cfg.Connection.AuthMethod != "azure" {
		t.Errorf("AuthMethod = %q, want %q", cfg.Connection.AuthMethod, "azure")
	}
	if cfg.Connection.AzureTenantID != "my-tenant" {
		t.Errorf("AzureTenantID = %q, want %q", cfg.Connection.AzureTenantID, "my-tenant")
	}
	if cfg.Connection.AzureClientID != "my-client" {
		t.Errorf("AzureClientID = %q, want %q", cfg.Connection.AzureClientID, "my-client")
	}
	if cfg.Connection.SSLCert != "/path/client.crt" {
		t.Errorf("SSLCert = %q, want %q", cfg.Connection.SSLCert, "/path/client.crt")
	}
	if cfg.Connection.SSLKey != "/path/client.key" {
		t.Errorf("SSLKey = %q, want %q", cfg.Connection.SSLKey, "/path/client.key")
	}
	if cfg.Connection.SSLRootCert != "/path/ca.crt" {
		t.Errorf("SSLRootCert = %q, want %q", cfg.Connection.SSLRootCert, "/path/ca.crt")
	}
}

func TestSaveConnectionToConfig_AWSAuth(t *testing.T) {
	dir := t.TempDir()

	connConfig := &dvgen.ConnectionConfig{
		Host:       "myhost.rds.amazonaws.com",
		Port:       5432,
		Username:   "admin",
		Database:   "mydb",
		SSLMode:    "require",
		AuthMethod: dvgen.AuthMethodAWSIAM,
		AWSRegion:  "us-east-1",
	}

	err := saveConnectionToConfig(dir, connConfig)
	if err != nil {
		t.Fatalf("saveConnectionToConfig() error = %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "dvgen.yaml"))
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}

	var cfg config.ProjectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	if cfg.Connection.AuthMethod != "aws" {
		t.Errorf("AuthMethod = %q, want %q", cfg.Connection.AuthMethod, "aws")
	}
	if cfg.Connection.AWSRegion != "us-east-1" {
		t.Errorf("AWSRegion = %q, want %q", cfg.Connection.AWSRegion, "us-east-1")
	}
}

func TestSaveConnectionToConfig_GoogleAuth(t *testing.T) {
	dir := t.TempDir()

	connConfig := &dvgen.ConnectionConfig{
		Host:           "10.0.0.1",
		Port:           5432,
		Username:       "admin",
		Database:       "mydb",
		SSLMode:        "require",
		AuthMethod:     dvgen.AuthMethodGoogleIAM,
		GoogleInstance: "proj:region:inst",
	}

	err := saveConnectionToConfig(dir, connConfig)
	if err != nil {
		t.Fatalf("saveConnectionToConfig() error = %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "dvgen.yaml"))
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}

	var cfg config.ProjectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	if cfg.Connection.AuthMethod != "google" {
		t.Errorf("AuthMethod = %q, want %q", cfg.Connection.AuthMethod, "google")
	}
	if cfg.Connection.GoogleInstance != "proj:region:inst" {
		t.Errorf("GoogleInstance = %q, want %q", cfg.Connection.GoogleInstance, "proj:region:inst")
	}
}

func TestSaveConnectionToConfig_StandardAuth_OmitsCloudFields(t *testing.T) {
	dir := t.TempDir()

	connConfig := &dvgen.ConnectionConfig{
		Host:       "localhost",
		Port:       5432,
		Username:   "postgres",
		Database:   "mydb",
		SSLMode:    "prefer",
		AuthMethod: dvgen.AuthMethodStandard,
	}

	err := saveConnectionToConfig(dir, connConfig)
	if err != nil {
		t.Fatalf("saveConnectionToConfig() error = %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "dvgen.yaml"))
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}

	var cfg config.ProjectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if cfg.Connection.AuthMethod != "" {
		t.Errorf("AuthMethod should be empty for standard auth, got %q", cfg.Connection.AuthMethod)
	}
	if cfg.Connection.AzureTenantID != "" {
		t.Errorf("AzureTenantID should be empty, got %q", cfg.Connection.AzureTenantID)
	}
}

func TestResolveModelPath(t *testing.T) {
	tests := []struct {
		name       string
		projectCfg *config.ProjectConfig
		want       string
	}{
		{
			name:       "nil config uses default",
			projectCfg: nil,
			want:       filepath.Join("proj", "model.yaml"),
		},
		{
			name:       "empty path uses default",
			projectCfg: &config.ProjectConfig{},
			want:       filepath.Join("proj", "model.yaml"),
		},
		{
			name: "relative path joined with project",
			projectCfg: &config.ProjectConfig{
				Model: config.ModelConfig{Path: "models/staging.yaml"},
			},
			want: filepath.Join("proj", "models", "staging.yaml"),
		},
		{
			name: "absolute path used as-is",
			projectCfg: &config.ProjectConfig{
				Model: config.ModelConfig{Path: "/abs/model.yaml"},
			},
			want: "/abs/model.yaml",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := resolveModelPath("proj", tt.projectCfg)
			if got != tt.want {
				t.Errorf("resolveModelPath() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestResolveOutputDir(t *testing.T) {
	tests := []struct {
		name       string
		projectCfg *config.ProjectConfig
		want       string
	}{
		{
			name:       "nil config uses default",
			projectCfg: nil,
			want:       filepath.Join("proj", "export"),
		},
		{
			name: "relative dir joined with project",
			projectCfg: &config.ProjectConfig{
				Export: config.ExportConfig{OutputDir: "out/csv"},
			},
			want: filepath.Join("proj", "out", "csv"),
		},
		{
			name: "absolute dir used as-is",
			projectCfg: &config.ProjectConfig{
				Export: config.ExportConfig{OutputDir: "/var/exports"},
			},
			want: "/var/exports",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := resolveOutputDir("proj", tt.projectCfg)
			if got != tt.want {
				t.Errorf("resolveOutputDir() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestApplyEnvFiles(t *testing.T) {
	t.Run("loads variables into environment", func(t *testing.T) {
		dir := t.TempDir()
		envFile := filepath.Join(dir, "conn.env")
		if err := os.WriteFile(envFile, []byte("DVGEN_TEST_ENVFILE_VAR=hello\n"), 0644); err != nil {
			t.Fatalf("WriteFile() error = %v", err)
		}
		t.Setenv("DVGEN_TEST_ENVFILE_VAR", "")

		err := applyEnvFiles(filesystem.NewOSFileSystem(), []string{envFile}, false)
		if err != nil {
			t.Fatalf("applyEnvFiles() error = %v", err)
		}
		if got := os.Getenv("DVGEN_TEST_ENVFILE_VAR"); got != "hello" {
			t.Errorf("env var = %q, want %q", got, "hello")
		}
	})

	t.Run("later files override earlier ones", func(t *testing.T) {
		dir := t.TempDir()
		first := filepath.Join(dir, "first.env")
		second := filepath.Join(dir, "second.env")
		os.WriteFile(first, []byte("DVGEN_TEST_ENVFILE_ORDER=first\n"), 0644)
		os.WriteFile(second, []byte("DVGEN_TEST_ENVFILE_ORDER=second\n"), 0644)
		t.Setenv("DVGEN_TEST_ENVFILE_ORDER", "")

		err := applyEnvFiles(filesystem.NewOSFileSystem(), []string{first, second}, false)
		if err != nil {
			t.Fatalf("applyEnvFiles() error = %v", err)
		}
		if got := os.Getenv("DVGEN_TEST_ENVFILE_ORDER"); got != "second" {
			t.Errorf("env var = %q, want %q", got, "second")
		}
	})

	t.Run("missing file returns error", func(t *testing.T) {
		err := applyEnvFiles(filesystem.NewOSFileSystem(), []string{"/nonexistent/path.env"}, false)
		if err == nil {
			t.Fatal("expected error for missing env file")
		}
		if !strings.Contains(err.Error(), "failed to read env file") {
			t.Errorf("unexpected error: %v", err)
		}
	})
}

func TestResolveEffectiveTimeout(t *testing.T) {
	newCmd := func() *cobra.Command {
		cmd := &cobra.Command{}
		cmd.Flags().Duration("timeout", 3*time.Minute, "")
		return cmd
	}

	t.Run("flag default with nil config", func(t *testing.T) {
		got, err := resolveEffectiveTimeout(newCmd(), nil, 3*time.Minute)
		if err != nil {
			t.Fatalf("resolveEffectiveTimeout() error = %v", err)
		}
		if got != 3*time.Minute {
			t.Errorf("timeout = %v, want %v", got, 3*time.Minute)
		}
	})

	t.Run("config timeout wins when flag unchanged", func(t *testing.T) {
		cfg := &config.ProjectConfig{Timeout: "90s"}
		got, err := resolveEffectiveTimeout(newCmd(), cfg, 3*time.Minute)
		if err != nil {
			t.Fatalf("resolveEffectiveTimeout() error = %v", err)
		}
		if got != 90*time.Second {
			t.Errorf("timeout = %v, want %v", got, 90*time.Second)
		}
	})

	t.Run("explicit flag wins over config", func(t *testing.T) {
		cmd := newCmd()
		if err := cmd.Flags().Set("timeout", "10s"); err != nil {
			t.Fatalf("Set() error = %v", err)
		}
		cfg := &config.ProjectConfig{Timeout: "90s"}
		got, err := resolveEffectiveTimeout(cmd, cfg, 10*time.Second)
		if err != nil {
			t.Fatalf("resolveEffectiveTimeout() error = %v", err)
		}
		if got != 10*time.Second {
			t.Errorf("timeout = %v, want %v", got, 10*time.Second)
		}
	})

	t.Run("invalid config timeout returns error", func(t *testing.T) {
		cfg := &config.ProjectConfig{Timeout: "not-a-duration"}
		_, err := resolveEffectiveTimeout(newCmd(), cfg, 3*time.Minute)
		if err == nil {
			t.Fatal("expected error for invalid timeout")
		}
	})
}
