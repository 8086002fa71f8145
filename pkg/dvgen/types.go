package dvgen

import (
	"errors"
	"fmt"
	"time"
)

// ExportConfig contains all parameters needed for an export operation.
type ExportConfig struct {
	// ModelPath is the path to the annotated model file (model.yaml)
	ModelPath string

	// OutputDir is the directory where relation CSV files are written
	OutputDir string

	// Denormalized selects the single-table column export instead of the
	// four relational exports
	Denormalized bool

	// ImplicitSatellites enables the legacy fallback that synthesizes one
	// satellite per table when a table declares no hashdiff groups
	ImplicitSatellites bool

	// Strict turns error-severity diagnostics (duplicate hashkey names,
	// unresolved link references) into a failing export
	Strict bool

	// Overwrite allows replacing existing files in OutputDir
	Overwrite bool

	// Force bypasses interactive approval when used with Overwrite
	Force bool

	// Verbose enables detailed logging
	Verbose bool
}

// Validate checks if the ExportConfig has all required fields and valid values.
// It returns a multi-error if multiple validation failures occur.
func (c *ExportConfig) Validate() error {
	var errs []error

	if c.ModelPath == "" {
		errs = append(errs, fmt.Errorf("ModelPath is required: %w", ErrInvalidConfig))
	}

	if c.OutputDir == "" {
		errs = append(errs, fmt.Errorf("OutputDir is required: %w", ErrInvalidConfig))
	}

	// Force requires Overwrite to be set
	if c.Force && !c.Overwrite {
		errs = append(errs, fmt.Errorf("force flag requires overwrite to be enabled: %w", ErrInvalidConfig))
	}

	return errors.Join(errs...)
}

// IntrospectConfig contains all parameters needed to seed a model from a
// live source database.
type IntrospectConfig struct {
	// ModelPath is the destination model file (model.yaml)
	ModelPath string

	// ConnectionString is the PostgreSQL connection string (URI or ADO.NET format)
	ConnectionString string

	// Schemas restricts introspection to the listed schemas.
	// Empty means all non-system schemas.
	Schemas []string

	// Merge preserves existing annotations when re-introspecting an
	// already annotated model instead of overwriting it
	Merge bool

	// Timeout is the global timeout for the introspection run
	Timeout time.Duration

	// Verbose enables detailed logging
	Verbose bool

	// AuthMethod indicates the authentication mechanism to use
	AuthMethod AuthMethod

	// Azure Entra ID authentication parameters (used when AuthMethod is AuthMethodAzureEntraID)
	AzureTenantID     string
	AzureClientID     string
	AzureClientSecret string
}

// Validate checks if the IntrospectConfig has all required fields and valid values.
// It returns a multi-error if multiple validation failures occur.
func (c *IntrospectConfig) Validate() error {
	var errs []error

	if c.ModelPath == "" {
		errs = append(errs, fmt.Errorf("ModelPath is required: %w", ErrInvalidConfig))
	}

	if c.ConnectionString == "" {
		errs = append(errs, fmt.Errorf("ConnectionString is required: %w", ErrInvalidConfig))
	}

	if c.Timeout < 0 {
		errs = append(errs, fmt.Errorf("timeout cannot be negative: %w", ErrInvalidConfig))
	}

	return errors.Join(errs...)
}

// ConnectionConfig represents parsed connection parameters.
type ConnectionConfig struct {
	Host     string
	Port     int
	Database string
	Username string
	Password string
	SSLMode  string

	// AuthMethod indicates the authentication mechanism to use
	AuthMethod AuthMethod

	// Additional connection parameters
	AppName          string
	ConnectTimeout   time.Duration
	AdditionalParams map[string]string

	// Azure Entra ID authentication parameters (used when AuthMethod is AuthMethodAzureEntraID)
	// If all three are provided, Service Principal authentication is used.
	// If none are provided, DefaultAzureCredential chain is used (env vars, managed identity, CLI, etc.)
	AzureTenantID     string
	AzureClientID     string
	AzureClientSecret string

	// AWSRegion is the RDS region (used when AuthMethod is AuthMethodAWSIAM)
	AWSRegion string

	// GoogleInstance is the Cloud SQL instance connection name
	// (used when AuthMethod is AuthMethodGoogleIAM)
	GoogleInstance string

	// Certificate authentication parameters (used when AuthMethod is AuthMethodCertificate)
	SSLCert     string
	SSLKey      string
	SSLRootCert string
}

// AuthMethod represents the type of authentication to use.
type AuthMethod int

const (
	AuthMethodStandard     AuthMethod = iota // Username/Password
	AuthMethodCertificate                    // mTLS
	AuthMethodAWSIAM                         // AWS IAM Database Authentication
	AuthMethodGoogleIAM                      // Google Cloud SQL IAM
	AuthMethodAzureEntraID                   // Azure Active Directory (Entra ID)
)

// String returns a human-readable string representation of the AuthMethod.
func (a AuthMethod) String() string {
	switch a {
	case AuthMethodStandard:
		return "Standard"
	case AuthMethodCertificate:
		return "Certificate"
	case AuthMethodAWSIAM:
		return "AWS IAM"
	case AuthMethodGoogleIAM:
		return "Google IAM"
	case AuthMethodAzureEntraID:
		return "Azure Entra ID"
	default:
		return fmt.Sprintf("Unknown(%d)", a)
	}
}

// IsValid returns true if the AuthMethod is a valid, defined value.
func (a AuthMethod) IsValid() bool {
	return a >= AuthMethodStandard && a <= AuthMethodAzureEntraID
}
