package dvgen

import "time"

// Exit codes for semantic error classification.
// These follow Unix/GNU conventions:
//   - 0: Success
//   - 1: General error
//   - 2: CLI usage error (misuse of command line)
//   - 3+: Application-specific errors
const (
	ExitSuccess         = 0  // Operation completed successfully
	ExitGeneralError    = 1  // Unknown or unclassified error
	ExitUsageError      = 2  // CLI usage error (missing args, invalid flags)
	ExitPanic           = 3  // Internal panic (unexpected crash)
	ExitConfigError     = 10 // Invalid configuration or parameters
	ExitConnectionError = 11 // Failed to connect to database
	ExitApprovalDenied  = 12 // User denied overwrite approval
	ExitModelMissing    = 13 // model.yaml not found
	ExitModelInvalid    = 14 // Model failed validation
	ExitExportFailed    = 15 // Export produced error diagnostics in strict mode
)

// Canonical relation file names. Downstream loaders resolve relations by
// these exact names, so they are part of the wire contract.
const (
	FileSourceData        = "source_data.csv"
	FileStandardHub       = "standard_hub.csv"
	FileStandardSatellite = "standard_satellite.csv"
	FileStandardLink      = "standard_link.csv"
	FileDenormalized      = "columns.csv"

	// FileManifest lists the emitted relations with their checksums.
	FileManifest = "manifest.yaml"
)

const (
	// DefaultModelFileName is the annotated model file within a project.
	DefaultModelFileName = "model.yaml"

	// DefaultOutputDir is the relation output directory within a project.
	DefaultOutputDir = "export"

	// DefaultForceApprovalCountdown is the countdown duration before force approval proceeds.
	DefaultForceApprovalCountdown = 5 * time.Second

	// DefaultRetryInitialDelay is the default initial delay before the first retry attempt.
	DefaultRetryInitialDelay = 100 * time.Millisecond

	// DefaultRetryMaxDelay is the default maximum delay between retry attempts.
	DefaultRetryMaxDelay = 1 * time.Minute

	// DefaultRetryMaxAttempts is the default maximum number of retry attempts.
	DefaultRetryMaxAttempts = 3
)
