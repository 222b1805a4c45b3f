package constants

// Tool name and related constants
const (
	// ToolName is the name of this tool
	ToolName = "hexvalidate"

	// BinaryName is the name of the installed executable
	BinaryName = "hex-validate"

	// ConfigFileName is the default config file name
	ConfigFileName = ".hexvalidate.yaml"

	// EnvVarPrefix is the prefix for environment variables
	EnvVarPrefix = "HEXVALIDATE"
)

// Cache constants
const (
	// CacheDirName is the cache directory created under the repository root
	CacheDirName = ".cache"

	// CacheFileName is the per-check file hash cache document
	CacheFileName = ToolName + ".json"
)

// Environment variables recognized by the engine and by convention
const (
	// EnvCI forces CI mode when truthy
	EnvCI = "CI"

	// EnvRetries is the opt-in retry count convention for subprocess checks
	EnvRetries = "VALIDATOR_RETRIES"

	// EnvRetryDelayMS is the opt-in retry delay convention in milliseconds
	EnvRetryDelayMS = "VALIDATOR_RETRY_DELAY_MS"
)

// Scheduler limits
const (
	// MaxWorkerCeiling is the hard cap on stage parallelism
	MaxWorkerCeiling = 8

	// MinWorkers is the lower bound on stage parallelism
	MinWorkers = 1
)

// JUnit output constants
const (
	// JUnitSuiteName is the testsuite name emitted by the JUnit reporter
	JUnitSuiteName = "hex-validator"
)
