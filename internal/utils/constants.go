package utils

const (
	// ConfigFileName is the name of the structree configuration file.
	ConfigFileName = ".structree.yaml"
	// GlobalConfigDirectoryName is the home-relative directory holding the global configuration.
	GlobalConfigDirectoryName = ".structree"
	// DefaultOutputFileName is the file the rendered structure is written to.
	DefaultOutputFileName = "structure.txt"
	// GitDirectoryName is the name of the Git repository directory.
	GitDirectoryName = ".git"
)

// LoggerInitializationFailedMessageFormat reports a logger construction failure.
const LoggerInitializationFailedMessageFormat = "logger initialization failed: %w"

// ApplicationExecutionFailedMessage prefixes fatal command errors.
const ApplicationExecutionFailedMessage = "application execution failed"
