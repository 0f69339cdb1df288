package config

// Version constants for the configuration record.
const (
	// SchemaVersion is the configuration record schema version.
	SchemaVersion = "1"

	// DomainConfiguration prefixes configuration fingerprints.
	DomainConfiguration = "pyrops/config/v1"
)
