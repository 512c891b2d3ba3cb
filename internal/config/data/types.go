// Package data provides configuration data types for the gridform application.
package data

// Flags represents CLI command-line flags for the gridform application.
type Flags struct {
	LogLevel  *string // Log level (e.g., debug, info, warn, error)
	LogFile   *string // Path to log file
	Data      *string // Dataset location: file path, s3://bucket/key or mem://name
	TableFile *string // Standalone table definition file
	TableName *string // Table to open
	ReadOnly  *bool   // Disable edits
	Profile   *string // AWS profile to use
	Region    *string // AWS region to use
}

// UI represents user interface configuration settings.
type UI struct {
	EnableMouse bool `yaml:"enableMouse"`
	Logoless    bool `yaml:"logoless"`
	Crumbsless  bool `yaml:"crumbsless"`
}

// AWS represents the AWS connection settings used by S3 datasets.
type AWS struct {
	Profile string `yaml:"profile,omitempty"`
	Region  string `yaml:"region,omitempty"`
}

// NewFlags creates a new Flags instance with all pointer fields initialized.
// All pointers are allocated but their values are not set.
func NewFlags() *Flags {
	return &Flags{
		LogLevel:  new(string),
		LogFile:   new(string),
		Data:      new(string),
		TableFile: new(string),
		TableName: new(string),
		ReadOnly:  new(bool),
		Profile:   new(string),
		Region:    new(string),
	}
}
