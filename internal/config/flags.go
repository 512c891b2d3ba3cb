package config

import (
	"github.com/gridform/gridform/internal/config/data"
)

// DefaultLogLevel is the default logging level.
const DefaultLogLevel = "info"

// NewFlags creates a new Flags instance with default values set.
func NewFlags() *data.Flags {
	logLevel := DefaultLogLevel
	logFile := AppLogFile
	dataLoc := ""
	tableFile := ""
	tableName := ""
	readOnly := false
	profile := ""
	region := ""

	return &data.Flags{
		LogLevel:  &logLevel,
		LogFile:   &logFile,
		Data:      &dataLoc,
		TableFile: &tableFile,
		TableName: &tableName,
		ReadOnly:  &readOnly,
		Profile:   &profile,
		Region:    &region,
	}
}

// IsBoolSet returns true if a bool pointer is non-nil and true.
func IsBoolSet(b *bool) bool {
	return b != nil && *b
}

// IsStringSet returns true if a string pointer is non-nil and non-empty.
func IsStringSet(s *string) bool {
	return s != nil && *s != ""
}
