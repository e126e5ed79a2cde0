package tlaudit

import "fmt"

// FileError reports a per-file failure during a scan. The scan itself keeps
// going; the file simply contributes no findings.
type FileError struct {
	Path  string // Path of the offending file
	Op    string // read, decode or glob
	Cause error
}

func (e *FileError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Cause)
	}
	return fmt.Sprintf("%s %s", e.Op, e.Path)
}

func (e *FileError) Unwrap() error {
	return e.Cause
}

// ConfigError indicates an invalid configuration value.
type ConfigError struct {
	Key     string
	Message string
	Cause   error
}

func (e *ConfigError) Error() string {
	msg := fmt.Sprintf("config error: %s: %s", e.Key, e.Message)
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// CacheError indicates a failure decoding or storing a cached extraction.
// Cache errors never fail a scan.
type CacheError struct {
	Message string
	Cause   error
}

func (e *CacheError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("cache error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("cache error: %s", e.Message)
}

func (e *CacheError) Unwrap() error {
	return e.Cause
}
