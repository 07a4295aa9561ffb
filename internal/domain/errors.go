package domain

import (
	"fmt"
	"strings"
)

// Issue is a single problem found in a schema or engine configuration.
// Path is a dotted path into the source mapping (e.g. "metadata.structure.num_columns").
type Issue struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

func (i Issue) String() string {
	if i.Path == "" {
		return i.Message
	}
	return fmt.Sprintf("%s: %s", i.Path, i.Message)
}

// ConfigurationError reports a schema that is malformed or internally
// inconsistent. It is always raised before any dataset is read.
type ConfigurationError struct {
	Source string  `json:"source,omitempty"`
	Issues []Issue `json:"issues"`
}

func (e *ConfigurationError) Error() string {
	var b strings.Builder
	b.WriteString("invalid schema")
	if e.Source != "" {
		fmt.Fprintf(&b, " %s", e.Source)
	}
	switch len(e.Issues) {
	case 0:
		return b.String()
	case 1:
		fmt.Fprintf(&b, ": %s", e.Issues[0])
		return b.String()
	}
	fmt.Fprintf(&b, ": %d issues", len(e.Issues))
	for _, iss := range e.Issues {
		fmt.Fprintf(&b, "\n  - %s", iss)
	}
	return b.String()
}

func configError(path, format string, args ...any) *ConfigurationError {
	return &ConfigurationError{Issues: []Issue{{Path: path, Message: fmt.Sprintf(format, args...)}}}
}

// ResourceError wraps a failure to read or decode an input file.
// The engine never produces one; adapters do.
type ResourceError struct {
	Op   string
	Path string
	Err  error
}

func (e *ResourceError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *ResourceError) Unwrap() error { return e.Err }
