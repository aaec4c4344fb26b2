package output

import (
	"io"
	"time"
)

// Format represents the output format type
type Format string

const (
	// FormatTable outputs data in a table format
	FormatTable Format = "table"
	// FormatJSON outputs data in JSON format
	FormatJSON Format = "json"
	// FormatYAML outputs data in YAML format
	FormatYAML Format = "yaml"
)

// Formats lists the accepted values of the output flag.
var Formats = []string{string(FormatTable), string(FormatJSON), string(FormatYAML)}

// Row is one table line. Failed rows color their status as an error.
type Row struct {
	Name   string
	Status string
	Failed bool
	Cells  []string
}

// Summary is printed below a table.
type Summary struct {
	Passed  int
	Failed  int
	Elapsed time.Duration
}

// Tabular is implemented by reports that render as a table. The table
// columns are NAME, STATUS, then Columns.
type Tabular interface {
	Columns() []string
	Rows() []Row
	Summary() Summary
}

// Formatter writes a report to w.
type Formatter interface {
	// Format outputs a report. Table output requires a Tabular value.
	Format(w io.Writer, data any) error
}

// Option is a functional option for configuring formatters
type Option func(*Options)

// Options holds configuration for formatters
type Options struct {
	// NoColor disables color output
	NoColor bool

	// NoHeaders disables table headers
	NoHeaders bool
}

// WithNoColor disables color output
func WithNoColor(noColor bool) Option {
	return func(o *Options) {
		o.NoColor = noColor
	}
}

// WithNoHeaders disables table headers
func WithNoHeaders(noHeaders bool) Option {
	return func(o *Options) {
		o.NoHeaders = noHeaders
	}
}

// NewFormatter creates a formatter for format. Unknown formats render as
// a table.
func NewFormatter(format Format, opts ...Option) Formatter {
	options := &Options{}
	for _, opt := range opts {
		opt(options)
	}

	switch format {
	case FormatJSON:
		return &JSONFormatter{options: options}
	case FormatYAML:
		return &YAMLFormatter{options: options}
	default:
		return &TableFormatter{options: options}
	}
}
