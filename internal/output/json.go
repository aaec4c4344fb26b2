package output

import (
	"encoding/json"
	"io"
)

// JSONFormatter formats output as indented JSON.
type JSONFormatter struct {
	options *Options
}

// Format outputs data as JSON.
func (f *JSONFormatter) Format(w io.Writer, data any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
