package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	outputFormatText = "text"
	outputFormatJSON = "json"
	outputFormatYAML = "yaml"
)

// writeOutput renders v as JSON or YAML, or calls text for the plain format.
func writeOutput(w io.Writer, format string, v any, text func(io.Writer) error) error {
	switch format {
	case outputFormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(v)
	case outputFormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	case outputFormatText, "":
		return text(w)
	}
	return fmt.Errorf("unsupported output format %q", format)
}

// joinInts formats symbol values separated by single spaces.
func joinInts(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprint(v)
	}
	return strings.Join(parts, " ")
}

// moduleString renders bars as '1' and spaces as '0'.
func moduleString(modules []bool) string {
	var sb strings.Builder
	sb.Grow(len(modules))
	for _, m := range modules {
		if m {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}
