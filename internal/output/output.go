package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mj1618/a11y-check/internal/rules"
	"github.com/mj1618/a11y-check/internal/scan"
)

// Format represents the output format.
type Format string

const (
	FormatYAML    Format = "yaml"
	FormatJSON    Format = "json"
	FormatSARIF   Format = "sarif"
	FormatSummary Format = "summary"
)

// Formats lists the accepted --format values.
func Formats() []Format {
	return []Format{FormatYAML, FormatJSON, FormatSARIF, FormatSummary}
}

// ParseFormat validates a --format value.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Formats() {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("unsupported output format: %q (expected yaml, json, sarif or summary)", s)
}

// OutputFormat is the current output format, set by the root command's --format flag.
var OutputFormat Format = FormatYAML

// PrettyOutput enables pretty-printing for JSON output.
var PrettyOutput bool

// Stdout is where Print writes.
var Stdout io.Writer = os.Stdout

// Print serializes v to Stdout in the current output format. Formats that
// only apply to scan reports fall back to YAML.
func Print(v interface{}) error {
	return Fprint(Stdout, OutputFormat, v)
}

// Fprint serializes v to w in format f.
func Fprint(w io.Writer, f Format, v interface{}) error {
	switch f {
	case FormatJSON:
		return WriteJSON(w, v, PrettyOutput)
	case FormatYAML, FormatSARIF, FormatSummary:
		return WriteYAML(w, v)
	default:
		return fmt.Errorf("unsupported output format: %s", f)
	}
}

// PrintReport writes a scan report to Stdout in the current output format.
// Summary output is colored only when Stdout is a terminal.
func PrintReport(r *scan.Report, reg *rules.Registry, version string) error {
	switch OutputFormat {
	case FormatSARIF:
		return WriteSARIF(Stdout, r, reg, version)
	case FormatSummary:
		useColor := false
		if f, ok := Stdout.(*os.File); ok {
			useColor = ColorEnabled(f)
		}
		return WriteSummary(Stdout, r, useColor)
	}
	return Print(r)
}

// WriteJSON serializes v as JSON, indented when pretty is set.
func WriteJSON(w io.Writer, v interface{}, pretty bool) error {
	enc := json.NewEncoder(w)
	if pretty {
		enc.SetIndent("", "  ")
	}
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("json encode: %w", err)
	}
	return nil
}

// WriteYAML serializes v as YAML.
func WriteYAML(w io.Writer, v interface{}) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("yaml encode: %w", err)
	}
	return enc.Close()
}
