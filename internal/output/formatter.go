// Package output renders CLI results as a table, JSON or YAML.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/olekukonko/tablewriter"
	"gopkg.in/yaml.v3"
)

// Format represents the output format
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

// ParseFormat parses a format string
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "table", "":
		return FormatTable, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("invalid output format: %s (valid: table, json, yaml)", s)
}

// Formatter writes results in one format.
type Formatter struct {
	Format    Format
	NoHeaders bool
	Writer    io.Writer
	ErrWriter io.Writer
}

func NewFormatter(format Format, noHeaders bool) *Formatter {
	return &Formatter{
		Format:    format,
		NoHeaders: noHeaders,
		Writer:    os.Stdout,
		ErrWriter: os.Stderr,
	}
}

// TableData represents tabular data for table output
type TableData struct {
	Headers []string
	Rows    [][]string
}

// Print writes raw in JSON or YAML mode and table otherwise. raw is what a
// machine reader gets; table is the human rendering of the same result.
func (f *Formatter) Print(raw any, table TableData) error {
	switch f.Format {
	case FormatJSON:
		enc := json.NewEncoder(f.Writer)
		enc.SetIndent("", "  ")
		return enc.Encode(raw)
	case FormatYAML:
		return f.printYAML(raw)
	}
	f.printTable(table)
	return nil
}

// printYAML goes through JSON first so json tags and custom marshalers
// decide the field names.
func (f *Formatter) printYAML(raw any) error {
	b, err := json.Marshal(raw)
	if err != nil {
		return err
	}
	var generic any
	if err := yaml.Unmarshal(b, &generic); err != nil {
		return err
	}
	enc := yaml.NewEncoder(f.Writer)
	enc.SetIndent(2)
	defer func() { _ = enc.Close() }()
	return enc.Encode(generic)
}

func (f *Formatter) printTable(data TableData) {
	table := tablewriter.NewWriter(f.Writer)
	if !f.NoHeaders && len(data.Headers) > 0 {
		table.SetHeader(data.Headers)
	}

	table.SetBorder(false)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetTablePadding("\t")
	table.SetNoWhiteSpace(true)

	table.AppendBulk(data.Rows)
	table.Render()
}

// Note writes a status line to ErrWriter so it never mixes with JSON/YAML
// on stdout.
func (f *Formatter) Note(format string, args ...any) {
	_, _ = fmt.Fprintf(f.ErrWriter, format+"\n", args...)
}
