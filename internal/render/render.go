// Package render writes a firmware report as text tables, JSON or YAML.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/breeze-rmm/fwreport/internal/collectors"
	"github.com/breeze-rmm/fwreport/internal/firmware"
	"github.com/breeze-rmm/fwreport/internal/wua"
)

// Report is everything one run prints.
type Report struct {
	GeneratedAt    time.Time             `json:"generatedAt" yaml:"generatedAt"`
	System         collectors.SystemInfo `json:"system" yaml:"system"`
	firmware.Views `yaml:",inline"`
}

// Options tune text rendering.
type Options struct {
	NoColor bool
}

// Write renders report in the named format ("text", "json" or "yaml").
func Write(w io.Writer, format string, report Report, opts Options) error {
	switch format {
	case "", "text":
		return Text(w, report, opts)
	case "json":
		return JSON(w, report)
	case "yaml":
		return YAML(w, report)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

// JSON writes the report as indented JSON. Empty views are written as [].
func JSON(w io.Writer, report Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(normalize(report))
}

// YAML writes the report as a YAML document.
func YAML(w io.Writer, report Report) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(normalize(report)); err != nil {
		return err
	}
	return enc.Close()
}

func normalize(report Report) Report {
	if report.Available == nil {
		report.Available = []wua.UpdateRecord{}
	}
	if report.Installed == nil {
		report.Installed = []wua.HistoryEntry{}
	}
	if report.Pending == nil {
		report.Pending = []wua.UpdateRecord{}
	}
	return report
}
