// Package diag is the diagnostic sink: it collects parser and runtime
// diagnostics with precise source coordinates, tallies warnings, and
// renders them in the plain-text format mandated by spec §6, or as a
// structured YAML document for tool integration. It also gates the
// per-category debug logging that replaces the reference implementation's
// global debug flag (spec §9 design note).
package diag

import (
	"fmt"
	"io"
	"sort"

	"github.com/bcicen/go-units"
	"github.com/goccy/go-yaml"

	"github.com/chef-lang/chef/token"
)

// Severity is warning or error.
type Severity int

const (
	Warning Severity = iota
	Error
)

func (s Severity) String() string {
	if s == Error {
		return "error"
	}
	return "warning"
}

// Diagnostic is one reported problem: its severity, message, and the
// source location it pertains to.
type Diagnostic struct {
	Severity Severity `yaml:"severity"`
	Message  string   `yaml:"message"`
	Line     int      `yaml:"line"`
	Column   int      `yaml:"column"`
}

// Format renders the diagnostic exactly as spec §6 mandates:
// "<file>:<line>:<column>: <severity>: <message>".
func (d Diagnostic) Format(file string) string {
	return fmt.Sprintf("%s:%d:%d: %s: %s", file, d.Line, d.Column, d.Severity, d.Message)
}

// Format is the output mode for Sink.Emit.
type Format int

const (
	Text Format = iota
	YAML
)

// Sink collects diagnostics for a single compile/run and knows how to
// render and emit them. It replaces the reference implementation's
// CheffeDiagnosticHandler + global debug-type flag with a single
// explicit, constructible configuration object (spec §9).
type Sink struct {
	File   string
	Strict bool

	diagnostics []Diagnostic

	debugCategories map[string]bool
	debugOut        io.Writer
}

// New creates a Sink for the named source file. debugOut receives debug
// log lines (typically os.Stderr); it may be nil to discard them.
func New(file string, strict bool, debugOut io.Writer) *Sink {
	return &Sink{
		File:            file,
		Strict:          strict,
		debugCategories: make(map[string]bool),
		debugOut:        debugOut,
	}
}

// EnableDebug turns on a named debug channel (spec §4.AMBIENT.1:
// "lexer", "parser", "scope", "interp", "driver").
func (s *Sink) EnableDebug(category string) {
	s.debugCategories[category] = true
}

// Debugf writes a debug line tagged with category if that category is
// enabled; otherwise it is a no-op. Debug output never affects exit code
// or program stdout.
func (s *Sink) Debugf(category, format string, args ...any) {
	if s == nil || s.debugOut == nil || !s.debugCategories[category] {
		return
	}
	fmt.Fprintf(s.debugOut, "[%s] %s\n", category, fmt.Sprintf(format, args...))
}

// DebugBytes logs prefix followed by a human-readable byte count on the
// named channel, e.g. "[driver] parsed source into program: " and the
// source size. Sizes are formatted with
// bcicen/go-units so that large sources read naturally in debug logs;
// if the conversion ever fails the raw byte count is logged instead.
func (s *Sink) DebugBytes(category, prefix string, n int) {
	if s == nil || s.debugOut == nil || !s.debugCategories[category] {
		return
	}
	s.Debugf(category, "%s%s", prefix, humanizeBytes(n))
}

func humanizeBytes(n int) string {
	b, err := units.Find("B")
	if err != nil {
		return fmt.Sprintf("%d bytes", n)
	}
	v := units.NewValue(float64(n), b)
	best := v
	for _, sym := range []string{"KB", "MB", "GB"} {
		u, err := units.Find(sym)
		if err != nil {
			continue
		}
		converted, err := v.Convert(u)
		if err != nil {
			continue
		}
		if converted.Value >= 1 {
			best = converted
		}
	}
	return best.String()
}

// Warn records a warning diagnostic. In strict mode a warning is
// recorded as an error instead (spec §7: "In -strict mode, any warning
// becomes an error").
func (s *Sink) Warn(loc token.Location, format string, args ...any) {
	sev := Warning
	if s.Strict {
		sev = Error
	}
	s.add(sev, loc, format, args...)
}

// Error records an error diagnostic.
func (s *Sink) Error(loc token.Location, format string, args ...any) {
	s.add(Error, loc, format, args...)
}

func (s *Sink) add(sev Severity, loc token.Location, format string, args ...any) {
	s.diagnostics = append(s.diagnostics, Diagnostic{
		Severity: sev,
		Message:  fmt.Sprintf(format, args...),
		Line:     loc.Line,
		Column:   loc.Column,
	})
}

// HasErrors reports whether any error-severity diagnostic was recorded.
func (s *Sink) HasErrors() bool {
	for _, d := range s.diagnostics {
		if d.Severity == Error {
			return true
		}
	}
	return false
}

// WarningCount returns the number of warning-severity diagnostics
// recorded (meaningful only outside strict mode, since strict mode
// promotes every warning to an error before it is ever recorded).
func (s *Sink) WarningCount() int {
	n := 0
	for _, d := range s.diagnostics {
		if d.Severity == Warning {
			n++
		}
	}
	return n
}

// Diagnostics returns all recorded diagnostics in the order they were
// reported.
func (s *Sink) Diagnostics() []Diagnostic {
	return s.diagnostics
}

// Emit writes every recorded diagnostic to w in the requested format.
// Text format writes one line per diagnostic in the mandated
// "<file>:<line>:<column>: <severity>: <message>" shape; YAML format
// writes a single document listing them all, for tool consumption.
func (s *Sink) Emit(w io.Writer, format Format) error {
	switch format {
	case YAML:
		doc := struct {
			File        string       `yaml:"file"`
			Diagnostics []Diagnostic `yaml:"diagnostics"`
		}{File: s.File, Diagnostics: s.diagnostics}
		out, err := yaml.Marshal(doc)
		if err != nil {
			return fmt.Errorf("marshal diagnostics as yaml: %w", err)
		}
		_, err = w.Write(out)
		return err
	default:
		for _, d := range s.diagnostics {
			fmt.Fprintln(w, d.Format(s.File))
		}
		return nil
	}
}

// sortedCategories returns a deterministic, sorted listing of which
// debug channels are enabled. Nothing in the module calls it.
func (s *Sink) sortedCategories() []string {
	cats := make([]string, 0, len(s.debugCategories))
	for c, on := range s.debugCategories {
		if on {
			cats = append(cats, c)
		}
	}
	sort.Strings(cats)
	return cats
}
