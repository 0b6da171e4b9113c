package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/vk/metagraph/internal/evaluator"
	"gopkg.in/yaml.v3"
)

// Format names an output format.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ErrUnknownFormat is returned for an unsupported output format.
var ErrUnknownFormat = errors.New("unknown output format")

// ParseFormat validates a user-supplied output format.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatText, FormatJSON, FormatYAML:
		return f, nil
	case "":
		return FormatText, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// Extension returns the file extension used for f in an output directory.
func (f Format) Extension() string {
	switch f {
	case FormatJSON:
		return ".json"
	case FormatYAML:
		return ".yaml"
	default:
		return ".txt"
	}
}

// Value is an attribute value. Non-finite values are encoded as strings in
// JSON, which has no literal for them.
type Value float64

// MarshalJSON implements json.Marshaler.
func (v Value) MarshalJSON() ([]byte, error) {
	f := float64(v)
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return json.Marshal(strconv.FormatFloat(f, 'g', -1, 64))
	}
	return []byte(strconv.FormatFloat(f, 'g', -1, 64)), nil
}

// Entry is one node in a Document.
type Entry struct {
	ID    int   `json:"id" yaml:"id"`
	Value Value `json:"value" yaml:"value"`
}

// Document is the structured form of a result.
type Document struct {
	Source      string   `json:"source,omitempty" yaml:"source,omitempty"`
	Vertices    []Entry  `json:"vertices" yaml:"vertices"`
	Edges       []Entry  `json:"edges" yaml:"edges"`
	CycleBreaks []string `json:"cycle_breaks" yaml:"cycle_breaks"`
}

// NewDocument converts a result. source names the input and may be empty.
func NewDocument(source string, result *evaluator.Result) *Document {
	doc := &Document{
		Source:      source,
		Vertices:    []Entry{},
		Edges:       []Entry{},
		CycleBreaks: []string{},
	}
	for _, key := range result.Values.Keys() {
		entry := Entry{ID: key.ID, Value: Value(result.Values[key])}
		if key.IsVertex() {
			doc.Vertices = append(doc.Vertices, entry)
		} else {
			doc.Edges = append(doc.Edges, entry)
		}
	}
	for _, key := range result.CycleBreaks {
		doc.CycleBreaks = append(doc.CycleBreaks, key.String())
	}
	return doc
}

// Write renders result to w in the given format.
func Write(w io.Writer, format Format, source string, result *evaluator.Result) error {
	switch format {
	case FormatText, "":
		return writeText(w, result)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(NewDocument(source, result))
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(NewDocument(source, result)); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// writeText prints one "Vertex N: value" line per vertex, then one
// "Edge N: value" line per edge.
func writeText(w io.Writer, result *evaluator.Result) error {
	for _, key := range result.Values.Keys() {
		label := "Vertex"
		if key.IsEdge() {
			label = "Edge"
		}
		if _, err := fmt.Fprintf(w, "%s %d: %s\n", label, key.ID, FormatValue(result.Values[key])); err != nil {
			return err
		}
	}
	return nil
}

// FormatValue renders v with the fewest digits that round-trip, always
// showing a decimal point for finite values ("5.0", "0.25", "1e+20").
func FormatValue(v float64) string {
	switch {
	case math.IsNaN(v):
		return "nan"
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	}

	abs := math.Abs(v)
	format := byte('f')
	if abs >= 1e16 || (abs != 0 && abs < 1e-4) {
		format = 'g'
	}
	s := strconv.FormatFloat(v, format, -1, 64)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s
}
