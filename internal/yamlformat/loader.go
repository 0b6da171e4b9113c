package yamlformat

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/vk/metagraph/internal/ctxlog"
	"github.com/vk/metagraph/internal/model"
	"gopkg.in/yaml.v3"
)

// ErrDecode marks YAML that does not describe a metagraph.
var ErrDecode = errors.New("invalid metagraph definition")

// Document is the YAML schema of a metagraph.
type Document struct {
	Vertices []Rule `yaml:"vertices"`
	Edges    []Edge `yaml:"edges"`
}

// Edge is one entry of the edges list.
type Edge struct {
	From int  `yaml:"from"`
	To   int  `yaml:"to"`
	Rule Rule `yaml:"rule"`
}

// Rule is a rule scalar. Numbers and strings are both accepted and kept as
// their source text.
type Rule string

// UnmarshalYAML implements yaml.Unmarshaler.
func (r *Rule) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode || node.ShortTag() == "!!null" {
		return fmt.Errorf("%w: line %d: rule must be a scalar", ErrDecode, node.Line)
	}
	*r = Rule(node.Value)
	return nil
}

// Loader is the YAML implementation of config.Loader.
type Loader struct{}

// NewLoader creates a new YAML loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads and decodes the file at path.
func (l *Loader) Load(ctx context.Context, path string) (*model.Metagraph, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return Parse(ctx, data)
}

// Parse decodes a single YAML document. Unknown keys are rejected.
func Parse(ctx context.Context, data []byte) (*model.Metagraph, error) {
	var doc Document
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty document", ErrDecode)
		}
		if errors.Is(err, ErrDecode) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	mg, err := doc.Metagraph()
	if err != nil {
		return nil, err
	}
	ctxlog.FromContext(ctx).Debug("YAML loading complete.", "vertices", mg.NV(), "edges", mg.NE())
	return mg, nil
}

// Metagraph converts the document into a validated record.
func (d *Document) Metagraph() (*model.Metagraph, error) {
	vertexRules := make([]string, 0, len(d.Vertices))
	for _, r := range d.Vertices {
		vertexRules = append(vertexRules, string(r))
	}
	edges := make([]model.Edge, 0, len(d.Edges))
	edgeRules := make([]string, 0, len(d.Edges))
	for _, e := range d.Edges {
		edges = append(edges, model.Edge{From: e.From, To: e.To})
		edgeRules = append(edgeRules, string(e.Rule))
	}
	return model.New(len(vertexRules), edges, vertexRules, edgeRules)
}
