package hclformat

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/metagraph/internal/ctxlog"
	"github.com/vk/metagraph/internal/model"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

// ErrDecode marks HCL that parses but does not describe a metagraph.
var ErrDecode = errors.New("invalid metagraph definition")

// Loader is the HCL implementation of config.Loader.
type Loader struct{}

// NewLoader creates a new HCL loader.
func NewLoader() *Loader {
	return &Loader{}
}

// fileRoot is the top-level schema of a metagraph file.
type fileRoot struct {
	Vertices []*vertexBlock `hcl:"vertex,block"`
	Edges    []*edgeBlock   `hcl:"edge,block"`
}

type vertexBlock struct {
	ID   string    `hcl:"id,label"`
	Rule cty.Value `hcl:"rule"`
}

type edgeBlock struct {
	ID   string    `hcl:"id,label"`
	From int       `hcl:"from"`
	To   int       `hcl:"to"`
	Rule cty.Value `hcl:"rule"`
}

// Load reads and decodes the file at path.
func (l *Loader) Load(ctx context.Context, path string) (*model.Metagraph, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return Parse(ctx, src, path)
}

// Parse decodes src. filename is used only in diagnostics.
func Parse(ctx context.Context, src []byte, filename string) (*model.Metagraph, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "file", filename)

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", filename, diags)
	}

	var root fileRoot
	diags = gohcl.DecodeBody(file.Body, nil, &root)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL file %s: %w", filename, diags)
	}

	vertices, err := orderByLabel("vertex", root.Vertices, func(b *vertexBlock) string { return b.ID })
	if err != nil {
		return nil, err
	}
	edgeBlocks, err := orderByLabel("edge", root.Edges, func(b *edgeBlock) string { return b.ID })
	if err != nil {
		return nil, err
	}

	vertexRules := make([]string, 0, len(vertices))
	for _, b := range vertices {
		text, err := ruleText("vertex", b.ID, b.Rule)
		if err != nil {
			return nil, err
		}
		vertexRules = append(vertexRules, text)
	}

	edges := make([]model.Edge, 0, len(edgeBlocks))
	edgeRules := make([]string, 0, len(edgeBlocks))
	for _, b := range edgeBlocks {
		text, err := ruleText("edge", b.ID, b.Rule)
		if err != nil {
			return nil, err
		}
		edges = append(edges, model.Edge{From: b.From, To: b.To})
		edgeRules = append(edgeRules, text)
	}

	mg, err := model.New(len(vertexRules), edges, vertexRules, edgeRules)
	if err != nil {
		return nil, err
	}
	logger.Debug("HCL loading complete.", "vertices", mg.NV(), "edges", mg.NE())
	return mg, nil
}

// orderByLabel sorts blocks by their integer label and checks that the
// labels are exactly 1..len(blocks).
func orderByLabel[T any](kind string, blocks []T, label func(T) string) ([]T, error) {
	byID := make(map[int]T, len(blocks))
	for _, b := range blocks {
		raw := label(b)
		id, err := strconv.Atoi(raw)
		if err != nil || id < 1 {
			return nil, fmt.Errorf("%w: %s label %q is not a positive integer", ErrDecode, kind, raw)
		}
		if _, dup := byID[id]; dup {
			return nil, fmt.Errorf("%w: duplicate %s %d", ErrDecode, kind, id)
		}
		byID[id] = b
	}

	ids := make([]int, 0, len(byID))
	for id := range byID {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	ordered := make([]T, 0, len(ids))
	for i, id := range ids {
		if id != i+1 {
			return nil, fmt.Errorf("%w: %s %d is missing", ErrDecode, kind, i+1)
		}
		ordered = append(ordered, byID[id])
	}
	return ordered, nil
}

// ruleText normalises a rule attribute to its textual form.
func ruleText(kind, id string, val cty.Value) (string, error) {
	if val.IsNull() {
		return "", fmt.Errorf("%w: %s %s: rule must not be null", ErrDecode, kind, id)
	}
	str, err := convert.Convert(val, cty.String)
	if err != nil {
		return "", fmt.Errorf("%w: %s %s: rule must be a number or string: %v", ErrDecode, kind, id, err)
	}
	if !str.IsKnown() {
		return "", fmt.Errorf("%w: %s %s: rule is not a constant", ErrDecode, kind, id)
	}
	return str.AsString(), nil
}
