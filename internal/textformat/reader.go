package textformat

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/vk/metagraph/internal/ctxlog"
	"github.com/vk/metagraph/internal/model"
)

// Loader is the text implementation of config.Loader.
type Loader struct{}

// NewLoader creates a new text loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads and parses the file at path.
func (l *Loader) Load(ctx context.Context, path string) (*model.Metagraph, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return Parse(ctx, raw)
}

// Parse decodes raw and builds the metagraph it describes.
func Parse(ctx context.Context, raw []byte) (*model.Metagraph, error) {
	logger := ctxlog.FromContext(ctx)

	text, enc := decode(raw)
	logger.Debug("Input decoded.", "encoding", enc, "bytes", len(raw))

	lines := significantLines(text)
	if len(lines) == 0 {
		return nil, &LineError{Msg: "empty input"}
	}

	nv, ne, err := parseHeader(lines[0])
	if err != nil {
		return nil, err
	}

	edges := make([]model.Edge, 0, ne)
	for i := 1; i <= ne; i++ {
		if i >= len(lines) {
			return nil, &LineError{Msg: fmt.Sprintf("incomplete edge list: want %d, got %d", ne, i-1)}
		}
		edge, err := parseEdge(i+1, lines[i])
		if err != nil {
			return nil, err
		}
		edges = append(edges, edge)
	}

	vrStart := 1 + ne
	vertexRules := window(lines, vrStart, nv)
	if len(vertexRules) < nv {
		return nil, &LineError{Msg: fmt.Sprintf("incomplete vertex rules: want %d, got %d", nv, len(vertexRules))}
	}
	edgeRules := window(lines, vrStart+nv, ne)
	if len(edgeRules) < ne {
		return nil, &LineError{Msg: fmt.Sprintf("incomplete edge rules: want %d, got %d", ne, len(edgeRules))}
	}
	if extra := len(lines) - (vrStart + nv + ne); extra > 0 {
		logger.Debug("Ignoring trailing lines.", "count", extra)
	}

	mg, err := model.New(nv, edges, vertexRules, edgeRules)
	if err != nil {
		return nil, err
	}
	logger.Debug("Metagraph parsed.", "vertices", nv, "edges", ne)
	return mg, nil
}

// parseHeader reads "NV NE". Further fields on the line are ignored.
func parseHeader(line string) (int, int, error) {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return 0, 0, &LineError{Line: 1, Msg: fmt.Sprintf("header %q: want \"NV NE\"", line)}
	}
	nv, err := strconv.Atoi(fields[0])
	if err != nil || nv < 0 {
		return 0, 0, &LineError{Line: 1, Msg: fmt.Sprintf("invalid vertex count %q", fields[0])}
	}
	ne, err := strconv.Atoi(fields[1])
	if err != nil || ne < 0 {
		return 0, 0, &LineError{Line: 1, Msg: fmt.Sprintf("invalid edge count %q", fields[1])}
	}
	return nv, ne, nil
}

func parseEdge(lineNo int, line string) (model.Edge, error) {
	fields := strings.Fields(line)
	if len(fields) != 2 {
		return model.Edge{}, &LineError{Line: lineNo, Msg: fmt.Sprintf("edge %q: want \"from to\"", line)}
	}
	from, err1 := strconv.Atoi(fields[0])
	to, err2 := strconv.Atoi(fields[1])
	if err1 != nil || err2 != nil {
		return model.Edge{}, &LineError{Line: lineNo, Msg: fmt.Sprintf("edge %q: endpoints must be integers", line)}
	}
	return model.Edge{From: from, To: to}, nil
}

// window returns up to n lines starting at start.
func window(lines []string, start, n int) []string {
	if start >= len(lines) {
		return nil
	}
	end := min(start+n, len(lines))
	return append([]string(nil), lines[start:end]...)
}
