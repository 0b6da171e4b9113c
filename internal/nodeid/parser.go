// internal/nodeid/parser.go
package nodeid

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// keyRegex accepts `v1`, `e 2`, `vertex 3`, `Edge(4)` and similar spellings.
var keyRegex = regexp.MustCompile(`^(?i)(v|e|vertex|edge)\s*(?:\(\s*(\d+)\s*\)|(\d+))$`)

// Parse creates a Key from its textual representation. The canonical form
// produced by Key.String always round-trips.
func Parse(raw string) (Key, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Key{}, fmt.Errorf("identifier cannot be empty")
	}

	matches := keyRegex.FindStringSubmatch(raw)
	if matches == nil {
		return Key{}, fmt.Errorf("invalid node key format: %q", raw)
	}

	var kind Kind
	switch strings.ToLower(matches[1]) {
	case "v", "vertex":
		kind = Vertex
	default:
		kind = Edge
	}

	digits := matches[2]
	if digits == "" {
		digits = matches[3]
	}
	id, err := strconv.Atoi(digits)
	if err != nil {
		return Key{}, fmt.Errorf("invalid node id in %q: %w", raw, err)
	}
	if id < 1 {
		return Key{}, fmt.Errorf("node id must be positive, got %d", id)
	}

	return Key{Kind: kind, ID: id}, nil
}
