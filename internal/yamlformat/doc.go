// Package yamlformat reads metagraphs written in YAML.
//
//	vertices: [5, min]
//	edges:
//	  - {from: 1, to: 2, rule: v 1}
//
// The position in each list is the 1-based id. Rules are scalars and are
// kept exactly as written.
package yamlformat
