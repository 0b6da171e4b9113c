// Package config defines the contract shared by every metagraph input format.
//
// A Loader reads one input file and translates it into the format-agnostic
// *model.Metagraph consumed by the dag and evaluator packages. Concrete
// loaders live in separate packages (textformat, hclformat, yamlformat);
// Registry selects one per input path.
package config
