// Package report renders evaluation results as text, JSON or YAML.
package report
