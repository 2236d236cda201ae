package config

import (
	"bytes"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// ConfigOption describes one configuration key, its default and its meaning.
type ConfigOption struct {
	Key     string
	Default any
	Comment string
}

// DefaultPatterns are the file name globs the batch command looks for.
var DefaultPatterns = []string{"*.fa", "*.fasta", "*.fna", "*.faa", "*.fas"}

// GetConfigOptions returns every option with its default. This is the single
// source of truth for defaults and for the generated config file.
func GetConfigOptions() []ConfigOption {
	return []ConfigOption{
		{Key: "log_level", Default: "warn", Comment: "Log level on stderr: trace, debug, info, warn, error"},

		{Key: "batch.input_dir", Default: "./input", Comment: "Directory scanned for FASTA files"},
		{Key: "batch.output_dir", Default: "./output", Comment: "Directory receiving converted files and summaries"},
		{Key: "batch.archive_dir", Default: "./input_archive", Comment: "Directory receiving inputs after conversion"},
		{Key: "batch.archive_inputs", Default: false, Comment: "Move each input to archive_dir once converted"},
		{Key: "batch.patterns", Default: append([]string(nil), DefaultPatterns...), Comment: "Glob patterns matched against input file names"},
		{Key: "batch.output_name_format", Default: "{original}.vienna.fa", Comment: "Output name; placeholders {original} {uuid} {timestamp} {date} {time}"},
		{Key: "batch.max_concurrency", Default: 4, Comment: "Maximum number of files converted at once"},
		{Key: "batch.summary", Default: true, Comment: "Write a text processing summary to output_dir"},
		{Key: "batch.summary_xlsx", Default: false, Comment: "Also write the processing summary as an .xlsx workbook"},

		{Key: "wrap.width", Default: 60, Comment: "Residues per line written by the wrap command"},
	}
}

// RenderDefaultYAML renders a commented YAML config holding every default.
func RenderDefaultYAML() (string, error) {
	root := &yaml.Node{Kind: yaml.MappingNode}
	root.HeadComment = "fasta2vienna configuration"
	sections := make(map[string]*yaml.Node)

	for _, o := range GetConfigOptions() {
		parent := root
		key := o.Key
		if section, rest, ok := strings.Cut(o.Key, "."); ok {
			parent = sections[section]
			if parent == nil {
				parent = &yaml.Node{Kind: yaml.MappingNode}
				sections[section] = parent
				root.Content = append(root.Content,
					&yaml.Node{Kind: yaml.ScalarNode, Value: section},
					parent,
				)
			}
			key = rest
		}

		value := &yaml.Node{}
		if err := value.Encode(o.Default); err != nil {
			return "", fmt.Errorf("failed to encode %s: %w", o.Key, err)
		}
		parent.Content = append(parent.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: key, HeadComment: o.Comment},
			value,
		)
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(root); err != nil {
		return "", fmt.Errorf("failed to render config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return "", fmt.Errorf("failed to render config: %w", err)
	}
	return buf.String(), nil
}
