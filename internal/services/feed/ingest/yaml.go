package ingest

import (
	"io"
	"strings"

	"newsfeed/internal/services/feed/domain"

	perr "newsfeed/internal/platform/errors"

	"gopkg.in/yaml.v3"
)

// yamlParser reads one sequence of mappings; nodes keep key order
type yamlParser struct{}

func (yamlParser) Format() Format { return FormatYAML }

func (yamlParser) Decode(r io.Reader) ([]domain.Record, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, perr.Wrap(err, perr.ErrorCodeInvalidFormat, "yaml: decode")
	}
	root := &doc
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}
	if root.Kind != yaml.SequenceNode {
		return nil, perr.InvalidFormatf("yaml: expected a sequence at line %d", root.Line)
	}

	out := make([]domain.Record, 0, len(root.Content))
	for _, item := range root.Content {
		if item.Kind != yaml.MappingNode {
			return nil, perr.InvalidFormatf("yaml: expected a mapping at line %d", item.Line)
		}
		var rec domain.Record
		for i := 0; i+1 < len(item.Content); i += 2 {
			rec.Set(item.Content[i].Value, yamlString(item.Content[i+1]))
		}
		out = append(out, rec)
	}
	return out, nil
}

func yamlString(n *yaml.Node) string {
	if n.Kind == yaml.ScalarNode {
		if n.Tag == "!!null" {
			return ""
		}
		return n.Value
	}
	b, err := yaml.Marshal(n)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(b))
}
