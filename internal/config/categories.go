package config

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/pfrederiksen/bin-schedule/internal/category"
)

// orderedTable decodes a category table from YAML while keeping the order in
// which categories were written. Two forms are accepted:
//
//	categories:                      categories:
//	  general: [general, black]        - id: general
//	  glass: [glass, black box]          aliases: [general, black]
type orderedTable category.Table

func (t *orderedTable) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.MappingNode:
		table := make(orderedTable, 0, len(value.Content)/2)
		for i := 0; i+1 < len(value.Content); i += 2 {
			key, val := value.Content[i], value.Content[i+1]
			var aliases []string
			if err := val.Decode(&aliases); err != nil {
				return fmt.Errorf("category %q (line %d): %w", key.Value, val.Line, err)
			}
			table = append(table, category.Category{ID: key.Value, Aliases: aliases})
		}
		*t = table
	case yaml.SequenceNode:
		var list []category.Category
		if err := value.Decode(&list); err != nil {
			return err
		}
		*t = orderedTable(list)
	default:
		return fmt.Errorf("line %d: categories must be a mapping or a list", value.Line)
	}
	return nil
}

func (t orderedTable) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, c := range t {
		aliases := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
		for _, alias := range c.Aliases {
			aliases.Content = append(aliases.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: alias})
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: c.ID},
			aliases,
		)
	}
	return node, nil
}
