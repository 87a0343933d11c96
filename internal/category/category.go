package category

import (
	"errors"
	"fmt"
	"strings"
)

// Category is a waste-collection type and the phrases that signal it.
type Category struct {
	ID      string   `json:"id" yaml:"id"`
	Aliases []string `json:"aliases" yaml:"aliases"`
}

// Table is the ordered set of configured categories. Declaration order is
// significant: extraction visits categories and aliases in this order.
type Table []Category

// Default returns the built-in table of bin categories.
// "black box" is glass in Luton even though "black" also signals general waste.
func Default() Table {
	return Table{
		{ID: "general", Aliases: []string{"general", "black", "refuse", "household", "black bin", "refuse collection"}},
		{ID: "recycling", Aliases: []string{"recycling", "green", "green bin"}},
		{ID: "glass", Aliases: []string{"glass", "glass box", "glass bin", "black box"}},
	}
}

// IDs returns the category identifiers in declaration order.
func (t Table) IDs() []string {
	ids := make([]string, 0, len(t))
	for _, c := range t {
		ids = append(ids, c.ID)
	}
	return ids
}

// Lookup finds a category by identifier.
func (t Table) Lookup(id string) (Category, bool) {
	for _, c := range t {
		if c.ID == id {
			return c, true
		}
	}
	return Category{}, false
}

// Validate checks that the table can be used for matching: every category
// has an identifier and at least one alias, identifiers are unique, and no
// alias belongs to two categories.
func (t Table) Validate() error {
	if len(t) == 0 {
		return errors.New("no categories configured")
	}

	ids := make(map[string]bool, len(t))
	owner := make(map[string]string)
	for i, c := range t {
		if strings.TrimSpace(c.ID) == "" {
			return fmt.Errorf("category %d: empty id", i)
		}
		if ids[c.ID] {
			return fmt.Errorf("category %q: duplicate id", c.ID)
		}
		ids[c.ID] = true

		if len(c.Aliases) == 0 {
			return fmt.Errorf("category %q: no aliases", c.ID)
		}
		for _, alias := range c.Aliases {
			if strings.TrimSpace(alias) == "" {
				return fmt.Errorf("category %q: empty alias", c.ID)
			}
			key := strings.ToLower(alias)
			if other, taken := owner[key]; taken && other != c.ID {
				return fmt.Errorf("alias %q: used by both %q and %q", alias, other, c.ID)
			}
			owner[key] = c.ID
		}
	}

	return nil
}
