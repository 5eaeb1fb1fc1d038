package noir

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/sorahn/noirtorio/pkg/prototype"
)

// Treatment is the saturation and brightness applied to a color.
type Treatment struct {
	Saturation float64
	Brightness float64
}

// A Rule overrides the default treatment for entities selected by exact
// name or by name prefix.
type Rule struct {
	Name      string
	Prefix    bool
	Treatment Treatment
}

// The entity color fields rewritten by the pass.
var ColorFields = []string{
	"map_color",
	"friendly_map_color",
	"enemy_map_color",
	"effect_color",
	"effect_color_secondary",
	"foam_color",
}

// Threshold tables that track the brightness of foam_color and have to
// be rescaled with it.
var thresholdTables = []string{
	"dark_threshold",
	"reflection_threshold",
	"specular_threshold",
}

// DefaultColorTables are the top-level aggregate color tables rewritten
// by DesaturateTables.
var DefaultColorTables = [][]string{
	{"utility-constants", "default", "chart"},
}

// A Pass desaturates the map and effect colors of a whole content tree.
type Pass struct {
	Options Options
	Default Treatment
	Rules   []Rule
}

func (p *Pass) treatment(name string) Treatment {
	for _, rule := range p.Rules {
		if rule.Prefix {
			if strings.HasPrefix(name, rule.Name) {
				return rule.Treatment
			}
			continue
		}
		if name == rule.Name {
			return rule.Treatment
		}
	}
	return p.Default
}

// DesaturateEntities walks every entity of every category and replaces
// its well-known color fields. Rewriting foam_color also rescales the
// entity's brightness threshold tables by the same factor.
func (p *Pass) DesaturateEntities(raw prototype.Tree) error {
	replaced := 0

	for categoryName, categoryValue := range raw {
		category, ok := categoryValue.(map[string]any)
		if !ok {
			return fmt.Errorf("category %s: expected a table, got %T", categoryName, categoryValue)
		}

		for name, entityValue := range category {
			entity, ok := entityValue.(map[string]any)
			if !ok {
				continue
			}

			treatment := p.treatment(name)

			for _, field := range ColorFields {
				value, ok := entity[field]
				if !ok {
					continue
				}

				color, err := p.Options.Transform(value, treatment.Saturation, treatment.Brightness)
				if err != nil {
					return fmt.Errorf("%s.%s.%s: %v", categoryName, name, field, err)
				}

				entity[field] = color
				replaced++

				if field != "foam_color" {
					continue
				}

				for _, tableName := range thresholdTables {
					if table, ok := entity[tableName].(map[string]any); ok {
						prototype.ScaleTable(table, treatment.Brightness)
					}
				}
			}
		}
	}

	log.Debug().Msgf("desaturated %d entity colors", replaced)
	return nil
}

// DesaturateTables applies the default treatment to each of the given
// top-level color tables. When suffix is not empty only keys ending in
// it are rewritten. Tables missing from the tree are skipped.
func (p *Pass) DesaturateTables(raw prototype.Tree, tables [][]string, suffix string) error {
	for _, tablePath := range tables {
		var node any = raw
		found := true

		for _, key := range tablePath {
			parent, ok := node.(map[string]any)
			if !ok {
				return fmt.Errorf("%s: expected a table, got %T", strings.Join(tablePath, "/"), node)
			}

			node, ok = parent[key]
			if !ok {
				found = false
				break
			}
		}

		if !found {
			continue
		}

		table, ok := node.(map[string]any)
		if !ok {
			return fmt.Errorf("%s: expected a table, got %T", strings.Join(tablePath, "/"), node)
		}

		for key, value := range table {
			if suffix != "" && !strings.HasSuffix(key, suffix) {
				continue
			}

			color, err := p.Options.Transform(value, p.Default.Saturation, p.Default.Brightness)
			if err != nil {
				return fmt.Errorf("%s.%s: %v", strings.Join(tablePath, "/"), key, err)
			}

			table[key] = color
		}
	}

	return nil
}
