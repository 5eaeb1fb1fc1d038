package category

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Percent is a factor that can be written either as a plain number or as
// a "NN%" string in category files.
type Percent float64

func (p *Percent) UnmarshalYAML(node *yaml.Node) error {
	var number float64
	if err := node.Decode(&number); err == nil {
		*p = Percent(number)
		return nil
	}

	var raw string
	if err := node.Decode(&raw); err != nil || !strings.HasSuffix(raw, "%") {
		return fmt.Errorf("%s is neither a number nor a percent value", node.Value)
	}

	number, err := strconv.ParseFloat(strings.TrimSuffix(raw, "%"), 64)
	if err != nil {
		return err
	}

	*p = Percent(number / 100)
	return nil
}

// Tiling is a grid of per-tile strengths. Rows are written as
// space-separated strings so the numbers lay out graphically in the
// category file.
type Tiling [][]float64

func (t *Tiling) UnmarshalYAML(node *yaml.Node) error {
	var rows []string
	if err := node.Decode(&rows); err != nil {
		return err
	}

	tiling := make(Tiling, 0, len(rows))
	for _, row := range rows {
		fields := strings.Fields(row)

		strengths := make([]float64, 0, len(fields))
		for _, field := range fields {
			strength, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return err
			}
			strengths = append(strengths, strength)
		}

		tiling = append(tiling, strengths)
	}

	*t = tiling
	return nil
}

func (t Tiling) Validate() error {
	if len(t) == 0 {
		return fmt.Errorf("tiling must have at least 1 row")
	}

	columns := len(t[0])
	for _, row := range t {
		if len(row) == 0 {
			return fmt.Errorf("tiling must have at least 1 column")
		}

		if len(row) != columns {
			return fmt.Errorf("tiling must have the same number of columns for each row")
		}
	}

	return nil
}

// A Tile is one region of a sprite and the treatment strength applied to
// it.
type Tile struct {
	X1       int
	Y1       int
	X2       int
	Y2       int
	Strength float64
}

// Tiles splits a sprite of the given size into the tiling's regions.
// Multiplication happens before division so the rounding cannot leave
// gaps between tiles.
func (t Tiling) Tiles(width int, height int) []Tile {
	tiles := make([]Tile, 0, len(t))

	yCount := len(t)
	for yIndex, row := range t {
		xCount := len(row)
		for xIndex, strength := range row {
			tiles = append(tiles, Tile{
				X1:       width * xIndex / xCount,
				Y1:       height * yIndex / yCount,
				X2:       width * (xIndex + 1) / xCount,
				Y2:       height * (yIndex + 1) / yCount,
				Strength: strength,
			})
		}
	}

	return tiles
}

// Treatment describes the processing applied to every sprite of a
// category.
type Treatment struct {
	Saturation Percent `yaml:"saturation"`
	Brightness Percent `yaml:"brightness"`
	Tiling     Tiling  `yaml:"tiling"`
}

// ModPatterns are the file patterns a category selects inside one mod.
type ModPatterns struct {
	Mod      string
	Patterns []string
}

// A Category is one YAML definition: a treatment plus the mod file
// patterns it applies to.
type Category struct {
	Source    string
	Treatment Treatment
	Excludes  []string
	Includes  []string
	Replaces  map[string]string
	Patterns  []ModPatterns
}

// A Sprite is one asset a category selected for processing.
type Sprite struct {
	Reference string
	Source    string
}

// FromYAML reads a category definition. Any key that is not one of the
// well-known ones names a mod and holds its pattern tree.
func FromYAML(file string) (*Category, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("could not parse %s: %v", file, err)
	}

	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, fmt.Errorf("%s is empty", file)
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%s: expected a mapping at the top level", file)
	}

	category := Category{
		Source:   file,
		Replaces: map[string]string{},
	}

	sawTreatment := false

	for i := 0; i+1 < len(root.Content); i += 2 {
		key := root.Content[i].Value
		value := root.Content[i+1]

		switch key {
		case "treatment":
			if err := value.Decode(&category.Treatment); err != nil {
				return nil, fmt.Errorf("invalid treatment in %s: %v", file, err)
			}
			sawTreatment = true
		case "excludes":
			if err := value.Decode(&category.Excludes); err != nil {
				return nil, fmt.Errorf("invalid excludes in %s: %v", file, err)
			}
		case "includes":
			if err := value.Decode(&category.Includes); err != nil {
				return nil, fmt.Errorf("invalid includes in %s: %v", file, err)
			}
		case "replaces":
			if err := value.Decode(&category.Replaces); err != nil {
				return nil, fmt.Errorf("invalid replaces in %s: %v", file, err)
			}
		default:
			patterns, err := parsePatterns(".", value)
			if err != nil {
				return nil, fmt.Errorf("invalid patterns for mod %s in %s: %v", key, file, err)
			}

			category.Patterns = append(category.Patterns, ModPatterns{
				Mod:      key,
				Patterns: patterns,
			})
		}
	}

	if !sawTreatment {
		return nil, fmt.Errorf("missing treatment in %s", file)
	}

	if category.Treatment.Tiling == nil {
		category.Treatment.Tiling = Tiling{{1.0}}
	}

	if err := category.Treatment.Tiling.Validate(); err != nil {
		return nil, fmt.Errorf("invalid treatment in %s: %v", file, err)
	}

	return &category, nil
}

// A pattern tree is laid out like the directories it selects: mappings
// descend into subdirectories, scalars select files by substring, null
// selects everything.
func parsePatterns(prefix string, node *yaml.Node) ([]string, error) {
	switch node.Kind {
	case yaml.ScalarNode:
		if node.Tag == "!!null" {
			return []string{path.Join(prefix, "**", "*.png")}, nil
		}
		return []string{path.Join(prefix, "**", fmt.Sprintf("*%s*.png", node.Value))}, nil
	case yaml.SequenceNode:
		patterns := make([]string, 0)
		for _, child := range node.Content {
			sub, err := parsePatterns(prefix, child)
			if err != nil {
				return nil, err
			}
			patterns = append(patterns, sub...)
		}
		return patterns, nil
	case yaml.MappingNode:
		patterns := make([]string, 0)
		for i := 0; i+1 < len(node.Content); i += 2 {
			sub, err := parsePatterns(path.Join(prefix, node.Content[i].Value), node.Content[i+1])
			if err != nil {
				return nil, err
			}
			patterns = append(patterns, sub...)
		}
		return patterns, nil
	}

	return nil, fmt.Errorf("unexpected node kind %d", node.Kind)
}

// LoadDir reads every category definition under dir.
func LoadDir(dir string) ([]*Category, error) {
	categories := make([]*Category, 0)

	err := filepath.WalkDir(dir, func(file string, entry os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if entry.IsDir() {
			return nil
		}

		extension := filepath.Ext(file)
		if extension != ".yml" && extension != ".yaml" {
			return nil
		}

		category, err := FromYAML(file)
		if err != nil {
			return err
		}

		categories = append(categories, category)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return categories, nil
}
