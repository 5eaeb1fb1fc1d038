package category

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestPercent(t *testing.T) {
	var treatment Treatment
	err := yaml.Unmarshal([]byte(`
saturation: 15%
brightness: 0.7
`), &treatment)
	require.NoError(t, err)
	assert.InDelta(t, 0.15, float64(treatment.Saturation), 1e-9)
	assert.InDelta(t, 0.7, float64(treatment.Brightness), 1e-9)

	err = yaml.Unmarshal([]byte(`saturation: bright`), &treatment)
	assert.Error(t, err)
}

func TestTiling(t *testing.T) {
	var tiling Tiling
	err := yaml.Unmarshal([]byte(`
- "1 0.5"
- "0 1"
`), &tiling)
	require.NoError(t, err)
	require.NoError(t, tiling.Validate())
	assert.Equal(t, Tiling{{1, 0.5}, {0, 1}}, tiling)

	assert.Error(t, Tiling{}.Validate())
	assert.Error(t, Tiling{{1}, {1, 2}}.Validate())

	tiles := tiling.Tiles(100, 50)
	require.Len(t, tiles, 4)
	assert.Equal(t, Tile{X1: 0, Y1: 0, X2: 50, Y2: 25, Strength: 1}, tiles[0])
	assert.Equal(t, Tile{X1: 50, Y1: 0, X2: 100, Y2: 25, Strength: 0.5}, tiles[1])
	assert.Equal(t, Tile{X1: 0, Y1: 25, X2: 50, Y2: 50, Strength: 0}, tiles[2])
	assert.Equal(t, Tile{X1: 50, Y1: 25, X2: 100, Y2: 50, Strength: 1}, tiles[3])
}

func TestMatch(t *testing.T) {
	assert.True(t, Match("graphics/entity/boiler/boiler.png", "**/*.png"))
	assert.True(t, Match("graphics/entity/boiler/boiler.png", "graphics/**/*boiler*.png"))
	assert.False(t, Match("graphics/entity/boiler/boiler.png", "sound/**/*.png"))
	assert.True(t, Match("icon.png", "**/*.png"))
	assert.False(t, Match("graphics/icon.jpg", "**/*.png"))
}

func writeCategory(t *testing.T, dir string, name string, body string) string {
	file := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(file, []byte(body), 0644))
	return file
}

func TestFromYAML(t *testing.T) {
	dir := t.TempDir()

	file := writeCategory(t, dir, "entities.yml", `
treatment:
  saturation: 10%
  brightness: 70%
excludes:
  - shadow
replaces:
  __core__: __base__
base:
  graphics:
    entity:
      - boiler
      - wall
`)

	category, err := FromYAML(file)
	require.NoError(t, err)
	assert.InDelta(t, 0.1, float64(category.Treatment.Saturation), 1e-9)
	assert.Equal(t, Tiling{{1.0}}, category.Treatment.Tiling)
	assert.Equal(t, []string{"shadow"}, category.Excludes)
	assert.Equal(t, map[string]string{"__core__": "__base__"}, category.Replaces)

	require.Len(t, category.Patterns, 1)
	assert.Equal(t, "base", category.Patterns[0].Mod)
	assert.Equal(t, []string{
		"graphics/entity/**/*boiler*.png",
		"graphics/entity/**/*wall*.png",
	}, category.Patterns[0].Patterns)

	// A missing treatment is not a usable category.
	missing := writeCategory(t, dir, "broken.yml", `
base:
`)
	_, err = FromYAML(missing)
	assert.Error(t, err)
}

func TestSpriteFiles(t *testing.T) {
	root := t.TempDir()

	for _, file := range []string{
		"base/graphics/entity/boiler/boiler.png",
		"base/graphics/entity/boiler/boiler-shadow.png",
		"base/graphics/entity/pipe/pipe.png",
		"base/sound/boiler.ogg",
	} {
		target := filepath.Join(root, filepath.FromSlash(file))
		require.NoError(t, os.MkdirAll(filepath.Dir(target), 0755))
		require.NoError(t, os.WriteFile(target, []byte{}, 0644))
	}

	dir := t.TempDir()
	file := writeCategory(t, dir, "entities.yml", `
treatment:
  saturation: 0.1
  brightness: 0.7
excludes:
  - shadow
base:
  graphics:
    entity:
`)

	category, err := FromYAML(file)
	require.NoError(t, err)

	sprites, err := category.SpriteFiles([]string{root})
	require.NoError(t, err)

	references := make([]string, 0)
	for _, sprite := range sprites {
		references = append(references, sprite.Reference)
	}

	assert.ElementsMatch(t, []string{
		"__base__/graphics/entity/boiler/boiler.png",
		"__base__/graphics/entity/pipe/pipe.png",
	}, references)

	// Unknown mods are fatal, not silently empty.
	unknown := writeCategory(t, dir, "unknown.yml", `
treatment:
  saturation: 0.1
  brightness: 0.7
space-age:
`)
	category, err = FromYAML(unknown)
	require.NoError(t, err)
	_, err = category.SpriteFiles([]string{root})
	assert.Error(t, err)
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	writeCategory(t, dir, "a.yml", `
treatment:
  saturation: 0.1
  brightness: 0.7
base:
`)

	sub := filepath.Join(dir, "nested")
	require.NoError(t, os.MkdirAll(sub, 0755))
	writeCategory(t, sub, "b.yaml", `
treatment:
  saturation: 0.2
  brightness: 0.6
core:
`)

	categories, err := LoadDir(dir)
	require.NoError(t, err)
	assert.Len(t, categories, 2)
}
