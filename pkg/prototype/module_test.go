package prototype

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVisitStrings(t *testing.T) {
	tree := Tree{
		"recipe": map[string]any{
			"icon":  "a.png",
			"order": int64(3),
			"ingredients": []any{
				"b.png",
				map[string]any{"sound": "c.ogg"},
				1.5,
			},
		},
	}

	visited := make(map[string]string)
	VisitStrings(tree, func(path Path, value string) string {
		visited[value] = path.String()
		return value + "!"
	})

	assert.Equal(t, map[string]string{
		"a.png": "recipe/icon",
		"b.png": "recipe/ingredients",
		"c.ogg": "recipe/ingredients/sound",
	}, visited)

	recipe := tree["recipe"].(map[string]any)
	assert.Equal(t, "a.png!", recipe["icon"])
	assert.Equal(t, int64(3), recipe["order"])

	ingredients := recipe["ingredients"].([]any)
	assert.Equal(t, "b.png!", ingredients[0])
	assert.Equal(t, "c.ogg!", ingredients[1].(map[string]any)["sound"])
	assert.Equal(t, 1.5, ingredients[2])
}

func TestPathCopies(t *testing.T) {
	base := Path{"a"}

	first := base.Child("b")
	second := base.Child("c")

	require.Equal(t, "a/b", first.String())
	require.Equal(t, "a/c", second.String())
}

func TestScaleTable(t *testing.T) {
	table := Tree{
		"a": int64(10),
		"b": 20.0,
		"nested": map[string]any{
			"c": 4.0,
		},
		"name": "unchanged",
	}

	ScaleTable(table, 0.5)

	assert.Equal(t, 5.0, table["a"])
	assert.Equal(t, 10.0, table["b"])
	assert.Equal(t, 2.0, table["nested"].(map[string]any)["c"])
	assert.Equal(t, "unchanged", table["name"])
}
