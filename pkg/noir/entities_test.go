package noir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sorahn/noirtorio/pkg/prototype"
)

func testPass() *Pass {
	return &Pass{
		Options: Options{Weights: FactorioWeights},
		Default: Treatment{Saturation: 1.0, Brightness: 0.5},
		Rules: []Rule{
			{
				Name:      "water",
				Prefix:    true,
				Treatment: Treatment{Saturation: 0.0, Brightness: 1.0},
			},
		},
	}
}

func TestDesaturateEntities(t *testing.T) {
	tree := prototype.Tree{
		"resource": map[string]any{
			"iron-ore": map[string]any{
				"map_color":    map[string]any{"r": 1.0, "g": 0.0, "b": 0.0},
				"stage_counts": []any{int64(1), int64(2)},
			},
		},
	}

	err := testPass().DesaturateEntities(tree)
	require.NoError(t, err)

	entity := tree["resource"].(map[string]any)["iron-ore"].(map[string]any)
	color := entity["map_color"].(map[string]any)

	// Default treatment: saturation 1 keeps the hue, brightness halves it.
	assert.InDelta(t, 0.5, color["r"].(float64), 1e-9)
	assert.InDelta(t, 0.0, color["g"].(float64), 1e-9)
	assert.InDelta(t, 0.0, color["b"].(float64), 1e-9)
}

func TestEntityRules(t *testing.T) {
	tree := prototype.Tree{
		"tile": map[string]any{
			"water-shallow": map[string]any{
				"map_color": map[string]any{"r": 0.0, "g": 0.0, "b": 1.0},
			},
		},
	}

	err := testPass().DesaturateEntities(tree)
	require.NoError(t, err)

	color := tree["tile"].(map[string]any)["water-shallow"].(map[string]any)["map_color"].(map[string]any)

	// The water prefix rule desaturates fully: every channel becomes the
	// blue luminance weight.
	assert.InDelta(t, FactorioWeights.Z, color["r"].(float64), 1e-9)
	assert.InDelta(t, FactorioWeights.Z, color["g"].(float64), 1e-9)
	assert.InDelta(t, FactorioWeights.Z, color["b"].(float64), 1e-9)
}

func TestFoamThresholds(t *testing.T) {
	pass := testPass()
	pass.Rules = nil
	pass.Default = Treatment{Saturation: 1.0, Brightness: 0.5}

	tree := prototype.Tree{
		"tile": map[string]any{
			"deepwater": map[string]any{
				"foam_color":         map[string]any{"r": 1.0, "g": 1.0, "b": 1.0},
				"dark_threshold":     map[string]any{"a": 10.0, "b": 20.0},
				"specular_threshold": map[string]any{"a": 4.0},
			},
		},
	}

	err := pass.DesaturateEntities(tree)
	require.NoError(t, err)

	entity := tree["tile"].(map[string]any)["deepwater"].(map[string]any)
	dark := entity["dark_threshold"].(map[string]any)
	specular := entity["specular_threshold"].(map[string]any)

	assert.Equal(t, 5.0, dark["a"])
	assert.Equal(t, 10.0, dark["b"])
	assert.Equal(t, 2.0, specular["a"])
}

func TestEntitiesTypeMismatch(t *testing.T) {
	err := testPass().DesaturateEntities(prototype.Tree{
		"resource": "not a table",
	})
	assert.Error(t, err)
}

func TestDesaturateTables(t *testing.T) {
	tree := prototype.Tree{
		"utility-constants": map[string]any{
			"default": map[string]any{
				"chart": map[string]any{
					"electric_line_color": map[string]any{"r": 1.0, "g": 1.0, "b": 1.0},
					"zoom_threshold":      2.0,
				},
			},
		},
	}

	err := testPass().DesaturateTables(tree, DefaultColorTables, "_color")
	require.NoError(t, err)

	chart := tree["utility-constants"].(map[string]any)["default"].(map[string]any)["chart"].(map[string]any)
	color := chart["electric_line_color"].(map[string]any)

	assert.InDelta(t, 0.5, color["r"].(float64), 1e-9)

	// Keys without the suffix are not touched, colors or not.
	assert.Equal(t, 2.0, chart["zoom_threshold"])
}

func TestTablesMissing(t *testing.T) {
	// A tree without the table at all is nothing to do, not an error.
	err := testPass().DesaturateTables(prototype.Tree{}, DefaultColorTables, "_color")
	assert.NoError(t, err)
}
