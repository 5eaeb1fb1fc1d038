package noir

import (
	"fmt"
	"math"

	"github.com/repeale/fp-go/option"

	"github.com/sorahn/noirtorio/pkg/prototype"
)

// Weights are the luminance weights a saturation matrix is derived from.
type Weights struct {
	X float64
	Y float64
	Z float64
}

var (
	// Numbers taken from the game's shader. Keep in sync with the sprite
	// renderer.
	FactorioWeights = Weights{X: 0.3086, Y: 0.6094, Z: 0.0820}

	// The feColorMatrix saturate constants from the SVG specification.
	SVGWeights = Weights{X: 0.213, Y: 0.715, Z: 0.072}
)

// Matrix builds the 3x3 saturation matrix for this set of weights.
//
// At saturation 0 every output channel is the (X, Y, Z) weighted sum of
// the input, converting the color to greyscale along that vector. At
// saturation 1 the matrix is the identity and the color is unchanged.
func (w Weights) Matrix(saturation float64) [9]float64 {
	return [9]float64{
		w.X + (1-w.X)*saturation, w.Y * (1 - saturation), w.Z * (1 - saturation),
		w.X * (1 - saturation), w.Y + (1-w.Y)*saturation, w.Z * (1 - saturation),
		w.X * (1 - saturation), w.Y * (1 - saturation), w.Z + (1-w.Z)*saturation,
	}
}

// Color is a normalized color on the 0-1 scale.
type Color struct {
	R float64
	G float64
	B float64
	A float64
}

// Table returns the color as a content tree value.
func (c Color) Table() map[string]any {
	return map[string]any{
		"r": c.R,
		"g": c.G,
		"b": c.B,
		"a": c.A,
	}
}

var channelKeys = []string{"r", "g", "b", "a"}

// ParseColor reads a color from a content tree value. Colors appear
// either as {r, g, b, a} tables or as 3/4 element lists; channels over 1
// mark the whole color as being on the 0-255 scale. A missing alpha
// defaults to fully opaque.
func ParseColor(value any) opt.Option[Color] {
	channels := make([]float64, 0, 4)

	switch v := value.(type) {
	case map[string]any:
		for _, key := range channelKeys {
			raw, ok := v[key]
			if !ok {
				break
			}
			number, ok := prototype.Number(raw)
			if !ok {
				return opt.None[Color]()
			}
			channels = append(channels, number)
		}
	case []any:
		for _, raw := range v {
			number, ok := prototype.Number(raw)
			if !ok {
				return opt.None[Color]()
			}
			channels = append(channels, number)
		}
	default:
		return opt.None[Color]()
	}

	if len(channels) < 3 || len(channels) > 4 {
		return opt.None[Color]()
	}

	scale := 1.0
	for _, channel := range channels {
		if channel > 1 {
			scale = 255.0
			break
		}
	}

	color := Color{
		R: channels[0] / scale,
		G: channels[1] / scale,
		B: channels[2] / scale,
		A: 1,
	}

	if len(channels) == 4 {
		color.A = channels[3] / scale
	}

	return opt.Some(color)
}

// Options selects the matrix constants and the clamp policy used by a
// transform.
type Options struct {
	Weights Weights

	// When set, a transform result with any channel over 1 is scaled
	// back down uniformly so the brightest channel lands on 1. Clipping
	// each channel on its own would shift the hue, and a channel left
	// over 1 makes the engine read the whole color as 0-255.
	Renormalize bool
}

// Apply runs the saturation matrix and the brightness multiply over a
// single color. Alpha passes through unmodified.
func (o Options) Apply(color Color, saturation float64, brightness float64) Color {
	m := o.Weights.Matrix(saturation)

	result := Color{
		R: (m[0]*color.R + m[1]*color.G + m[2]*color.B) * brightness,
		G: (m[3]*color.R + m[4]*color.G + m[5]*color.B) * brightness,
		B: (m[6]*color.R + m[7]*color.G + m[8]*color.B) * brightness,
		A: color.A,
	}

	if o.Renormalize {
		max := math.Max(result.R, math.Max(result.G, result.B))
		if max > 1 {
			result.R /= max
			result.G /= max
			result.B /= max
		}
	}

	return result
}

// Transform desaturates a color value from the content tree. An absent
// color stays absent rather than being an error; a value that is present
// but not a color aborts the pass.
func (o Options) Transform(value any, saturation float64, brightness float64) (any, error) {
	if value == nil {
		return nil, nil
	}

	parsed := ParseColor(value)
	if opt.IsNone(parsed) {
		return nil, fmt.Errorf("expected a color, got %v", value)
	}

	return o.Apply(parsed.Value, saturation, brightness).Table(), nil
}
