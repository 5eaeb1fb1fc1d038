package pack

import (
	"fmt"

	"github.com/sorahn/noirtorio/pkg/assets"
	"github.com/sorahn/noirtorio/pkg/noir"
)

type EntityRule struct {
	Name       string
	Prefix     bool
	Saturation float64
	Brightness float64
}

type ColorConfig struct {
	Weights     string
	Renormalize bool
	Saturation  float64
	Brightness  float64
	Entities    []EntityRule
}

// Config is the replacement configuration the host hands to the
// transform passes: which pack to redirect into, which assets it
// carries, and how colors should be treated.
type Config struct {
	Name          string
	IsVanilla     bool
	Strategy      string
	UpdatedAssets []string
	Exclusions    map[string]any
	Color         ColorConfig
}

// Matcher builds the replacement lookup for the configured strategy.
func (c *Config) Matcher() (assets.Matcher, error) {
	switch c.Strategy {
	case "flat":
		return assets.NewFlatSet(c.UpdatedAssets), nil
	case "tree":
		return assets.ExclusionTree(c.Exclusions), nil
	}

	return nil, fmt.Errorf("unknown matching strategy: %s", c.Strategy)
}

// Options builds the color transform options.
func (c *ColorConfig) Options() (noir.Options, error) {
	options := noir.Options{
		Renormalize: c.Renormalize,
	}

	switch c.Weights {
	case "factorio":
		options.Weights = noir.FactorioWeights
	case "svg":
		options.Weights = noir.SVGWeights
	default:
		return options, fmt.Errorf("unknown weights: %s", c.Weights)
	}

	return options, nil
}

// Pass builds the full desaturation pass for this configuration.
func (c *ColorConfig) Pass() (*noir.Pass, error) {
	options, err := c.Options()
	if err != nil {
		return nil, err
	}

	rules := make([]noir.Rule, 0, len(c.Entities))
	for _, entity := range c.Entities {
		rules = append(rules, noir.Rule{
			Name:   entity.Name,
			Prefix: entity.Prefix,
			Treatment: noir.Treatment{
				Saturation: entity.Saturation,
				Brightness: entity.Brightness,
			},
		})
	}

	return &noir.Pass{
		Options: options,
		Default: noir.Treatment{
			Saturation: c.Saturation,
			Brightness: c.Brightness,
		},
		Rules: rules,
	}, nil
}
