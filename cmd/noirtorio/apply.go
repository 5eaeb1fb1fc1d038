package main

import (
	"fmt"
	"os"

	"github.com/sorahn/noirtorio/pkg/assets"
	"github.com/sorahn/noirtorio/pkg/noir"
	"github.com/sorahn/noirtorio/pkg/pack"

	"github.com/ohler55/ojg"
	"github.com/ohler55/ojg/oj"
	"github.com/rs/zerolog/log"
)

func applyCommand() error {
	config, err := pack.Process(CLI.Apply.Configs)
	if err != nil {
		return fmt.Errorf("could not load pack configuration: %v", err)
	}

	data, err := os.ReadFile(CLI.Apply.Data)
	if err != nil {
		return err
	}

	parsed, err := oj.Parse(data)
	if err != nil {
		return fmt.Errorf("could not parse %s: %v", CLI.Apply.Data, err)
	}

	tree, ok := parsed.(map[string]any)
	if !ok {
		return fmt.Errorf("%s: expected a table at the top level", CLI.Apply.Data)
	}

	matcher, err := config.Matcher()
	if err != nil {
		return err
	}

	resolver := assets.Resolver{
		Pack:    config.Name,
		Matcher: matcher,
	}
	resolver.Apply(tree)

	// Map colors only change for the vanilla pack; packs covering other
	// mods just redirect that mod's assets.
	if config.IsVanilla {
		pass, err := config.Color.Pass()
		if err != nil {
			return err
		}

		if err := pass.DesaturateEntities(tree); err != nil {
			return err
		}

		if err := pass.DesaturateTables(tree, noir.DefaultColorTables, "_color"); err != nil {
			return err
		}
	} else {
		log.Info().Msg("non-vanilla pack, skipping color desaturation")
	}

	output := CLI.Apply.Output
	if output == "" {
		output = CLI.Apply.Data
	}

	options := ojg.Options{
		Indent: 2,
		Sort:   true,
	}

	err = os.WriteFile(output, []byte(oj.JSON(tree, &options)), 0644)
	if err != nil {
		return err
	}

	log.Info().Msgf("wrote transformed tree to %s", output)
	return nil
}
