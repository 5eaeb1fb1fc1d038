package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sorahn/noirtorio/pkg/category"
	"github.com/sorahn/noirtorio/pkg/pack"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

type manifest struct {
	Name          string   `yaml:"name"`
	IsVanilla     bool     `yaml:"isVanilla"`
	Strategy      string   `yaml:"strategy"`
	UpdatedAssets []string `yaml:"updatedAssets"`
}

func packCommand() error {
	ctx := context.Background()

	isVanilla := strings.ToLower(filepath.Base(CLI.Pack.Dir)) == "vanilla"

	name := "factorio-noir"
	if !isVanilla {
		name = fmt.Sprintf("%s-%s", name, filepath.Base(CLI.Pack.Dir))
	}

	categories, err := category.LoadDir(CLI.Pack.Dir)
	if err != nil {
		return err
	}

	log.Info().Msgf("loaded %d categories for pack %s", len(categories), name)

	// Two categories claiming the same sprite would process it twice
	// with different treatments; refuse to guess which one wins.
	sources := make(map[string]string)
	index := pack.Index{Pack: name}

	for _, c := range categories {
		sprites, err := c.SpriteFiles(CLI.Pack.Roots)
		if err != nil {
			return err
		}

		for _, sprite := range sprites {
			if previous, ok := sources[sprite.Reference]; ok {
				return fmt.Errorf(
					"the sprite %s was included in processing from more than one category:\n    %s\n    %s",
					sprite.Reference,
					sprite.Source,
					previous,
				)
			}

			sources[sprite.Reference] = sprite.Source
			index.Assets = append(index.Assets, pack.IndexAsset{
				Path:     sprite.Reference,
				Category: sprite.Source,
			})
		}
	}

	sort.Slice(index.Assets, func(i, j int) bool {
		return index.Assets[i].Path < index.Assets[j].Path
	})

	target := filepath.Join(CLI.Pack.Target, name)
	err = os.MkdirAll(target, 0755)
	if err != nil {
		return err
	}

	store := pack.FSStore(target)
	err = pack.SaveIndex(ctx, store, &index)
	if err != nil {
		return fmt.Errorf("could not save index: %v", err)
	}

	data, err := yaml.Marshal(manifest{
		Name:          name,
		IsVanilla:     isVanilla,
		Strategy:      "flat",
		UpdatedAssets: index.References(),
	})
	if err != nil {
		return err
	}

	err = os.WriteFile(filepath.Join(target, "config.yaml"), data, 0644)
	if err != nil {
		return err
	}

	log.Info().Msgf("wrote manifest with %d assets to %s", len(index.Assets), target)

	if CLI.Pack.Zip {
		archive := target + ".zip"
		err = pack.Archive(target, archive)
		if err != nil {
			return fmt.Errorf("could not create archive: %v", err)
		}

		log.Info().Msgf("created archive for pack: %s", archive)
	}

	return nil
}
