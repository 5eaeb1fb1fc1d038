package category

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/sorahn/noirtorio/pkg/assets"
)

func findMod(mod string, roots []string) (string, error) {
	for _, root := range roots {
		candidate := filepath.Join(root, mod)
		if info, err := os.Stat(candidate); err == nil && info.IsDir() {
			return candidate, nil
		}
	}

	return "", fmt.Errorf("mod %s not found in any source directory", mod)
}

func listFiles(dir string) ([]string, error) {
	files := make([]string, 0)

	err := filepath.WalkDir(dir, func(file string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if entry.IsDir() {
			return nil
		}

		relative, err := filepath.Rel(dir, file)
		if err != nil {
			return err
		}

		files = append(files, filepath.ToSlash(relative))
		return nil
	})
	if err != nil {
		return nil, err
	}

	return files, nil
}

// matchSegments matches one path against one pattern, segment by
// segment. "**" absorbs any number of path segments; single segments go
// through path.Match.
func matchSegments(pathSegments []string, patternSegments []string) bool {
	if len(patternSegments) == 0 {
		return len(pathSegments) == 0
	}

	if patternSegments[0] == "**" {
		for i := 0; i <= len(pathSegments); i++ {
			if matchSegments(pathSegments[i:], patternSegments[1:]) {
				return true
			}
		}
		return false
	}

	if len(pathSegments) == 0 {
		return false
	}

	matched, err := path.Match(patternSegments[0], pathSegments[0])
	if err != nil || !matched {
		return false
	}

	return matchSegments(pathSegments[1:], patternSegments[1:])
}

func Match(file string, pattern string) bool {
	return matchSegments(
		strings.Split(file, "/"),
		strings.Split(pattern, "/"),
	)
}

func (c *Category) keep(file string) bool {
	for _, exclude := range c.Excludes {
		if strings.Contains(file, exclude) {
			return false
		}
	}

	if len(c.Includes) == 0 {
		return true
	}

	for _, include := range c.Includes {
		if strings.Contains(file, include) {
			return true
		}
	}

	return false
}

func (c *Category) replacePath(reference string) string {
	for find, replace := range c.Replaces {
		reference = strings.ReplaceAll(reference, find, replace)
	}
	return reference
}

// SpriteFiles lists every asset this category selects from the given
// mod source directories. Patterns that match nothing are logged; they
// usually mean a category went stale after a game update.
func (c *Category) SpriteFiles(roots []string) ([]Sprite, error) {
	sprites := make([]Sprite, 0)
	missed := make([]string, 0)

	for _, mod := range c.Patterns {
		dir, err := findMod(mod.Mod, roots)
		if err != nil {
			return nil, err
		}

		files, err := listFiles(dir)
		if err != nil {
			return nil, err
		}

		for _, pattern := range mod.Patterns {
			used := false

			for _, file := range files {
				if !Match(file, pattern) {
					continue
				}

				if !c.keep(file) {
					continue
				}

				used = true

				reference := c.replacePath(
					assets.NewReference(mod.Mod, file).String(),
				)

				sprites = append(sprites, Sprite{
					Reference: reference,
					Source:    c.Source,
				})
			}

			if !used {
				missed = append(missed, fmt.Sprintf("__%s__/%s", mod.Mod, pattern))
			}
		}
	}

	if len(missed) > 0 {
		log.Warn().Msgf(
			"resources with no match in file %s:\n    %s",
			c.Source,
			strings.Join(missed, "\n    "),
		)
	}

	return sprites, nil
}
