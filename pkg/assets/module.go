package assets

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/repeale/fp-go/option"
)

// A reference to an asset inside a mod, as written in the content tree.
// Example: __base__/graphics/icons/iron-plate.png
type Reference struct {
	Mod  string
	Path string
}

func NewReference(mod string, path string) *Reference {
	return &Reference{
		Mod:  mod,
		Path: path,
	}
}

func (r Reference) String() string {
	return fmt.Sprintf("__%s__/%s", r.Mod, r.Path)
}

// Every path has exactly one mod segment and it always comes first.
var REFERENCE_REGEX = regexp.MustCompile(`^__(.+?)__/(.+)$`)

// ParseReference splits a content tree string into its mod name and the
// path inside that mod.
func ParseReference(value string) opt.Option[Reference] {
	matches := REFERENCE_REGEX.FindStringSubmatch(value)
	if matches == nil {
		return opt.None[Reference]()
	}

	return opt.Some(Reference{
		Mod:  matches[1],
		Path: matches[2],
	})
}

// Extensions the engine loads as replaceable sprites and sounds. The
// match is case-sensitive; the engine never references FILE.PNG.
var ASSET_EXTENSIONS = []string{"png", "jpg", "ogg"}

// IsCandidate reports whether a string leaf looks like a reference to a
// sprite or sound file.
func IsCandidate(value string) bool {
	dot := strings.LastIndex(value, ".")
	if dot == -1 || dot == len(value)-1 {
		return false
	}

	extension := value[dot+1:]
	if strings.ContainsRune(extension, '/') {
		return false
	}

	for _, candidate := range ASSET_EXTENSIONS {
		if extension == candidate {
			return true
		}
	}

	return false
}
